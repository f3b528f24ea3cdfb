package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mbdiscid/internal/toc"
)

type tocReport struct {
	DiscID        string  `json:"disc_id"`
	FreeDBID      string  `json:"freedb_id"`
	TOC           toc.TOC `json:"toc"`
	TOCString     string  `json:"toc_string"`
	SubmissionURL string  `json:"submission_url"`
}

func newTOCReport(disc toc.TOC) tocReport {
	return tocReport{
		DiscID:        disc.MusicBrainzID(),
		FreeDBID:      disc.FreeDBID(),
		TOC:           disc,
		TOCString:     disc.String(),
		SubmissionURL: disc.SubmissionURL(),
	}
}

func newTOCCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var from string

	cmd := &cobra.Command{
		Use:   "toc [device]",
		Short: "Read the table of contents and show every derived identifier",
		Long: "Read the table of contents from a drive, or take it from --from in the\n" +
			"\"first last leadout offset...\" layout, and print the disc ID, FreeDB ID\n" +
			"and MusicBrainz submission URL.",
		Args: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(from) != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			disc, err := loadTOC(cmd.Context(), ctx.env.native, from, args)
			if err != nil {
				return err
			}

			report := newTOCReport(disc)
			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Disc ID:    %s\n", report.DiscID)
			fmt.Fprintf(out, "FreeDB ID:  %s\n", report.FreeDBID)
			fmt.Fprintf(out, "Tracks:     %d-%d (%d)\n", disc.First, disc.Last, disc.Tracks())
			fmt.Fprintf(out, "Length:     %s\n", formatSectors(disc.Leadout-toc.Pregap))
			fmt.Fprintf(out, "TOC:        %s\n", report.TOCString)
			fmt.Fprintf(out, "Submit URL: %s\n", report.SubmissionURL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&from, "from", "", "Use this TOC string instead of reading a drive")
	return cmd
}

// loadTOC parses from when set and otherwise reads the drive named in args.
func loadTOC(ctx context.Context, source tocSource, from string, args []string) (toc.TOC, error) {
	if from = strings.TrimSpace(from); from != "" {
		return toc.Parse(from)
	}
	if err := source.Available(); err != nil {
		return toc.TOC{}, err
	}
	return source.ReadTOC(ctx, args[0])
}

// formatSectors renders a sector count as m:ss.
func formatSectors(sectors int) string {
	seconds := sectors / toc.SectorsPerSecond
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
