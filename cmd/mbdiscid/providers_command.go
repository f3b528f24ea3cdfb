package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mbdiscid/internal/deps"
	"mbdiscid/internal/discid"
)

type driveReport struct {
	Device string `json:"device"`
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	Error  string `json:"error,omitempty"`
}

type providersReport struct {
	Configured string          `json:"configured"`
	Selected   string          `json:"selected,omitempty"`
	Providers  []discid.Status `json:"providers"`
	Binaries   []deps.Status   `json:"binaries,omitempty"`
	Drive      *driveReport    `json:"drive,omitempty"`
}

func newProvidersCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "providers [device]",
		Short: "Show which disc ID providers can run on this host",
		Long: "List every disc ID provider with its availability and the external\n" +
			"tools it needs. With a device, also report the drive's current state.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			providers := ctx.providers(cfg)
			report := providersReport{
				Configured: ctx.providerName(cfg),
				Providers:  discid.Statuses(providers),
				Binaries:   deps.CheckBinaries(discid.Requirements(providers)),
			}
			if selected, err := discid.Resolve(report.Configured, providers); err == nil {
				report.Selected = selected.Name()
			}
			if len(args) == 1 {
				report.Drive = ctx.checkDrive(args[0])
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			renderProvidersReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func (c *commandContext) checkDrive(device string) *driveReport {
	report := &driveReport{Device: device}
	status, err := c.env.driveStatus(device)
	report.Status = status.String()
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Ready = status.Ready()
	return report
}

func renderProvidersReport(out io.Writer, report providersReport) {
	rows := make([][]string, 0, len(report.Providers))
	for _, status := range report.Providers {
		detail := status.Detail
		if len(status.Hints) > 0 {
			detail = strings.TrimSpace(detail + " (" + strings.Join(status.Hints, "; ") + ")")
		}
		rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Provider", "Available", "Detail"}, rows))

	if len(report.Binaries) > 0 {
		rows = rows[:0]
		for _, bin := range report.Binaries {
			detail := bin.Detail
			if !bin.Available && bin.InstallHint != "" {
				detail = strings.TrimSpace(detail + " (" + bin.InstallHint + ")")
			}
			rows = append(rows, []string{bin.Name, bin.Command, yesNo(bin.Available), detail})
		}
		fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Available", "Detail"}, rows))
	}

	selected := report.Selected
	if selected == "" {
		selected = "none"
	}
	fmt.Fprintf(out, "Configured: %s\nSelected: %s\n", report.Configured, selected)

	if drive := report.Drive; drive != nil {
		if drive.Error != "" {
			fmt.Fprintf(out, "Drive %s: %s\n", drive.Device, drive.Error)
		} else {
			fmt.Fprintf(out, "Drive %s: %s\n", drive.Device, drive.Status)
		}
	}
}
