package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCommand(program string) *cobra.Command {
	return newRootCommandWith(program, defaultEnvironment())
}

func newRootCommandWith(program string, env environment) *cobra.Command {
	var configFlag string
	var providerFlag string
	var verbose bool

	ctx := newCommandContext(program, env, &configFlag, &providerFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:   "mbdiscid <device>",
		Short: "Print the MusicBrainz disc ID of the disc in a CD drive",
		// Positional arguments are checked after provider availability.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return ctx.setupLogger(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := ctx.resolveProvider()
			if err != nil {
				return err
			}
			if len(args) != 1 {
				return &usageError{program: ctx.program}
			}
			id, err := reader.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	// A malformed invocation of the root command reports a missing provider
	// first, then the usage line, never cobra's flag parser message.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if cmd.HasParent() {
			return err
		}
		if _, resolveErr := ctx.resolveProvider(); resolveErr != nil {
			return resolveErr
		}
		return &usageError{program: ctx.program}
	})

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Disc ID provider (auto, libdiscid, linux, cd-discid)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")

	rootCmd.AddCommand(newProvidersCommand(ctx))
	rootCmd.AddCommand(newTOCCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
