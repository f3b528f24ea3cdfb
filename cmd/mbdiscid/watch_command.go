package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mbdiscid/internal/discid"
	"mbdiscid/internal/logging"
	"mbdiscid/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var initial bool

	cmd := &cobra.Command{
		Use:   "watch <device>",
		Short: "Print the disc ID every time a disc is inserted",
		Long: "Listen for udev media events on the device and print one disc ID per\n" +
			"inserted disc until interrupted. Failed reads are reported on stderr.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			device := args[0]

			if err := cfg.EnsureLockDir(); err != nil {
				return err
			}
			lock, err := watch.Lock(cfg.Watch.LockDir, device)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			reader, err := ctx.resolveProvider()
			if err != nil {
				return err
			}

			printer := &readPrinter{
				reader: reader,
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}

			runCtx := cmd.Context()
			if initial {
				printer.read(runCtx, device)
			}

			debounce := time.Duration(cfg.Watch.DebounceSeconds) * time.Second
			monitor := watch.NewMonitor(device, ctx.log(), printer.read, debounce)
			if err := monitor.Start(runCtx); err != nil {
				return err
			}
			defer monitor.Stop()

			<-runCtx.Done()
			ctx.log().Debug("watch interrupted",
				logging.String(logging.FieldDevice, device),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initial, "initial", false, "Read the disc already in the drive before waiting for insertions")
	return cmd
}

// readPrinter performs one read per event and writes the outcome using the
// same stream rules as the one-shot invocation.
type readPrinter struct {
	reader *discid.Reader
	stdout io.Writer
	stderr io.Writer
	mu     sync.Mutex
}

func (p *readPrinter) read(ctx context.Context, device string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.reader.Read(ctx, device)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(p.stderr, "ERROR: %s\n", err.Error())
		return
	}
	fmt.Fprintln(p.stdout, id)
}
