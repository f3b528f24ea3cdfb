package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mbdiscid/internal/discid"
)

// usageError reports a wrong number of positional arguments for the
// one-shot invocation.
type usageError struct {
	program string
}

func (e *usageError) Error() string {
	return fmt.Sprintf("Usage: %s <device>", e.program)
}

// execute runs cmd with args and maps the outcome to an exit code, writing
// diagnostics for failures to stderr.
func execute(ctx context.Context, cmd *cobra.Command, args []string, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(w, usage.Error())
		return
	}

	var depErr *discid.DependencyError
	if errors.As(err, &depErr) {
		fmt.Fprintf(w, "ERROR: %s\n", depErr.Error())
		for _, hint := range installHints(depErr) {
			fmt.Fprintf(w, "Install with: %s\n", hint)
		}
		return
	}

	fmt.Fprintf(w, "ERROR: %s\n", err.Error())
}

// installHints returns the hints of err and its causes without duplicates.
func installHints(err *discid.DependencyError) []string {
	seen := make(map[string]struct{})
	var hints []string
	var collect func(*discid.DependencyError)
	collect = func(e *discid.DependencyError) {
		for _, hint := range e.Hints {
			if _, ok := seen[hint]; ok {
				continue
			}
			seen[hint] = struct{}{}
			hints = append(hints, hint)
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)
	return hints
}
