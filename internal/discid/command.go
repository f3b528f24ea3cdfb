package discid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mbdiscid/internal/deps"
	"mbdiscid/internal/toc"
)

// NameCDDiscID identifies the provider that shells out to cd-discid.
const NameCDDiscID = "cd-discid"

const cdDiscIDInstallHint = "apt install cd-discid (or your distribution's cd-discid package)"

// commandRunner executes a command and returns its stdout and stderr.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

// CommandProvider runs `cd-discid --musicbrainz` and hashes the TOC it prints.
type CommandProvider struct {
	binary string
	run    commandRunner
}

// NewCommandProvider returns a provider using binary, or "cd-discid" from
// PATH when binary is empty.
func NewCommandProvider(binary string) *CommandProvider {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "cd-discid"
	}
	return &CommandProvider{binary: binary, run: execRunner}
}

func (p *CommandProvider) Name() string { return NameCDDiscID }

// Requirement describes the external binary this provider runs.
func (p *CommandProvider) Requirement() deps.Requirement {
	return deps.Requirement{
		Name:        NameCDDiscID,
		Command:     p.binary,
		Description: "Reads the CD table of contents",
		InstallHint: cdDiscIDInstallHint,
	}
}

func (p *CommandProvider) Available() error {
	status := deps.CheckBinary(p.Requirement())
	if !status.Available {
		return dependencyErr(NameCDDiscID, status.Detail, status.InstallHint)
	}
	return nil
}

func (p *CommandProvider) Read(ctx context.Context, device string) (string, error) {
	stdout, stderr, err := p.run(ctx, p.binary, "--musicbrainz", device)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		message := strings.TrimSpace(string(stderr))
		if message == "" {
			message = fmt.Sprintf("%s failed: %v", NameCDDiscID, err)
		}
		return "", &DiscError{Provider: NameCDDiscID, Device: device, Message: message, Err: err}
	}

	disc, err := toc.ParseCDDiscID(string(stdout))
	if err != nil {
		return "", &DiscError{
			Provider: NameCDDiscID,
			Device:   device,
			Message:  fmt.Sprintf("unexpected %s output: %v", NameCDDiscID, err),
			Err:      err,
		}
	}
	return disc.MusicBrainzID(), nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = fmt.Errorf("exit status %d: %w", exitErr.ExitCode(), err)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}
