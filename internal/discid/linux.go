package discid

import (
	"context"
	"errors"
	"runtime"

	"mbdiscid/internal/cdrom"
	"mbdiscid/internal/toc"
)

// NameLinux identifies the native ioctl provider.
const NameLinux = "linux"

// LinuxProvider reads the TOC through CD-ROM ioctls and hashes it in process.
type LinuxProvider struct {
	goos    string
	readTOC func(device string) (toc.TOC, error)
}

// NewLinuxProvider returns the native provider for the running platform.
func NewLinuxProvider() *LinuxProvider {
	return &LinuxProvider{goos: runtime.GOOS, readTOC: cdrom.ReadTOC}
}

func (p *LinuxProvider) Name() string { return NameLinux }

func (p *LinuxProvider) Available() error {
	if p.goos != "linux" {
		return dependencyErr(NameLinux, "native CD-ROM access requires Linux (running on "+p.goos+")")
	}
	return nil
}

func (p *LinuxProvider) Read(ctx context.Context, device string) (string, error) {
	disc, err := p.ReadTOC(ctx, device)
	if err != nil {
		return "", err
	}
	return disc.MusicBrainzID(), nil
}

// ReadTOC returns the validated table of contents without hashing it.
func (p *LinuxProvider) ReadTOC(ctx context.Context, device string) (toc.TOC, error) {
	var disc toc.TOC
	_, err := runBlocking(ctx, func() (string, error) {
		var readErr error
		disc, readErr = p.readTOC(device)
		return "", readErr
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return toc.TOC{}, err
		}
		return toc.TOC{}, &DiscError{Provider: NameLinux, Device: device, Message: deviceMessage(err), Err: err}
	}
	return disc, nil
}

// deviceMessage prefers the short sentinel text for the common drive states.
func deviceMessage(err error) string {
	for _, sentinel := range []error{cdrom.ErrNoDisc, cdrom.ErrTrayOpen, cdrom.ErrNotReady, cdrom.ErrNoAudio, cdrom.ErrUnsupported} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
