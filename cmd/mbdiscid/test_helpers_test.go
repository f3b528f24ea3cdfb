package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mbdiscid/internal/cdrom"
	"mbdiscid/internal/discid"
	"mbdiscid/internal/testsupport"
	"mbdiscid/internal/toc"
)

type fakeProvider struct {
	name     string
	availErr error
	id       string
	readErr  error
	devices  []string
}

func (p *fakeProvider) Name() string     { return p.name }
func (p *fakeProvider) Available() error { return p.availErr }

func (p *fakeProvider) Read(_ context.Context, device string) (string, error) {
	p.devices = append(p.devices, device)
	if p.readErr != nil {
		return "", p.readErr
	}
	return p.id, nil
}

type fakeTOCSource struct {
	availErr error
	disc     toc.TOC
	err      error
}

func (s *fakeTOCSource) Available() error { return s.availErr }

func (s *fakeTOCSource) ReadTOC(context.Context, string) (toc.TOC, error) {
	if s.err != nil {
		return toc.TOC{}, s.err
	}
	return s.disc, nil
}

func testEnvironment(native tocSource, providers ...discid.Provider) environment {
	if native == nil {
		native = &fakeTOCSource{}
	}
	return environment{
		providers:   func(discid.Options) []discid.Provider { return providers },
		native:      native,
		driveStatus: func(string) (cdrom.DriveStatus, error) {
			return cdrom.DriveStatusNoInfo, errors.New("drive status not stubbed")
		},
	}
}

// isolateConfig points every config lookup at an empty temp directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	return testsupport.IsolateHome(t)
}

func runCLI(t *testing.T, env environment, args ...string) (string, string, int) {
	t.Helper()
	cmd := newRootCommandWith("mbdiscid", env)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	code := execute(context.Background(), cmd, args, &stderr)
	return stdout.String(), stderr.String(), code
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
