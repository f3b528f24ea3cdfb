package discid

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mbdiscid/internal/deps"
)

const (
	// AutoProvider selects the first available provider.
	AutoProvider = "auto"
	// NameLibdiscid identifies the cgo libdiscid provider.
	NameLibdiscid = "libdiscid"
)

// Provider computes disc IDs from an optical drive.
type Provider interface {
	// Name is the identifier used in configuration and diagnostics.
	Name() string
	// Available returns nil when the provider can run, or a *DependencyError.
	Available() error
	// Read returns the disc ID for the disc in device. Failures are
	// reported as *DiscError.
	Read(ctx context.Context, device string) (string, error)
}

// Options configures the built-in providers.
type Options struct {
	CDDiscIDBinary string
}

// Builtin returns the built-in providers in auto-selection order.
func Builtin(opts Options) []Provider {
	return []Provider{
		newLibdiscidProvider(),
		NewLinuxProvider(),
		NewCommandProvider(opts.CDDiscIDBinary),
	}
}

// Resolve selects a provider by name. AutoProvider (or an empty name) picks
// the first available provider; a concrete name returns that provider's
// availability error when it cannot run.
func Resolve(name string, providers []Provider) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == AutoProvider {
		return resolveAuto(providers)
	}

	for _, p := range providers {
		if p.Name() != name {
			continue
		}
		if err := p.Available(); err != nil {
			return nil, asDependencyError(p.Name(), err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownProvider, name)
}

func resolveAuto(providers []Provider) (Provider, error) {
	causes := make([]*DependencyError, 0, len(providers))
	var hints []string
	for _, p := range providers {
		err := p.Available()
		if err == nil {
			return p, nil
		}
		depErr := asDependencyError(p.Name(), err)
		causes = append(causes, depErr)
		hints = append(hints, depErr.Hints...)
	}
	return nil, &DependencyError{
		Name:   "disc ID provider",
		Detail: "no provider can run on this host",
		Hints:  hints,
		Causes: causes,
	}
}

func asDependencyError(name string, err error) *DependencyError {
	var depErr *DependencyError
	if errors.As(err, &depErr) {
		return depErr
	}
	return &DependencyError{Name: name, Detail: err.Error()}
}

// Status describes a provider's availability.
type Status struct {
	Name      string   `json:"name"`
	Available bool     `json:"available"`
	Detail    string   `json:"detail,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}

// Statuses reports the availability of every provider, in order.
func Statuses(providers []Provider) []Status {
	statuses := make([]Status, 0, len(providers))
	for _, p := range providers {
		status := Status{Name: p.Name(), Available: true}
		if err := p.Available(); err != nil {
			depErr := asDependencyError(p.Name(), err)
			status.Available = false
			status.Detail = depErr.Detail
			if status.Detail == "" {
				status.Detail = depErr.Error()
			}
			status.Hints = depErr.Hints
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// requirementHolder is implemented by providers that delegate to an
// external binary.
type requirementHolder interface {
	Requirement() deps.Requirement
}

// Requirements lists the external binaries the providers depend on, in
// provider order.
func Requirements(providers []Provider) []deps.Requirement {
	var reqs []deps.Requirement
	for _, p := range providers {
		if holder, ok := p.(requirementHolder); ok {
			reqs = append(reqs, holder.Requirement())
		}
	}
	return reqs
}

// runBlocking runs fn in its own goroutine so callers can abandon an ioctl
// or library call that ignores cancellation. An abandoned fn keeps running,
// and keeps its device open, until the drive answers; its result lands in a
// buffered channel so the goroutine always exits. watch only cancels on
// shutdown, so abandoned reads do not accumulate.
func runBlocking(ctx context.Context, fn func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		id, err := fn()
		done <- result{id: id, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.id, r.err
	}
}
