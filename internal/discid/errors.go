package discid

import (
	"errors"
	"fmt"
)

// DependencyError reports that a provider cannot run on this host.
type DependencyError struct {
	// Name is what is missing, e.g. a provider or binary name.
	Name   string
	Detail string
	// Hints are installation commands or instructions.
	Hints []string
	// Causes holds the per-provider failures when no provider was usable.
	Causes []*DependencyError
}

func (e *DependencyError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s not available", e.Name)
	}
	return fmt.Sprintf("%s not available: %s", e.Name, e.Detail)
}

// DiscError reports a failed attempt to read or identify a disc.
type DiscError struct {
	Provider string
	Device   string
	Message  string
	Err      error
}

func (e *DiscError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "disc read failed"
}

func (e *DiscError) Unwrap() error {
	return e.Err
}

// ErrUnknownProvider is wrapped when a provider name matches no registered
// provider.
var ErrUnknownProvider = errors.New("unknown disc ID provider")

func dependencyErr(name, detail string, hints ...string) *DependencyError {
	return &DependencyError{Name: name, Detail: detail, Hints: hints}
}
