package cdrom

import (
	"errors"
	"fmt"
)

var (
	ErrNoDisc      = errors.New("no disc in drive")
	ErrTrayOpen    = errors.New("drive tray is open")
	ErrNotReady    = errors.New("drive not ready")
	ErrNoAudio     = errors.New("disc has no audio tracks")
	ErrUnsupported = errors.New("reading a disc TOC is not supported on this platform")
)

// DeviceError records the device and the operation that failed.
type DeviceError struct {
	Device string
	Op     string
	Err    error
}

func (e *DeviceError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Device, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Device, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
