package cdrom

import "fmt"

// DriveStatus represents the result of a CDROM_DRIVE_STATUS ioctl call.
type DriveStatus int

// Values returned by CDROM_DRIVE_STATUS.
const (
	DriveStatusNoInfo   DriveStatus = 0
	DriveStatusNoDisc   DriveStatus = 1
	DriveStatusTrayOpen DriveStatus = 2
	DriveStatusNotReady DriveStatus = 3
	DriveStatusDiscOK   DriveStatus = 4
)

// String describes the drive state in the words used for read errors.
func (s DriveStatus) String() string {
	if err := s.Err(); err != nil {
		return err.Error()
	}
	switch s {
	case DriveStatusNoInfo:
		return "status unknown"
	case DriveStatusDiscOK:
		return "disc present"
	default:
		return fmt.Sprintf("unrecognized status %d", int(s))
	}
}

// Ready reports whether a TOC read can be attempted.
func (s DriveStatus) Ready() bool {
	return s.Err() == nil
}

// Err maps a status that prevents reading to its sentinel error. Drives that
// cannot report status (no_info) are given the benefit of the doubt.
func (s DriveStatus) Err() error {
	switch s {
	case DriveStatusNoDisc:
		return ErrNoDisc
	case DriveStatusTrayOpen:
		return ErrTrayOpen
	case DriveStatusNotReady:
		return ErrNotReady
	default:
		return nil
	}
}
