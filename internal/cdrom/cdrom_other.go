//go:build !linux

package cdrom

import "mbdiscid/internal/toc"

// CheckDriveStatus is unavailable outside Linux.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	return DriveStatusNoInfo, &DeviceError{Device: devicePath, Op: "drive status", Err: ErrUnsupported}
}

// ReadTOC is unavailable outside Linux.
func ReadTOC(devicePath string) (toc.TOC, error) {
	return toc.TOC{}, &DeviceError{Device: devicePath, Op: "read toc", Err: ErrUnsupported}
}
