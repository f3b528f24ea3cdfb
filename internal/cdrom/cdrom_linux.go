//go:build linux

package cdrom

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"mbdiscid/internal/toc"
)

const (
	ioctlCDROMReadTOCHeader = 0x5305
	ioctlCDROMReadTOCEntry  = 0x5306
	ioctlCDROMDriveStatus   = 0x5326

	cdromLBA       = 0x01
	cdromLeadout   = 0xAA
	cdromDataTrack = 0x04
)

// cdromTOCHeader mirrors struct cdrom_tochdr.
type cdromTOCHeader struct {
	FirstTrack uint8
	LastTrack  uint8
}

// cdromTOCEntry mirrors struct cdrom_tocentry with the address union read as
// an LBA. adr and ctrl share one byte; ctrl is the high nibble on
// little-endian targets.
type cdromTOCEntry struct {
	Track    uint8
	AdrCtrl  uint8
	Format   uint8
	_        uint8
	Addr     int32
	DataMode uint8
	_        [3]uint8
}

func (e cdromTOCEntry) control() uint8 {
	return e.AdrCtrl >> 4
}

// CheckDriveStatus queries the drive state using the CDROM_DRIVE_STATUS ioctl.
// Returns an error if the device cannot be opened or the ioctl fails.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return DriveStatusNoInfo, err
	}
	defer unix.Close(fd) //nolint:errcheck

	return driveStatus(fd, devicePath)
}

// ReadTOC reads the table of contents of the disc in devicePath.
func ReadTOC(devicePath string) (toc.TOC, error) {
	fd, err := openDevice(devicePath)
	if err != nil {
		return toc.TOC{}, err
	}
	defer unix.Close(fd) //nolint:errcheck

	status, err := driveStatus(fd, devicePath)
	if err == nil {
		if statusErr := status.Err(); statusErr != nil {
			return toc.TOC{}, &DeviceError{Device: devicePath, Op: "read toc", Err: statusErr}
		}
	}
	// Drives without status support still answer TOC requests, so a failed
	// status ioctl is not fatal here.

	var header cdromTOCHeader
	if err := ioctl(fd, ioctlCDROMReadTOCHeader, unsafe.Pointer(&header)); err != nil {
		return toc.TOC{}, &DeviceError{Device: devicePath, Op: "read toc header", Err: translateErrno(err)}
	}
	if header.FirstTrack == 0 || header.LastTrack < header.FirstTrack {
		return toc.TOC{}, &DeviceError{
			Device: devicePath,
			Op:     "read toc header",
			Err:    fmt.Errorf("invalid track range %d-%d", header.FirstTrack, header.LastTrack),
		}
	}

	entries := make([]trackEntry, 0, int(header.LastTrack-header.FirstTrack)+1)
	for track := int(header.FirstTrack); track <= int(header.LastTrack); track++ {
		entry, err := readEntry(fd, uint8(track))
		if err != nil {
			return toc.TOC{}, &DeviceError{Device: devicePath, Op: fmt.Sprintf("read toc entry %d", track), Err: translateErrno(err)}
		}
		entries = append(entries, trackEntry{
			Number: track,
			LBA:    int(entry.Addr),
			Data:   entry.control()&cdromDataTrack != 0,
		})
	}

	leadout, err := readEntry(fd, cdromLeadout)
	if err != nil {
		return toc.TOC{}, &DeviceError{Device: devicePath, Op: "read toc leadout", Err: translateErrno(err)}
	}

	disc, err := buildTOC(entries, int(leadout.Addr))
	if err != nil {
		return toc.TOC{}, &DeviceError{Device: devicePath, Op: "read toc", Err: err}
	}
	return disc, nil
}

func openDevice(devicePath string) (int, error) {
	devicePath = strings.TrimSpace(devicePath)
	if devicePath == "" {
		return -1, &DeviceError{Device: devicePath, Op: "open", Err: errors.New("empty device path")}
	}
	fd, err := unix.Open(devicePath, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, &DeviceError{Device: devicePath, Op: "open", Err: err}
	}
	return fd, nil
}

func driveStatus(fd int, devicePath string) (DriveStatus, error) {
	r1, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(ioctlCDROMDriveStatus), 0)
	if errno != 0 {
		return DriveStatusNoInfo, &DeviceError{Device: devicePath, Op: "ioctl CDROM_DRIVE_STATUS", Err: errno}
	}
	return DriveStatus(r1), nil
}

func readEntry(fd int, track uint8) (cdromTOCEntry, error) {
	entry := cdromTOCEntry{Track: track, Format: cdromLBA}
	if err := ioctl(fd, ioctlCDROMReadTOCEntry, unsafe.Pointer(&entry)); err != nil {
		return cdromTOCEntry{}, err
	}
	return entry, nil
}

func ioctl(fd int, request uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), request, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func translateErrno(err error) error {
	switch {
	case errors.Is(err, unix.ENOMEDIUM):
		return ErrNoDisc
	case errors.Is(err, unix.EIO):
		return fmt.Errorf("%w (unreadable or non-audio disc)", err)
	default:
		return err
	}
}
