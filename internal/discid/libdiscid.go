//go:build libdiscid && cgo

package discid

/*
#cgo pkg-config: libdiscid
#include <stdlib.h>
#include <discid/discid.h>
*/
import "C"

import (
	"context"
	"unsafe"
)

type libdiscidProvider struct{}

func newLibdiscidProvider() Provider {
	return libdiscidProvider{}
}

func (libdiscidProvider) Name() string { return NameLibdiscid }

func (libdiscidProvider) Available() error { return nil }

func (libdiscidProvider) Read(ctx context.Context, device string) (string, error) {
	return runBlocking(ctx, func() (string, error) {
		return readLibdiscid(device)
	})
}

func readLibdiscid(device string) (string, error) {
	handle := C.discid_new()
	if handle == nil {
		return "", &DiscError{Provider: NameLibdiscid, Device: device, Message: "libdiscid: out of memory"}
	}
	defer C.discid_free(handle)

	cdevice := C.CString(device)
	defer C.free(unsafe.Pointer(cdevice))

	// Features 0 reads the TOC only, which is all the disc ID needs.
	if C.discid_read_sparse(handle, cdevice, 0) == 0 {
		return "", &DiscError{
			Provider: NameLibdiscid,
			Device:   device,
			Message:  C.GoString(C.discid_get_error_msg(handle)),
		}
	}
	return C.GoString(C.discid_get_id(handle)), nil
}
