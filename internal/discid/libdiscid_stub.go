//go:build !libdiscid || !cgo

package discid

import (
	"context"
)

const libdiscidInstallHint = "apt install libdiscid-dev && go build -tags libdiscid ./cmd/mbdiscid"

type libdiscidProvider struct{}

func newLibdiscidProvider() Provider {
	return libdiscidProvider{}
}

func (libdiscidProvider) Name() string { return NameLibdiscid }

func (libdiscidProvider) Available() error {
	return dependencyErr(NameLibdiscid, "binary built without libdiscid support", libdiscidInstallHint)
}

func (libdiscidProvider) Read(_ context.Context, device string) (string, error) {
	return "", &DiscError{Provider: NameLibdiscid, Device: device, Message: "libdiscid support not compiled in"}
}
