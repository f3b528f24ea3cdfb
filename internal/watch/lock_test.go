package watch

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLockPath(t *testing.T) {
	dir := "/run/mbdiscid"
	if got := LockPath(dir, "/dev/sr0"); got != filepath.Join(dir, "watch-dev-sr0.lock") {
		t.Fatalf("unexpected lock path %q", got)
	}
	if got := LockPath(dir, ""); got != filepath.Join(dir, "watch-default.lock") {
		t.Fatalf("unexpected lock path for empty device %q", got)
	}
}

func TestLockIsExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := Lock(dir, "/dev/sr0")
	if err != nil {
		t.Fatalf("first Lock returned error: %v", err)
	}

	if _, err := Lock(dir, "/dev/sr0"); !errors.Is(err, ErrAlreadyWatched) {
		t.Fatalf("expected ErrAlreadyWatched, got %v", err)
	}

	other, err := Lock(dir, "/dev/sr1")
	if err != nil {
		t.Fatalf("lock for another device failed: %v", err)
	}
	_ = other.Unlock()

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock returned error: %v", err)
	}
	again, err := Lock(dir, "/dev/sr0")
	if err != nil {
		t.Fatalf("Lock after Unlock returned error: %v", err)
	}
	_ = again.Unlock()
}
