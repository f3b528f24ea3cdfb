package watch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrAlreadyWatched is returned when another process holds the device lock.
var ErrAlreadyWatched = errors.New("device is already being watched by another process")

// Lock acquires an exclusive lock file for device inside dir. The caller
// releases it with Unlock.
func Lock(dir, device string) (*flock.Flock, error) {
	lockPath := LockPath(dir, device)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", device, ErrAlreadyWatched)
	}
	return lock, nil
}

// LockPath returns the lock file path for device, e.g. watch-dev-sr0.lock.
func LockPath(dir, device string) string {
	name := strings.Trim(strings.NewReplacer("/", "-", "\\", "-", ":", "-").Replace(device), "-")
	if name == "" {
		name = "default"
	}
	return filepath.Join(dir, "watch-"+name+".lock")
}
