package watcher

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/gofrs/flock"
)

// acquireLock takes the single-instance lock or fails with LOCK_HELD
func acquireLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot create lock directory for %s", path)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot acquire lock %s", path)
	}
	if !ok {
		return nil, errors.Newf(errors.ErrLockHeld, "another tidyup watcher is already running (lock %s)", path).
			WithDetail("lock", path)
	}
	return lock, nil
}
