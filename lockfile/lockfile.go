// Package lockfile coordinates exclusive cross-process access to a
// database file. The lock is an advisory file lock held on a sidecar
// next to the database file, so that acquiring it for a pure read never
// creates the database file itself.
package lockfile

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	lockSuffix   = ".lock"
	lockFileMode = 0644
	dirMode      = 0700

	// retryDelay is the polling interval used while waiting under a
	// bounded acquisition.
	retryDelay = 10 * time.Millisecond
)

// ErrLockTimeout returned when a bounded acquisition gives up before
// obtaining the lock.
var ErrLockTimeout = errors.New("timed out waiting for database lock")

// Handle represents a held exclusive lock. It must be released on every
// exit path of the operation it guards, typically via defer.
type Handle struct {
	fl *flock.Flock
}

// PathFor returns the lock sidecar path for the database file at dbPath.
func PathFor(dbPath string) string {
	return dbPath + lockSuffix
}

// Acquire blocks until it holds an exclusive lock on the file at path,
// creating the file (and its parent directory) if necessary. Exclusivity
// spans processes: two concurrent holders of the same path are never
// possible.
func Acquire(path string) (*Handle, error) {
	fl, err := prepare(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Msg("lockfile: waiting for exclusive lock")
	if err := fl.Lock(); err != nil {
		return nil, errors.Wrapf(err, "lockfile.Acquire %s", path)
	}
	return &Handle{fl: fl}, nil
}

// AcquireTimeout is like Acquire but gives up after the timeout elapses,
// failing with ErrLockTimeout.
func AcquireTimeout(path string, timeout time.Duration) (*Handle, error) {
	fl, err := prepare(path)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Debug().Str("path", path).Dur("timeout", timeout).Msg("lockfile: waiting for exclusive lock")
	locked, err := fl.TryLockContext(ctx, retryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrapf(ErrLockTimeout, "lockfile.AcquireTimeout %s after %s", path, timeout)
		}
		return nil, errors.Wrapf(err, "lockfile.AcquireTimeout %s", path)
	}
	if !locked {
		return nil, errors.Wrapf(ErrLockTimeout, "lockfile.AcquireTimeout %s after %s", path, timeout)
	}
	return &Handle{fl: fl}, nil
}

// Release relinquishes the lock. It is safe to call more than once and on
// a nil Handle, so error paths can release unconditionally.
func (h *Handle) Release() {
	if h == nil || h.fl == nil {
		return
	}
	if err := h.fl.Unlock(); err != nil {
		log.Error().Err(err).Str("path", h.fl.Path()).Msg("lockfile: release failed")
	}
	h.fl = nil
}

// prepare ensures the lock file exists before locking it.
func prepare(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, errors.Wrapf(err, "lockfile: MkdirAll %s", filepath.Dir(path))
	}
	fh, err := os.OpenFile(path, os.O_CREATE, lockFileMode)
	if err != nil {
		return nil, errors.Wrapf(err, "lockfile: create %s", path)
	}
	if err := fh.Close(); err != nil {
		return nil, errors.Wrapf(err, "lockfile: close %s", path)
	}
	return flock.New(path), nil
}
