package kvstore

import "time"

// StoreOption is a type for functions that configure a Store.
// These functions are intended to be used with the New function
// to create a customized Store instance.
type StoreOption func(s *Store)

// WithLockTimeoutOption returns a StoreOption that bounds the wait for
// the database lock. By default a Store blocks indefinitely; with a
// timeout configured, operations fail with lockfile.ErrLockTimeout when
// the lock cannot be acquired within 'd'.
//
// Example:
//
//	New(path, persister, WithLockTimeoutOption(5*time.Second))
func WithLockTimeoutOption(d time.Duration) StoreOption {
	return func(s *Store) {
		s.lockTimeout = d
	}
}

// WithLockPathOption returns a StoreOption that overrides the location of
// the lock sidecar file. The default is the database path with a ".lock"
// suffix.
func WithLockPathOption(path string) StoreOption {
	return func(s *Store) {
		s.lockPath = path
	}
}
