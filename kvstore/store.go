package kvstore

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/kvutil/lockfile"
)

// Error definitions for common error cases.
var (
	// ErrKeyInvalid returned when an operation is given an empty key.
	ErrKeyInvalid = errors.New("key must not be empty")

	// ErrValueNotText returned when a stored value cannot be rendered as
	// text at the display boundary.
	ErrValueNotText = errors.New("value is not valid text")
)

// Store is a key-value store persisted in a single database file and safe
// for concurrent use by independent processes.
//
// Every operation runs one full cycle under an exclusive cross-process
// lock: acquire, load the mapping from disk, apply the single mapping
// operation, persist (for mutations), release. Nothing is cached between
// invocations, so each operation observes the latest committed state.
type Store struct {
	persister   DataPersister
	lockPath    string
	lockTimeout time.Duration
}

// New initializes a Store for the database file at dbPath, persisting
// through the given DataPersister. The lock guarding the file lives in a
// sidecar next to dbPath unless overridden with WithLockPath.
func New(dbPath string, persister DataPersister, options ...StoreOption) (*Store, error) {
	if persister == nil {
		return nil, errors.New("persister cannot be nil")
	}
	store := &Store{
		persister: persister,
		lockPath:  lockfile.PathFor(dbPath),
	}
	for _, opt := range options {
		opt(store)
	}
	return store, nil
}

// Read looks up the value stored under key. A missing key is not an
// error: found is false and value is nil. Read never persists and never
// creates the database file.
func (s *Store) Read(key string) (value []byte, found bool, err error) {
	if !KeyValid(key) {
		return nil, false, ErrKeyInvalid
	}
	handle, err := s.acquire()
	if err != nil {
		return nil, false, err
	}
	defer handle.Release()

	m, err := s.persister.Load()
	if err != nil {
		return nil, false, err
	}
	value, found = m.Get(key)
	return value, found, nil
}

// Write stores value under key, overwriting any existing value, and
// persists the updated mapping. The database file is created on the
// first successful write.
func (s *Store) Write(key string, value []byte) error {
	if !KeyValid(key) {
		return ErrKeyInvalid
	}
	handle, err := s.acquire()
	if err != nil {
		return err
	}
	defer handle.Release()

	m, err := s.persister.Load()
	if err != nil {
		return err
	}
	m.Put(key, value)
	log.Debug().Str("key", key).Int("size", m.Len()).Msg("kvstore: write")
	return s.persister.Persist(m)
}

// Delete removes key from the store. Deleting an absent key is a no-op
// reported through removed, not an error. The mapping is persisted
// unconditionally so that every mutating verb runs the identical cycle.
func (s *Store) Delete(key string) (removed bool, err error) {
	if !KeyValid(key) {
		return false, ErrKeyInvalid
	}
	handle, err := s.acquire()
	if err != nil {
		return false, err
	}
	defer handle.Release()

	m, err := s.persister.Load()
	if err != nil {
		return false, err
	}
	removed = m.Delete(key)
	log.Debug().Str("key", key).Bool("removed", removed).Msg("kvstore: delete")
	return removed, s.persister.Persist(m)
}

// List returns every key in the store in stable enumeration order.
// List never persists.
func (s *Store) List() ([]string, error) {
	handle, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	m, err := s.persister.Load()
	if err != nil {
		return nil, err
	}
	return m.Keys(), nil
}

func (s *Store) acquire() (*lockfile.Handle, error) {
	if s.lockTimeout > 0 {
		return lockfile.AcquireTimeout(s.lockPath, s.lockTimeout)
	}
	return lockfile.Acquire(s.lockPath)
}
