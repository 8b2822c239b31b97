// Package persistence stores the key-value mapping as a single
// serialized snapshot file.
package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jrsteele09/kvutil/kvstore"
)

const (
	fileMode = 0600
	dirMode  = 0700

	tmpSuffix = ".tmp"
)

// ErrCorruptStore returned when the database file exists but its
// contents cannot be deserialized. The file is never repaired or
// truncated automatically.
var ErrCorruptStore = errors.New("database file is corrupt")

// File persists a kvstore.Mapping as one JSON object in a single file.
// Values are byte slices and serialize as base64, so arbitrary binary
// data round-trips. A freshly created store encodes as "{}".
type File struct {
	path string
}

// NewFile initializes a File persister for the database file at path.
// The file itself is created lazily on the first Persist.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the database file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the database file in full and deserializes it. A missing
// file is equivalent to an empty mapping and is not an error.
func (f *File) Load() (kvstore.Mapping, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return kvstore.Mapping{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "File.Load ReadFile %s", f.path)
	}

	var m kvstore.Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(ErrCorruptStore, "File.Load %s: %s", f.path, err.Error())
	}
	if m == nil {
		// The file contained the JSON literal "null".
		m = kvstore.Mapping{}
	}
	return m, nil
}

// Persist serializes the mapping and replaces the database file. The
// snapshot is written to a temporary file first and renamed into place,
// so another process observes either the old contents or the new
// contents in full, never a partial write.
func (f *File) Persist(m kvstore.Mapping) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return errors.Wrapf(err, "File.Persist MkdirAll %s", filepath.Dir(f.path))
	}

	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "File.Persist Marshal")
	}

	tmpPath := f.path + tmpSuffix
	if err := os.WriteFile(tmpPath, data, fileMode); err != nil {
		return errors.Wrapf(err, "File.Persist WriteFile %s", tmpPath)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return errors.Wrapf(err, "File.Persist Rename %s", f.path)
	}
	return nil
}
