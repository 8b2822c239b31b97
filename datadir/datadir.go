// Package datadir resolves the platform-appropriate location of the
// database file.
package datadir

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	// EnvDataDir overrides the data directory root when set.
	EnvDataDir = "XDG_DATA_DIR"

	appDirname = "kvutil"
	dbFilename = "kvutil.db"
)

// Root returns the data directory root: the EnvDataDir environment
// variable when set, otherwise the conventional per-user data directory
// under the home directory.
func Root() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "datadir.Root resolve home directory")
	}
	return filepath.Join(home, ".local", "share"), nil
}

// DataFilePath returns the resolved path of the database file.
func DataFilePath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appDirname, dbFilename), nil
}
