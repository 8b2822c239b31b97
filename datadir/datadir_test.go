package datadir_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/kvutil/datadir"
)

func TestEnvOverride(t *testing.T) {
	t.Setenv(datadir.EnvDataDir, "/path/to/test/directory")

	path, err := datadir.DataFilePath()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, "/path/to/test/directory"),
		"expected path under the override directory, got %s", path)
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv(datadir.EnvDataDir, "")
	os.Unsetenv(datadir.EnvDataDir)

	home, err := homedir.Dir()
	require.NoError(t, err)

	path, err := datadir.DataFilePath()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, filepath.Join(home, ".local", "share")),
		"expected path under the default data directory, got %s", path)
}
