package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/kvutil/cli"
)

func runCLI(t *testing.T, dbPath string, args ...string) (int, string) {
	t.Helper()
	var stdout bytes.Buffer
	rc := cli.Run(append(args, "--db", dbPath), &cli.Config{
		Stdout: &stdout,
		Stderr: io.Discard,
		Exit:   func(int) {},
	})
	return rc, stdout.String()
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "kvutil.db")
}

func TestReadWriteDeleteListScenario(t *testing.T) {
	dbPath := testDBPath(t)

	rc, out := runCLI(t, dbPath, "write", "a", "1")
	require.Equal(t, 0, rc)
	assert.Empty(t, out)

	rc, _ = runCLI(t, dbPath, "write", "b", "2")
	require.Equal(t, 0, rc)

	rc, out = runCLI(t, dbPath, "list")
	require.Equal(t, 0, rc)
	assert.Equal(t, "a\nb\n", out)

	rc, out = runCLI(t, dbPath, "read", "a")
	require.Equal(t, 0, rc)
	assert.Equal(t, "1\n", out)

	rc, out = runCLI(t, dbPath, "delete", "a")
	require.Equal(t, 0, rc)
	assert.Empty(t, out)

	rc, out = runCLI(t, dbPath, "list")
	require.Equal(t, 0, rc)
	assert.Equal(t, "b\n", out)

	rc, out = runCLI(t, dbPath, "read", "a")
	require.Equal(t, 0, rc)
	assert.Empty(t, out)
}

func TestReadMissingKeyExitsZero(t *testing.T) {
	rc, out := runCLI(t, testDBPath(t), "read", "never_written")
	assert.Equal(t, 0, rc)
	assert.Empty(t, out)
}

func TestDeleteMissingKeyExitsZero(t *testing.T) {
	rc, out := runCLI(t, testDBPath(t), "delete", "never_written")
	assert.Equal(t, 0, rc)
	assert.Empty(t, out)
}

func TestCorruptDatabaseExitsNonZero(t *testing.T) {
	dbPath := testDBPath(t)
	require.NoError(t, os.WriteFile(dbPath, []byte("garbage"), 0600))

	rc, out := runCLI(t, dbPath, "read", "a")
	assert.NotEqual(t, 0, rc)
	assert.Empty(t, out)

	rc, _ = runCLI(t, dbPath, "write", "a", "1")
	assert.NotEqual(t, 0, rc)
}

func TestUnknownCommandExitsNonZero(t *testing.T) {
	rc, _ := runCLI(t, testDBPath(t), "frobnicate")
	assert.NotEqual(t, 0, rc)
}

func TestOverwriteExistingKey(t *testing.T) {
	dbPath := testDBPath(t)

	rc, _ := runCLI(t, dbPath, "write", "k", "old")
	require.Equal(t, 0, rc)
	rc, _ = runCLI(t, dbPath, "write", "k", "new")
	require.Equal(t, 0, rc)

	rc, out := runCLI(t, dbPath, "read", "k")
	require.Equal(t, 0, rc)
	assert.Equal(t, "new\n", out)
}
