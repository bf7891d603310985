package notestore

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("overwrites existing file", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "n.txt")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0o644))

		require.NoError(t, writeFileAtomic(filename, []byte("overwritten"), 0o644))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
		assertNoTempFiles(t, dir)
	})

	t.Run("fails if directory missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing", "n.txt")
		assert.Error(t, writeFileAtomic(filename, []byte("x"), 0o644))
	})
}

func TestCreateFileExclusive(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "n.txt")

	require.NoError(t, createFileExclusive(filename, []byte("first"), 0o644))

	err := createFileExclusive(filename, []byte("second"), 0o644)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)

	got, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, tempFilePrefix+"*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files left behind")
}
