package testutil

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/tidyup/pkg/filesystem"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/stretchr/testify/require"
)

// NewMemoryFS returns an empty in-memory filesystem
func NewMemoryFS() types.FS {
	return filesystem.NewMemory()
}

// WriteFile creates path (and its parents) with the given content
func WriteFile(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
	_ = fsys.Remove(path)

	w, err := fsys.Create(path, 0644)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

// WriteFileAt creates a file and sets its modification time
func WriteFileAt(t *testing.T, fsys types.FS, path, content string, mtime time.Time) {
	t.Helper()
	WriteFile(t, fsys, path, content)
	require.NoError(t, fsys.Chtimes(path, mtime, mtime))
}

// ReadFile returns the content of path
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	r, err := fsys.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether path exists on fsys
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// ExistsFunc adapts Exists for conflict.Resolver
func ExistsFunc(fsys types.FS) func(string) (bool, error) {
	return func(path string) (bool, error) {
		_, err := fsys.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	}
}

// ListDir returns the names in dir, sorted
func ListDir(t *testing.T, fsys types.FS, dir string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
