package conflict

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func existing(paths ...string) ExistsFunc {
	set := make(map[string]bool)
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) (bool, error) { return set[p], nil }
}

func TestResolve(t *testing.T) {
	dir := "/org/Docs"
	taken := existing(
		filepath.Join(dir, "doc.txt"),
		filepath.Join(dir, "doc_1.txt"),
		filepath.Join(dir, ".env"),
	)

	tests := []struct {
		name   string
		file   string
		policy config.DuplicatePolicy
		want   Resolution
	}{
		{"free_name", "new.txt", config.PolicyRename, Resolution{Path: filepath.Join(dir, "new.txt")}},
		{"free_name_ignores_policy", "new.txt", config.PolicySkip, Resolution{Path: filepath.Join(dir, "new.txt")}},
		{"rename_skips_taken_suffixes", "doc.txt", config.PolicyRename, Resolution{Path: filepath.Join(dir, "doc_2.txt")}},
		{"rename_dotfile", ".env", config.PolicyRename, Resolution{Path: filepath.Join(dir, ".env_1")}},
		{"skip", "doc.txt", config.PolicySkip, Resolution{Skip: true}},
		{"overwrite", "doc.txt", config.PolicyOverwrite, Resolution{Path: filepath.Join(dir, "doc.txt"), Replace: true}},
	}

	r := NewResolver(taken, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(dir, tt.file, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveExhausted(t *testing.T) {
	dir := "/org"
	taken := []string{filepath.Join(dir, "a.txt")}
	for i := 1; i <= 3; i++ {
		taken = append(taken, filepath.Join(dir, fmt.Sprintf("a_%d.txt", i)))
	}

	r := NewResolver(existing(taken...), 3)
	_, err := r.Resolve(dir, "a.txt", config.PolicyRename)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNameCollision))
	assert.False(t, errors.IsFatal(err))

	// one more attempt is enough
	got, err := NewResolver(existing(taken...), 4).Resolve(dir, "a.txt", config.PolicyRename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_4.txt"), got.Path)
}

func TestResolveOnFilesystem(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	testutil.WriteFile(t, fsys, "/org/Docs/doc.txt", "first")

	r := NewResolver(testutil.ExistsFunc(fsys), 0)
	got, err := r.Resolve("/org/Docs", "doc.txt", config.PolicyRename)
	require.NoError(t, err)
	assert.Equal(t, "/org/Docs/doc_1.txt", got.Path)

	require.NoError(t, fsys.Remove("/org/Docs/doc.txt"))
	got, err = r.Resolve("/org/Docs", "doc.txt", config.PolicyRename)
	require.NoError(t, err)
	assert.Equal(t, "/org/Docs/doc.txt", got.Path)
}

func TestResolveExistsError(t *testing.T) {
	denied := errors.New(errors.ErrFileAccess, "permission denied")

	for _, policy := range []config.DuplicatePolicy{config.PolicyRename, config.PolicySkip, config.PolicyOverwrite} {
		t.Run(string(policy), func(t *testing.T) {
			r := NewResolver(func(string) (bool, error) { return false, denied }, 0)
			got, err := r.Resolve("/d", "a.txt", policy)

			assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
			assert.Equal(t, Resolution{}, got)
		})
	}

	t.Run("while_renaming", func(t *testing.T) {
		calls := 0
		r := NewResolver(func(p string) (bool, error) {
			calls++
			if calls > 1 {
				return false, denied
			}
			return true, nil
		}, 0)

		_, err := r.Resolve("/d", "a.txt", config.PolicyRename)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
		assert.Equal(t, 2, calls)
	})
}

func TestResolveUnknownPolicy(t *testing.T) {
	r := NewResolver(existing("/d/a.txt"), 0)
	_, err := r.Resolve("/d", "a.txt", "merge")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSplitName(t *testing.T) {
	tests := []struct{ name, stem, ext string }{
		{"doc.txt", "doc", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".bashrc", ".bashrc", ""},
		{"README", "README", ""},
		{"odd.", "odd.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitName(tt.name)
			assert.Equal(t, tt.stem, stem)
			assert.Equal(t, tt.ext, ext)
		})
	}
}
