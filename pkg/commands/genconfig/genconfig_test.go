package genconfig

import (
	"testing"

	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfig(t *testing.T) {
	t.Run("output to stdout", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()

		result, err := GenConfig(GenConfigOptions{Path: "/cfg/config.toml", FileSystem: fsys})

		require.NoError(t, err)
		assert.Contains(t, result.ConfigContent, "[[rules]]")
		assert.Contains(t, result.ConfigContent, "# tidyup configuration")
		assert.Empty(t, result.FilesWritten)
		assert.False(t, testutil.Exists(fsys, "/cfg/config.toml"))
	})

	t.Run("write toml", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()

		result, err := GenConfig(GenConfigOptions{Path: "/cfg/config.toml", Write: true, FileSystem: fsys})

		require.NoError(t, err)
		assert.Equal(t, []string{"/cfg/config.toml"}, result.FilesWritten)
		assert.Equal(t, result.ConfigContent, testutil.ReadFile(t, fsys, "/cfg/config.toml"))
	})

	t.Run("format from extension", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()

		result, err := GenConfig(GenConfigOptions{Path: "/cfg/config.yaml", Write: true, FileSystem: fsys})

		require.NoError(t, err)
		assert.Contains(t, result.ConfigContent, "watch_directories:")
		assert.Contains(t, testutil.ReadFile(t, fsys, "/cfg/config.yaml"), "duplicate_handling: rename")
	})

	t.Run("existing file needs force", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()
		testutil.WriteFile(t, fsys, "/cfg/config.toml", "old")

		_, err := GenConfig(GenConfigOptions{Path: "/cfg/config.toml", Write: true, FileSystem: fsys})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.Equal(t, "old", testutil.ReadFile(t, fsys, "/cfg/config.toml"))

		result, err := GenConfig(GenConfigOptions{Path: "/cfg/config.toml", Write: true, Force: true, FileSystem: fsys})
		require.NoError(t, err)
		assert.Len(t, result.FilesWritten, 1)
		assert.Contains(t, testutil.ReadFile(t, fsys, "/cfg/config.toml"), "[[rules]]")
	})

	t.Run("default path", func(t *testing.T) {
		t.Setenv("TIDYUP_CONFIG", "")
		t.Setenv("TIDYUP_CONFIG_DIR", "/xdg/tidyup")
		fsys := testutil.NewMemoryFS()

		result, err := GenConfig(GenConfigOptions{Write: true, FileSystem: fsys})
		require.NoError(t, err)
		assert.Equal(t, []string{"/xdg/tidyup/config.toml"}, result.FilesWritten)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := GenConfig(GenConfigOptions{Path: "/cfg/x", Format: "ini", FileSystem: testutil.NewMemoryFS()})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
