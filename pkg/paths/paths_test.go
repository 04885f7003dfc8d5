package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvOverrides(t *testing.T) {
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(EnvConfigDir, configDir)
	t.Setenv(EnvStateDir, stateDir)
	t.Setenv(EnvConfigFile, "")

	p := New()

	assert.Equal(t, configDir, p.ConfigDir())
	assert.Equal(t, stateDir, p.StateDir())
	assert.Equal(t, filepath.Join(configDir, ConfigFileName), p.ConfigFile())
	assert.Equal(t, filepath.Join(stateDir, LogFileName), p.LogFilePath())
	assert.Equal(t, filepath.Join(stateDir, LockFileName), p.LockFilePath())
}

func TestConfigFile_ExplicitEnv(t *testing.T) {
	explicit := filepath.Join(t.TempDir(), "rules.yaml")
	t.Setenv(EnvConfigFile, explicit)

	assert.Equal(t, explicit, New().ConfigFile())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bare tilde", "~", home},
		{"tilde slash", "~/Downloads", filepath.Join(home, "Downloads")},
		{"other user untouched", "~bob/x", "~bob/x"},
		{"absolute untouched", "/srv/in", "/srv/in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Setenv("TIDYUP_TEST_BASE", "/data")

	got, err := Normalize("$TIDYUP_TEST_BASE/in/../Pictures/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/data/Pictures"), got)

	got, err = Normalize("   ")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = Normalize("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/a/b", "/a/b"))
	assert.True(t, IsWithin("/a/b", "/a/b/c/d"))
	assert.False(t, IsWithin("/a/b", "/a/bc"))
	assert.False(t, IsWithin("/a/b", "/a"))
	assert.True(t, IsWithin("/a/b", "/a/b/..c"))
}
