package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(in, out string) *config.Config {
	cfg := config.Default()
	cfg.WatchDirectories = []string{in}
	cfg.Rules = []config.RuleSpec{
		{Name: "Documents", Extensions: []string{".txt"}, TargetFolder: out},
	}
	cfg.Settings.ExtrasFolder = ""
	cfg.Settings.OrganizeByDate = false
	cfg.Settings.DryRun = false
	cfg.Watcher.PollInterval = 20 * time.Millisecond
	return cfg
}

func TestWatch(t *testing.T) {
	t.Run("organize_first_then_cancel", func(t *testing.T) {
		base := t.TempDir()
		in := filepath.Join(base, "in")
		out := filepath.Join(base, "out")
		require.NoError(t, os.MkdirAll(in, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(in, "a.txt"), []byte("a"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		var seen []types.OperationResult
		summary, err := Watch(ctx, WatchOptions{
			Config:        testConfig(in, out),
			LockPath:      filepath.Join(base, "state", "watch.lock"),
			OrganizeFirst: true,
			OnResult: func(r types.OperationResult) {
				seen = append(seen, r)
				cancel()
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Moved)
		assert.Len(t, seen, 1)
		assert.FileExists(t, filepath.Join(out, "a.txt"))
	})

	t.Run("missing_directory", func(t *testing.T) {
		base := t.TempDir()
		_, err := Watch(context.Background(), WatchOptions{
			Config: testConfig(filepath.Join(base, "nope"), base),
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrWatchDirMissing))
	})
}
