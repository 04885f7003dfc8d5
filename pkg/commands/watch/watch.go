package watch

import (
	"context"

	"github.com/arthur-debert/tidyup/pkg/commands/organize"
	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/filesystem"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/organizer"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/arthur-debert/tidyup/pkg/watcher"
)

// WatchOptions holds options for the watch command
type WatchOptions struct {
	Config *config.Config

	// Dirs replaces the configured watch directories when not empty
	Dirs []string

	// FileSystem defaults to the real filesystem
	FileSystem types.FS

	// LockPath is the single-instance lock, empty to disable
	LockPath string

	OrganizeFirst bool
	OnResult      organizer.ResultFunc
}

// Watch runs the watcher until ctx is canceled or no directory remains, and
// returns the session summary
func Watch(ctx context.Context, opts WatchOptions) (*types.RunSummary, error) {
	logger := logging.GetLogger("commands.watch")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration")
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	rs, err := rules.Compile(opts.Config)
	if err != nil {
		return nil, err
	}
	dirs, err := organize.NormalizeDirs(opts.Dirs)
	if err != nil {
		return nil, err
	}

	w := watcher.New(opts.Config, rs, fsys, watcher.Options{
		Dirs:          dirs,
		LockPath:      opts.LockPath,
		OrganizeFirst: opts.OrganizeFirst,
		OnResult:      opts.OnResult,
	})

	logger.Debug().Str("lock", opts.LockPath).Msg("Starting watcher")
	if err := w.Run(ctx); err != nil {
		return nil, err
	}

	summary := w.Summary()
	return &summary, nil
}
