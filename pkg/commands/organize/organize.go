package organize

import (
	"context"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/filesystem"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/organizer"
	"github.com/arthur-debert/tidyup/pkg/paths"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
)

// OrganizeOptions holds options for the organize command
type OrganizeOptions struct {
	Config *config.Config

	// Dirs replaces the configured watch directories when not empty
	Dirs []string

	// FileSystem defaults to the real filesystem
	FileSystem types.FS

	OnResult organizer.ResultFunc
}

// Organize compiles the rules and runs one batch pass
func Organize(ctx context.Context, opts OrganizeOptions) (*types.RunSummary, error) {
	logger := logging.GetLogger("commands.organize")

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

	dirs, err := NormalizeDirs(opts.Dirs)
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("dirs", dirs).Int("rules", len(rs.Rules())).Msg("Starting organize")

	org := organizer.New(opts.Config, rs, fsys, organizer.WithResultFunc(opts.OnResult))
	return org.Organize(ctx, dirs)
}

// NormalizeDirs makes command-line directories absolute
func NormalizeDirs(dirs []string) ([]string, error) {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := paths.Normalize(dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid directory %q", dir)
		}
		if abs != "" {
			out = append(out, abs)
		}
	}
	return out, nil
}
