package classify

import (
	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/filesystem"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/organizer"
	"github.com/arthur-debert/tidyup/pkg/paths"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
)

// ClassifyOptions holds options for the classify command
type ClassifyOptions struct {
	Config     *config.Config
	Files      []string
	FileSystem types.FS
}

// Entry is the classification of one file, or why it could not be read
type Entry struct {
	Path           string
	Classification rules.Classification
	Err            error
}

// Result holds one entry per requested file, in order
type Result struct {
	Entries []Entry
}

// Classify reports where each file would go. Nothing is moved and no
// directory is created.
func Classify(opts ClassifyOptions) (*Result, error) {
	logger := logging.GetLogger("commands.classify")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration")
	}
	if len(opts.Files) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no files given")
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	rs, err := rules.Compile(opts.Config)
	if err != nil {
		return nil, err
	}
	p := organizer.NewPipeline(rs, opts.Config.Settings, fsys, "classify")

	result := &Result{Entries: make([]Entry, 0, len(opts.Files))}
	for _, file := range opts.Files {
		path, err := paths.Normalize(file)
		if err != nil || path == "" {
			result.Entries = append(result.Entries, Entry{
				Path: file,
				Err:  errors.Newf(errors.ErrInvalidInput, "invalid path %q", file),
			})
			continue
		}

		c, err := p.Classify(path)
		if err != nil {
			logger.Debug().Err(err).Str("source", path).Msg("Cannot classify")
		}
		result.Entries = append(result.Entries, Entry{Path: path, Classification: c, Err: err})
	}
	return result, nil
}
