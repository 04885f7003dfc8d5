package organizer

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ResultFunc observes every result as it is produced
type ResultFunc func(types.OperationResult)

// Organizer runs one batch pass over the watch directories
type Organizer struct {
	cfg      *config.Config
	fs       types.FS
	pipeline *Pipeline
	onResult ResultFunc
	logger   zerolog.Logger
}

// Option configures an Organizer
type Option func(*Organizer)

// WithResultFunc registers an observer called after each file
func WithResultFunc(fn ResultFunc) Option {
	return func(o *Organizer) { o.onResult = fn }
}

// WithPipeline shares an existing pipeline, so a watcher session keeps a
// single run ID and claimed set across its initial pass and later events
func WithPipeline(p *Pipeline) Option {
	return func(o *Organizer) { o.pipeline = p }
}

// New creates an Organizer
func New(cfg *config.Config, rs *rules.RuleSet, fsys types.FS, opts ...Option) *Organizer {
	o := &Organizer{
		cfg:    cfg,
		fs:     fsys,
		logger: logging.GetLogger("organizer"),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.pipeline == nil {
		o.pipeline = NewPipeline(rs, cfg.Settings, fsys, uuid.NewString())
	}
	return o
}

// Pipeline returns the pipeline files are pushed through
func (o *Organizer) Pipeline() *Pipeline { return o.pipeline }

// Organize processes the top-level files of dirs, or of the configured
// watch directories when dirs is empty. Every directory is checked before
// any file moves; a missing one is fatal. Cancellation stops the batch
// between files and returns the partial summary with an ErrCanceled error.
func (o *Organizer) Organize(ctx context.Context, dirs []string) (*types.RunSummary, error) {
	if len(dirs) == 0 {
		dirs = o.cfg.WatchDirectories
	}
	done := logging.LogOperationStart(o.logger, "organize")
	defer done()

	// 1. Validate every directory up front
	if err := ValidateDirectories(o.fs, dirs); err != nil {
		return nil, err
	}

	summary := types.NewRunSummary(o.pipeline.RunID(), o.pipeline.DryRun())
	o.logger.Info().
		Str("run_id", summary.RunID).
		Strs("directories", dirs).
		Bool("dryRun", summary.DryRun).
		Msg("Starting batch run")

	// 2. Process top-level files in order
	var runErr error
scan:
	for _, dir := range dirs {
		entries, err := o.fs.ReadDir(dir)
		if err != nil {
			o.logger.Error().Err(err).Str("directory", dir).Msg("Cannot list watch directory")
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				runErr = errors.Wrap(err, errors.ErrCanceled, "batch run canceled")
				break scan
			}
			if entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
				o.logger.Debug().Str("path", entry.Name()).Msg("Skipping non-regular entry")
				continue
			}

			result := o.pipeline.Process(ctx, filepath.Join(dir, entry.Name()))
			summary.Add(result)
			if o.onResult != nil {
				o.onResult(result)
			}
		}
	}

	// 3. Summary record
	summary.Finish()
	LogSummary(o.logger, summary)

	return summary, runErr
}

// ValidateDirectories fails with WATCH_DIR_MISSING unless every path is an
// existing directory
func ValidateDirectories(fsys types.FS, dirs []string) error {
	if len(dirs) == 0 {
		return errors.New(errors.ErrWatchDirMissing, "no watch directories configured")
	}
	for _, dir := range dirs {
		info, err := fsys.Stat(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrWatchDirMissing, "watch directory %s is not accessible", dir).
				WithDetail("directory", dir)
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrWatchDirMissing, "watch directory %s is not a directory", dir).
				WithDetail("directory", dir)
		}
	}
	return nil
}

// LogSummary writes the end-of-run record
func LogSummary(logger zerolog.Logger, s *types.RunSummary) {
	byCategory := zerolog.Dict()
	for _, name := range s.Categories() {
		byCategory.Int(name, s.ByCategory[name])
	}

	logger.Info().
		Str("run_id", s.RunID).
		Bool("dryRun", s.DryRun).
		Int("moved", s.Moved).
		Int("simulated", s.Simulated).
		Int("skipped", s.Skipped).
		Int("ignored", s.Ignored).
		Int("unmatched", s.Unmatched).
		Int("errors", s.Errored).
		Dict("byCategory", byCategory).
		Dur("duration", s.Duration()).
		Msg("Run complete")
}
