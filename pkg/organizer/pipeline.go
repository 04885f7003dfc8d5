package organizer

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/conflict"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/mover"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/rs/zerolog"
)

// Pipeline pushes single files through Classifier -> Resolver -> Mover.
// It is not safe for concurrent use.
type Pipeline struct {
	rules    *rules.RuleSet
	settings config.Settings
	fs       types.FS
	resolver *conflict.Resolver
	mover    *mover.Mover
	runID    string
	logger   zerolog.Logger

	// dry run only: nothing lands on disk, so the pipeline remembers what
	// it handed out
	claimed   map[string]bool   // destinations
	simulated map[string]string // source -> destination
}

// NewPipeline creates a pipeline for one run
func NewPipeline(rs *rules.RuleSet, settings config.Settings, fsys types.FS, runID string) *Pipeline {
	p := &Pipeline{
		rules:     rs,
		settings:  settings,
		fs:        fsys,
		mover:     mover.New(fsys),
		runID:     runID,
		logger:    logging.GetLogger("organizer.pipeline").With().Str("run_id", runID).Logger(),
		claimed:   make(map[string]bool),
		simulated: make(map[string]string),
	}
	p.resolver = conflict.NewResolver(p.occupied, settings.MaxRenameAttempts)
	return p
}

// RunID identifies the run in every log record
func (p *Pipeline) RunID() string { return p.runID }

// DryRun reports whether the pipeline only simulates moves
func (p *Pipeline) DryRun() bool { return p.settings.DryRun }

// Simulated reports whether a dry run already previewed the move of source
func (p *Pipeline) Simulated(source string) bool {
	_, ok := p.simulated[source]
	return ok
}

// Forget drops the dry-run preview of source, for a source that went away
func (p *Pipeline) Forget(source string) {
	if dest, ok := p.simulated[source]; ok {
		delete(p.claimed, dest)
		delete(p.simulated, source)
	}
}

// Process handles one file and returns exactly one result for it
func (p *Pipeline) Process(ctx context.Context, path string) types.OperationResult {
	result := p.process(ctx, path)
	p.logResult(result)
	return result
}

func (p *Pipeline) process(ctx context.Context, path string) types.OperationResult {
	result := types.OperationResult{Source: path}

	if err := ctx.Err(); err != nil {
		result.Status = types.StatusSkipped
		result.Reason = "canceled"
		result.Err = errors.Wrap(err, errors.ErrCanceled, "run canceled")
		return result
	}

	// 1. Look at the file
	info, err := p.fs.Lstat(path)
	if err != nil {
		code := errors.ErrFileAccess
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrFileVanished
		}
		result.Err = errors.Wrapf(err, code, "cannot read %s", path)
		result.Status = types.StatusError
		result.Reason = mover.Reason(result.Err)
		return result
	}
	if !info.Mode().IsRegular() {
		result.Status = types.StatusSkipped
		result.Reason = "not a regular file"
		return result
	}

	// 2. Classify
	name := filepath.Base(path)
	meta := rules.FileMeta{Path: path, Name: name, ModTime: p.timestamp(path, info)}
	c := p.rules.Classify(meta)

	switch c.Verdict {
	case rules.Ignored:
		result.Status = types.StatusIgnored
		result.Reason = c.Reason
		return result
	case rules.Unmatched:
		result.Status = types.StatusUnmatched
		result.Reason = c.Reason
		return result
	}

	result.Category = c.Category
	task := types.FileTask{
		Source:         path,
		Extension:      c.Extension,
		Category:       c.Category,
		DestinationDir: c.TargetDir,
	}

	if filepath.Join(c.TargetDir, name) == filepath.Clean(path) {
		result.Status = types.StatusSkipped
		result.Destination = path
		result.Reason = "already in place"
		return result
	}

	if dest, ok := p.simulated[path]; ok {
		result.Status = types.StatusSkipped
		result.Destination = dest
		result.Reason = "already simulated"
		return result
	}

	// 3. Resolve conflicts
	res, err := p.resolver.Resolve(c.TargetDir, name, p.settings.DuplicateHandling)
	if err != nil {
		result.Status = types.StatusError
		result.Err = err
		result.Reason = mover.Reason(err)
		return result
	}
	if res.Skip {
		result.Status = types.StatusSkipped
		result.Destination = filepath.Join(c.TargetDir, name)
		result.Reason = "destination exists"
		return result
	}
	task.FinalPath = res.Path

	// 4. Move
	result = p.mover.Move(task, res.Replace, p.settings.DryRun)
	if result.Status == types.StatusSimulated {
		p.claimed[task.FinalPath] = true
		p.simulated[path] = task.FinalPath
	}
	return result
}

// Classify reports where path would go without touching it
func (p *Pipeline) Classify(path string) (rules.Classification, error) {
	info, err := p.fs.Lstat(path)
	if err != nil {
		code := errors.ErrFileAccess
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrFileVanished
		}
		return rules.Classification{}, errors.Wrapf(err, code, "cannot read %s", path)
	}
	if !info.Mode().IsRegular() {
		return rules.Classification{}, errors.Newf(errors.ErrInvalidInput, "%s is not a regular file", path)
	}
	return p.rules.Classify(rules.FileMeta{
		Path:    path,
		Name:    filepath.Base(path),
		ModTime: p.timestamp(path, info),
	}), nil
}

// occupied reports whether path is taken on disk or, in a dry run, by an
// earlier preview
func (p *Pipeline) occupied(path string) (bool, error) {
	if p.settings.DryRun && p.claimed[path] {
		return true, nil
	}
	_, err := p.fs.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path).WithDetail("path", path)
}

// timestamp picks the time used for date folders
func (p *Pipeline) timestamp(path string, info fs.FileInfo) time.Time {
	mtime := info.ModTime()
	if !p.settings.OrganizeByDate || p.settings.DateSource != config.DateFromExif {
		return mtime
	}
	if !rules.HasExif(rules.Extension(filepath.Base(path))) {
		return mtime
	}

	f, err := p.fs.Open(path)
	if err != nil {
		return mtime
	}
	defer func() { _ = f.Close() }()

	taken, err := rules.CaptureTime(f)
	if err != nil {
		p.logger.Debug().Str("source", path).Msg("No EXIF capture time, using modification time")
		return mtime
	}
	return taken
}

func (p *Pipeline) logResult(r types.OperationResult) {
	var event *zerolog.Event
	switch r.Status {
	case types.StatusError:
		event = p.logger.Error().Err(r.Err)
	case types.StatusIgnored, types.StatusUnmatched:
		event = p.logger.Debug()
	default:
		event = p.logger.Info()
	}

	event.
		Str("status", string(r.Status)).
		Str("source", r.Source).
		Str("destination", r.Destination).
		Str("category", r.Category).
		Str("reason", r.Reason).
		Msg("File processed")
}
