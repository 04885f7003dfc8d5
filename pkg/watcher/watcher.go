package watcher

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/organizer"
	"github.com/arthur-debert/tidyup/pkg/paths"
	"github.com/arthur-debert/tidyup/pkg/rules"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options tunes a Watcher beyond what the configuration holds
type Options struct {
	// Dirs overrides cfg.WatchDirectories
	Dirs []string

	// LockPath is the single-instance lock file; empty disables locking
	LockPath string

	// OrganizeFirst forces an initial batch pass even when the
	// configuration does not ask for one
	OrganizeFirst bool

	// OnResult observes every result as it is produced
	OnResult organizer.ResultFunc
}

// Watcher moves files into place as they appear
type Watcher struct {
	cfg      *config.Config
	rules    *rules.RuleSet
	fs       types.FS
	opts     Options
	pipeline *organizer.Pipeline
	logger   zerolog.Logger

	state atomic.Int32

	mu      sync.Mutex
	summary *types.RunSummary

	// owned by the control loop
	active   map[string]bool
	feedback map[string]bool // watch directories that are also move targets
	placed   map[string]bool // files this session moved into a feedback directory
	pending  map[string]*tracked
	timers   map[string]*time.Timer
	recheck  chan string
	stopped  chan struct{}
}

// New creates a watcher. All files of a session share one pipeline, so they
// share a run ID and the set of claimed destinations.
func New(cfg *config.Config, rs *rules.RuleSet, fsys types.FS, opts Options) *Watcher {
	runID := uuid.NewString()
	w := &Watcher{
		cfg:      cfg,
		rules:    rs,
		fs:       fsys,
		opts:     opts,
		pipeline: organizer.NewPipeline(rs, cfg.Settings, fsys, runID),
		logger:   logging.GetLogger("watcher").With().Str("run_id", runID).Logger(),
		summary:  types.NewRunSummary(runID, cfg.Settings.DryRun),
		active:   make(map[string]bool),
		feedback: make(map[string]bool),
		placed:   make(map[string]bool),
		pending:  make(map[string]*tracked),
		timers:   make(map[string]*time.Timer),
		recheck:  make(chan string, 64),
		stopped:  make(chan struct{}),
	}
	w.state.Store(int32(StateIdle))
	return w
}

// State returns the current lifecycle state
func (w *Watcher) State() State {
	return State(w.state.Load())
}

// Summary returns a snapshot of the session counters
func (w *Watcher) Summary() types.RunSummary {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := *w.summary
	s.ByCategory = make(map[string]int, len(w.summary.ByCategory))
	for k, v := range w.summary.ByCategory {
		s.ByCategory[k] = v
	}
	return s
}

// Run watches until ctx is canceled or no watch directory remains. Startup
// problems (missing directory, lock held) are returned before anything is
// moved; a clean shutdown returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	if w.State() != StateIdle {
		return errors.New(errors.ErrInvalidInput, "watcher can only run once")
	}
	defer w.setState(StateStopped)

	dirs := w.opts.Dirs
	if len(dirs) == 0 {
		dirs = w.cfg.WatchDirectories
	}

	// 1. Preconditions
	if err := organizer.ValidateDirectories(w.fs, dirs); err != nil {
		return err
	}

	if w.opts.LockPath != "" && w.cfg.Watcher.Lock {
		lock, err := acquireLock(w.opts.LockPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				w.logger.Warn().Err(err).Msg("Failed to release watcher lock")
			}
		}()
	}

	// 2. Subscribe before the initial pass so nothing arriving meanwhile is missed
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot create filesystem watcher")
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return errors.Wrapf(err, errors.ErrWatchSource, "cannot watch %s", dir).WithDetail("directory", dir)
		}
		w.active[dir] = true
	}
	w.findFeedback()

	// 3. Optional initial pass
	if w.opts.OrganizeFirst || w.cfg.Watcher.OrganizeFirst {
		w.setState(StateProcessing)
		org := organizer.New(w.cfg, w.rules, w.fs,
			organizer.WithPipeline(w.pipeline),
			organizer.WithResultFunc(w.record))
		if _, err := org.Organize(ctx, dirs); err != nil && !errors.IsErrorCode(err, errors.ErrCanceled) {
			return err
		}
	}

	// 4. Control loop
	w.setState(StateWatching)
	w.logger.Info().
		Strs("directories", dirs).
		Dur("pollInterval", w.cfg.Watcher.PollInterval).
		Int("stableChecks", w.cfg.Watcher.StableChecks).
		Bool("dryRun", w.pipeline.DryRun()).
		Msg("Watching for new files")

	w.loop(ctx, fw)
	w.shutdown()
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Shutdown requested")
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.handleEvent(fw, event) {
				w.logger.Info().Msg("No watch directories left, stopping")
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("Filesystem watcher error")

		case path := <-w.recheck:
			if ctx.Err() != nil {
				return
			}
			w.check(ctx, path)
		}
	}
}

// findFeedback marks watch directories that lie inside a target folder.
// Files the session moves there raise events of their own, which must not
// be processed again.
func (w *Watcher) findFeedback() {
	for _, target := range w.rules.TargetFolders() {
		for dir := range w.active {
			if paths.IsWithin(target, dir) && !w.feedback[dir] {
				w.feedback[dir] = true
				w.logger.Warn().
					Str("directory", dir).
					Str("target", target).
					Msg("Watch directory is inside a target folder, files moved there are left alone")
			}
		}
	}
}

// handleEvent returns false once no watch directory remains
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)

	if w.active[path] && (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		w.dropDirectory(fw, path)
		return len(w.active) > 0
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(w.placed, path)
		w.pipeline.Forget(path)
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return true
	}
	if !w.active[filepath.Dir(path)] {
		return true
	}
	if _, tracking := w.pending[path]; tracking {
		return true
	}
	if w.placed[path] {
		w.logger.Debug().Str("source", path).Msg("Moved here by this session")
		return true
	}
	if w.pipeline.Simulated(path) {
		w.logger.Debug().Str("source", path).Msg("Already simulated")
		return true
	}

	if c := w.rules.Classify(rules.FileMeta{Path: path}); c.Verdict == rules.Ignored {
		w.logger.Debug().Str("source", path).Str("reason", c.Reason).Msg("Ignoring event")
		return true
	}

	info, err := w.fs.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return true
	}

	w.pending[path] = newTracked(snapshotOf(info), time.Now())
	w.schedule(path)
	w.logger.Debug().
		Str("source", path).
		Str("size", humanize.Bytes(uint64(info.Size()))).
		Msg("New file, waiting for it to settle")
	return true
}

// check runs one stability poll for path
func (w *Watcher) check(ctx context.Context, path string) {
	t, ok := w.pending[path]
	if !ok {
		return
	}
	delete(w.timers, path)

	info, err := w.fs.Lstat(path)
	if err != nil {
		delete(w.pending, path)
		if !stderrors.Is(err, fs.ErrNotExist) {
			w.logger.Warn().Err(err).Str("source", path).Msg("Cannot inspect pending file")
		}
		return
	}

	snap := snapshotOf(info)
	switch t.observe(snap, time.Now(), w.cfg.Watcher.StableChecks, w.cfg.Watcher.StabilityTimeout) {
	case verdictWait:
		w.schedule(path)

	case verdictIncomplete:
		delete(w.pending, path)
		w.logger.Warn().
			Str("source", path).
			Str("size", humanize.Bytes(uint64(snap.size))).
			Dur("waited", time.Since(t.first)).
			Msg("File still incomplete, will retry on its next change")

	case verdictStable:
		delete(w.pending, path)
		w.setState(StateProcessing)
		w.record(w.pipeline.Process(ctx, path))
		w.setState(StateWatching)
	}
}

func (w *Watcher) schedule(path string) {
	w.timers[path] = time.AfterFunc(w.cfg.Watcher.PollInterval, func() {
		select {
		case w.recheck <- path:
		case <-w.stopped:
		}
	})
}

// dropDirectory forgets a watch directory that disappeared
func (w *Watcher) dropDirectory(fw *fsnotify.Watcher, dir string) {
	delete(w.active, dir)
	_ = fw.Remove(dir)

	for path := range w.pending {
		if filepath.Dir(path) == dir {
			w.cancel(path)
		}
	}

	err := errors.Newf(errors.ErrWatchSource, "watch directory %s was removed", dir).WithDetail("directory", dir)
	w.logger.Error().Err(err).Int("remaining", len(w.active)).Msg("Watch directory lost")
}

func (w *Watcher) cancel(path string) {
	if timer, ok := w.timers[path]; ok {
		timer.Stop()
		delete(w.timers, path)
	}
	delete(w.pending, path)
}

func (w *Watcher) shutdown() {
	for path := range w.pending {
		w.cancel(path)
	}
	close(w.stopped)

	w.mu.Lock()
	w.summary.Finish()
	summary := *w.summary
	w.mu.Unlock()

	organizer.LogSummary(w.logger, &summary)
}

// record folds a result into the session summary
func (w *Watcher) record(r types.OperationResult) {
	if r.Status == types.StatusMoved && w.feedback[filepath.Dir(r.Destination)] {
		w.placed[r.Destination] = true
	}

	w.mu.Lock()
	w.summary.Add(r)
	w.mu.Unlock()

	if w.opts.OnResult != nil {
		w.opts.OnResult(r)
	}
}

func (w *Watcher) setState(s State) {
	w.state.Store(int32(s))
}
