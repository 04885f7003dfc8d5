package testutil

import (
	"io"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/tidyup/pkg/types"
)

// Operation names accepted by FaultyFS.FailOn
const (
	OpStat     = "stat"
	OpLstat    = "lstat"
	OpOpen     = "open"
	OpCreate   = "create"
	OpChtimes  = "chtimes"
	OpMkdirAll = "mkdirall"
	OpReadDir  = "readdir"
	OpRename   = "rename"
	OpRemove   = "remove"
)

var _ types.FS = (*FaultyFS)(nil)

// FaultyFS wraps a types.FS and fails selected operations. Paths given to
// FailOn may be glob patterns; "*" matches any path. Rename faults are keyed
// by the source path.
type FaultyFS struct {
	inner types.FS

	mu     sync.Mutex
	faults map[string][]fault
	calls  map[string]int
}

type fault struct {
	pattern string
	err     error
	times   int // remaining; < 0 means forever
}

// NewFaultyFS wraps inner
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{
		inner:  inner,
		faults: make(map[string][]fault),
		calls:  make(map[string]int),
	}
}

// FailOn makes op fail with err for paths matching pattern
func (f *FaultyFS) FailOn(op, pattern string, err error) {
	f.FailTimes(op, pattern, err, -1)
}

// FailTimes makes op fail with err for the next n matching calls
func (f *FaultyFS) FailTimes(op, pattern string, err error, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = append(f.faults[op], fault{pattern: pattern, err: err, times: n})
}

// Calls returns how many times op was invoked
func (f *FaultyFS) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyFS) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++
	for i, ft := range f.faults[op] {
		if ft.times == 0 {
			continue
		}
		if ft.pattern != "*" && ft.pattern != path {
			if ok, _ := filepath.Match(ft.pattern, path); !ok {
				continue
			}
		}
		if ft.times > 0 {
			f.faults[op][i].times--
		}
		return ft.err
	}
	return nil
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.inner.Stat(name)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check(OpLstat, name); err != nil {
		return nil, err
	}
	return f.inner.Lstat(name)
}

func (f *FaultyFS) Open(name string) (io.ReadCloser, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.inner.Open(name)
}

func (f *FaultyFS) Create(name string, perm fs.FileMode) (io.WriteCloser, error) {
	if err := f.check(OpCreate, name); err != nil {
		return nil, err
	}
	return f.inner.Create(name, perm)
}

func (f *FaultyFS) Chtimes(name string, atime, mtime time.Time) error {
	if err := f.check(OpChtimes, name); err != nil {
		return err
	}
	return f.inner.Chtimes(name, atime, mtime)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.inner.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.inner.ReadDir(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, oldpath); err != nil {
		return err
	}
	return f.inner.Rename(oldpath, newpath)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.inner.Remove(name)
}
