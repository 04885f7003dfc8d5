package watcher

import (
	"io/fs"
	"time"
)

// snapshot is what a stability poll compares
type snapshot struct {
	size  int64
	mtime time.Time
}

func snapshotOf(info fs.FileInfo) snapshot {
	return snapshot{size: info.Size(), mtime: info.ModTime()}
}

type verdict int

const (
	verdictWait verdict = iota
	verdictStable
	verdictIncomplete
)

// tracked is a file waiting to become stable
type tracked struct {
	first  time.Time
	last   snapshot
	stable int
}

func newTracked(snap snapshot, now time.Time) *tracked {
	return &tracked{first: now, last: snap}
}

// observe records one poll. The file is stable once required consecutive
// polls saw the same snapshot; it is incomplete when timeout has passed
// since tracking began without reaching that.
func (t *tracked) observe(snap snapshot, now time.Time, required int, timeout time.Duration) verdict {
	if snap.size == t.last.size && snap.mtime.Equal(t.last.mtime) {
		t.stable++
	} else {
		t.stable = 0
		t.last = snap
	}

	if t.stable >= required {
		return verdictStable
	}
	if now.Sub(t.first) >= timeout {
		return verdictIncomplete
	}
	return verdictWait
}
