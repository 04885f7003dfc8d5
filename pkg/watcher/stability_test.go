package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackedObserve(t *testing.T) {
	start := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	a := snapshot{size: 10, mtime: start}
	b := snapshot{size: 20, mtime: start.Add(time.Second)}

	t.Run("stable_after_required_polls", func(t *testing.T) {
		tr := newTracked(a, start)

		assert.Equal(t, verdictWait, tr.observe(a, start.Add(1*time.Second), 2, time.Minute))
		assert.Equal(t, verdictStable, tr.observe(a, start.Add(2*time.Second), 2, time.Minute))
	})

	t.Run("change_resets_count", func(t *testing.T) {
		tr := newTracked(a, start)

		assert.Equal(t, verdictWait, tr.observe(a, start.Add(1*time.Second), 2, time.Minute))
		assert.Equal(t, verdictWait, tr.observe(b, start.Add(2*time.Second), 2, time.Minute))
		assert.Equal(t, verdictWait, tr.observe(b, start.Add(3*time.Second), 2, time.Minute))
		assert.Equal(t, verdictStable, tr.observe(b, start.Add(4*time.Second), 2, time.Minute))
	})

	t.Run("mtime_alone_counts_as_change", func(t *testing.T) {
		tr := newTracked(a, start)
		touched := snapshot{size: a.size, mtime: a.mtime.Add(time.Millisecond)}

		assert.Equal(t, verdictWait, tr.observe(touched, start.Add(time.Second), 1, time.Minute))
		assert.Equal(t, verdictStable, tr.observe(touched, start.Add(2*time.Second), 1, time.Minute))
	})

	t.Run("timeout_while_changing", func(t *testing.T) {
		tr := newTracked(a, start)

		assert.Equal(t, verdictWait, tr.observe(b, start.Add(30*time.Second), 2, time.Minute))
		assert.Equal(t, verdictIncomplete, tr.observe(a, start.Add(61*time.Second), 2, time.Minute))
	})

	t.Run("stable_wins_at_deadline", func(t *testing.T) {
		tr := newTracked(a, start)

		assert.Equal(t, verdictStable, tr.observe(a, start.Add(2*time.Minute), 1, time.Minute))
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "watching", StateWatching.String())
	assert.Equal(t, "processing", StateProcessing.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
