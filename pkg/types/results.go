package types

import (
	"sort"
	"time"
)

// OperationResult holds the outcome of one file operation. Every file that
// reaches the pipeline yields exactly one of these.
type OperationResult struct {
	Status      Status `json:"status"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Category    string `json:"category,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Err         error  `json:"-"`
}

// RunSummary aggregates the results of a batch run or a watch session.
type RunSummary struct {
	RunID      string         `json:"runId"`
	DryRun     bool           `json:"dryRun"`
	Started    time.Time      `json:"started"`
	Finished   time.Time      `json:"finished"`
	Moved      int            `json:"moved"`
	Simulated  int            `json:"simulated"`
	Skipped    int            `json:"skipped"`
	Ignored    int            `json:"ignored"`
	Unmatched  int            `json:"unmatched"`
	Errored    int            `json:"errored"`
	ByCategory map[string]int `json:"byCategory"`
}

// NewRunSummary creates an empty summary stamped with the start time.
func NewRunSummary(runID string, dryRun bool) *RunSummary {
	return &RunSummary{
		RunID:      runID,
		DryRun:     dryRun,
		Started:    time.Now(),
		ByCategory: make(map[string]int),
	}
}

// Add folds a single result into the counters.
func (s *RunSummary) Add(r OperationResult) {
	switch r.Status {
	case StatusMoved:
		s.Moved++
	case StatusSimulated:
		s.Simulated++
	case StatusSkipped:
		s.Skipped++
	case StatusIgnored:
		s.Ignored++
	case StatusUnmatched:
		s.Unmatched++
	case StatusError:
		s.Errored++
	}
	if r.Status.Relocated() && r.Category != "" {
		if s.ByCategory == nil {
			s.ByCategory = make(map[string]int)
		}
		s.ByCategory[r.Category]++
	}
}

// Total returns the number of files that reached the pipeline.
func (s *RunSummary) Total() int {
	return s.Moved + s.Simulated + s.Skipped + s.Ignored + s.Unmatched + s.Errored
}

// Relocated returns moved plus simulated, the count a dry run predicts.
func (s *RunSummary) Relocated() int {
	return s.Moved + s.Simulated
}

// Categories returns the category names with at least one move, sorted.
func (s *RunSummary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Finish stamps the end time.
func (s *RunSummary) Finish() {
	s.Finished = time.Now()
}

// Duration returns how long the run took, or the time elapsed so far.
func (s *RunSummary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// GenConfigResult holds the generated configuration and where it went.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}
