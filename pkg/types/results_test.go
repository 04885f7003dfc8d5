package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSummary_Add(t *testing.T) {
	s := NewRunSummary("run-1", false)

	s.Add(OperationResult{Status: StatusMoved, Category: "Images"})
	s.Add(OperationResult{Status: StatusMoved, Category: "Images"})
	s.Add(OperationResult{Status: StatusSimulated, Category: "Documents"})
	s.Add(OperationResult{Status: StatusSkipped, Category: "Documents"})
	s.Add(OperationResult{Status: StatusIgnored})
	s.Add(OperationResult{Status: StatusUnmatched})
	s.Add(OperationResult{Status: StatusError, Category: "Images"})

	assert.Equal(t, 2, s.Moved)
	assert.Equal(t, 1, s.Simulated)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Ignored)
	assert.Equal(t, 1, s.Unmatched)
	assert.Equal(t, 1, s.Errored)
	assert.Equal(t, 7, s.Total())
	assert.Equal(t, 3, s.Relocated())

	// Only relocations count towards categories
	assert.Equal(t, map[string]int{"Images": 2, "Documents": 1}, s.ByCategory)
	assert.Equal(t, []string{"Documents", "Images"}, s.Categories())
}

func TestRunSummary_Duration(t *testing.T) {
	s := NewRunSummary("run-2", true)
	assert.True(t, s.DryRun)
	assert.True(t, s.Finished.IsZero())

	s.Finish()
	assert.False(t, s.Finished.IsZero())
	assert.GreaterOrEqual(t, s.Duration().Nanoseconds(), int64(0))
}

func TestStatus_Relocated(t *testing.T) {
	assert.True(t, StatusMoved.Relocated())
	assert.True(t, StatusSimulated.Relocated())
	assert.False(t, StatusSkipped.Relocated())
	assert.False(t, StatusError.Relocated())
}
