package types

// Status is the outcome of pushing one file through the pipeline.
type Status string

const (
	// StatusMoved indicates the file was relocated
	StatusMoved Status = "moved"

	// StatusSimulated indicates a dry-run move that would have happened
	StatusSimulated Status = "simulated"

	// StatusSkipped indicates the file was left untouched on purpose
	// (duplicate policy skip, already in place)
	StatusSkipped Status = "skipped"

	// StatusIgnored indicates the file matched an ignore list
	StatusIgnored Status = "ignored"

	// StatusUnmatched indicates no rule claimed the file's extension
	StatusUnmatched Status = "unmatched"

	// StatusError indicates the move failed; the run continues
	StatusError Status = "error"
)

// Relocated reports whether the status counts as a move, real or simulated.
func (s Status) Relocated() bool {
	return s == StatusMoved || s == StatusSimulated
}
