package rules

import "time"

// ExtrasCategory is the category of unmatched files routed to extras_folder
const ExtrasCategory = "Extras"

// Rule maps a set of extensions to a target folder
type Rule struct {
	Category     string   // Name of the rule
	Extensions   []string // Lowercase, leading dot, de-duplicated
	TargetFolder string   // Absolute, cleaned
}

// FileMeta is everything Classify needs to know about a file
type FileMeta struct {
	Path    string    // Absolute path of the file
	Name    string    // Base name; derived from Path when empty
	ModTime time.Time // Timestamp used for date folders
}

// Verdict is the outcome of classifying a file
type Verdict int

const (
	Unmatched Verdict = iota
	Matched
	Ignored
)

func (v Verdict) String() string {
	switch v {
	case Matched:
		return "matched"
	case Ignored:
		return "ignored"
	default:
		return "unmatched"
	}
}

// Classification is the result of Classify
type Classification struct {
	Verdict   Verdict
	Extension string // Normalized extension, empty when the name has none
	Category  string // Set when Matched
	TargetDir string // Destination folder when Matched, including any date subfolder
	Reason    string // Human-readable explanation for Ignored and Unmatched
}
