package types

// FileTask is the ephemeral record for a single file travelling through
// classification, conflict resolution and the move. It is discarded once the
// OperationResult has been produced.
type FileTask struct {
	// Source is the absolute path of the file in the watch directory
	Source string

	// Extension is the normalized (lowercase, leading dot) extension, or ""
	Extension string

	// Category is the matched rule name, empty when none matched
	Category string

	// DestinationDir is the candidate folder, including any date subfolder
	DestinationDir string

	// FinalPath is the path after conflict resolution
	FinalPath string
}
