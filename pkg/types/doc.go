// Package types defines the core types and interfaces used throughout tidyup.
// This includes the FS interface the engine talks to, the per-file FileTask
// and OperationResult records, and the RunSummary aggregate.
package types
