// Package testutil provides utilities for testing tidyup components.
//
// Key components:
//   - MemoryFS helpers: create and inspect files on an in-memory types.FS
//   - FaultyFS: wraps any types.FS and injects errors per operation and path
//
// Usage guidelines:
//   - Prefer the in-memory filesystem; use t.TempDir() only where real
//     filesystem events are needed (the watcher)
//   - All test data should be defined inline, not in external files
package testutil
