// Package mover performs the single filesystem mutation of a run: moving a
// file to its resolved destination.
//
// Move never panics and never returns a Go error; every outcome, including
// failures, is an OperationResult. Failures carry a coded error in Err and a
// human-readable Reason.
//
// # Cross-device moves
//
// When the destination lives on another filesystem, rename fails with
// EXDEV. The mover then copies the file to a hidden temporary sibling of the
// destination, carries over the modification time, renames the copy into
// place and only then removes the source. A failure at any step removes the
// temporary copy and leaves the source untouched.
package mover
