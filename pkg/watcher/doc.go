// Package watcher organizes files as they appear in the watch directories.
//
// A single control loop owns all mutable state. It reads three channels:
// fsnotify events, fsnotify errors, and stability re-checks. Re-checks are
// scheduled with time.AfterFunc; the timer goroutines only hand a path back
// to the loop and never touch the pending table themselves.
//
// A new file is moved once its size and modification time have stayed the
// same for the configured number of consecutive polls. A file that is still
// changing when the stability timeout expires is reported as incomplete and
// dropped; the next event for the same path starts tracking it again.
//
// Lifecycle:
//
//	Idle -> [initial pass] -> Watching <-> Processing -> Stopped
//
// The watcher stops cleanly when its context is canceled or when every watch
// directory has been removed.
package watcher
