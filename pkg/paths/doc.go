// Package paths provides centralized path handling for tidyup.
//
// This package implements the XDG Base Directory specification for the
// handful of locations tidyup owns and provides path helpers shared by the
// configuration loader and the engine.
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - TIDYUP_CONFIG: Explicit configuration file path
//   - TIDYUP_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/tidyup)
//   - TIDYUP_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/tidyup)
//
// # XDG Base Directory Structure
//
//   - Config: $XDG_CONFIG_HOME/tidyup/config.toml
//   - State: $XDG_STATE_HOME/tidyup (log file, watcher lock)
package paths
