// Package commands provides high-level command implementations for tidyup.
//
// This package is the orchestration layer between the CLI and the
// organizer packages. Each command lives in its own subdirectory:
//   - organize/   - one batch pass over the watch directories
//   - watch/      - the live watcher
//   - classify/   - report where files would go without moving them
//   - genconfig/  - produce or write the default configuration
//   - showconfig/ - serialize the effective configuration
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"context"

	"github.com/arthur-debert/tidyup/pkg/commands/classify"
	"github.com/arthur-debert/tidyup/pkg/commands/genconfig"
	"github.com/arthur-debert/tidyup/pkg/commands/organize"
	"github.com/arthur-debert/tidyup/pkg/commands/showconfig"
	"github.com/arthur-debert/tidyup/pkg/commands/watch"
	"github.com/arthur-debert/tidyup/pkg/types"
)

// Organize runs one batch pass.
type OrganizeOptions = organize.OrganizeOptions

func Organize(ctx context.Context, opts OrganizeOptions) (*types.RunSummary, error) {
	return organize.Organize(ctx, opts)
}

// Watch runs the live watcher until ctx is canceled.
type WatchOptions = watch.WatchOptions

func Watch(ctx context.Context, opts WatchOptions) (*types.RunSummary, error) {
	return watch.Watch(ctx, opts)
}

// Classify reports the classification of files without touching them.
type ClassifyOptions = classify.ClassifyOptions

func Classify(opts ClassifyOptions) (*classify.Result, error) {
	return classify.Classify(opts)
}

// GenConfig outputs or writes the default configuration.
type GenConfigOptions = genconfig.GenConfigOptions

func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}

// ShowConfig serializes the effective configuration.
type ShowConfigOptions = showconfig.ShowConfigOptions

func ShowConfig(opts ShowConfigOptions) (string, error) {
	return showconfig.ShowConfig(opts)
}
