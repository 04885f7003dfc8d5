// Package conflict picks the final name of a file whose destination may
// already be taken.
package conflict

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
)

// DefaultMaxAttempts bounds the rename search when no limit is configured
const DefaultMaxAttempts = 1000

// ExistsFunc reports whether a path is already occupied. An error means the
// answer is unknown and aborts the resolution.
type ExistsFunc func(path string) (bool, error)

// Resolution is the outcome of resolving a destination
type Resolution struct {
	// Path is the final destination; empty when Skip is set
	Path string

	// Skip means the file must stay where it is
	Skip bool

	// Replace means Path exists and must be overwritten
	Replace bool
}

// Resolver applies the duplicate handling policy. It only checks for
// existence and never touches the filesystem itself.
type Resolver struct {
	exists      ExistsFunc
	maxAttempts int
}

// NewResolver creates a resolver. maxAttempts <= 0 uses DefaultMaxAttempts.
func NewResolver(exists ExistsFunc, maxAttempts int) *Resolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Resolver{exists: exists, maxAttempts: maxAttempts}
}

// Resolve decides where name should land inside dir
func (r *Resolver) Resolve(dir, name string, policy config.DuplicatePolicy) (Resolution, error) {
	candidate := filepath.Join(dir, name)
	taken, err := r.exists(candidate)
	if err != nil {
		return Resolution{}, err
	}
	if !taken {
		return Resolution{Path: candidate}, nil
	}

	switch policy {
	case config.PolicySkip:
		return Resolution{Skip: true}, nil
	case config.PolicyOverwrite:
		return Resolution{Path: candidate, Replace: true}, nil
	case config.PolicyRename:
		return r.rename(dir, name)
	}

	return Resolution{}, errors.Newf(errors.ErrInvalidInput, "unknown duplicate policy %q", policy)
}

// rename tries stem_1.ext, stem_2.ext, ... until a free name is found
func (r *Resolver) rename(dir, name string) (Resolution, error) {
	stem, ext := SplitName(name)
	for i := 1; i <= r.maxAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		taken, err := r.exists(candidate)
		if err != nil {
			return Resolution{}, err
		}
		if !taken {
			return Resolution{Path: candidate}, nil
		}
	}
	return Resolution{}, errors.Newf(errors.ErrNameCollision,
		"no free name for %s after %d attempts", name, r.maxAttempts).
		WithDetail("dir", dir).
		WithDetail("attempts", r.maxAttempts)
}

// SplitName splits a file name into stem and extension. Dotfiles without a
// second dot keep their whole name as the stem.
func SplitName(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
