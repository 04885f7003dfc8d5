package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/rs/zerolog"
)

// Validate checks a decoded configuration. All problems are reported in a
// single CONFIG_INVALID error.
func Validate(cfg *Config) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(cfg.WatchDirectories) == 0 {
		add("at least one watch directory is required")
	}

	if len(cfg.Rules) == 0 {
		add("at least one rule is required")
	}
	for i, rule := range cfg.Rules {
		label := rule.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			add("rule %s has no name", label)
		}
		if rule.TargetFolder == "" {
			add("rule %s has no target folder", label)
		}
		if len(rule.Extensions) == 0 {
			add("rule %s lists no extensions", label)
		}
		for _, ext := range rule.Extensions {
			if strings.Trim(ext, ". ") == "" {
				add("rule %s has an empty extension", label)
			}
		}
	}

	s := cfg.Settings
	if !s.DuplicateHandling.Valid() {
		add("unknown duplicate_handling %q (want rename, skip or overwrite)", s.DuplicateHandling)
	}
	if !s.DateSource.Valid() {
		add("unknown date_source %q (want modified or exif)", s.DateSource)
	}
	if s.OrganizeByDate && strings.TrimSpace(s.DateFormat) == "" {
		add("date_format must be set when organize_by_date is enabled")
	}
	if s.MaxRenameAttempts <= 0 {
		add("max_rename_attempts must be positive")
	}
	for _, pattern := range s.IgnorePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			add("invalid ignore pattern %q", pattern)
		}
	}
	if s.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(s.LogLevel)); err != nil {
			add("unknown log_level %q", s.LogLevel)
		}
	}

	w := cfg.Watcher
	if w.PollInterval <= 0 {
		add("watcher.poll_interval must be positive")
	}
	if w.StableChecks <= 0 {
		add("watcher.stable_checks must be positive")
	}
	if w.StabilityTimeout <= 0 {
		add("watcher.stability_timeout must be positive")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
		WithDetail("problems", problems).
		WithDetail("source", cfg.Source)
}
