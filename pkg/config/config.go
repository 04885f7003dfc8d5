package config

import (
	"strings"
	"time"
)

// Config is the fully loaded configuration of a run. It is read-only once
// Load returns and is handed explicitly to every component.
type Config struct {
	// WatchDirectories are the folders scanned by organize and watch
	WatchDirectories []string `koanf:"watch_directories"`

	// Rules in declaration order; the first rule claiming an extension wins
	Rules []RuleSpec `koanf:"rules"`

	// OrganizeRules is the category-keyed form of the original JSON format.
	// Load appends it to Rules sorted by category and then clears it.
	OrganizeRules map[string]RuleSpec `koanf:"organize_rules"`

	Settings Settings        `koanf:"settings"`
	Watcher  WatcherSettings `koanf:"watcher"`

	// Source is the user config file that was merged, if any
	Source string `koanf:"-"`
}

// RuleSpec maps a set of extensions to a target folder
type RuleSpec struct {
	Name         string   `koanf:"name"`
	Extensions   []string `koanf:"extensions"`
	TargetFolder string   `koanf:"target_folder"`
}

// Settings holds the knobs shared by the organizer and the watcher
type Settings struct {
	OrganizeByDate    bool            `koanf:"organize_by_date"`
	DateFormat        string          `koanf:"date_format"`
	DateSource        DateSource      `koanf:"date_source"`
	IgnoreExtensions  []string        `koanf:"ignore_extensions"`
	IgnoreFiles       []string        `koanf:"ignore_files"`
	IgnorePatterns    []string        `koanf:"ignore_patterns"`
	DuplicateHandling DuplicatePolicy `koanf:"duplicate_handling"`
	MaxRenameAttempts int             `koanf:"max_rename_attempts"`
	ExtrasFolder      string          `koanf:"extras_folder"`
	DryRun            bool            `koanf:"dry_run"`
	EnableLogging     bool            `koanf:"enable_logging"`
	LogLevel          string          `koanf:"log_level"`
	LogFile           string          `koanf:"log_file"`
}

// WatcherSettings tunes the live watcher
type WatcherSettings struct {
	OrganizeFirst    bool          `koanf:"organize_first"`
	PollInterval     time.Duration `koanf:"poll_interval"`
	StableChecks     int           `koanf:"stable_checks"`
	StabilityTimeout time.Duration `koanf:"stability_timeout"`
	Lock             bool          `koanf:"lock"`
}

// DuplicatePolicy decides what happens when a destination already exists
type DuplicatePolicy string

const (
	PolicyRename    DuplicatePolicy = "rename"
	PolicySkip      DuplicatePolicy = "skip"
	PolicyOverwrite DuplicatePolicy = "overwrite"
)

// Valid reports whether p is one of the known policies
func (p DuplicatePolicy) Valid() bool {
	switch p {
	case PolicyRename, PolicySkip, PolicyOverwrite:
		return true
	}
	return false
}

func (p DuplicatePolicy) String() string { return string(p) }

// UnmarshalText accepts any casing; unknown values are caught by Validate
func (p *DuplicatePolicy) UnmarshalText(text []byte) error {
	*p = DuplicatePolicy(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}

// DateSource selects the timestamp used for date folders
type DateSource string

const (
	DateFromModTime DateSource = "modified"
	DateFromExif    DateSource = "exif"
)

// Valid reports whether s is one of the known date sources
func (s DateSource) Valid() bool {
	return s == DateFromModTime || s == DateFromExif
}

func (s DateSource) String() string { return string(s) }

// UnmarshalText accepts any casing; unknown values are caught by Validate
func (s *DateSource) UnmarshalText(text []byte) error {
	*s = DateSource(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}
