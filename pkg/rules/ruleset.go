package rules

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	strftime "github.com/ncruces/go-strftime"
)

// RuleSet is the compiled, immutable form of the configured rules and
// ignore lists
type RuleSet struct {
	rules          []Rule
	byExtension    map[string]int
	ignoreExts     map[string]bool
	ignoreFiles    map[string]bool
	ignorePatterns []string
	extrasFolder   string
	byDate         bool
	dateFormat     string
}

// Compile builds a RuleSet from a loaded configuration. When two rules list
// the same extension the earlier one keeps it and a warning is logged.
func Compile(cfg *config.Config) (*RuleSet, error) {
	logger := logging.GetLogger("rules")

	rs := &RuleSet{
		byExtension:    make(map[string]int),
		ignoreExts:     make(map[string]bool),
		ignoreFiles:    make(map[string]bool),
		ignorePatterns: append([]string(nil), cfg.Settings.IgnorePatterns...),
		extrasFolder:   cfg.Settings.ExtrasFolder,
		byDate:         cfg.Settings.OrganizeByDate,
		dateFormat:     cfg.Settings.DateFormat,
	}

	for _, spec := range cfg.Rules {
		if spec.Name == "" || spec.TargetFolder == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "rule %q is incomplete", spec.Name)
		}

		rule := Rule{
			Category:     spec.Name,
			TargetFolder: filepath.Clean(spec.TargetFolder),
		}
		idx := len(rs.rules)

		for _, raw := range spec.Extensions {
			ext := NormalizeExtension(raw)
			if ext == "" {
				return nil, errors.Newf(errors.ErrConfigValid, "rule %q has an empty extension", spec.Name)
			}
			if owner, taken := rs.byExtension[ext]; taken {
				if owner != idx {
					logger.Warn().
						Str("extension", ext).
						Str("kept", rs.rules[owner].Category).
						Str("ignored", spec.Name).
						Msg("Extension listed by more than one rule, first rule wins")
				}
				continue
			}
			rs.byExtension[ext] = idx
			rule.Extensions = append(rule.Extensions, ext)
		}

		rs.rules = append(rs.rules, rule)
	}

	for _, raw := range cfg.Settings.IgnoreExtensions {
		if ext := NormalizeExtension(raw); ext != "" {
			rs.ignoreExts[ext] = true
		}
	}
	for _, name := range cfg.Settings.IgnoreFiles {
		rs.ignoreFiles[name] = true
	}
	for _, pattern := range rs.ignorePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid ignore pattern %q", pattern)
		}
	}

	logger.Debug().
		Int("rules", len(rs.rules)).
		Int("extensions", len(rs.byExtension)).
		Bool("byDate", rs.byDate).
		Msg("Rule set compiled")

	return rs, nil
}

// Rules returns the compiled rules in declaration order
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// TargetFolders returns every folder a file can be moved into, extras
// included
func (rs *RuleSet) TargetFolders() []string {
	folders := make([]string, 0, len(rs.rules)+1)
	for _, r := range rs.rules {
		folders = append(folders, r.TargetFolder)
	}
	if rs.extrasFolder != "" {
		folders = append(folders, rs.extrasFolder)
	}
	return folders
}

// Classify decides what happens to a single file
func (rs *RuleSet) Classify(meta FileMeta) Classification {
	name := meta.Name
	if name == "" {
		name = filepath.Base(meta.Path)
	}
	ext := Extension(name)

	if reason, ignored := rs.ignored(name, ext); ignored {
		return Classification{Verdict: Ignored, Extension: ext, Reason: reason}
	}

	if idx, ok := rs.byExtension[ext]; ok && ext != "" {
		rule := rs.rules[idx]
		return Classification{
			Verdict:   Matched,
			Extension: ext,
			Category:  rule.Category,
			TargetDir: rs.withDate(rule.TargetFolder, meta),
		}
	}

	reason := fmt.Sprintf("no rule for %s", ext)
	if ext == "" {
		reason = "no extension"
	}

	if rs.extrasFolder != "" {
		return Classification{
			Verdict:   Matched,
			Extension: ext,
			Category:  ExtrasCategory,
			TargetDir: rs.withDate(rs.extrasFolder, meta),
			Reason:    reason,
		}
	}

	return Classification{Verdict: Unmatched, Extension: ext, Reason: reason}
}

func (rs *RuleSet) ignored(name, ext string) (string, bool) {
	if ext != "" && rs.ignoreExts[ext] {
		return "ignored extension " + ext, true
	}
	if rs.ignoreFiles[name] {
		return "ignored file name", true
	}
	for _, pattern := range rs.ignorePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return "matches ignore pattern " + pattern, true
		}
	}
	return "", false
}

// withDate appends the date subfolder when organizing by date
func (rs *RuleSet) withDate(dir string, meta FileMeta) string {
	if !rs.byDate || meta.ModTime.IsZero() {
		return dir
	}
	sub := DateFolder(rs.dateFormat, meta.ModTime)
	if sub == "" {
		return dir
	}
	return filepath.Join(dir, sub)
}

// Extension returns the lowercase extension of a file name, or "" when
// the name has none
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == "." || ext == name {
		return ""
	}
	return strings.ToLower(ext)
}

// NormalizeExtension turns "JPG", "jpg" and ".Jpg" into ".jpg"
func NormalizeExtension(ext string) string {
	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	if ext == "" {
		return ""
	}
	return "." + strings.ToLower(ext)
}

// DateFolder formats a strftime layout and strips path components that
// would escape the target folder
func DateFolder(layout string, t time.Time) string {
	formatted := strftime.Format(layout, t)

	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(formatted), "/") {
		part = strings.TrimSpace(part)
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	return filepath.Join(parts...)
}
