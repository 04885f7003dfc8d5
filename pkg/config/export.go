package config

import (
	"bytes"
	"encoding/json"

	"github.com/arthur-debert/tidyup/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export formats accepted by Marshal
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Marshal renders the effective configuration in the given format
func Marshal(cfg *Config, format string) ([]byte, error) {
	m := configToMap(cfg)

	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(m); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode TOML")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(m)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode JSON")
		}
		return append(out, '\n'), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
}

// configToMap converts a Config to plain values so every encoder renders
// durations and policies as strings
func configToMap(cfg *Config) map[string]interface{} {
	rules := make([]interface{}, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rules[i] = map[string]interface{}{
			"name":          r.Name,
			"extensions":    nonNil(r.Extensions),
			"target_folder": r.TargetFolder,
		}
	}

	s := cfg.Settings
	w := cfg.Watcher
	return map[string]interface{}{
		"watch_directories": nonNil(cfg.WatchDirectories),
		"rules":             rules,
		"settings": map[string]interface{}{
			"organize_by_date":    s.OrganizeByDate,
			"date_format":         s.DateFormat,
			"date_source":         s.DateSource.String(),
			"ignore_extensions":   nonNil(s.IgnoreExtensions),
			"ignore_files":        nonNil(s.IgnoreFiles),
			"ignore_patterns":     nonNil(s.IgnorePatterns),
			"duplicate_handling":  s.DuplicateHandling.String(),
			"max_rename_attempts": s.MaxRenameAttempts,
			"extras_folder":       s.ExtrasFolder,
			"dry_run":             s.DryRun,
			"enable_logging":      s.EnableLogging,
			"log_level":           s.LogLevel,
			"log_file":            s.LogFile,
		},
		"watcher": map[string]interface{}{
			"organize_first":    w.OrganizeFirst,
			"poll_interval":     w.PollInterval.String(),
			"stable_checks":     w.StableChecks,
			"stability_timeout": w.StabilityTimeout.String(),
			"lock":              w.Lock,
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
