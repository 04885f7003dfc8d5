package config

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are joined
// with a double underscore: TIDYUP_SETTINGS__DRY_RUN=true.
const EnvPrefix = "TIDYUP_"

const envKeySeparator = "__"

// legacySettingKeys are settings the original JSON format kept at the top
// level of the document
var legacySettingKeys = []string{
	"organize_by_date",
	"date_format",
	"date_source",
	"ignore_extensions",
	"ignore_files",
	"ignore_patterns",
	"duplicate_handling",
	"max_rename_attempts",
	"extras_folder",
	"dry_run",
	"enable_logging",
	"log_level",
	"log_file",
}

// LoadOptions controls where configuration comes from
type LoadOptions struct {
	// ConfigFile is an explicit config path (--config). It must exist.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("settings.dry_run")
	Overrides map[string]interface{}

	// Paths resolves the default config location; nil uses paths.New()
	Paths paths.Paths

	// SkipUserFile loads only the embedded defaults and the environment
	SkipUserFile bool
}

// Default returns the embedded defaults, post-processed but without any
// user file or environment applied
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults do not parse: " + err.Error())
	}
	cfg, err := decode(k)
	if err != nil {
		panic("embedded defaults do not decode: " + err.Error())
	}
	if err := postProcessConfig(cfg); err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return cfg
}

// Load builds the effective configuration and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	var source string
	if !opts.SkipUserFile {
		path, required := resolveConfigFile(opts)
		uk, err := loadUserFile(path, required)
		if err != nil {
			return nil, err
		}
		if uk != nil {
			// A user rule list replaces the default rules instead of extending them
			if uk.Exists("rules") || uk.Exists("organize_rules") {
				k.Delete("rules")
			}
			if err := k.Merge(uk); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge %s", path)
			}
			source = path
			logger.Debug().Str("path", path).Msg("Loaded config file")
		}
	}

	// 3. Environment
	ek := koanf.New(".")
	if err := ek.Load(env.Provider(EnvPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}
	if err := k.Merge(ek); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment overrides")
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = source

	if err := postProcessConfig(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", cfg.Source).
		Int("rules", len(cfg.Rules)).
		Strs("watchDirectories", cfg.WatchDirectories).
		Msg("Configuration loaded")

	return cfg, nil
}

// resolveConfigFile picks the user config path. Files named explicitly
// (flag or $TIDYUP_CONFIG) are required; the XDG default is optional.
func resolveConfigFile(opts LoadOptions) (string, bool) {
	if opts.ConfigFile != "" {
		return paths.ExpandHome(opts.ConfigFile), true
	}
	if f := os.Getenv(paths.EnvConfigFile); f != "" {
		return paths.ExpandHome(f), true
	}
	p := opts.Paths
	if p == nil {
		p = paths.New()
	}
	return p.ConfigFile(), false
}

func loadUserFile(path string, required bool) (*koanf.Koanf, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrConfigLoad, "config path %s is a directory", path).
			WithDetail("path", path)
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	uk := koanf.New(".")
	if err := uk.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
			WithDetail("path", path)
	}

	transformLegacy(uk)
	return uk, nil
}

// parserFor picks a koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// transformLegacy lifts top-level settings of the original JSON format into
// the settings table. Explicit settings.* values take precedence.
func transformLegacy(uk *koanf.Koanf) {
	logger := logging.GetLogger("config")

	for _, key := range legacySettingKeys {
		if !uk.Exists(key) {
			continue
		}
		target := "settings." + key
		if !uk.Exists(target) {
			_ = uk.Set(target, uk.Get(key))
		}
		uk.Delete(key)
	}

	if uk.Exists("recursive") {
		logger.Warn().Msg("The recursive option is not supported; watch directories are scanned one level deep")
		uk.Delete("recursive")
	}
}

// envToKey maps TIDYUP_SETTINGS__DRY_RUN to settings.dry_run. Variables
// that locate files rather than configure values are skipped.
func envToKey(s string) string {
	switch s {
	case paths.EnvConfigFile, paths.EnvConfigDir, paths.EnvStateDir:
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, envKeySeparator, ".")
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				trimStringsHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// trimStringsHookFunc strips the blanks that comma-separated env values
// leave around list items
func trimStringsHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Slice || t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		if s, ok := data.([]string); ok {
			out := make([]string, 0, len(s))
			for _, v := range s {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
			return out, nil
		}
		return data, nil
	}
}

// postProcessConfig folds the legacy rule map into Rules and normalizes
// every path the rest of the program touches
func postProcessConfig(cfg *Config) error {
	if len(cfg.OrganizeRules) > 0 {
		names := make([]string, 0, len(cfg.OrganizeRules))
		for name := range cfg.OrganizeRules {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			spec := cfg.OrganizeRules[name]
			if spec.Name == "" {
				spec.Name = name
			}
			cfg.Rules = append(cfg.Rules, spec)
		}
		cfg.OrganizeRules = nil
	}

	dirs := make([]string, 0, len(cfg.WatchDirectories))
	seen := make(map[string]bool)
	for _, dir := range cfg.WatchDirectories {
		norm, err := paths.Normalize(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid watch directory %q", dir)
		}
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		dirs = append(dirs, norm)
	}
	cfg.WatchDirectories = dirs

	for i := range cfg.Rules {
		norm, err := paths.Normalize(cfg.Rules[i].TargetFolder)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid target folder for rule %q", cfg.Rules[i].Name)
		}
		cfg.Rules[i].TargetFolder = norm
	}

	var err error
	if cfg.Settings.ExtrasFolder, err = paths.Normalize(cfg.Settings.ExtrasFolder); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid extras folder")
	}
	if cfg.Settings.LogFile, err = paths.Normalize(cfg.Settings.LogFile); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid log file")
	}

	return nil
}
