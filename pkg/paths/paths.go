package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile points at an explicit configuration file
	EnvConfigFile = "TIDYUP_CONFIG"

	// EnvConfigDir overrides the XDG config directory for tidyup
	EnvConfigDir = "TIDYUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for tidyup
	EnvStateDir = "TIDYUP_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for tidyup-specific files
	AppDirName = "tidyup"

	// ConfigFileName is the default configuration file name
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "tidyup.log"

	// LockFileName is the name of the watcher's single-instance lock
	LockFileName = "watch.lock"
)

// Paths provides the locations tidyup reads from and writes to
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFile() string
	LogFilePath() string
	LockFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New resolves the XDG directories, respecting environment overrides
func New() Paths {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) ConfigDir() string { return p.configDir }
func (p *paths) StateDir() string  { return p.stateDir }

// ConfigFile returns $TIDYUP_CONFIG when set, else config.toml in the config dir
func (p *paths) ConfigFile() string {
	if f := os.Getenv(EnvConfigFile); f != "" {
		return ExpandHome(f)
	}
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

func (p *paths) LockFilePath() string {
	return filepath.Join(p.stateDir, LockFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			// Can't expand, return as-is
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Only ~/ is ours; ~user is left alone
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// Normalize expands ~ and environment variables, then makes the path
// absolute and clean.
func Normalize(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	path = ExpandHome(os.ExpandEnv(path))
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// IsWithin reports whether child is parent or lives below it.
func IsWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
