package genconfig

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/filesystem"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/paths"
	"github.com/arthur-debert/tidyup/pkg/types"
)

// GenConfigOptions holds options for the config init command
type GenConfigOptions struct {
	// Path is where to write; empty means the default config location
	Path string

	// Write stores the file instead of only returning the content
	Write bool

	// Force replaces an existing file
	Force bool

	// Format is toml, yaml or json; empty picks it from Path's extension
	Format string

	FileSystem types.FS
}

// GenConfig outputs or writes the default configuration. TOML output is the
// commented defaults document; other formats are serialized from it.
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	target := opts.Path
	if target == "" {
		target = paths.New().ConfigFile()
	}
	target, err := paths.Normalize(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %q", opts.Path)
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = formatFor(target)
	}

	content, err := render(format)
	if err != nil {
		return nil, err
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Str("format", format).Msg("Outputting config to stdout")
		return result, nil
	}

	logger.Info().Str("path", target).Bool("force", opts.Force).Msg("Writing config file")

	if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", filepath.Dir(target))
	}

	if _, err := fsys.Stat(target); err == nil {
		if !opts.Force {
			return result, errors.Newf(errors.ErrInvalidInput, "%s already exists, use --force to replace it", target).
				WithDetail("path", target)
		}
		if err := fsys.Remove(target); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to replace %s", target)
		}
	}

	f, err := fsys.Create(target, 0644)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to write config to %s", target)
	}
	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to write config to %s", target)
	}
	if err := f.Close(); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileAccess, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return config.FormatYAML
	case ".json":
		return config.FormatJSON
	}
	return config.FormatTOML
}

func render(format string) (string, error) {
	if format == config.FormatTOML {
		return config.GetDefaultsContent(), nil
	}
	if format == "yml" {
		format = config.FormatYAML
	}
	out, err := config.Marshal(config.Default(), format)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
