package showconfig

import (
	"strings"

	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
)

// ShowConfigOptions holds options for the config show command
type ShowConfigOptions struct {
	Config *config.Config

	// Format is toml, yaml or json
	Format string
}

// ShowConfig serializes the effective configuration
func ShowConfig(opts ShowConfigOptions) (string, error) {
	logger := logging.GetLogger("commands.showconfig")

	if opts.Config == nil {
		return "", errors.New(errors.ErrInvalidInput, "no configuration")
	}
	format := strings.ToLower(opts.Format)
	if format == "yml" {
		format = config.FormatYAML
	}

	out, err := config.Marshal(opts.Config, format)
	if err != nil {
		return "", err
	}
	logger.Debug().Str("format", format).Str("source", opts.Config.Source).Msg("Serialized configuration")
	return string(out), nil
}
