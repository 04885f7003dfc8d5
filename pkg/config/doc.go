// Package config loads tidyup's configuration.
//
// Values are layered with koanf: the embedded defaults come first, then the
// user's config file (TOML, YAML or JSON, picked by extension), then
// TIDYUP_* environment variables, and finally any overrides supplied by the
// command line. The result is decoded into Config and validated before any
// component sees it.
package config
