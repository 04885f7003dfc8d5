package tidyup

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Sort downloaded files into folders by type"
	MsgOrganizeShort   = "Organize the watch directories once"
	MsgWatchShort      = "Organize new files as they arrive"
	MsgClassifyShort   = "Show where files would be moved"
	MsgConfigShort     = "Manage the configuration file"
	MsgConfigInitShort = "Write the default configuration file"
	MsgConfigShowShort = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWatching      = "Watching %s (Ctrl-C to stop)\n"
	MsgConfigWritten = "Wrote %s\n"
	MsgCanceled      = "Interrupted, stopping after the current file"
	MsgVersionFormat = "tidyup %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Preview moves without executing them"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/tidyup/config.toml)"
	MsgFlagOutput        = "Output format: auto, term, text or json"
	MsgFlagOrganizeFirst = "Organize existing files before watching"
	MsgFlagForce         = "Replace an existing config file"
	MsgFlagInitFormat    = "Format of the written file: toml, yaml or json (default from the extension)"
	MsgFlagShowFormat    = "Format: text, toml, yaml or json"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/organize-long.txt
	msgOrganizeLongRaw string
	MsgOrganizeLong    = strings.TrimSpace(msgOrganizeLongRaw)

	//go:embed msgs/organize-example.txt
	msgOrganizeExampleRaw string
	MsgOrganizeExample    = strings.TrimRight(msgOrganizeExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/classify-long.txt
	msgClassifyLongRaw string
	MsgClassifyLong    = strings.TrimSpace(msgClassifyLongRaw)

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
