package tidyup

import (
	"github.com/arthur-debert/tidyup/internal/version"
	"github.com/arthur-debert/tidyup/pkg/config"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/arthur-debert/tidyup/pkg/logging"
	"github.com/arthur-debert/tidyup/pkg/paths"
	"github.com/arthur-debert/tidyup/pkg/style"
	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// skipConfig marks commands that run without loading the configuration
const skipConfig = "tidyup/skip-config"

// session holds the global flags and what PersistentPreRunE prepared for
// the command being run
type session struct {
	verbosity  int
	configFile string
	dryRun     bool
	output     string

	paths    paths.Paths
	cfg      *config.Config
	renderer style.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	s := &session{}

	rootCmd := &cobra.Command{
		Use:     "tidyup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		Annotations:       map[string]string{skipConfig: "true"},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&s.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&s.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&s.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&s.output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newOrganizeCmd(s))
	rootCmd.AddCommand(newWatchCmd(s))
	rootCmd.AddCommand(newClassifyCmd(s))
	rootCmd.AddCommand(newConfigCmd(s))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initTopics(rootCmd)

	return rootCmd
}

// prepare sets up output and logging, then loads the configuration unless
// the command does not need it
func (s *session) prepare(cmd *cobra.Command) error {
	s.paths = paths.New()

	format, err := style.ParseFormat(s.output)
	if err != nil {
		return err
	}
	s.renderer = style.NewRenderer(cmd.OutOrStdout(), format)

	// Console only until the configuration says where the log file goes
	logging.SetupLogger(s.verbosity, logging.Options{DisableFile: true, Console: cmd.ErrOrStderr()})

	if _, skip := cmd.Annotations[skipConfig]; skip || cmd.Name() == "help" {
		log.Debug().Str("command", cmd.Name()).Msg("Command started")
		return nil
	}

	opts := config.LoadOptions{ConfigFile: s.configFile, Paths: s.paths}
	if s.dryRun {
		opts.Overrides = map[string]interface{}{"settings.dry_run": true}
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}
	s.cfg = cfg

	logPath := cfg.Settings.LogFile
	if logPath == "" {
		logPath = s.paths.LogFilePath()
	}
	logging.SetupLogger(s.verbosity, logging.Options{
		DisableFile: !cfg.Settings.EnableLogging,
		FilePath:    logPath,
		Level:       cfg.Settings.LogLevel,
		Console:     cmd.ErrOrStderr(),
	})

	log.Debug().
		Str("command", cmd.Name()).
		Str("config", cfg.Source).
		Bool("dryRun", cfg.Settings.DryRun).
		Msg("Command started")
	return nil
}

// showResult prints one per-file line; ignored files only show with -v
func (s *session) showResult(r types.OperationResult) {
	if r.Status == types.StatusIgnored && s.verbosity == 0 {
		return
	}
	if err := s.renderer.RenderResult(r); err != nil {
		log.Warn().Err(err).Msg("Failed to render result")
	}
}
