package tidyup

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tidyup/internal/version"
	"github.com/arthur-debert/tidyup/pkg/commands"
	"github.com/arthur-debert/tidyup/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newOrganizeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "organize [dirs...]",
		Short:   MsgOrganizeShort,
		Long:    MsgOrganizeLong,
		Example: MsgOrganizeExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := commands.Organize(cmd.Context(), commands.OrganizeOptions{
				Config:   s.cfg,
				Dirs:     args,
				OnResult: s.showResult,
			})
			if errors.IsErrorCode(err, errors.ErrCanceled) {
				log.Warn().Msg(MsgCanceled)
				err = nil
			}
			if err != nil {
				return err
			}
			if summary == nil {
				return nil
			}
			return s.renderer.RenderSummary(summary)
		},
	}
}

func newWatchCmd(s *session) *cobra.Command {
	var organizeFirst bool

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.ErrOrStderr(), MsgWatching, strings.Join(s.cfg.WatchDirectories, ", "))

			summary, err := commands.Watch(cmd.Context(), commands.WatchOptions{
				Config:        s.cfg,
				LockPath:      s.paths.LockFilePath(),
				OrganizeFirst: organizeFirst,
				OnResult:      s.showResult,
			})
			if err != nil {
				return err
			}
			return s.renderer.RenderSummary(summary)
		},
	}

	cmd.Flags().BoolVar(&organizeFirst, "organize-first", false, MsgFlagOrganizeFirst)
	return cmd
}

func newClassifyCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "classify <files...>",
		Short:   MsgClassifyShort,
		Long:    MsgClassifyLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Classify(commands.ClassifyOptions{
				Config: s.cfg,
				Files:  args,
			})
			if err != nil {
				return err
			}

			for _, entry := range result.Entries {
				if entry.Err != nil {
					err = s.renderer.RenderError(entry.Err)
				} else {
					err = s.renderer.RenderClassification(entry.Path, entry.Classification)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "core",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(s))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		format string
	)

	cmd := &cobra.Command{
		Use:         "init [PATH]",
		Short:       MsgConfigInitShort,
		Long:        MsgConfigInitLong,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.GenConfigOptions{Write: true, Force: force, Format: format}
			if len(args) == 1 {
				opts.Path = args[0]
			}

			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}
			for _, path := range result.FilesWritten {
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringVar(&format, "format", "", MsgFlagInitFormat)
	return cmd
}

func newConfigShowCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" || strings.EqualFold(format, "text") {
				return s.renderer.RenderConfig(s.cfg)
			}

			out, err := commands.ShowConfig(commands.ShowConfigOptions{Config: s.cfg, Format: format})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", MsgFlagShowFormat)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		Annotations:           map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), cmd.OutOrStdout(), args[0])
		},
	}
}

// GenCompletion writes the completion script of rootCmd for shell
func GenCompletion(rootCmd *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown shell %q (supported: bash, zsh, fish, powershell)", shell)
}
