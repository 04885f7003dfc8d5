package tidyup

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/tidyup/pkg/cobrax/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// initTopics installs "help <topic>" for the embedded topic files
func initTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}

	glamourStyle := "notty"
	if stdoutIsTerminal() {
		glamourStyle = "auto"
	}

	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(glamourStyle),
		GroupID:    "misc",
	}
	if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}
