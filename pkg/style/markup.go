package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser handles parsing and rendering of markup tags
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":    TitleStyle,
			"subtitle": SubtitleStyle,
			"success":  SuccessStyle,
			"error":    ErrorStyle,
			"warning":  WarningStyle,
			"info":     InfoStyle,
			"path":     PathStyle,
			"muted":    MutedStyle,
			"category": CategoryStyle,
			"bold":     lipgloss.NewStyle().Bold(true),
		},
	}
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	result := text

	// Nested tags need several passes
	for {
		before := result

		for tag, style := range p.styles {
			pattern := regexp.MustCompile(`\[` + tag + `\](.*?)\[/` + tag + `\]`)
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return style.Render(submatch[1])
			})
		}

		if result == before {
			return result
		}
	}
}

// Strip removes known tags without styling, for plain output
func (p *MarkupParser) Strip(text string) string {
	for tag := range p.styles {
		text = strings.ReplaceAll(text, "["+tag+"]", "")
		text = strings.ReplaceAll(text, "[/"+tag+"]", "")
	}
	return text
}

// Global parser instance
var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
