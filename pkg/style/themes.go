package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Each colour adapts to light and dark terminals.
var (
	// Result statuses: moved, failed, skipped, simulated
	SuccessColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFCA28"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#4DD0E1"}

	// Summary and config text
	HeadingColor   = lipgloss.AdaptiveColor{Light: "#1B1F23", Dark: "#F5F7FA"}
	TextColor      = lipgloss.AdaptiveColor{Light: "#3C434A", Dark: "#DDE2E7"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#5F6B76", Dark: "#A3ADB8"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "#7A848E", Dark: "#8B949E"}

	// Summary box
	BorderColor = lipgloss.AdaptiveColor{Light: "#CFD6DD", Dark: "#3A3F4B"}

	// Rule names in result lines and tables
	CategoryColor = lipgloss.AdaptiveColor{Light: "#6A3FB5", Dark: "#B39DDB"}
)
