package style

import (
	"fmt"

	"github.com/arthur-debert/tidyup/pkg/types"
	"github.com/pterm/pterm"
)

// StatusVerbs are the words shown in front of each per-file line
var StatusVerbs = map[types.Status]string{
	types.StatusMoved:     "moved",
	types.StatusSimulated: "would move",
	types.StatusSkipped:   "skipped",
	types.StatusIgnored:   "ignored",
	types.StatusUnmatched: "unmatched",
	types.StatusError:     "failed",
}

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status types.Status) *pterm.Style {
	switch status {
	case types.StatusMoved:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.StatusSimulated:
		return pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)
	case types.StatusSkipped:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case types.StatusError:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func statusLabel(status types.Status) string {
	verb, ok := StatusVerbs[status]
	if !ok {
		verb = string(status)
	}
	return fmt.Sprintf(" %-10s ", verb)
}

// ResultLine renders one result as plain text
func ResultLine(r types.OperationResult) string {
	line := statusLabel(r.Status) + r.Source
	if r.Status.Relocated() {
		line += " -> " + r.Destination
	}
	return line + detail(r)
}

// StyledResultLine renders one result for a colour terminal
func StyledResultLine(r types.OperationResult) string {
	line := StatusStyle(r.Status).Sprint(statusLabel(r.Status)) + " " + PathStyle.Render(r.Source)
	if r.Status.Relocated() {
		line += " → " + PathStyle.Render(r.Destination)
	}
	if r.Category != "" && r.Status.Relocated() {
		line += " " + CategoryStyle.Render("["+r.Category+"]")
	}
	if r.Reason != "" {
		line += MutedStyle.Render(" (" + r.Reason + ")")
	}
	return line
}

func detail(r types.OperationResult) string {
	out := ""
	if r.Category != "" && r.Status.Relocated() {
		out += " [" + r.Category + "]"
	}
	if r.Reason != "" {
		out += " (" + r.Reason + ")"
	}
	return out
}
