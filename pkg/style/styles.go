package style

import (
	"strings"

	"github.com/pterm/pterm"
)

// Base styles
var (
	TitleStyle   = pterm.NewStyle(pterm.FgLightWhite, pterm.Bold)
	MutedStyle   = pterm.NewStyle(pterm.FgGray)
	PathStyle    = pterm.NewStyle(pterm.FgLightBlue, pterm.Italic)
	SuccessStyle = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	ErrorStyle   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	KindStyle    = pterm.NewStyle(pterm.FgCyan)
)

// Indicators
const (
	PendingIndicator = "○"
	SuccessIndicator = "✓"
	SkippedIndicator = "–"
	ErrorIndicator   = "✗"
)

// Bold renders text in bold
func Bold(text string) string {
	return pterm.Bold.Sprint(text)
}

// Indent prefixes every line of text with two spaces per level
func Indent(text string, level int) string {
	if level <= 0 {
		return text
	}
	prefix := strings.Repeat("  ", level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
