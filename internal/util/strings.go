// Package util holds small string helpers shared by the CLI and board
// renderers.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to at most max runes, appending "..." when it
// cuts. Plain rune counting; for styled terminal output use
// TruncateANSI.
func Truncate(s string, max int) string {
	if max <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// TruncateANSI shortens s to at most max visual columns, appending
// "..." when it cuts. Escape sequences and wide characters are
// measured correctly, so styled text keeps its styling.
func TruncateANSI(s string, max int) string {
	if max <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	return ansi.Truncate(s, max, "...")
}
