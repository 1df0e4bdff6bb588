package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmill/internal/task"
)

var (
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")) // Green
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")) // Amber
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")) // Gray
	deferredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")) // Blue
	customStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")) // Purple
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")) // Red
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// statusIcon renders a status as a colored glyph.
func statusIcon(st task.Status) string {
	switch st {
	case task.StatusDone:
		return doneStyle.Render("✓")
	case task.StatusInProgress:
		return progressStyle.Render("●")
	case task.StatusPending:
		return pendingStyle.Render("○")
	case task.StatusDeferred:
		return deferredStyle.Render("◌")
	default:
		return customStyle.Render("◆")
	}
}

// priorityLabel renders a priority with its color.
func priorityLabel(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return errorStyle.Render("high")
	case task.PriorityLow:
		return mutedStyle.Render("low")
	default:
		return progressStyle.Render(string(p))
	}
}
