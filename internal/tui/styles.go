package tui

import (
	"github.com/charmbracelet/lipgloss"

	"slnbuild/internal/build"
	"slnbuild/internal/restore"
)

// Row status values. The finished ones match the restore and build outcomes.
const (
	StatusPending   = "pending"
	StatusRestoring = "restoring"
	StatusRestored  = string(restore.OutcomeRestored)
	StatusSkipped   = string(restore.OutcomeSkipped)
	StatusBuilding  = "building"
	StatusBuilt     = string(build.OutcomeBuilt)
	StatusFailed    = string(build.OutcomeFailed)
)

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)
	// TitleStyle styles the heading above a table.
	TitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pendingStyle = lipgloss.NewStyle().Faint(true)

	statusStyles = map[string]lipgloss.Style{
		StatusRestored: okStyle,
		StatusBuilt:    okStyle,

		StatusRestoring: activeStyle,
		StatusBuilding:  activeStyle,

		StatusSkipped: skipStyle,

		StatusFailed: errorStyle,

		StatusPending: pendingStyle,
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// isFinished reports whether a row with this status is done.
func isFinished(status string) bool {
	switch status {
	case "", StatusPending, StatusRestoring, StatusBuilding:
		return false
	}
	return true
}
