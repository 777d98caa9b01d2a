package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"slnbuild/internal/build"
	"slnbuild/internal/restore"
)

type (
	// startedMsg marks a restore or build row as running.
	startedMsg struct{ key string }

	restoreDoneMsg struct{ res restore.Result }
	buildDoneMsg   struct{ res build.Result }

	// doneMsg ends the table once the work function returns.
	doneMsg struct{}
)

// RestoreReporter forwards restore progress to a running Model.
type RestoreReporter struct {
	send func(tea.Msg)
}

// NewRestoreReporter wraps the send function handed to the work by Run.
func NewRestoreReporter(send func(tea.Msg)) *RestoreReporter {
	return &RestoreReporter{send: send}
}

func (r *RestoreReporter) Start(key, _ string) {
	r.send(startedMsg{key: key})
}

func (r *RestoreReporter) Complete(res restore.Result) {
	r.send(restoreDoneMsg{res: res})
}

// BuildReporter forwards build progress to a running Model.
type BuildReporter struct {
	send func(tea.Msg)
}

// NewBuildReporter wraps the send function handed to the work by Run.
func NewBuildReporter(send func(tea.Msg)) *BuildReporter {
	return &BuildReporter{send: send}
}

func (r *BuildReporter) Start(inv build.Invocation) {
	r.send(startedMsg{key: inv.Label()})
}

func (r *BuildReporter) Complete(res build.Result) {
	r.send(buildDoneMsg{res: res})
}

// FormatDuration renders a build duration for the TIME column.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

var (
	_ restore.Reporter = (*RestoreReporter)(nil)
	_ build.Reporter   = (*BuildReporter)(nil)
)
