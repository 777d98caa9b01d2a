package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run draws m on out while work runs on its own goroutine and feeds the table
// through send. Quitting the table cancels the context given to work, which
// stops the pass before the next nuget or MSBuild call. Run returns only after
// work has returned, so the caller can save the settings it touched.
func Run(ctx context.Context, out io.Writer, m Model, work func(ctx context.Context, send func(tea.Msg))) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithOutput(out))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		work(ctx, p.Send)
		p.Send(doneMsg{})
	}()

	_, err := p.Run()
	cancel()
	<-finished
	return err
}
