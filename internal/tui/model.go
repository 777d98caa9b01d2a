package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"slnbuild/internal/build"
	"slnbuild/internal/settings"
)

// Phase selects the table a Model draws.
type Phase int

const (
	PhaseRestore Phase = iota
	PhaseBuild
)

type column struct {
	header string
	width  int
	// tail keeps the end of long values, which is where paths differ.
	tail bool
}

var restoreColumns = []column{
	{header: "SOLUTION", width: 24},
	{header: "STATUS", width: 10},
	{header: "DETAIL", width: 48, tail: true},
}

var buildColumns = []column{
	{header: "SOLUTION", width: 24},
	{header: "CONFIGURATION", width: 14},
	{header: "PLATFORM", width: 10},
	{header: "STATUS", width: 9},
	{header: "TIME", width: 7},
	{header: "LOG", width: 40, tail: true},
}

// row is one solution while restoring, or one configuration/platform pair of
// a solution while building.
type row struct {
	key           string
	solution      string
	configuration string
	platform      string
	status        string
	// detail is the solution path or the restore error, or the build log file.
	detail   string
	started  time.Time
	duration time.Duration
}

// Model is the bubbletea model behind the live restore and build tables.
type Model struct {
	phase   Phase
	rows    []row
	index   map[string]int
	spinner spinner.Model
	now     func() time.Time
	done    bool
	quit    bool
}

func newModel(phase Phase) Model {
	return Model{
		phase:   phase,
		index:   make(map[string]int),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(activeStyle)),
		now:     time.Now,
	}
}

func (m *Model) add(r row) {
	r.status = StatusPending
	m.index[r.key] = len(m.rows)
	m.rows = append(m.rows, r)
}

// NewRestoreModel lists every record in key order. Records that are already
// restored turn to skipped as soon as the pass reaches them.
func NewRestoreModel(s *settings.Settings) Model {
	m := newModel(PhaseRestore)
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		m.add(row{key: key, solution: key, detail: rec.Path})
	}
	return m
}

// NewBuildModel lists every planned MSBuild invocation.
func NewBuildModel(plan []build.Invocation) Model {
	m := newModel(PhaseBuild)
	for _, inv := range plan {
		m.add(row{
			key:           inv.Label(),
			solution:      inv.Key,
			configuration: inv.Configuration,
			platform:      inv.Platform,
			detail:        inv.LogFile,
		})
	}
	return m
}

// Init satisfies the tea.Model interface.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update satisfies the tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startedMsg:
		if r := m.row(msg.key); r != nil {
			r.started = m.now()
			r.status = StatusRestoring
			if m.phase == PhaseBuild {
				r.status = StatusBuilding
			}
		}

	case restoreDoneMsg:
		if r := m.row(msg.res.Key); r != nil {
			r.status = string(msg.res.Outcome)
			if msg.res.Error != "" {
				r.detail = msg.res.Error
			}
		}

	case buildDoneMsg:
		if r := m.row(msg.res.Invocation.Label()); r != nil {
			r.status = string(msg.res.Outcome)
			r.duration = msg.res.Duration
		}

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) row(key string) *row {
	i, ok := m.index[key]
	if !ok {
		return nil
	}
	return &m.rows[i]
}

// Quit reports whether the user left the table before the work finished.
func (m Model) Quit() bool {
	return m.quit
}

// View satisfies the tea.Model interface.
func (m Model) View() string {
	columns, title := restoreColumns, "Restoring NuGet packages"
	if m.phase == PhaseBuild {
		columns, title = buildColumns, "Building solutions"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = HeaderStyle.Render(pad(col.header, col.width))
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')

	for _, r := range m.rows {
		for i, col := range columns {
			text := fit(m.cell(r, col.header), col.width, col.tail)
			if col.header == "STATUS" {
				cells[i] = StatusStyle(r.status).Render(pad(text, col.width))
			} else {
				cells[i] = pad(text, col.width)
			}
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}

	if !m.done {
		finished, failed := m.counts()
		verb := "Restoring"
		if m.phase == PhaseBuild {
			verb = "Building"
		}
		fmt.Fprintf(&b, "\n%s %s %d/%d", m.spinner.View(), verb, finished, len(m.rows))
		if failed > 0 {
			fmt.Fprintf(&b, ", %d failed", failed)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) cell(r row, header string) string {
	switch header {
	case "SOLUTION":
		return r.solution
	case "CONFIGURATION":
		return r.configuration
	case "PLATFORM":
		return r.platform
	case "STATUS":
		return r.status
	case "TIME":
		if r.status == StatusBuilding {
			return FormatDuration(m.now().Sub(r.started))
		}
		return FormatDuration(r.duration)
	default:
		return r.detail
	}
}

// counts returns how many rows are finished and how many of those failed.
func (m Model) counts() (finished, failed int) {
	for _, r := range m.rows {
		if !isFinished(r.status) {
			continue
		}
		finished++
		if r.status == StatusFailed {
			failed++
		}
	}
	return finished, failed
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// fit shortens s to width with an ellipsis, cutting the front when tail is set.
func fit(s string, width int, tail bool) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	if tail {
		return "..." + string(runes[len(runes)-width+3:])
	}
	return string(runes[:width-3]) + "..."
}
