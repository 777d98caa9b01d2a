package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"slnbuild/internal/build"
	"slnbuild/internal/restore"
	"slnbuild/internal/settings"
)

// feed returns a send function that applies every message to *m.
func feed(m *Model) func(tea.Msg) {
	return func(msg tea.Msg) {
		updated, _ := m.Update(msg)
		*m = updated.(Model)
	}
}

func restoreFixture() *settings.Settings {
	s := settings.New("")
	s.Add("alpha", "D:/alpha/alpha.sln")
	s.Add("beta", "D:/beta/beta.sln")
	return s
}

func buildFixture() []build.Invocation {
	return []build.Invocation{
		{Key: "game", Configuration: "Debug", Platform: "x64", LogFile: "D:/projects/game/client/BuildLog/Debug_x64_build.log"},
		{Key: "game", Configuration: "Release", Platform: "x64", LogFile: "D:/projects/game/client/BuildLog/Release_x64_build.log"},
	}
}

func TestRestoreModelRows(t *testing.T) {
	m := NewRestoreModel(restoreFixture())

	if len(m.rows) != 2 || m.rows[0].solution != "alpha" || m.rows[1].detail != "D:/beta/beta.sln" {
		t.Fatalf("unexpected rows %+v", m.rows)
	}
	for _, r := range m.rows {
		if r.status != StatusPending {
			t.Fatalf("expected pending rows, got %q", r.status)
		}
	}
}

func TestRestoreReporterUpdatesRows(t *testing.T) {
	m := NewRestoreModel(restoreFixture())
	reporter := NewRestoreReporter(feed(&m))

	reporter.Start("alpha", "D:/alpha/alpha.sln")
	if m.rows[0].status != StatusRestoring {
		t.Fatalf("expected alpha restoring, got %q", m.rows[0].status)
	}

	reporter.Complete(restore.Result{Key: "alpha", Outcome: restore.OutcomeFailed, Error: "nuget restore: exit status 1"})
	reporter.Complete(restore.Result{Key: "beta", Outcome: restore.OutcomeSkipped})

	if m.rows[0].status != StatusFailed || m.rows[0].detail != "nuget restore: exit status 1" {
		t.Errorf("unexpected alpha row %+v", m.rows[0])
	}
	if m.rows[1].status != StatusSkipped || m.rows[1].detail != "D:/beta/beta.sln" {
		t.Errorf("unexpected beta row %+v", m.rows[1])
	}
	if finished, failed := m.counts(); finished != 2 || failed != 1 {
		t.Errorf("expected 2 finished and 1 failed, got %d/%d", finished, failed)
	}
}

func TestRestoreReporterIgnoresUnknownKey(t *testing.T) {
	m := NewRestoreModel(restoreFixture())
	NewRestoreReporter(feed(&m)).Complete(restore.Result{Key: "gamma", Outcome: restore.OutcomeRestored})

	if finished, _ := m.counts(); finished != 0 {
		t.Fatalf("expected no finished rows, got %d", finished)
	}
}

func TestBuildReporterUpdatesRows(t *testing.T) {
	plan := buildFixture()
	m := NewBuildModel(plan)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	m.now = func() time.Time { return now }
	reporter := NewBuildReporter(feed(&m))

	reporter.Start(plan[0])
	if m.rows[0].status != StatusBuilding {
		t.Fatalf("expected building, got %q", m.rows[0].status)
	}
	now = start.Add(2 * time.Second)
	if got := m.cell(m.rows[0], "TIME"); got != "2.0s" {
		t.Fatalf("expected running time 2.0s, got %q", got)
	}
	if finished, _ := m.counts(); finished != 0 {
		t.Fatalf("a running build must not count as finished, got %d", finished)
	}

	reporter.Complete(build.Result{Invocation: plan[0], Outcome: build.OutcomeBuilt, Duration: 1500 * time.Millisecond})
	if m.rows[0].status != StatusBuilt {
		t.Errorf("expected built, got %q", m.rows[0].status)
	}
	if got := m.cell(m.rows[0], "TIME"); got != "1.5s" {
		t.Errorf("expected 1.5s, got %q", got)
	}
	if got := m.cell(m.rows[0], "LOG"); got != plan[0].LogFile {
		t.Errorf("expected log file, got %q", got)
	}
	if m.rows[1].status != StatusPending {
		t.Errorf("expected second row pending, got %q", m.rows[1].status)
	}
}

func TestBuildViewColumnsAndFooter(t *testing.T) {
	plan := buildFixture()
	m := NewBuildModel(plan)
	reporter := NewBuildReporter(feed(&m))
	reporter.Complete(build.Result{Invocation: plan[0], Outcome: build.OutcomeFailed, ExitCode: 1})

	view := m.View()
	for _, want := range []string{"Building solutions", "CONFIGURATION", "PLATFORM", "Release", "failed", "Building 1/2, 1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "...") {
		t.Errorf("expected long log paths to be shortened:\n%s", view)
	}
}

func TestRestoreViewHidesFooterWhenDone(t *testing.T) {
	m := NewRestoreModel(restoreFixture())
	if !strings.Contains(m.View(), "Restoring 0/2") {
		t.Fatalf("expected progress footer, got:\n%s", m.View())
	}

	updated, cmd := m.Update(doneMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if strings.Contains(m.View(), "Restoring 0/2") {
		t.Fatalf("expected no footer once done, got:\n%s", m.View())
	}
	if m.Quit() {
		t.Fatal("finishing the work is not a quit")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyRunes, Runes: []rune("q")}} {
		m := NewRestoreModel(restoreFixture())
		updated, cmd := m.Update(key)
		m = updated.(Model)
		if !m.Quit() || cmd == nil {
			t.Errorf("expected %q to quit", key.String())
		}
	}
}

func TestSpinnerStopsAfterDone(t *testing.T) {
	m := NewRestoreModel(restoreFixture())
	updated, _ := m.Update(doneMsg{})
	m = updated.(Model)

	if _, cmd := m.Update(spinner.TickMsg{}); cmd != nil {
		t.Fatal("expected no further ticks once done")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		tail  bool
		want  string
	}{
		{"short", 10, false, "short"},
		{"exactly10!", 10, false, "exactly10!"},
		{"a long solution name", 10, false, "a long ..."},
		{"D:/src/BuildLog/Debug_x64_build.log", 20, true, "...bug_x64_build.log"},
		{"abcdef", 3, false, "abc"},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width, tt.tail); got != tt.want {
			t.Errorf("fit(%q, %d, %v) = %q, want %q", tt.in, tt.width, tt.tail, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "-"},
		{300 * time.Millisecond, "0.3s"},
		{42 * time.Second, "42.0s"},
		{125 * time.Second, "2m05s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDetectMode(t *testing.T) {
	var buf strings.Builder
	tests := []struct {
		name       string
		noProgress bool
		json       bool
		want       Mode
	}{
		{"json wins", true, true, ModeJSON},
		{"no progress", true, false, ModeLines},
		{"not a terminal", false, false, ModeLines},
	}
	for _, tt := range tests {
		if got := DetectMode(&buf, tt.noProgress, tt.json); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&strings.Builder{}) {
		t.Error("a buffer is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
