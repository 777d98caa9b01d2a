package tui

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
)

// Mode is how a restore or build phase reports progress.
type Mode int

const (
	// ModeTable draws the live bubbletea table.
	ModeTable Mode = iota
	// ModeLines prints one line per finished restore or build.
	ModeLines
	// ModeJSON prints nothing while working; the run report follows at the end.
	ModeJSON
)

// DetectMode applies --json first, then --no-progress. Without either, the
// table is only drawn when out is a terminal that can redraw it: redirected
// output, CI logs and TERM=dumb get lines.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) Mode {
	switch {
	case jsonOutput:
		return ModeJSON
	case noProgress, !IsTerminal(out), os.Getenv("CI") != "":
		return ModeLines
	}
	if runtime.GOOS != "windows" {
		if term := os.Getenv("TERM"); term == "" || strings.EqualFold(term, "dumb") {
			return ModeLines
		}
	}
	return ModeTable
}

// IsTerminal reports whether v is a console. MSYS2 and Cygwin ptys, as used
// by Git Bash, count as consoles.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
