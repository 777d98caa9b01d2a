package cli

import (
	"fmt"
	"io"

	"slnbuild/internal/build"
	"slnbuild/internal/restore"
	"slnbuild/internal/tui"
)

// lineRestoreReporter prints one line per finished restore.
type lineRestoreReporter struct {
	out io.Writer
}

func (r lineRestoreReporter) Start(key, path string) {}

func (r lineRestoreReporter) Complete(res restore.Result) {
	if res.Outcome == restore.OutcomeSkipped {
		return
	}
	line := fmt.Sprintf("  %-9s %s", res.Outcome, res.Key)
	if res.Error != "" {
		line += "  " + res.Error
	}
	fmt.Fprintln(r.out, line)
}

// lineBuildReporter prints one line per started and finished build.
type lineBuildReporter struct {
	out io.Writer
}

func (r lineBuildReporter) Start(inv build.Invocation) {
	fmt.Fprintf(r.out, "  building  %s\n", inv.Label())
}

func (r lineBuildReporter) Complete(res build.Result) {
	line := fmt.Sprintf("  %-9s %s (%s)", res.Outcome, res.Invocation.Label(), tui.FormatDuration(res.Duration))
	if res.Error != "" {
		line += "  " + res.Error + ", see " + res.Invocation.LogFile
	}
	fmt.Fprintln(r.out, line)
}

var (
	_ restore.Reporter = lineRestoreReporter{}
	_ build.Reporter   = lineBuildReporter{}
)
