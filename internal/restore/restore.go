// Package restore runs `nuget restore` for solutions that have not been
// restored yet.
package restore

import (
	"context"
	"fmt"
	"strings"

	"slnbuild/internal/runner"
	"slnbuild/internal/settings"
)

type Outcome string

const (
	OutcomeRestored Outcome = "restored"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
)

// Result is the outcome for one record.
type Result struct {
	Key     string  `json:"key"`
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
	Output  string  `json:"-"`
}

// Report collects the per-record results of a restore pass.
type Report struct {
	Results []Result `json:"results"`
}

// Count returns the number of results with the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failed returns the failed results.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

// Reporter receives progress events. Implementations must be safe to call from
// the goroutine running Restore.
type Reporter interface {
	Start(key, path string)
	Complete(res Result)
}

// Options tunes a restore pass.
type Options struct {
	Reporter Reporter
}

// Restore invokes `<nugetExe> restore <path>` for every record that is not yet
// restored, in key order. A failure leaves the record unrestored and the pass
// continues. The caller is responsible for saving s afterwards.
func Restore(ctx context.Context, r runner.Runner, nugetExe string, s *settings.Settings, opts Options) Report {
	if r == nil {
		r = runner.CmdRunner{}
	}

	var report Report
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		if rec.Restored {
			res := Result{Key: key, Path: rec.Path, Outcome: OutcomeSkipped}
			report.Results = append(report.Results, res)
			if opts.Reporter != nil {
				opts.Reporter.Complete(res)
			}
			continue
		}

		if opts.Reporter != nil {
			opts.Reporter.Start(key, rec.Path)
		}

		res := Result{Key: key, Path: rec.Path}
		out, err := r.Run(ctx, nugetExe, []string{"restore", rec.Path}, runner.RunOptions{})
		res.Output = strings.TrimSpace(string(out.Stdout))
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Error = describeFailure(err, out)
		} else {
			res.Outcome = OutcomeRestored
			rec.Restored = true
			s.Set(key, rec)
		}

		report.Results = append(report.Results, res)
		if opts.Reporter != nil {
			opts.Reporter.Complete(res)
		}
	}
	return report
}

// Pending reports whether any record still needs a restore.
func Pending(s *settings.Settings) bool {
	for _, key := range s.Keys() {
		if rec, _ := s.Get(key); !rec.Restored {
			return true
		}
	}
	return false
}

// Unavailable reports every unrestored record as failed with cause, without
// running anything. It is used when nuget.exe could not be obtained.
func Unavailable(s *settings.Settings, cause error, opts Options) Report {
	var report Report
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		res := Result{Key: key, Path: rec.Path, Outcome: OutcomeSkipped}
		if !rec.Restored {
			res.Outcome = OutcomeFailed
			res.Error = fmt.Sprintf("nuget.exe unavailable: %v", cause)
		}
		report.Results = append(report.Results, res)
		if opts.Reporter != nil {
			opts.Reporter.Complete(res)
		}
	}
	return report
}

func describeFailure(err error, out runner.RunResult) string {
	msg := fmt.Sprintf("nuget restore: %v", err)
	if stderr := strings.TrimSpace(string(out.Stderr)); stderr != "" {
		msg += ": " + lastLine(stderr)
	}
	return msg
}

func lastLine(text string) string {
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return text
}
