package restore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slnbuild/internal/runner"
	"slnbuild/internal/settings"
)

func newSettings() *settings.Settings {
	s := settings.New("C:/MSBuild/Current/Bin")
	s.Add("alpha", "D:/src/alpha/alpha.sln")
	s.Add("beta", "D:/src/beta/beta.sln")
	s.Add("gamma", "D:/src/gamma/gamma.sln")
	return s
}

func TestRestoreFailureDoesNotStopLaterRecords(t *testing.T) {
	s := newSettings()
	rec := &runner.Recorder{Handle: func(call runner.Call) (runner.RunResult, error) {
		if strings.Contains(call.Args[1], "alpha") {
			return runner.RunResult{Stderr: []byte("Unable to find version 1.2.3\n"), ExitCode: 1}, &runner.ExitError{Code: 1}
		}
		return runner.RunResult{}, nil
	}}

	report := Restore(context.Background(), rec, "nuget.exe", s, Options{})

	calls := rec.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 restore calls, got %d", len(calls))
	}
	for i, key := range []string{"alpha", "beta", "gamma"} {
		if calls[i].Command != "nuget.exe" || calls[i].Args[0] != "restore" || !strings.Contains(calls[i].Args[1], key) {
			t.Fatalf("unexpected call %d: %+v", i, calls[i])
		}
	}

	alpha, _ := s.Get("alpha")
	if alpha.Restored {
		t.Fatal("failed restore must leave restored=false")
	}
	for _, key := range []string{"beta", "gamma"} {
		rec, _ := s.Get(key)
		if !rec.Restored {
			t.Fatalf("expected %s to be restored", key)
		}
	}

	if report.Count(OutcomeFailed) != 1 || report.Count(OutcomeRestored) != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	failed := report.Failed()
	if failed[0].Key != "alpha" || !strings.Contains(failed[0].Error, "Unable to find version") {
		t.Fatalf("unexpected failure %+v", failed[0])
	}
}

func TestRestoreSkipsRestoredRecords(t *testing.T) {
	s := newSettings()
	beta, _ := s.Get("beta")
	beta.Restored = true
	s.Set("beta", beta)

	rec := &runner.Recorder{}
	report := Restore(context.Background(), rec, "nuget.exe", s, Options{})

	if len(rec.Calls()) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(rec.Calls()))
	}
	if report.Count(OutcomeSkipped) != 1 {
		t.Fatalf("expected one skipped result, got %+v", report)
	}
}

func TestRestoreRetriesFailedRecordOnNextPass(t *testing.T) {
	s := newSettings()
	fail := true
	rec := &runner.Recorder{Handle: func(call runner.Call) (runner.RunResult, error) {
		if fail && strings.Contains(call.Args[1], "gamma") {
			return runner.RunResult{}, errors.New("network down")
		}
		return runner.RunResult{}, nil
	}}

	Restore(context.Background(), rec, "nuget.exe", s, Options{})
	fail = false
	report := Restore(context.Background(), rec, "nuget.exe", s, Options{})

	if report.Count(OutcomeRestored) != 1 || report.Count(OutcomeSkipped) != 2 {
		t.Fatalf("unexpected second pass %+v", report)
	}
	gamma, _ := s.Get("gamma")
	if !gamma.Restored {
		t.Fatal("expected gamma to be restored on retry")
	}
}

type recordingReporter struct {
	started   []string
	completed []Result
}

func (r *recordingReporter) Start(key, _ string) { r.started = append(r.started, key) }
func (r *recordingReporter) Complete(res Result) { r.completed = append(r.completed, res) }

func TestRestoreReportsProgress(t *testing.T) {
	s := newSettings()
	alpha, _ := s.Get("alpha")
	alpha.Restored = true
	s.Set("alpha", alpha)

	reporter := &recordingReporter{}
	Restore(context.Background(), &runner.Recorder{}, "nuget.exe", s, Options{Reporter: reporter})

	if strings.Join(reporter.started, ",") != "beta,gamma" {
		t.Fatalf("unexpected starts %v", reporter.started)
	}
	if len(reporter.completed) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(reporter.completed))
	}
}

func TestPending(t *testing.T) {
	s := newSettings()
	if !Pending(s) {
		t.Fatal("fresh records need a restore")
	}
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		rec.Restored = true
		s.Set(key, rec)
	}
	if Pending(s) {
		t.Fatal("no record should be pending once all are restored")
	}
	if Pending(settings.New("")) {
		t.Fatal("empty settings have nothing pending")
	}
}

func TestUnavailableFailsOnlyUnrestoredRecords(t *testing.T) {
	s := newSettings()
	beta, _ := s.Get("beta")
	beta.Restored = true
	s.Set("beta", beta)

	report := Unavailable(s, errors.New("connection refused"), Options{})

	if report.Count(OutcomeFailed) != 2 || report.Count(OutcomeSkipped) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	failed := report.Failed()
	if failed[0].Key != "alpha" || !strings.Contains(failed[0].Error, "nuget.exe unavailable: connection refused") {
		t.Fatalf("unexpected failure %+v", failed[0])
	}
	alpha, _ := s.Get("alpha")
	if alpha.Restored {
		t.Fatal("record must stay unrestored")
	}
}
