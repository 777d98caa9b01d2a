package extract

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"slnbuild/internal/settings"
)

const solutionText = "Microsoft Visual Studio Solution File, Format Version 12.00\r\n" +
	"Global\r\n" +
	"\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\r\n" +
	"\t\tDebug|x64 = Debug|x64\r\n" +
	"\t\tRelease|x64 = Release|x64\r\n" +
	"\tEndGlobalSection\r\n" +
	"EndGlobal\r\n"

func writeSolution(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return filepath.ToSlash(path)
}

func TestRunOverwritesSets(t *testing.T) {
	dir := t.TempDir()
	s := settings.New("")
	s.Add("game", writeSolution(t, dir, "game.sln", solutionText))
	rec, _ := s.Get("game")
	rec.BuildSettings = settings.BuildSettings{Configurations: []string{"Profile"}, Platforms: []string{"Win32"}}
	s.Set("game", rec)

	report := Run(s)

	rec, _ = s.Get("game")
	if !reflect.DeepEqual(rec.BuildSettings.Configurations, []string{"Debug", "Release"}) {
		t.Fatalf("unexpected configurations %v", rec.BuildSettings.Configurations)
	}
	if !reflect.DeepEqual(rec.BuildSettings.Platforms, []string{"x64"}) {
		t.Fatalf("unexpected platforms %v", rec.BuildSettings.Platforms)
	}
	if report.Count(OutcomeUpdated) != 1 || len(report.Warnings()) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRunKeepsIgnoredRecords(t *testing.T) {
	dir := t.TempDir()
	s := settings.New("")
	s.Add("tool", writeSolution(t, dir, "tool.sln", solutionText))
	rec, _ := s.Get("tool")
	rec.IgnoreUpdate = true
	rec.BuildSettings = settings.BuildSettings{Configurations: []string{"Shipping"}, Platforms: []string{"ARM64"}}
	s.Set("tool", rec)

	report := Run(s)

	after, _ := s.Get("tool")
	if !reflect.DeepEqual(after.BuildSettings, rec.BuildSettings) {
		t.Fatalf("ignored record changed: %+v", after.BuildSettings)
	}
	if report.Count(OutcomeIgnored) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRunMissingSectionYieldsEmptySets(t *testing.T) {
	dir := t.TempDir()
	s := settings.New("")
	s.Add("empty", writeSolution(t, dir, "empty.sln", "Global\r\nEndGlobal\r\n"))
	rec, _ := s.Get("empty")
	rec.BuildSettings.Configurations = []string{"Debug"}
	s.Set("empty", rec)

	report := Run(s)

	rec, _ = s.Get("empty")
	if len(rec.BuildSettings.Configurations) != 0 || len(rec.BuildSettings.Platforms) != 0 {
		t.Fatalf("expected empty sets, got %+v", rec.BuildSettings)
	}
	if rec.Combinations() != 0 {
		t.Fatalf("expected zero combinations, got %d", rec.Combinations())
	}
	if report.Count(OutcomeUpdated) != 1 || len(report.Results[0].Warnings) != 1 {
		t.Fatalf("expected a warning-only update, got %+v", report)
	}
}

func TestRunUnreadableSolutionLeavesRecord(t *testing.T) {
	s := settings.New("")
	s.Add("gone", filepath.ToSlash(filepath.Join(t.TempDir(), "gone.sln")))
	rec, _ := s.Get("gone")
	rec.BuildSettings = settings.BuildSettings{Configurations: []string{"Debug"}, Platforms: []string{"x86"}}
	s.Set("gone", rec)

	report := Run(s)

	after, _ := s.Get("gone")
	if !reflect.DeepEqual(after.BuildSettings, rec.BuildSettings) {
		t.Fatalf("unreadable record changed: %+v", after.BuildSettings)
	}
	if report.Count(OutcomeFailed) != 1 || report.Results[0].Error == "" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRunWarnsOnCrossMapping(t *testing.T) {
	dir := t.TempDir()
	text := "Global\n" +
		"\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\n" +
		"\t\tDebug|Any CPU = Debug|x64\n" +
		"\tEndGlobalSection\n" +
		"EndGlobal\n"
	s := settings.New("")
	s.Add("mixed", writeSolution(t, dir, "mixed.sln", text))

	report := Run(s)

	rec, _ := s.Get("mixed")
	if !reflect.DeepEqual(rec.BuildSettings.Platforms, []string{"AnyCPU"}) {
		t.Fatalf("expected left-hand platform, got %v", rec.BuildSettings.Platforms)
	}
	warnings := report.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "unsupported cross mapping") {
		t.Fatalf("unexpected warnings %v", warnings)
	}
}
