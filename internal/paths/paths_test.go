package paths

import (
	"os"
	"path/filepath"
	"testing"

	"slnbuild/internal/config"
)

func TestResolveDefaults(t *testing.T) {
	root := t.TempDir()
	wp, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if wp.SettingsFile != filepath.Join(root, "build_setting.json") {
		t.Fatalf("unexpected settings path %s", wp.SettingsFile)
	}
	if wp.SolutionListFile != filepath.Join(root, "solution_list.txt") {
		t.Fatalf("unexpected list path %s", wp.SolutionListFile)
	}
	if wp.NuGetExe != filepath.Join(root, "nuget.exe") {
		t.Fatalf("unexpected nuget path %s", wp.NuGetExe)
	}
	if wp.ConfigFile != filepath.Join(root, ConfigFileName) {
		t.Fatalf("unexpected config path %s", wp.ConfigFile)
	}
}

func TestApplyConfigRelative(t *testing.T) {
	root := t.TempDir()
	wp := newWorkspacePaths(root)

	cfg := config.Default()
	cfg.SettingsFile = "state/settings.json"
	cfg.SolutionList = "roots.txt"

	applied := ApplyConfig(wp, cfg)

	if applied.SettingsFile != filepath.Join(root, "state/settings.json") {
		t.Fatalf("expected settings path under root, got %s", applied.SettingsFile)
	}
	if applied.SolutionListFile != filepath.Join(root, "roots.txt") {
		t.Fatalf("expected list path under root, got %s", applied.SolutionListFile)
	}
}

func TestApplyConfigAbsolute(t *testing.T) {
	root := t.TempDir()
	wp := newWorkspacePaths(root)

	listAbs := filepath.Join(t.TempDir(), "roots.txt")
	cfg := config.Default()
	cfg.SolutionList = listAbs

	applied := ApplyConfig(wp, cfg)
	if applied.SolutionListFile != listAbs {
		t.Fatalf("expected list path %s, got %s", listAbs, applied.SolutionListFile)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("FileExists(file) = %v, %v", ok, err)
	}
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("FileExists(dir) = %v, %v", ok, err)
	}
	if ok, err := DirExists(dir); err != nil || !ok {
		t.Fatalf("DirExists(dir) = %v, %v", ok, err)
	}
	if ok, err := DirExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("DirExists(missing) = %v, %v", ok, err)
	}
}
