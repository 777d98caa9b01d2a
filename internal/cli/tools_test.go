package cli

import (
	"strings"
	"testing"

	"slnbuild/internal/settings"
)

func TestToolsLocateRecordsMSBuild(t *testing.T) {
	tw := newTestWorkspace(t)
	if _, err := settings.Init(tw.root+"/build_setting.json", ""); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, newToolsLocateCmd())
	if err != nil {
		t.Fatalf("tools locate: %v", err)
	}
	if !strings.Contains(stdout, "MSBuild path set to "+tw.msbuildDir) {
		t.Fatalf("unexpected output %q", stdout)
	}
	if got := tw.settings(t).MSBuildPath; got != tw.msbuildDir {
		t.Fatalf("expected MSBuild path %s, got %s", tw.msbuildDir, got)
	}
}

func TestToolsLocateKeepsExistingPath(t *testing.T) {
	tw := newTestWorkspace(t)
	if _, err := settings.Init(tw.root+"/build_setting.json", "D:/Custom/MSBuild"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, newToolsLocateCmd()); err != nil {
		t.Fatalf("tools locate: %v", err)
	}
	if got := tw.settings(t).MSBuildPath; got != "D:/Custom/MSBuild" {
		t.Fatalf("expected existing path to be kept, got %s", got)
	}

	if _, _, err := execute(t, newToolsLocateCmd(), "--force"); err != nil {
		t.Fatalf("tools locate --force: %v", err)
	}
	if got := tw.settings(t).MSBuildPath; got != tw.msbuildDir {
		t.Fatalf("expected --force to re-probe, got %s", got)
	}
}

func TestToolsInstallRejectsMSBuild(t *testing.T) {
	newTestWorkspace(t)
	_, _, err := execute(t, newToolsInstallCmd(), "msbuild")
	if err == nil || !strings.Contains(err.Error(), "cannot be installed automatically") {
		t.Fatalf("expected msbuild install error, got %v", err)
	}
}

func TestToolsInstallKeepsExistingNuGet(t *testing.T) {
	newTestWorkspace(t)
	stdout, _, err := execute(t, newToolsInstallCmd(), "nuget")
	if err != nil {
		t.Fatalf("tools install: %v", err)
	}
	if !strings.Contains(stdout, "workspace") {
		t.Fatalf("expected the workspace copy to be reported, got %q", stdout)
	}
}

func TestToolsListTable(t *testing.T) {
	tw := newTestWorkspace(t)
	stdout, _, err := execute(t, newToolsListCmd())
	if err != nil {
		t.Fatalf("tools list: %v", err)
	}
	if !strings.Contains(stdout, "msbuild") || !strings.Contains(stdout, "nuget") {
		t.Fatalf("expected both tools, got %q", stdout)
	}
	if !strings.Contains(stdout, tw.msbuildDir+"/MSBuild.exe") {
		t.Fatalf("expected MSBuild path, got %q", stdout)
	}
}

func TestToolsInstallUnknownTool(t *testing.T) {
	newTestWorkspace(t)
	_, _, err := execute(t, newToolsInstallCmd(), "cmake")
	if err == nil || !strings.Contains(err.Error(), "known: msbuild, nuget") {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
}
