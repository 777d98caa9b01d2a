package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"slnbuild/internal/runner"
	"slnbuild/internal/settings"
)

const gameSolution = "Microsoft Visual Studio Solution File, Format Version 12.00\r\n" +
	"Global\r\n" +
	"\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\r\n" +
	"\t\tDebug|x64 = Debug|x64\r\n" +
	"\t\tRelease|x64 = Release|x64\r\n" +
	"\tEndGlobalSection\r\n" +
	"EndGlobal\r\n"

type testWorkspace struct {
	root       string
	srcDir     string
	msbuildDir string
	recorder   *runner.Recorder
}

// newTestWorkspace lays out a workspace with one root holding game.sln and
// tool.sln, a fake MSBuild install and a pre-fetched nuget.exe, and points
// the package globals at it.
func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	msbuildDir := filepath.Join(root, "msbuild")
	for _, dir := range []string{srcDir, msbuildDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	writeFile(t, filepath.Join(srcDir, "game.sln"), gameSolution)
	writeFile(t, filepath.Join(srcDir, "tool.sln"), "Global\r\nEndGlobal\r\n")
	writeFile(t, filepath.Join(msbuildDir, "MSBuild.exe"), "MZ")
	writeFile(t, filepath.Join(root, "nuget.exe"), "MZ")
	writeFile(t, filepath.Join(root, "solution_list.txt"),
		strings.ReplaceAll(srcDir, "/", `\`)+`\`+"\r\n\r\n"+filepath.Join(root, "missing")+"\r\n")
	writeFile(t, filepath.Join(root, "slnbuild.yaml"),
		"msbuild:\n  candidates:\n    - "+filepath.ToSlash(msbuildDir)+"\n  use_registry: false\n")

	tw := &testWorkspace{
		root:       root,
		srcDir:     filepath.ToSlash(srcDir),
		msbuildDir: filepath.ToSlash(msbuildDir),
		recorder:   &runner.Recorder{},
	}

	prevWorkspace, prevJSON, prevPhase, prevPause, prevRunner := workspaceDir, outputJSON, phaseOpts, runNoPause, newRunner
	t.Cleanup(func() {
		workspaceDir, outputJSON, phaseOpts, runNoPause, newRunner = prevWorkspace, prevJSON, prevPhase, prevPause, prevRunner
	})
	workspaceDir = root
	outputJSON = false
	phaseOpts = phaseOptions{}
	runNoPause = true
	newRunner = func() runner.Runner { return tw.recorder }

	return tw
}

func (tw *testWorkspace) settings(t *testing.T) *settings.Settings {
	t.Helper()
	s, err := settings.Load(filepath.Join(tw.root, "build_setting.json"))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	return s
}

func (tw *testWorkspace) callsTo(suffix string) []runner.Call {
	var out []runner.Call
	for _, call := range tw.recorder.Calls() {
		if strings.HasSuffix(call.Command, suffix) {
			out = append(out, call)
		}
	}
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
