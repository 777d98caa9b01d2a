package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slnbuild/internal/runner"
)

// DetectOptions tells Detect where to look.
type DetectOptions struct {
	// MSBuildDir is the directory stored in the settings document, if any.
	MSBuildDir  string
	Candidates  []string
	UseRegistry bool
	NuGetExe    string
}

// Detect returns the status of MSBuild and nuget.exe. It never downloads or
// writes anything.
func Detect(ctx context.Context, r runner.Runner, opts DetectOptions) []Status {
	if r == nil {
		r = runner.CmdRunner{}
	}
	return []Status{
		detectMSBuild(ctx, r, opts),
		detectNuGet(ctx, r, opts),
	}
}

func detectMSBuild(ctx context.Context, r runner.Runner, opts DetectOptions) Status {
	def, _ := Definition(MSBuild)
	status := Status{Tool: MSBuild, Minimum: def.MinimumVersion}

	dir := strings.TrimSpace(opts.MSBuildDir)
	switch {
	case dir != "" && hasMSBuild(dir):
		status.Source = SourceSettings
	case dir != "":
		status.Notes = append(status.Notes, fmt.Sprintf("configured MSBuild path %s has no %s", dir, MSBuildExecutable))
		dir = ""
	default:
		status.Notes = append(status.Notes, "settings have no MSBuild path")
	}

	if dir == "" {
		located, source, err := LocateMSBuild(opts.Candidates, opts.UseRegistry)
		if err != nil {
			status.Error = fmt.Sprintf("%s %v", MSBuildExecutable, err)
			status.Notes = append(status.Notes, installHints(MSBuild)...)
			return status
		}
		dir = located
		status.Source = source
	}

	status.Path = MSBuildExe(dir)
	return withVersion(ctx, r, def, status)
}

func detectNuGet(ctx context.Context, r runner.Runner, opts DetectOptions) Status {
	def, _ := Definition(NuGet)
	status := Status{Tool: NuGet, Path: opts.NuGetExe}

	info, err := os.Stat(filepath.FromSlash(opts.NuGetExe))
	if err != nil || !info.Mode().IsRegular() {
		status.Error = fmt.Sprintf("%s %v", def.Executable, ErrNotFound)
		status.Notes = installHints(NuGet)
		return status
	}
	status.Source = SourceWorkspace
	if checksum, err := computeChecksum(opts.NuGetExe); err == nil {
		status.Checksum = checksum
	}
	return withVersion(ctx, r, def, status)
}

func withVersion(ctx context.Context, r runner.Runner, def ToolDefinition, status Status) Status {
	version, err := readVersion(ctx, r, def, status.Path)
	if err != nil {
		// Present but not runnable here (e.g. a Windows binary on another OS).
		status.Satisfied = true
		status.Notes = append(status.Notes, fmt.Sprintf("version unknown: %v", err))
		return status
	}
	status.Version = version
	status.Satisfied = meetsMinimum(version, def.MinimumVersion)
	if !status.Satisfied {
		status.Error = fmt.Sprintf("version %s below minimum %s", version, def.MinimumVersion)
	}
	return status
}
