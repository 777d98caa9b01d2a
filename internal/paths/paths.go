package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"slnbuild/internal/config"
)

// ConfigFileName is the optional YAML configuration kept in the workspace root.
const ConfigFileName = "slnbuild.yaml"

// WorkspacePaths captures canonical locations for a build workspace.
type WorkspacePaths struct {
	Root             string
	ConfigFile       string
	SettingsFile     string
	SolutionListFile string
	NuGetExe         string
	LogsDir          string
}

// Resolve determines the workspace root using the optional --workspace flag or
// the current working directory when the flag is empty.
func Resolve(workspaceFlag string) (WorkspacePaths, error) {
	var (
		root string
		err  error
	)

	if workspaceFlag != "" {
		root, err = filepath.Abs(workspaceFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return WorkspacePaths{}, fmt.Errorf("resolve workspace root: %w", err)
	}

	return newWorkspacePaths(root), nil
}

func newWorkspacePaths(root string) WorkspacePaths {
	defaults := config.Default()
	return WorkspacePaths{
		Root:             root,
		ConfigFile:       filepath.Join(root, ConfigFileName),
		SettingsFile:     filepath.Join(root, defaults.SettingsFile),
		SolutionListFile: filepath.Join(root, defaults.SolutionList),
		NuGetExe:         filepath.Join(root, defaults.NuGet.Executable),
		LogsDir:          filepath.Join(root, "logs"),
	}
}

// ApplyConfig overrides the default file locations with those from cfg.
// Relative values resolve against the workspace root.
func ApplyConfig(wp WorkspacePaths, cfg config.Config) WorkspacePaths {
	if cfg.SettingsFile != "" {
		wp.SettingsFile = resolveWorkspacePath(wp.Root, cfg.SettingsFile)
	}
	if cfg.SolutionList != "" {
		wp.SolutionListFile = resolveWorkspacePath(wp.Root, cfg.SolutionList)
	}
	if cfg.NuGet.Executable != "" {
		wp.NuGetExe = resolveWorkspacePath(wp.Root, cfg.NuGet.Executable)
	}
	return wp
}

func resolveWorkspacePath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// EnsureLogsDir creates the logs directory beneath the workspace root.
func (p WorkspacePaths) EnsureLogsDir() error {
	if err := os.MkdirAll(p.LogsDir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", p.LogsDir, err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
