package tools

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a tool cannot be located.
var ErrNotFound = errors.New("not found")

// MSBuildExe returns the MSBuild.exe path inside dir, using forward slashes
// like the persisted settings do.
func MSBuildExe(dir string) string {
	dir = strings.TrimRight(strings.ReplaceAll(dir, `\`, "/"), "/")
	return dir + "/" + MSBuildExecutable
}

// LocateMSBuild probes candidate directories in order and returns the first
// containing MSBuild.exe. When none match and useRegistry is set, the
// MSBuild tools path recorded in the Windows registry is tried last.
func LocateMSBuild(candidates []string, useRegistry bool) (string, Source, error) {
	for _, dir := range candidates {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if hasMSBuild(dir) {
			return dir, SourceCandidate, nil
		}
	}

	if useRegistry {
		if dir, ok := registryMSBuildDir(); ok && hasMSBuild(dir) {
			return filepath.ToSlash(dir), SourceRegistry, nil
		}
	}
	return "", SourceUnknown, ErrNotFound
}

func hasMSBuild(dir string) bool {
	info, err := os.Stat(filepath.FromSlash(MSBuildExe(dir)))
	return err == nil && info.Mode().IsRegular()
}
