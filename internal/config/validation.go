package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

var validVerbosities = []string{"quiet", "minimal", "normal", "detailed", "diagnostic", "q", "m", "n", "d", "diag"}

// ValidateStrict runs all validations against the config and returns
// structured results. Relative paths resolve against workspaceRoot.
func (c Config) ValidateStrict(workspaceRoot string) []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateSolutionList(workspaceRoot)...)
	results = append(results, c.validateCandidates()...)
	results = append(results, c.validateVerbosity()...)
	results = append(results, c.validateNuGet()...)
	return results
}

// HasErrors reports whether any result is at error level.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if r.Level == "error" {
			return true
		}
	}
	return false
}

func (c Config) validateSolutionList(workspaceRoot string) []ValidationResult {
	path := strings.TrimSpace(c.SolutionList)
	if path == "" {
		return []ValidationResult{{Level: "error", Message: "solution_list is empty"}}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspaceRoot, path)
	}
	if _, err := os.Stat(path); err != nil {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("solution list %q not found", c.SolutionList),
		}}
	}
	return nil
}

func (c Config) validateCandidates() []ValidationResult {
	var results []ValidationResult
	if len(c.MSBuild.Candidates) == 0 && !c.MSBuild.RegistryEnabled() {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: "no msbuild candidates configured and registry lookup disabled",
		})
	}
	for i, dir := range c.MSBuild.Candidates {
		if strings.TrimSpace(dir) == "" {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("msbuild.candidates[%d] is blank", i),
			})
		}
	}
	return results
}

func (c Config) validateVerbosity() []ValidationResult {
	v := strings.ToLower(strings.TrimSpace(c.MSBuild.Verbosity))
	for _, ok := range validVerbosities {
		if v == ok {
			return nil
		}
	}
	return []ValidationResult{{
		Level:   "error",
		Message: fmt.Sprintf("msbuild.verbosity %q is not a known logger verbosity", c.MSBuild.Verbosity),
	}}
}

func (c Config) validateNuGet() []ValidationResult {
	var results []ValidationResult
	parsed, err := url.Parse(c.NuGet.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("nuget.url %q is not an http(s) url", c.NuGet.URL),
		})
	}
	if strings.ContainsAny(c.NuGet.Executable, `/\`) {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("nuget.executable %q contains a path separator; it is resolved against the workspace", c.NuGet.Executable),
		})
	}
	return results
}
