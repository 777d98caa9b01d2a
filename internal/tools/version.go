package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"slnbuild/internal/runner"
)

func readVersion(ctx context.Context, r runner.Runner, def ToolDefinition, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%s path is empty", def.Name)
	}

	res, err := r.Run(ctx, path, def.VersionArgs, runner.RunOptions{})
	output := strings.TrimSpace(string(res.Stdout))
	// nuget.exe help exits 0, but older builds return 1 after printing usage.
	if err != nil && output == "" {
		return "", fmt.Errorf("%s version: %w", def.Name, err)
	}
	if output == "" {
		return "", fmt.Errorf("%s version: no output", def.Name)
	}

	switch def.Name {
	case MSBuild:
		return normalizeVersion(lastLine(output)), nil
	case NuGet:
		return normalizeVersion(firstLine(output)), nil
	default:
		return firstLine(output), nil
	}
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

func lastLine(text string) string {
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return text
}

var versionRegex = regexp.MustCompile(`([0-9]+)(?:\.([0-9]+))?(?:\.([0-9]+))?(?:\.([0-9]+))?`)

func normalizeVersion(line string) string {
	match := versionRegex.FindString(line)
	if match == "" {
		return line
	}
	return match
}

func meetsMinimum(version, minimum string) bool {
	if minimum == "" {
		return true
	}
	if version == "" {
		return false
	}

	vParts := numericParts(version)
	mParts := numericParts(minimum)
	for len(vParts) < len(mParts) {
		vParts = append(vParts, 0)
	}
	for len(mParts) < len(vParts) {
		mParts = append(mParts, 0)
	}
	for i := 0; i < len(vParts) && i < len(mParts); i++ {
		if vParts[i] > mParts[i] {
			return true
		}
		if vParts[i] < mParts[i] {
			return false
		}
	}
	return true
}

func numericParts(version string) []int {
	var parts []int
	current := strings.Builder{}
	for _, r := range version {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			val, _ := strconv.Atoi(current.String())
			parts = append(parts, val)
			current.Reset()
		}
	}
	if current.Len() > 0 {
		val, _ := strconv.Atoi(current.String())
		parts = append(parts, val)
	}
	return parts
}
