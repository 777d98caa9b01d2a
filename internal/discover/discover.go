package discover

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"slnbuild/internal/settings"
)

const solutionExt = ".sln"

// Added describes a record registered during discovery.
type Added struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

// Duplicate describes a solution ignored because its key was already taken.
type Duplicate struct {
	Key      string `json:"key"`
	Path     string `json:"path"`
	Existing string `json:"existing"`
}

// Report summarizes a discovery pass.
type Report struct {
	Roots      []string    `json:"roots"`
	Missing    []string    `json:"missing,omitempty"`
	Added      []Added     `json:"added,omitempty"`
	Duplicates []Duplicate `json:"duplicates,omitempty"`
}

// Discover reads root directories from listPath and registers every solution
// file found directly inside them. Existing records are never modified.
func Discover(listPath string, s *settings.Settings) (Report, error) {
	roots, err := ReadRoots(listPath)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			report.Missing = append(report.Missing, root)
			continue
		}
		report.Roots = append(report.Roots, root)

		solutions, err := listSolutions(root)
		if err != nil {
			return report, err
		}
		for _, path := range solutions {
			key := Key(path)
			if s.Add(key, path) {
				report.Added = append(report.Added, Added{Key: key, Path: path})
				continue
			}
			existing, _ := s.Get(key)
			if existing.Path != path {
				report.Duplicates = append(report.Duplicates, Duplicate{Key: key, Path: path, Existing: existing.Path})
			}
		}
	}
	return report, nil
}

// ReadRoots parses the newline-delimited root list. Blank lines are skipped,
// backslashes become forward slashes and trailing separators are removed.
func ReadRoots(listPath string) ([]string, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open solution list: %w", err)
	}
	defer f.Close()

	var roots []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		root := NormalizeRoot(scanner.Text())
		if root == "" {
			continue
		}
		roots = append(roots, root)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read solution list: %w", err)
	}
	return roots, nil
}

// NormalizeRoot cleans a single line of the root list.
func NormalizeRoot(line string) string {
	line = strings.TrimSpace(strings.ReplaceAll(line, "\r", ""))
	line = strings.ReplaceAll(line, `\`, "/")
	for len(line) > 1 && strings.HasSuffix(line, "/") {
		line = strings.TrimSuffix(line, "/")
	}
	return line
}

// Key derives the record key from a solution path: the file name up to its
// first dot, so My.App.sln is keyed My. Existing build_setting.json files use
// the same keys.
func Key(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	base := path[strings.LastIndex(path, "/")+1:]
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func listSolutions(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), solutionExt) {
			continue
		}
		found = append(found, root+"/"+entry.Name())
	}
	sort.Strings(found)
	return found, nil
}
