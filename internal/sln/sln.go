// Package sln reads the solution configuration platforms section of Visual
// Studio solution files.
package sln

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	sectionMarker = "GlobalSection(SolutionConfigurationPlatforms)"
	endMarker     = "EndGlobalSection"
)

// Pair is one configuration/platform combination declared by a solution.
type Pair struct {
	Configuration string `json:"configuration"`
	Platform      string `json:"platform"`
}

func (p Pair) String() string {
	return p.Configuration + "|" + p.Platform
}

// Mapping is a body line whose right-hand side differs from its left-hand side.
type Mapping struct {
	Line   int  `json:"line"`
	Source Pair `json:"source"`
	Target Pair `json:"target"`
}

// Section is the parsed SolutionConfigurationPlatforms block.
type Section struct {
	Found      bool      `json:"found"`
	Pairs      []Pair    `json:"pairs"`
	Mismatched []Mapping `json:"mismatched,omitempty"`
	Skipped    []int     `json:"skipped,omitempty"`
}

// Configurations returns the distinct configuration names, sorted.
func (s Section) Configurations() []string {
	values := make([]string, 0, len(s.Pairs))
	for _, p := range s.Pairs {
		values = append(values, p.Configuration)
	}
	return distinct(values)
}

// Platforms returns the distinct platform names, sorted.
func (s Section) Platforms() []string {
	values := make([]string, 0, len(s.Pairs))
	for _, p := range s.Pairs {
		values = append(values, p.Platform)
	}
	return distinct(values)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return Section{}, fmt.Errorf("open solution: %w", err)
	}
	defer f.Close()

	section, err := Parse(f)
	if err != nil {
		return Section{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return section, nil
}

// Parse scans solution text for the first SolutionConfigurationPlatforms
// section. Input may carry a UTF-8 or UTF-16 byte order mark. A solution
// without the section yields a zero Section and no error.
func Parse(r io.Reader) (Section, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		section Section
		inside  bool
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if !inside {
			if strings.Contains(line, sectionMarker) {
				inside = true
				section.Found = true
			}
			continue
		}
		if strings.Contains(line, endMarker) {
			break
		}

		source, target, ok := parseLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				section.Skipped = append(section.Skipped, lineNo)
			}
			continue
		}
		section.Pairs = append(section.Pairs, source)
		if target != nil && *target != source {
			section.Mismatched = append(section.Mismatched, Mapping{Line: lineNo, Source: source, Target: *target})
		}
	}
	if err := scanner.Err(); err != nil {
		return Section{}, fmt.Errorf("scan solution: %w", err)
	}
	return section, nil
}

// blanks strips spaces and tabs; other whitespace is kept as part of a name.
var blanks = strings.NewReplacer(" ", "", "\t", "")

// parseLine handles "\t\tDebug|x64 = Debug|x64". Spaces and tabs are removed
// before splitting, so "Any CPU" reads as "AnyCPU".
func parseLine(line string) (Pair, *Pair, bool) {
	compact := blanks.Replace(line)
	if compact == "" {
		return Pair{}, nil, false
	}

	left, right, hasRight := strings.Cut(compact, "=")
	source, ok := splitPair(left)
	if !ok {
		return Pair{}, nil, false
	}
	if !hasRight {
		return source, nil, true
	}
	target, ok := splitPair(right)
	if !ok {
		return source, nil, true
	}
	return source, &target, true
}

func splitPair(value string) (Pair, bool) {
	config, platform, ok := strings.Cut(value, "|")
	if !ok || config == "" || platform == "" {
		return Pair{}, false
	}
	return Pair{Configuration: config, Platform: platform}, true
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
