// Package extract refreshes the configuration and platform sets of each
// registered solution from its solution file.
package extract

import (
	"fmt"

	"slnbuild/internal/settings"
	"slnbuild/internal/sln"
)

type Outcome string

const (
	OutcomeUpdated Outcome = "updated"
	OutcomeIgnored Outcome = "ignored"
	OutcomeFailed  Outcome = "failed"
)

// Result is the outcome for one record.
type Result struct {
	Key            string   `json:"key"`
	Path           string   `json:"path"`
	Outcome        Outcome  `json:"outcome"`
	SectionFound   bool     `json:"section_found"`
	Configurations []string `json:"configurations,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Report collects the per-record results of an extraction pass.
type Report struct {
	Results []Result `json:"results"`
}

// Count returns the number of results with the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Warnings returns every warning prefixed with its record key.
func (r Report) Warnings() []string {
	var out []string
	for _, res := range r.Results {
		for _, w := range res.Warnings {
			out = append(out, res.Key+": "+w)
		}
	}
	return out
}

// Run overwrites the configuration and platform sets of every record whose
// ignore-update flag is clear. A solution without the section ends up with
// empty sets. A solution that cannot be read is reported and left unchanged.
func Run(s *settings.Settings) Report {
	var report Report
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		res := Result{Key: key, Path: rec.Path}

		if rec.IgnoreUpdate {
			res.Outcome = OutcomeIgnored
			res.Configurations = rec.BuildSettings.Configurations
			res.Platforms = rec.BuildSettings.Platforms
			report.Results = append(report.Results, res)
			continue
		}

		section, err := sln.ParseFile(rec.Path)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Error = err.Error()
			report.Results = append(report.Results, res)
			continue
		}

		rec.BuildSettings = settings.BuildSettings{
			Configurations: section.Configurations(),
			Platforms:      section.Platforms(),
		}
		s.Set(key, rec)

		res.Outcome = OutcomeUpdated
		res.SectionFound = section.Found
		res.Configurations = rec.BuildSettings.Configurations
		res.Platforms = rec.BuildSettings.Platforms
		if !section.Found {
			res.Warnings = append(res.Warnings, "no SolutionConfigurationPlatforms section; nothing to build")
		}
		for _, m := range section.Mismatched {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: unsupported cross mapping %s = %s, building %s", m.Line, m.Source, m.Target, m.Source))
		}
		report.Results = append(report.Results, res)
	}
	return report
}
