// Package build runs MSBuild once per configuration and platform of every
// registered solution.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"slnbuild/internal/runner"
	"slnbuild/internal/settings"
	"slnbuild/internal/tools"
)

// ErrNoMSBuild is returned by RunAll when the settings carry no MSBuild path.
var ErrNoMSBuild = errors.New("no MSBuild path configured")

const (
	DefaultTarget    = "build"
	DefaultVerbosity = "minimal"
	DefaultLogDir    = "BuildLog"
)

// Options controls how invocations are constructed and reported.
type Options struct {
	Target    string
	Verbosity string
	// LogDir is created next to each solution file.
	LogDir   string
	Reporter Reporter
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Target) == "" {
		o.Target = DefaultTarget
	}
	if strings.TrimSpace(o.Verbosity) == "" {
		o.Verbosity = DefaultVerbosity
	}
	if strings.TrimSpace(o.LogDir) == "" {
		o.LogDir = DefaultLogDir
	}
	return o
}

// Reporter receives progress events from RunAll.
type Reporter interface {
	Start(inv Invocation)
	Complete(res Result)
}

// Invocation is a single MSBuild run.
type Invocation struct {
	Key           string   `json:"key"`
	Solution      string   `json:"solution"`
	Configuration string   `json:"configuration"`
	Platform      string   `json:"platform"`
	LogFile       string   `json:"log_file"`
	Command       string   `json:"command"`
	Args          []string `json:"args"`
}

// Label is "key Configuration|Platform".
func (i Invocation) Label() string {
	return fmt.Sprintf("%s %s|%s", i.Key, i.Configuration, i.Platform)
}

type Outcome string

const (
	OutcomeBuilt  Outcome = "built"
	OutcomeFailed Outcome = "failed"
)

// Result is the outcome of one invocation.
type Result struct {
	Invocation Invocation    `json:"invocation"`
	Outcome    Outcome       `json:"outcome"`
	ExitCode   int           `json:"exit_code"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

// Report collects the results of a build pass.
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

// Failed returns the failed results.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

// Plan expands every record into its full configuration x platform cross
// product, in key, configuration, platform order. Records with an empty set
// contribute nothing.
func Plan(s *settings.Settings, opts Options) []Invocation {
	opts = opts.withDefaults()
	command := tools.MSBuildExe(s.MSBuildPath)

	var plan []Invocation
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		solution := strings.ReplaceAll(rec.Path, `\`, "/")
		logDir := path.Join(path.Dir(solution), opts.LogDir)
		for _, configuration := range rec.BuildSettings.Configurations {
			for _, platform := range rec.BuildSettings.Platforms {
				logFile := logDir + "/" + configuration + "_" + platform + "_build.log"
				plan = append(plan, Invocation{
					Key:           key,
					Solution:      solution,
					Configuration: configuration,
					Platform:      platform,
					LogFile:       logFile,
					Command:       command,
					Args: []string{
						solution,
						"/t:" + opts.Target,
						"/p:configuration=" + configuration,
						"/p:Platform=" + platform,
						"/fileLoggerParameters:LogFile=" + logFile + ";Verbosity=" + opts.Verbosity,
					},
				})
			}
		}
	}
	return plan
}

// RunAll executes the plan sequentially. A failing invocation is recorded and
// the remaining ones still run. Nothing is written back to s.
func RunAll(ctx context.Context, r runner.Runner, s *settings.Settings, opts Options) (Report, error) {
	if strings.TrimSpace(s.MSBuildPath) == "" {
		return Report{}, ErrNoMSBuild
	}
	if r == nil {
		r = runner.CmdRunner{}
	}

	var report Report
	for _, inv := range Plan(s, opts) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if opts.Reporter != nil {
			opts.Reporter.Start(inv)
		}
		res := runOne(ctx, r, inv)
		report.Results = append(report.Results, res)
		if opts.Reporter != nil {
			opts.Reporter.Complete(res)
		}
	}
	return report, nil
}

func runOne(ctx context.Context, r runner.Runner, inv Invocation) Result {
	res := Result{Invocation: inv}
	start := time.Now()

	if err := os.MkdirAll(path.Dir(inv.LogFile), 0o755); err != nil {
		res.Outcome = OutcomeFailed
		res.ExitCode = -1
		res.Error = fmt.Sprintf("create log dir: %v", err)
		res.Duration = time.Since(start)
		return res
	}

	out, err := r.Run(ctx, inv.Command, inv.Args, runner.RunOptions{})
	res.ExitCode = out.ExitCode
	res.Duration = time.Since(start)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Error = fmt.Sprintf("msbuild: %v", err)
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}
		return res
	}
	res.Outcome = OutcomeBuilt
	return res
}
