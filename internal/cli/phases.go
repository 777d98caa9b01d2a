package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"slnbuild/internal/build"
	"slnbuild/internal/discover"
	"slnbuild/internal/extract"
	"slnbuild/internal/restore"
	"slnbuild/internal/runner"
	"slnbuild/internal/tools"
	"slnbuild/internal/tui"
)

// newRunner is swapped out in tests so no real process is started.
var newRunner = func() runner.Runner { return runner.CmdRunner{} }

// runDiscoverPhase loads the settings, registers new solutions and saves.
func runDiscoverPhase(cmd *cobra.Command, ws *workspace, report *runReport) error {
	s, err := ws.loadSettings()
	if err != nil {
		return err
	}

	res, err := discover.Discover(ws.paths.SolutionListFile, s)
	if err != nil {
		return err
	}
	for _, root := range res.Missing {
		ws.logger.Printf("discover: skipped missing root %s", root)
	}
	for _, added := range res.Added {
		ws.logger.Printf("discover: added %s -> %s", added.Key, added.Path)
	}
	for _, dup := range res.Duplicates {
		ws.logger.Printf("discover: ignored %s, key %s already maps to %s", dup.Path, dup.Key, dup.Existing)
	}

	if err := ws.saveSettings(s); err != nil {
		return err
	}
	report.Discover = &res

	if !outputJSON {
		printDiscoverReport(cmd, res, len(s.Build))
	}
	return nil
}

// errNuGetUnavailable marks a restore phase that could not obtain nuget.exe.
// The run continues with the later phases.
var errNuGetUnavailable = errors.New("fetch nuget.exe")

// runRestorePhase makes sure nuget.exe is present when a record needs it,
// restores every unrestored record and saves the settings whatever the
// individual outcomes.
func runRestorePhase(cmd *cobra.Command, ws *workspace, report *runReport) error {
	ctx := commandContext(cmd)

	s, err := ws.loadSettings()
	if err != nil {
		return err
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), phaseOpts.noProgress, outputJSON)

	if restore.Pending(s) {
		status, err := ensureNuGet(ctx, cmd, ws, mode)
		report.NuGet = &status
		if err != nil {
			ws.logger.Printf("restore: nuget.exe unavailable: %v", err)
			res := restore.Unavailable(s, err, restore.Options{})
			report.Restore = &res
			if !outputJSON {
				cmd.Printf("Restore: nuget.exe unavailable, %d solutions not restored\n", res.Count(restore.OutcomeFailed))
			}
			return fmt.Errorf("%w: %w", errNuGetUnavailable, err)
		}
	}

	r := newRunner()
	var res restore.Report
	switch mode {
	case tui.ModeTable:
		err = tui.Run(ctx, cmd.OutOrStdout(), tui.NewRestoreModel(s), func(ctx context.Context, send func(tea.Msg)) {
			res = restore.Restore(ctx, r, ws.paths.NuGetExe, s, restore.Options{Reporter: tui.NewRestoreReporter(send)})
		})
	case tui.ModeLines:
		cmd.Println("Restoring NuGet packages")
		res = restore.Restore(ctx, r, ws.paths.NuGetExe, s, restore.Options{Reporter: lineRestoreReporter{out: cmd.OutOrStdout()}})
	default:
		res = restore.Restore(ctx, r, ws.paths.NuGetExe, s, restore.Options{})
	}
	if err != nil {
		ws.logger.Printf("restore: progress display failed: %v", err)
	}

	for _, item := range res.Results {
		switch item.Outcome {
		case restore.OutcomeFailed:
			ws.logger.Printf("restore: %s failed: %s", item.Key, item.Error)
		case restore.OutcomeRestored:
			ws.logger.Printf("restore: %s restored", item.Key)
		}
	}

	if err := ws.saveSettings(s); err != nil {
		return err
	}
	report.Restore = &res

	if !outputJSON {
		cmd.Printf("Restore: %d restored, %d failed, %d already restored\n",
			res.Count(restore.OutcomeRestored), res.Count(restore.OutcomeFailed), res.Count(restore.OutcomeSkipped))
	}
	return nil
}

func ensureNuGet(ctx context.Context, cmd *cobra.Command, ws *workspace, mode tui.Mode) (tools.Status, error) {
	stop := func() {}
	if mode == tui.ModeTable {
		stop = tui.Waiting(cmd.ErrOrStderr(), "Checking nuget.exe")
	}
	status, err := tools.EnsureNuGet(ctx, ws.paths.NuGetExe, ws.cfg.NuGet.URL, tools.InstallOptions{})
	stop()
	if err == nil && status.Source == tools.SourceDownloaded {
		ws.logger.Printf("restore: downloaded %s from %s", ws.paths.NuGetExe, ws.cfg.NuGet.URL)
		if !outputJSON {
			cmd.Printf("Downloaded %s\n", ws.paths.NuGetExe)
		}
	}
	return status, err
}

// runConfigurePhase refreshes configuration and platform sets and saves.
func runConfigurePhase(cmd *cobra.Command, ws *workspace, report *runReport) error {
	s, err := ws.loadSettings()
	if err != nil {
		return err
	}

	res := extract.Run(s)
	for _, item := range res.Results {
		switch item.Outcome {
		case extract.OutcomeFailed:
			ws.logger.Printf("configure: %s: %s", item.Key, item.Error)
		case extract.OutcomeUpdated:
			ws.logger.Printf("configure: %s configurations=%v platforms=%v", item.Key, item.Configurations, item.Platforms)
		}
	}
	for _, w := range res.Warnings() {
		ws.logger.Printf("configure: warning: %s", w)
	}

	if err := ws.saveSettings(s); err != nil {
		return err
	}
	report.Configure = &res

	if !outputJSON {
		printConfigureReport(cmd, res)
	}
	return nil
}

// runBuildPhase builds every combination. The settings are only read.
func runBuildPhase(cmd *cobra.Command, ws *workspace, report *runReport) error {
	ctx := commandContext(cmd)

	s, err := ws.loadSettings()
	if err != nil {
		return err
	}

	opts := build.Options{
		Target:    ws.cfg.MSBuild.Target,
		Verbosity: ws.cfg.MSBuild.Verbosity,
		LogDir:    ws.cfg.MSBuild.LogDir,
	}
	plan := build.Plan(s, opts)
	ws.logger.Printf("build: %d invocations planned", len(plan))

	r := newRunner()
	var (
		res    build.Report
		runErr error
	)
	switch tui.DetectMode(cmd.OutOrStdout(), phaseOpts.noProgress, outputJSON) {
	case tui.ModeTable:
		if s.MSBuildPath == "" {
			runErr = build.ErrNoMSBuild
			break
		}
		err = tui.Run(ctx, cmd.OutOrStdout(), tui.NewBuildModel(plan), func(ctx context.Context, send func(tea.Msg)) {
			opts.Reporter = tui.NewBuildReporter(send)
			res, runErr = build.RunAll(ctx, r, s, opts)
		})
		if err != nil {
			ws.logger.Printf("build: progress display failed: %v", err)
		}
	case tui.ModeLines:
		cmd.Println("Building solutions")
		opts.Reporter = lineBuildReporter{out: cmd.OutOrStdout()}
		res, runErr = build.RunAll(ctx, r, s, opts)
	default:
		res, runErr = build.RunAll(ctx, r, s, opts)
	}
	if errors.Is(runErr, build.ErrNoMSBuild) {
		ws.logger.Printf("build: %v", runErr)
		return fmt.Errorf("%w: set \"MSBuild path\" in %s or run `slnbuild tools locate`", runErr, ws.paths.SettingsFile)
	}

	for _, item := range res.Results {
		ws.logger.Printf("build: %s %s exit=%d duration=%s", item.Invocation.Label(), item.Outcome, item.ExitCode, item.Duration)
	}
	report.Build = &res
	if runErr != nil {
		return runErr
	}

	if !outputJSON {
		cmd.Printf("Build: %d succeeded, %d failed\n", res.Count(build.OutcomeBuilt), res.Count(build.OutcomeFailed))
	}
	return nil
}

// strictErrors turns per-item failures into an error when --strict is set.
func strictErrors(report *runReport) error {
	if !phaseOpts.strict {
		return nil
	}
	var errs []error
	if report.Restore != nil {
		for _, item := range report.Restore.Failed() {
			errs = append(errs, fmt.Errorf("restore %s: %s", item.Key, item.Error))
		}
	}
	if report.Configure != nil {
		for _, item := range report.Configure.Results {
			if item.Outcome == extract.OutcomeFailed {
				errs = append(errs, fmt.Errorf("configure %s: %s", item.Key, item.Error))
			}
		}
	}
	if report.Build != nil {
		for _, item := range report.Build.Failed() {
			errs = append(errs, fmt.Errorf("build %s: %s", item.Invocation.Label(), item.Error))
		}
	}
	return errors.Join(errs...)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// finishPhases prints the JSON report when requested and applies --strict.
func finishPhases(cmd *cobra.Command, report *runReport, phaseErr error) error {
	if outputJSON {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	}
	if phaseErr != nil {
		return phaseErr
	}
	return strictErrors(report)
}
