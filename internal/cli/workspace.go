package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"slnbuild/internal/config"
	"slnbuild/internal/logx"
	"slnbuild/internal/paths"
	"slnbuild/internal/settings"
	"slnbuild/internal/tools"
)

// workspace bundles what every command needs: resolved paths, the effective
// configuration and a run-scoped logger.
type workspace struct {
	paths  paths.WorkspacePaths
	cfg    config.Config
	runID  string
	logger *log.Logger
	closer io.Closer
}

func openWorkspace(command string) (*workspace, error) {
	wp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return nil, err
	}
	exists, err := paths.DirExists(wp.Root)
	if err != nil {
		return nil, fmt.Errorf("stat workspace dir: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("workspace directory does not exist: %s", wp.Root)
	}

	cfg, err := config.Load(wp.ConfigFile)
	if err != nil {
		return nil, err
	}
	wp = paths.ApplyConfig(wp, cfg)

	runID := uuid.NewString()
	logger, closer, err := logx.New(wp, runID)
	if err != nil {
		return nil, err
	}
	logger.Printf("slnbuild %s: workspace=%s", command, wp.Root)

	return &workspace{paths: wp, cfg: cfg, runID: runID, logger: logger, closer: closer}, nil
}

func (w *workspace) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// loadSettings loads build_setting.json, creating it on first use with the
// first MSBuild directory that can be located.
func (w *workspace) loadSettings() (*settings.Settings, error) {
	s, created, err := settings.LoadOrInit(w.paths.SettingsFile, w.probeMSBuild)
	if err != nil {
		return nil, err
	}
	if created {
		w.logger.Printf("initialized %s (MSBuild path %q)", w.paths.SettingsFile, s.MSBuildPath)
	}
	return s, nil
}

func (w *workspace) saveSettings(s *settings.Settings) error {
	if err := settings.Save(w.paths.SettingsFile, s); err != nil {
		return err
	}
	w.logger.Printf("saved %s (%d records)", w.paths.SettingsFile, len(s.Build))
	return nil
}

func (w *workspace) probeMSBuild() string {
	dir, source, err := tools.LocateMSBuild(w.cfg.MSBuild.Candidates, w.cfg.MSBuild.RegistryEnabled())
	if err != nil {
		w.logger.Printf("MSBuild not located: %v", err)
		return ""
	}
	w.logger.Printf("MSBuild located via %s: %s", source, dir)
	return dir
}

func (w *workspace) detectOptions(s *settings.Settings) tools.DetectOptions {
	opts := tools.DetectOptions{
		Candidates:  w.cfg.MSBuild.Candidates,
		UseRegistry: w.cfg.MSBuild.RegistryEnabled(),
		NuGetExe:    w.paths.NuGetExe,
	}
	if s != nil {
		opts.MSBuildDir = s.MSBuildPath
	}
	return opts
}
