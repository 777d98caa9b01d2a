package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultNuGetURL is the download location for the latest nuget.exe.
const DefaultNuGetURL = "https://dist.nuget.org/win-x86-commandline/latest/nuget.exe"

// Config captures the tunables for a build workspace.
type Config struct {
	Version      int           `yaml:"version"`
	SettingsFile string        `yaml:"settings_file"`
	SolutionList string        `yaml:"solution_list"`
	MSBuild      MSBuildConfig `yaml:"msbuild"`
	NuGet        NuGetConfig   `yaml:"nuget"`
}

// MSBuildConfig controls how MSBuild is located and invoked.
type MSBuildConfig struct {
	Candidates  []string `yaml:"candidates"`
	Target      string   `yaml:"target"`
	Verbosity   string   `yaml:"verbosity"`
	LogDir      string   `yaml:"log_dir"`
	UseRegistry *bool    `yaml:"use_registry,omitempty"`
}

// NuGetConfig describes where nuget.exe comes from and where it lives.
type NuGetConfig struct {
	URL        string `yaml:"url"`
	Executable string `yaml:"executable"`
}

// RegistryEnabled reports whether the Windows registry may be consulted when
// none of the candidate directories contain MSBuild.exe.
func (c MSBuildConfig) RegistryEnabled() bool {
	if c.UseRegistry == nil {
		return true
	}
	return *c.UseRegistry
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:      1,
		SettingsFile: "build_setting.json",
		SolutionList: "solution_list.txt",
		MSBuild: MSBuildConfig{
			Candidates: []string{
				"C:/Program Files/Microsoft Visual Studio/2022/Community/MSBuild/Current/Bin",
				"C:/Program Files (x86)/Microsoft Visual Studio/2022/Community/MSBuild/Current/Bin",
				"C:/Program Files/Microsoft Visual Studio/2022/Community/MSBuild/17.0/Bin",
				"C:/Program Files (x86)/Microsoft Visual Studio/2022/Community/MSBuild/17.0/Bin",
			},
			Target:      "build",
			Verbosity:   "minimal",
			LogDir:      "BuildLog",
			UseRegistry: boolPtr(true),
		},
		NuGet: NuGetConfig{
			URL:        DefaultNuGetURL,
			Executable: "nuget.exe",
		},
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to defaults when the YAML omits or
// blanks them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.SettingsFile == "" {
		c.SettingsFile = defaults.SettingsFile
	}
	if c.SolutionList == "" {
		c.SolutionList = defaults.SolutionList
	}
	if c.MSBuild.Candidates == nil {
		c.MSBuild.Candidates = defaults.MSBuild.Candidates
	}
	if c.MSBuild.Target == "" {
		c.MSBuild.Target = defaults.MSBuild.Target
	}
	if c.MSBuild.Verbosity == "" {
		c.MSBuild.Verbosity = defaults.MSBuild.Verbosity
	}
	if c.MSBuild.LogDir == "" {
		c.MSBuild.LogDir = defaults.MSBuild.LogDir
	}
	if c.MSBuild.UseRegistry == nil {
		c.MSBuild.UseRegistry = boolPtr(true)
	}
	if c.NuGet.URL == "" {
		c.NuGet.URL = defaults.NuGet.URL
	}
	if c.NuGet.Executable == "" {
		c.NuGet.Executable = defaults.NuGet.Executable
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
