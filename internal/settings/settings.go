package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Settings is the persisted build_setting.json document.
type Settings struct {
	MSBuildPath string            `json:"MSBuild path"`
	Build       map[string]Record `json:"Build"`
}

// Record keeps the build metadata for one solution file.
type Record struct {
	Path          string        `json:"Solution path"`
	Restored      bool          `json:"Restore package"`
	IgnoreUpdate  bool          `json:"Ignore update"`
	BuildSettings BuildSettings `json:"Build settings"`
}

// BuildSettings holds the configuration and platform sets of a solution.
type BuildSettings struct {
	Configurations []string `json:"Configuration"`
	Platforms      []string `json:"Platform"`
}

// Combinations returns the number of build invocations the record produces.
func (r Record) Combinations() int {
	return len(r.BuildSettings.Configurations) * len(r.BuildSettings.Platforms)
}

// New returns an empty document with the given MSBuild directory.
func New(msbuildPath string) *Settings {
	return &Settings{
		MSBuildPath: msbuildPath,
		Build:       map[string]Record{},
	}
}

// Load reads the settings document. A missing file yields an error matching
// os.ErrNotExist; malformed JSON yields a decode error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", path, err)
	}

	s.normalize()
	return &s, nil
}

// Save writes the settings document atomically, creating the containing
// directory if needed.
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure settings dir: %w", err)
	}

	if s == nil {
		s = New("")
	}
	s.normalize()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp settings: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}

	return nil
}

// Init writes a fresh document holding msbuildPath and no records.
func Init(path, msbuildPath string) (*Settings, error) {
	s := New(msbuildPath)
	if err := Save(path, s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadOrInit loads the document, creating it on first run. probe is only
// called when the file does not exist and supplies the MSBuild directory.
func LoadOrInit(path string, probe func() string) (*Settings, bool, error) {
	s, err := Load(path)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}

	msbuildPath := ""
	if probe != nil {
		msbuildPath = probe()
	}
	s, err = Init(path, msbuildPath)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Get returns the record stored under key.
func (s *Settings) Get(key string) (Record, bool) {
	if s == nil || s.Build == nil {
		return Record{}, false
	}
	rec, ok := s.Build[key]
	return rec, ok
}

// Set stores rec under key, replacing any existing record.
func (s *Settings) Set(key string, rec Record) {
	if s == nil {
		return
	}
	if s.Build == nil {
		s.Build = map[string]Record{}
	}
	s.Build[key] = rec
}

// Add registers a new record for path under key. Existing records are left
// untouched and Add reports false.
func (s *Settings) Add(key, path string) bool {
	if _, exists := s.Get(key); exists {
		return false
	}
	s.Set(key, Record{
		Path: path,
		BuildSettings: BuildSettings{
			Configurations: []string{},
			Platforms:      []string{},
		},
	})
	return true
}

// Keys returns the record keys in sorted order.
func (s *Settings) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.Build))
	for key := range s.Build {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Settings) normalize() {
	if s.Build == nil {
		s.Build = map[string]Record{}
	}
	for key, rec := range s.Build {
		rec.BuildSettings.Configurations = SortedSet(rec.BuildSettings.Configurations)
		rec.BuildSettings.Platforms = SortedSet(rec.BuildSettings.Platforms)
		s.Build[key] = rec
	}
}

// SortedSet deduplicates values and sorts them. The result is never nil.
func SortedSet(values []string) []string {
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
