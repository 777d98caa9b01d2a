package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"slnbuild/internal/config"
	"slnbuild/internal/paths"
	"slnbuild/internal/settings"
)

var cleanDryRun bool

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build logs and slnbuild logs",
	}

	cmd.PersistentFlags().BoolVar(&cleanDryRun, "dry-run", false, "List what would be removed without deleting")

	cmd.AddCommand(newCleanBuildLogsCmd())
	cmd.AddCommand(newCleanLogsCmd())
	cmd.AddCommand(newCleanAllCmd())

	return cmd
}

func newCleanBuildLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buildlogs",
		Short: "Remove MSBuild log files next to every registered solution",
		RunE:  runCleanBuildLogs,
	}
}

func newCleanLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Remove slnbuild's own log files",
		RunE:  runCleanLogs,
	}
}

func newCleanAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Remove build logs and slnbuild logs",
		RunE:  runCleanAll,
	}
}

type cleanResult struct {
	Removed    int   `json:"removed"`
	FreedBytes int64 `json:"freed_bytes"`
	Skipped    int   `json:"skipped"`
	DryRun     bool  `json:"dry_run"`
}

func runCleanBuildLogs(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace("clean buildlogs")
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := settings.Load(ws.paths.SettingsFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}
	for _, dir := range buildLogDirs(s, ws.cfg.MSBuild.LogDir) {
		removeGlob(dir, "*.log", out, &result)
	}
	return writeCleanResult(out, "buildlogs", result)
}

func runCleanLogs(cmd *cobra.Command, _ []string) error {
	wp, err := resolveCleanPaths()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}
	removeGlob(wp.LogsDir, "*.log", out, &result)
	return writeCleanResult(out, "logs", result)
}

func runCleanAll(cmd *cobra.Command, _ []string) error {
	wp, err := resolveCleanPaths()
	if err != nil {
		return err
	}
	cfg, err := config.Load(wp.ConfigFile)
	if err != nil {
		return err
	}
	wp = paths.ApplyConfig(wp, cfg)

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}

	s, err := settings.Load(wp.SettingsFile)
	switch {
	case err == nil:
		for _, dir := range buildLogDirs(s, cfg.MSBuild.LogDir) {
			removeGlob(dir, "*.log", out, &result)
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	removeGlob(wp.LogsDir, "*.log", out, &result)

	return writeCleanResult(out, "all", result)
}

func resolveCleanPaths() (paths.WorkspacePaths, error) {
	wp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return wp, err
	}
	exists, err := paths.DirExists(wp.Root)
	if err != nil {
		return wp, fmt.Errorf("stat workspace dir: %w", err)
	}
	if !exists {
		return wp, fmt.Errorf("workspace directory does not exist: %s", wp.Root)
	}
	return wp, nil
}

// buildLogDirs returns the distinct log directories of the registered solutions.
func buildLogDirs(s *settings.Settings, logDir string) []string {
	if strings.TrimSpace(logDir) == "" {
		logDir = "BuildLog"
	}
	seen := map[string]bool{}
	var dirs []string
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		solution := strings.ReplaceAll(rec.Path, `\`, "/")
		dir := path.Join(path.Dir(solution), logDir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// globFiles lists the regular files directly inside root whose name matches
// pattern. A missing root yields no files.
func globFiles(root, pattern string) ([]string, error) {
	exists, err := paths.DirExists(root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			matches = append(matches, filepath.Join(root, entry.Name()))
		}
	}
	return matches, nil
}

func removeGlob(root, pattern string, out io.Writer, result *cleanResult) {
	files, err := globFiles(root, pattern)
	if err != nil {
		return
	}
	for _, path := range files {
		removeFileEntry(path, out, result)
	}
}

func removeFileEntry(path string, out io.Writer, result *cleanResult) {
	info, err := os.Stat(path)
	if err != nil {
		result.Skipped++
		return
	}
	size := info.Size()

	if cleanDryRun {
		if !outputJSON {
			fmt.Fprintf(out, "would remove %s (%s)\n", path, formatSize(size))
		}
		result.Removed++
		result.FreedBytes += size
		return
	}

	if err := os.Remove(path); err != nil {
		if !outputJSON {
			fmt.Fprintf(out, "error removing %s: %v\n", path, err)
		}
		result.Skipped++
		return
	}

	result.Removed++
	result.FreedBytes += size
	if !outputJSON {
		fmt.Fprintf(out, "removed %s (%s)\n", path, formatSize(size))
	}
}

func writeCleanResult(out io.Writer, label string, result cleanResult) error {
	if outputJSON {
		return json.NewEncoder(out).Encode(result)
	}

	action := "complete"
	if cleanDryRun {
		action = "(dry run)"
	}
	fmt.Fprintf(out, "\nClean %s %s: %d removed, %s freed, %d skipped\n",
		label, action, result.Removed, formatSize(result.FreedBytes), result.Skipped)
	return nil
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
