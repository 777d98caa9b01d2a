package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"slnbuild/internal/tools"
)

var (
	installForce bool
	locateForce  bool
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect MSBuild and nuget.exe",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsInstallCmd())
	cmd.AddCommand(newToolsLocateCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved tool statuses",
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace("tools list")
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.loadSettings()
	if err != nil {
		return err
	}

	statuses := tools.Detect(commandContext(cmd), newRunner(), ws.detectOptions(s))
	if outputJSON {
		return writeJSON(cmd, statuses)
	}
	printStatusTable(cmd, statuses)
	return nil
}

func newToolsInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [nuget]",
		Short: "Download nuget.exe into the workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runToolsInstall,
	}
	cmd.Flags().BoolVar(&installForce, "force", false, "Download again even if nuget.exe exists")
	return cmd
}

func runToolsInstall(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		switch target := strings.ToLower(args[0]); target {
		case tools.NuGet, "all":
		case tools.MSBuild:
			return fmt.Errorf("msbuild cannot be installed automatically; install Visual Studio or the Build Tools, then run `slnbuild tools locate`")
		default:
			return fmt.Errorf("unknown tool: %s (known: %s)", target, strings.Join(tools.KnownTools(), ", "))
		}
	}

	ws, err := openWorkspace("tools install")
	if err != nil {
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithTimeout(commandContext(cmd), 10*time.Minute)
	defer cancel()

	status, err := tools.EnsureNuGet(ctx, ws.paths.NuGetExe, ws.cfg.NuGet.URL, tools.InstallOptions{Force: installForce})
	ws.logger.Printf("tools install: nuget source=%s path=%s err=%v", status.Source, status.Path, err)

	if outputJSON {
		if jsonErr := writeJSON(cmd, []tools.Status{status}); jsonErr != nil {
			return jsonErr
		}
	} else {
		printStatusTable(cmd, []tools.Status{status})
	}
	if err != nil {
		return fmt.Errorf("%s: %w", tools.NuGet, err)
	}
	return nil
}

func newToolsLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Probe for MSBuild and record it in the settings",
		RunE:  runToolsLocate,
	}
	cmd.Flags().BoolVar(&locateForce, "force", false, "Replace an MSBuild path that is already set")
	return cmd
}

func runToolsLocate(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace("tools locate")
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.loadSettings()
	if err != nil {
		return err
	}
	if s.MSBuildPath != "" && !locateForce {
		cmd.Printf("MSBuild path already set: %s (use --force to probe again)\n", s.MSBuildPath)
		return nil
	}

	dir, source, err := tools.LocateMSBuild(ws.cfg.MSBuild.Candidates, ws.cfg.MSBuild.RegistryEnabled())
	if err != nil {
		return fmt.Errorf("locate %s (%d candidates tried): %w", tools.MSBuildExecutable, len(ws.cfg.MSBuild.Candidates), err)
	}

	s.MSBuildPath = dir
	if err := ws.saveSettings(s); err != nil {
		return err
	}
	ws.logger.Printf("tools locate: MSBuild via %s: %s", source, dir)

	if outputJSON {
		return writeJSON(cmd, map[string]string{"msbuild_path": dir, "source": string(source)})
	}
	cmd.Printf("MSBuild path set to %s (%s)\n", dir, source)
	return nil
}

func printStatusTable(cmd *cobra.Command, statuses []tools.Status) {
	if len(statuses) == 0 {
		cmd.Println("(no tool statuses)")
		return
	}

	rows := make([]tools.Status, len(statuses))
	copy(rows, statuses)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Tool < rows[j].Tool
	})

	cmd.Printf("%-8s %-10s %-14s %-4s %s\n", "Tool", "Source", "Version", "OK", "Path")
	for _, st := range rows {
		ok := "no"
		if st.Satisfied {
			ok = "yes"
		}
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		cmd.Printf("%-8s %-10s %-14s %-4s %s\n", st.Tool, nonEmptyOrDash(string(st.Source)), nonEmptyOrDash(st.Version), ok, path)
		if st.Error != "" {
			cmd.Printf("  error: %s\n", st.Error)
		}
		for _, note := range st.Notes {
			cmd.Printf("  note: %s\n", note)
		}
	}
}
