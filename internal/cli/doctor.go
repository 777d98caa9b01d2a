package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"slnbuild/internal/config"
	"slnbuild/internal/discover"
	"slnbuild/internal/paths"
	"slnbuild/internal/settings"
	"slnbuild/internal/tools"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check workspace health",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace("doctor")
	if err != nil {
		return err
	}
	defer ws.Close()

	var checks []healthCheck
	checks = append(checks, checkConfig(ws.paths, ws.cfg))

	s, settingsCheck := checkSettings(ws.paths)
	checks = append(checks, settingsCheck)
	checks = append(checks, checkSolutionList(ws.paths))
	if s != nil {
		checks = append(checks, checkSolutions(s))
	}

	statuses := tools.Detect(commandContext(cmd), newRunner(), ws.detectOptions(s))
	for _, st := range statuses {
		checks = append(checks, checkTool(st))
	}

	for _, c := range checks {
		ws.logger.Printf("doctor: %s %s: %s", c.Name, c.Status, c.Summary)
	}
	return writeDoctorResult(cmd, ws.paths.Root, checks)
}

func checkConfig(wp paths.WorkspacePaths, cfg config.Config) healthCheck {
	validations := cfg.ValidateStrict(wp.Root)
	var warnings, errs int
	for _, v := range validations {
		switch v.Level {
		case "warning":
			warnings++
		case "error":
			errs++
		}
	}

	source := "defaults"
	if exists, _ := paths.FileExists(wp.ConfigFile); exists {
		source = paths.ConfigFileName
	}
	summary := fmt.Sprintf("%s, %d MSBuild candidates", source, len(cfg.MSBuild.Candidates))

	if errs > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %s", summary, firstMessage(validations, "error"))}
	}
	if warnings > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %s", summary, firstMessage(validations, "warning"))}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func firstMessage(results []config.ValidationResult, level string) string {
	for _, r := range results {
		if r.Level == level {
			return r.Message
		}
	}
	return ""
}

func checkSettings(wp paths.WorkspacePaths) (*settings.Settings, healthCheck) {
	s, err := settings.Load(wp.SettingsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, healthCheck{Name: "Settings", Status: "warning", Summary: "not created yet; the first run creates it"}
	}
	if err != nil {
		return nil, healthCheck{Name: "Settings", Status: "error", Summary: err.Error()}
	}
	return s, healthCheck{Name: "Settings", Status: "ok", Summary: fmt.Sprintf("%d solutions registered", len(s.Build))}
}

func checkSolutionList(wp paths.WorkspacePaths) healthCheck {
	roots, err := discover.ReadRoots(wp.SolutionListFile)
	if err != nil {
		return healthCheck{Name: "Roots", Status: "error", Summary: err.Error()}
	}
	if len(roots) == 0 {
		return healthCheck{Name: "Roots", Status: "warning", Summary: "solution list is empty"}
	}

	var missing int
	for _, root := range roots {
		if ok, _ := paths.DirExists(root); !ok {
			missing++
		}
	}
	if missing > 0 {
		return healthCheck{Name: "Roots", Status: "warning", Summary: fmt.Sprintf("%d of %d roots missing", missing, len(roots))}
	}
	return healthCheck{Name: "Roots", Status: "ok", Summary: fmt.Sprintf("%d roots", len(roots))}
}

func checkSolutions(s *settings.Settings) healthCheck {
	var missing, unrestored, builds int
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		if ok, _ := paths.FileExists(rec.Path); !ok {
			missing++
		}
		if !rec.Restored {
			unrestored++
		}
		builds += rec.Combinations()
	}

	summary := fmt.Sprintf("%d builds planned", builds)
	if unrestored > 0 {
		summary += fmt.Sprintf(", %d not restored", unrestored)
	}
	if missing > 0 {
		return healthCheck{Name: "Solutions", Status: "warning", Summary: fmt.Sprintf("%d solution files missing; %s", missing, summary)}
	}
	return healthCheck{Name: "Solutions", Status: "ok", Summary: summary}
}

func checkTool(st tools.Status) healthCheck {
	name := "MSBuild"
	if st.Tool == tools.NuGet {
		name = "NuGet"
	}

	if !st.Satisfied {
		summary := st.Error
		if summary == "" {
			summary = "not available"
		}
		// A missing nuget.exe is fetched on demand by restore.
		if st.Tool == tools.NuGet {
			return healthCheck{Name: name, Status: "warning", Summary: summary + "; restore downloads it"}
		}
		return healthCheck{Name: name, Status: "error", Summary: summary}
	}

	summary := st.Path
	if st.Version != "" {
		summary = st.Version + " " + summary
	}
	return healthCheck{Name: name, Status: "ok", Summary: summary}
}

func writeDoctorResult(cmd *cobra.Command, workspaceRoot string, checks []healthCheck) error {
	if outputJSON {
		return writeJSON(cmd, checks)
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("WORKSPACE HEALTH:")+" "+workspaceRoot)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-12s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}
