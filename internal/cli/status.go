package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slnbuild/internal/settings"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show registered solutions and their build settings",
		RunE:  runStatus,
	}
}

type statusJSONRecord struct {
	Key            string   `json:"key"`
	Path           string   `json:"path"`
	Restored       bool     `json:"restored"`
	IgnoreUpdate   bool     `json:"ignore_update"`
	Configurations []string `json:"configurations"`
	Platforms      []string `json:"platforms"`
	Combinations   int      `json:"combinations"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace("status")
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := settings.Load(ws.paths.SettingsFile)
	if err != nil {
		return err
	}

	if outputJSON {
		return writeStatusJSON(cmd, ws, s)
	}
	writeStatusTable(cmd, ws, s)
	return nil
}

func writeStatusTable(cmd *cobra.Command, ws *workspace, s *settings.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Settings: %s\n", ws.paths.SettingsFile)
	fmt.Fprintf(out, "MSBuild:  %s\n", nonEmptyOrDash(s.MSBuildPath))

	if len(s.Build) == 0 {
		fmt.Fprintln(out, "(no solutions registered; run `slnbuild discover`)")
		return
	}

	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "SOLUTION\tRESTORED\tIGNORE\tCONFIGURATIONS\tPLATFORMS\tBUILDS\tPATH")
	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			key,
			yesNo(rec.Restored),
			yesNo(rec.IgnoreUpdate),
			nonEmptyOrDash(strings.Join(rec.BuildSettings.Configurations, ",")),
			nonEmptyOrDash(strings.Join(rec.BuildSettings.Platforms, ",")),
			rec.Combinations(),
			rec.Path,
		)
	}
	w.Flush()
}

func writeStatusJSON(cmd *cobra.Command, ws *workspace, s *settings.Settings) error {
	payload := struct {
		Settings    string             `json:"settings"`
		MSBuildPath string             `json:"msbuild_path"`
		Records     []statusJSONRecord `json:"records"`
	}{
		Settings:    ws.paths.SettingsFile,
		MSBuildPath: s.MSBuildPath,
		Records:     make([]statusJSONRecord, 0, len(s.Build)),
	}

	for _, key := range s.Keys() {
		rec, _ := s.Get(key)
		payload.Records = append(payload.Records, statusJSONRecord{
			Key:            key,
			Path:           rec.Path,
			Restored:       rec.Restored,
			IgnoreUpdate:   rec.IgnoreUpdate,
			Configurations: rec.BuildSettings.Configurations,
			Platforms:      rec.BuildSettings.Platforms,
			Combinations:   rec.Combinations(),
		})
	}
	return writeJSON(cmd, payload)
}

func nonEmptyOrDash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
