package cli

import (
	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Register solutions found directly inside the listed roots",
		RunE:  phaseRunE("discover", runDiscoverPhase),
	}
}

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Run nuget restore for solutions not restored yet",
		RunE:  phaseRunE("restore", runRestorePhase),
	}
	cmd.Flags().AddFlagSet(phaseFlags())
	return cmd
}

func newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Read configuration/platform pairs from each solution file",
		RunE:  phaseRunE("configure", runConfigurePhase),
	}
	cmd.Flags().AddFlagSet(phaseFlags())
	return cmd
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build every configuration/platform combination",
		RunE:  phaseRunE("build", runBuildPhase),
	}
	cmd.Flags().AddFlagSet(phaseFlags())
	return cmd
}

func phaseRunE(name string, phase func(*cobra.Command, *workspace, *runReport) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ws, err := openWorkspace(name)
		if err != nil {
			return err
		}
		defer ws.Close()

		report := newRunReport(ws)
		phaseErr := phase(cmd, ws, report)
		if phaseErr != nil {
			ws.logger.Printf("%s aborted: %v", name, phaseErr)
		}
		return finishPhases(cmd, report, phaseErr)
	}
}
