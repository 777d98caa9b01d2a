package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"slnbuild/internal/tui"
)

var runNoPause bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover, restore, configure and build every solution",
		RunE:  runRun,
	}
	cmd.Flags().AddFlagSet(phaseFlags())
	cmd.Flags().BoolVar(&runNoPause, "no-pause", false, "Do not wait for Enter before exiting")
	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace("run")
	if err != nil {
		return err
	}
	defer ws.Close()

	report := newRunReport(ws)
	phaseErr := runAllPhases(cmd, ws, report)
	if phaseErr != nil {
		ws.logger.Printf("run finished with error: %v", phaseErr)
	} else {
		ws.logger.Printf("run finished")
	}

	err = finishPhases(cmd, report, phaseErr)
	if !runNoPause && !outputJSON && tui.IsTerminal(cmd.InOrStdin()) {
		pause(cmd.OutOrStdout(), cmd.InOrStdin())
	}
	return err
}

func runAllPhases(cmd *cobra.Command, ws *workspace, report *runReport) error {
	phases := []func(*cobra.Command, *workspace, *runReport) error{
		runDiscoverPhase,
		runRestorePhase,
		runConfigurePhase,
		runBuildPhase,
	}
	// A missing nuget.exe leaves records unrestored; configure and build
	// still run and the error is returned at the end.
	var deferred error
	for _, phase := range phases {
		err := phase(cmd, ws, report)
		switch {
		case errors.Is(err, errNuGetUnavailable):
			deferred = err
		case err != nil:
			return err
		}
	}
	return deferred
}
