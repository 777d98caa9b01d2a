package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	workspaceDir string
	outputJSON   bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slnbuild",
		Short: "Batch-build Visual Studio solutions with MSBuild",
		Long: "slnbuild discovers .sln files under the roots listed in solution_list.txt,\n" +
			"restores their NuGet packages, reads their configuration/platform pairs and\n" +
			"builds every combination with MSBuild. State is kept in build_setting.json.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&workspaceDir, "workspace", "", "Path to the workspace directory (default: current directory)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDiscoverCmd())
	cmd.AddCommand(newRestoreCmd())
	cmd.AddCommand(newConfigureCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newIgnoreCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCleanCmd())

	return cmd
}
