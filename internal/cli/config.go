package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slnbuild/internal/config"
	"slnbuild/internal/paths"
)

var configInitForce bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the workspace configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration in YAML",
		RunE:  runConfigShow,
	}
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default " + paths.ConfigFileName + " into the workspace",
		RunE:  runConfigInit,
	}
	cmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	wp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(wp.ConfigFile)
	if err != nil {
		return err
	}

	if outputJSON {
		return writeJSON(cmd, cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	wp, err := paths.Resolve(workspaceDir)
	if err != nil {
		return err
	}

	exists, err := paths.FileExists(wp.ConfigFile)
	if err != nil {
		return fmt.Errorf("check config: %w", err)
	}
	if exists && !configInitForce {
		cmd.Printf("Configuration already exists at %s\n", wp.ConfigFile)
		return nil
	}

	cfg := config.Default()
	cfg.ApplyDefaults()
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(wp.ConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	cmd.Printf("Wrote %s\n", wp.ConfigFile)
	return nil
}
