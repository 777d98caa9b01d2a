package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ignoreOff bool

func newIgnoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore <solution>",
		Short: "Keep a solution's configuration/platform sets when configure runs",
		Long: "ignore sets the \"Ignore update\" flag of a registered solution so that\n" +
			"configure leaves its hand-edited configuration and platform lists alone.",
		Args: cobra.ExactArgs(1),
		RunE: runIgnore,
	}
	cmd.Flags().BoolVar(&ignoreOff, "off", false, "Clear the flag instead of setting it")
	return cmd
}

func runIgnore(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace("ignore")
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.loadSettings()
	if err != nil {
		return err
	}

	key := args[0]
	rec, ok := s.Get(key)
	if !ok {
		return fmt.Errorf("unknown solution %q", key)
	}
	rec.IgnoreUpdate = !ignoreOff
	s.Set(key, rec)

	if err := ws.saveSettings(s); err != nil {
		return err
	}
	ws.logger.Printf("ignore: %s ignore_update=%t", key, rec.IgnoreUpdate)

	if outputJSON {
		return writeJSON(cmd, map[string]any{"key": key, "ignore_update": rec.IgnoreUpdate})
	}
	if rec.IgnoreUpdate {
		cmd.Printf("%s: configure will keep its current build settings\n", key)
	} else {
		cmd.Printf("%s: configure will refresh its build settings\n", key)
	}
	return nil
}
