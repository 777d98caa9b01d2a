package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"slnbuild/internal/build"
	"slnbuild/internal/discover"
	"slnbuild/internal/extract"
	"slnbuild/internal/restore"
	"slnbuild/internal/tools"
)

// runReport is the JSON document printed by the phase commands. Phases that
// did not run are omitted.
type runReport struct {
	RunID     string           `json:"run_id"`
	Workspace string           `json:"workspace"`
	Discover  *discover.Report `json:"discover,omitempty"`
	NuGet     *tools.Status    `json:"nuget,omitempty"`
	Restore   *restore.Report  `json:"restore,omitempty"`
	Configure *extract.Report  `json:"configure,omitempty"`
	Build     *build.Report    `json:"build,omitempty"`
}

func newRunReport(ws *workspace) *runReport {
	return &runReport{RunID: ws.runID, Workspace: ws.paths.Root}
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// pause blocks until a line is read from in.
func pause(out io.Writer, in io.Reader) {
	fmt.Fprint(out, "Press Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
