package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slnbuild/internal/discover"
	"slnbuild/internal/extract"
)

func printDiscoverReport(cmd *cobra.Command, report discover.Report, total int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Discover: %d roots scanned, %d solutions added, %d registered\n", len(report.Roots), len(report.Added), total)
	for _, root := range report.Missing {
		fmt.Fprintf(out, "  skipped missing root %s\n", root)
	}
	for _, added := range report.Added {
		fmt.Fprintf(out, "  added %s  %s\n", added.Key, added.Path)
	}
	for _, dup := range report.Duplicates {
		fmt.Fprintf(out, "  ignored %s (key %s already registered for %s)\n", dup.Path, dup.Key, dup.Existing)
	}
}

func printConfigureReport(cmd *cobra.Command, report extract.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configure: %d updated, %d ignored, %d failed\n",
		report.Count(extract.OutcomeUpdated), report.Count(extract.OutcomeIgnored), report.Count(extract.OutcomeFailed))

	w := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	for _, res := range report.Results {
		detail := strings.Join(res.Configurations, ",") + " x " + strings.Join(res.Platforms, ",")
		if res.Error != "" {
			detail = res.Error
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", res.Key, res.Outcome, detail)
	}
	w.Flush()

	for _, warning := range report.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
}
