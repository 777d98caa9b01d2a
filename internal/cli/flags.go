package cli

import (
	"github.com/spf13/pflag"
)

// phaseOptions are shared by every command that runs one or more phases.
type phaseOptions struct {
	strict     bool
	noProgress bool
}

var phaseOpts phaseOptions

// phaseFlags returns a fresh flag set bound to phaseOpts. Each command gets its
// own set because pflag flags cannot be attached to two parents.
func phaseFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("phase", pflag.ContinueOnError)
	fs.BoolVar(&phaseOpts.strict, "strict", false, "Exit non-zero when any restore or build fails")
	fs.BoolVar(&phaseOpts.noProgress, "no-progress", false, "Disable interactive progress output")
	return fs
}
