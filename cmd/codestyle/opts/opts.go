package opts

import (
	"github.com/walteh/codestyle/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	// Config is loaded before any command runs
	Config *config.Config
}

// RunOpts are the flags of the run command. Each one overrides the
// matching config key only when set on the command line.
type RunOpts struct {
	Root    string
	RuleSet string
	Ignore  []string
	DryRun  bool
	Check   bool
	NoDiff  bool
	Report  string
}
