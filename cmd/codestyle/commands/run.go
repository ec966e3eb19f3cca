package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/codestyle/cmd/codestyle/opts"
	"github.com/walteh/codestyle/pkg/log"
	"github.com/walteh/codestyle/pkg/operation"
	"github.com/walteh/codestyle/pkg/status"
	"github.com/walteh/codestyle/pkg/text"
	"github.com/walteh/codestyle/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command
func NewRunCmd(rootOpts *opts.RootOpts) *cobra.Command {
	runOpts := &opts.RunOpts{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply a rule set to every file under the root",
		Long: `Run walks the root directory and, one file at a time:
1. Reads the file as UTF-8
2. Applies every rule of the rule set in order
3. Writes the file back when anything changed
4. Prints one line with the outcome

The first error stops the run. Files written before it stay written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, rootOpts, runOpts)
		},
	}

	AddRunFlags(cmd, runOpts)

	return cmd
}

// AddRunFlags adds the run flags to cmd
func AddRunFlags(cmd *cobra.Command, o *opts.RunOpts) {
	cmd.Flags().StringVar(&o.Root, "root", "", "directory to rewrite (default from config, then \"core\")")
	cmd.Flags().StringVar(&o.RuleSet, "rule-set", "", "rule set to apply (default from config, then \"member\")")
	cmd.Flags().StringArrayVar(&o.Ignore, "ignore", nil, "glob of paths to skip, repeatable")
	cmd.Flags().BoolVar(&o.DryRun, "dry-run", false, "show what would change without writing")
	cmd.Flags().BoolVar(&o.Check, "check", false, "dry run that fails when any file would change")
	cmd.Flags().BoolVar(&o.NoDiff, "no-diff", false, "do not print diffs of files that would change")
	cmd.Flags().StringVar(&o.Report, "report", "", "write a JSON report of every file to this path")
}

// Run merges flags over the loaded config and runs the rewrite
func Run(cmd *cobra.Command, rootOpts *opts.RootOpts, runOpts *opts.RunOpts) error {
	ctx := cmd.Context()
	cfg := rootOpts.Config
	flags := cmd.Flags()

	var (
		root string
		err  error
	)
	if flags.Changed("root") {
		root, err = filepath.Abs(runOpts.Root)
	} else {
		root, err = cfg.ResolveRoot()
	}
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}

	name := cfg.RuleSet
	if flags.Changed("rule-set") {
		name = runOpts.RuleSet
	}
	set, err := cfg.ResolveRuleSet(name)
	if err != nil {
		return err
	}
	engine, err := text.NewEngine(set)
	if err != nil {
		return errors.Errorf("compiling rule set: %w", err)
	}

	dryRun := cfg.DryRun
	if flags.Changed("dry-run") {
		dryRun = runOpts.DryRun
	}

	ignore := append(append([]string{}, cfg.Ignore...), runOpts.Ignore...)

	tracker := status.NewTracker()
	op, err := operation.NewRewriteOperation(operation.Options{
		Files:    status.NewDirManager(root),
		Rewriter: engine,
		Tracker:  tracker,
		Walk:     walk.Options{Ignore: ignore},
		DryRun:   dryRun,
		Diff:     !runOpts.NoDiff,
		Check:    runOpts.Check,
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	logger := log.FromContext(ctx)
	logger.Header(fmt.Sprintf("%s %s with %s", op.Name(), root, engine.Name()))

	runErr := operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)

	summary := tracker.Summary()
	table, err := status.FormatSummary(summary)
	if err != nil {
		return err
	}
	logger.LogNewline()
	logger.Print(table)
	progress := status.FormatProgress(summary)
	switch {
	case summary.Failed > 0:
		logger.Error(progress)
	case summary.Pending > 0:
		logger.Warning(progress)
	default:
		logger.Success(progress)
	}

	if runOpts.Report != "" {
		if err := tracker.WriteReport(ctx, runOpts.Report); err != nil {
			if runErr != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("writing report")
				return runErr
			}
			return err
		}
	}

	return runErr
}
