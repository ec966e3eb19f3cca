package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/codestyle/cmd/codestyle/opts"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates the rules command
func NewRulesCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List builtin and configured rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.Config

			data := pterm.TableData{
				{"set", "source", "rule", "pattern", "replacement", "files"},
			}
			for _, set := range cfg.AvailableRuleSets() {
				label := set.Name
				if set.Name == cfg.RuleSet {
					label += " *"
				}
				for i, rule := range set.Rules {
					name := rule.Name
					if name == "" {
						name = fmt.Sprintf("%s#%d", set.Name, i+1)
					}
					files := rule.FileFilterGlob
					if files == "" {
						files = "**"
					}
					data = append(data, []string{label, set.Source, name, rule.Pattern, rule.Replacement, files})
					label = ""
				}
			}

			out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	return cmd
}
