// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/codestyle/cmd/codestyle/commands"
	"github.com/walteh/codestyle/cmd/codestyle/opts"
	"github.com/walteh/codestyle/pkg/config"
	"github.com/walteh/codestyle/pkg/log"
	"github.com/walteh/codestyle/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: color.NoColor}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	ctx = zlog.WithContext(ctx)

	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, operation.ErrWouldModify) {
			zlog.Error().Err(err).Msg("check failed")
		} else {
			zlog.Error().Err(err).Msg("codestyle failed")
		}
		return 1
	}
	return 0
}

// NewCommand creates the root command. With no subcommand it behaves as run.
func NewCommand() *cobra.Command {
	rootOpts := &opts.RootOpts{}
	runOpts := &opts.RunOpts{}

	cmd := &cobra.Command{
		Use:   "codestyle",
		Short: "Rewrite naming conventions across a source tree",
		Long: `codestyle walks a directory, applies an ordered set of regular
expression rules to every file and writes the result back in place.

Without a subcommand it behaves like "codestyle run".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setup(cmd, rootOpts)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Run(cmd, rootOpts, runOpts)
		},
	}

	addRootFlags(cmd, rootOpts)
	commands.AddRunFlags(cmd, runOpts)

	cmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", config.DefaultPath, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setup configures logging from the flags and loads the config. The default
// config file is optional; one named with --config must exist.
func setup(cmd *cobra.Command, o *opts.RootOpts) (context.Context, error) {
	ctx := cmd.Context()

	level := zerolog.InfoLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.Ctx(ctx).Level(level)
	ctx = zlog.WithContext(ctx)
	ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), zlog))

	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.LoadConfig(ctx, o.ConfigFile)
	} else {
		cfg, err = config.LoadConfigOrDefault(ctx, o.ConfigFile)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg

	zlog.Debug().Str("config", cfg.Location()).Str("settings", cfg.String()).Msg("loaded config")

	return ctx, nil
}
