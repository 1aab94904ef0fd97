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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/preproc/cmd/preproc/commands"
	"github.com/walteh/preproc/cmd/preproc/opts"
	"github.com/walteh/preproc/pkg/log"
)

// newRootCmd creates the root command writing user output to out
func newRootCmd(out io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "preproc",
		Short: "Select, replace and remove tagged regions in files",
		Long: `preproc runs files through a tag processor: it picks the region
marked by a tag, replaces tagged regions, and removes tagged regions, in that
order, as configured in a .preprocrc file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if rootOpts.Debug {
				level = zerolog.DebugLevel
			}
			rootOpts.UserLogger = log.New(out, level)
			cmd.SetContext(log.NewContext(cmd.Context(), rootOpts.UserLogger))
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
	)
	rootCmd.SetOut(out)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".preprocrc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// Execute runs the CLI with the given arguments. Errors are reported on
// stderr before being returned.
func Execute(ctx context.Context, args []string) error {
	rootCmd := newRootCmd(os.Stdout)
	rootCmd.SetArgs(args)
	return execute(ctx, rootCmd)
}

func execute(ctx context.Context, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: rootCmd.ErrOrStderr()})
		logger.Error().Err(err).Msg("command failed")
	}
	return err
}
