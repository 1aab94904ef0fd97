package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/preproc/cmd/preproc/opts"
	"github.com/walteh/preproc/pkg/preproc"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			options, err := cfg.Options()
			if err != nil {
				return errors.Errorf("resolving options: %w", err)
			}

			ul := opts.UserLogger
			ul.Infof("processor %s", cfg.Processor)
			if options.Select == nil && options.Replace == nil && options.Remove == nil {
				ul.Warning("no operation configured, files pass through unchanged")
			}
			for _, step := range options.Plan("") {
				ul.Infof("%s tag=%q path_test=%q", step.Op, preproc.TagString(step.Tag), step.PathTest.String())
			}
			if err := cfg.RequirePipeline(); err != nil {
				ul.Warningf("run is not possible: %v", err)
			}

			ul.Successf("%s is valid", opts.ConfigFile)
			return nil
		},
	}

	return cmd
}
