package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/preproc/cmd/preproc/opts"
	"github.com/walteh/preproc/pkg/config"
	"github.com/walteh/preproc/pkg/fsio"
	"github.com/walteh/preproc/pkg/log"
	"github.com/walteh/preproc/pkg/preproc"
	"github.com/walteh/preproc/pkg/stream"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process the configured source files",
		Long: `Run reads every file matching src, applies the configured
select, replace and remove operations, and writes the results below dest.
It will:
1. Load and validate the config
2. Process each file independently
3. Write buffer results, skip files left without content
4. Report one line per file and fail if any file failed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			sum, err := Run(ctx, opts.ConfigFile, cfg, opts.UserLogger, trace, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if sum.Failed > 0 {
				return errors.Errorf("%d of %d files failed", sum.Failed, sum.Files)
			}
			opts.UserLogger.Successf("processed %d files", sum.Files)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log every tag processor call at debug level")

	return cmd
}

// Run drives the configured source through the plugin into the sink
func Run(ctx context.Context, configFile string, cfg *config.Config, ul *log.Logger, trace bool, stdin io.Reader) (log.Summary, error) {
	if err := cfg.RequirePipeline(); err != nil {
		return log.Summary{}, errors.Errorf("validating config: %w", err)
	}

	var wrap []func(preproc.TagProcessor) preproc.TagProcessor
	if trace {
		logger := *zerolog.Ctx(ctx)
		wrap = append(wrap, func(p preproc.TagProcessor) preproc.TagProcessor {
			return preproc.NewTracer(p, logger)
		})
	}

	plugin, err := cfg.Plugin(wrap...)
	if err != nil {
		return log.Summary{}, errors.Errorf("creating plugin: %w", err)
	}

	src := fsio.NewSource(cfg.Base, cfg.Src)
	src.Stdin = stdin
	sink := fsio.NewSink(cfg.Dest)
	runner := stream.NewRunner(plugin, cfg.Async, cfg.Concurrency)

	ul.StartRunOperation(ctx, log.RunOperation{
		Config:    configFile,
		Processor: cfg.Processor,
		Dest:      cfg.Dest,
		Async:     cfg.Async,
	})

	results, runErr := runner.Run(ctx, src.Files(ctx))

	for _, res := range results {
		ul.LogFileOperation(ctx, fileOperation(ctx, sink, res))
	}

	sum := ul.EndRunOperation(ctx)
	if runErr != nil {
		return sum, errors.Errorf("running pipeline: %w", runErr)
	}
	return sum, nil
}

func fileOperation(ctx context.Context, sink *fsio.Sink, res stream.Result) log.FileOperation {
	op := log.FileOperation{
		Path: res.Input.Path,
		Mode: res.Input.Mode().String(),
	}

	if res.Err != nil {
		op.Status = "failed"
		op.IsFailed = true
		op.Err = res.Err
		return op
	}

	op.Mode = res.Output.Mode().String()
	if res.Input.IsBuffer() && res.Output.IsNull() {
		if _, err := sink.Remove(ctx, res.Output.Path); err != nil {
			op.Status = "failed"
			op.IsFailed = true
			op.Err = err
			return op
		}
		op.Status = "emptied"
		op.IsEmptied = true
		return op
	}

	status, err := sink.Write(ctx, res.Output)
	if err != nil {
		op.Status = "failed"
		op.IsFailed = true
		op.Err = err
		return op
	}

	op.Status = status.String()
	op.IsNew = status == fsio.StatusNew
	op.IsModified = status == fsio.StatusModified
	return op
}
