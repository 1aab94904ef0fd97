package commands

import (
	"context"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/preproc/cmd/preproc/opts"
	"github.com/walteh/preproc/pkg/fsio"
	"github.com/walteh/preproc/pkg/preproc"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [paths...]",
		Short: "Show the tag operations each file would go through",
		Long: `Plan resolves the options of every configured operation for
each path and prints the arguments the tag processor would receive.
Paths default to the files matching src.`,
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

			paths := args
			if len(paths) == 0 {
				paths, err = fsio.NewSource(cfg.Base, cfg.Src).Match(ctx)
				if err != nil {
					return errors.Errorf("matching src: %w", err)
				}
			}

			return RenderPlan(ctx, cmd.OutOrStdout(), options, paths)
		},
	}

	return cmd
}

// RenderPlan prints one table row per file and operation
func RenderPlan(ctx context.Context, w io.Writer, options *preproc.Options, paths []string) error {
	data := pterm.TableData{
		{"FILE", "OP", "TAG", "REPLACEMENT", "PATH", "PATH TEST", "ALLOW ERRORS"},
	}
	for _, path := range paths {
		for _, step := range options.Plan(path) {
			data = append(data, []string{
				path,
				string(step.Op),
				orNone(step.Tag),
				orNone(step.Replacement),
				orNone(step.Path),
				step.PathTest.String(),
				allowErrors(step),
			})
		}
	}

	if len(data) == 1 {
		_, err := io.WriteString(w, "nothing to do\n")
		return err
	}

	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return errors.Errorf("rendering plan: %w", err)
	}
	return nil
}

func orNone(s *string) string {
	if s == nil {
		return "-"
	}
	return strconv.Quote(*s)
}

func allowErrors(step preproc.Step) string {
	if step.Op != preproc.OpSelect {
		return ""
	}
	return strconv.FormatBool(step.AllowErrors)
}
