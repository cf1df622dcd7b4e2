package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/refactor"
)

type extractFlags struct {
	refactorFlags

	expr  string
	start int
	end   int
}

func newExtractCommand(g *globalFlags) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <new-name> [paths...]",
		Short: "Extract an expression into a new local variable",
		Long: `Move an expression into a new "var" declaration placed before the
statement that contains it, and replace the expression with the new name.

Select the expression by its text with --expr, or by byte offsets with
--start and --end. Offsets need exactly one input.

Examples:
  refract extract product --expr "width * height" Shapes.cs
  refract extract doubled --start 12 --end 21 script.csx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0], args[1:])
			if err != nil {
				return err
			}
			return runRefactoring(cmd, g, &flags.refactorFlags, req, args[1:])
		},
	}

	addRefactorFlags(cmd, &flags.refactorFlags)
	cmd.Flags().StringVarP(&flags.expr, "expr", "e", "", "text of the expression to extract")
	cmd.Flags().IntVar(&flags.start, "start", -1, "byte offset where the selection starts")
	cmd.Flags().IntVar(&flags.end, "end", -1, "byte offset where the selection ends")
	cmd.MarkFlagsMutuallyExclusive("expr", "start")
	cmd.MarkFlagsMutuallyExclusive("expr", "end")
	cmd.MarkFlagsRequiredTogether("start", "end")

	return cmd
}

func (f *extractFlags) request(newName string, paths []string) (pipeline.Request, error) {
	req := pipeline.Request{
		Refactoring: "extract-variable",
		Params:      refactor.Params{NewName: newName},
	}

	switch {
	case f.expr != "":
		req.Snippet = f.expr
	case f.start >= 0 && f.end >= 0:
		if len(paths) > 1 {
			return req, fmt.Errorf("%w: --start and --end select in a single input, got %d", ErrInvalidUsage, len(paths))
		}
		if f.end <= f.start {
			return req, fmt.Errorf("%w: --end (%d) must be greater than --start (%d)", ErrInvalidUsage, f.end, f.start)
		}
		req.Params.SelectionStart = f.start
		req.Params.SelectionEnd = f.end
	default:
		return req, fmt.Errorf("%w: select the expression with --expr or --start and --end", ErrInvalidUsage)
	}
	return req, nil
}
