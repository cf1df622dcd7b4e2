package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/refactor"
)

func newRenameCommand(g *globalFlags) *cobra.Command {
	flags := &refactorFlags{}

	cmd := &cobra.Command{
		Use:   "rename <old> <new> [paths...]",
		Short: "Rename a local variable or parameter",
		Long: `Rename every binding and use of a local variable or parameter.

Names are matched exactly. Member names after a dot are never touched, and
neither are nested functions or classes that declare the same name again.
Use --decl to limit the rename to one declaration.

Examples:
  refract rename width w Shapes.cs
  refract rename total sum --decl Area -w src/
  cat Shapes.cs | refract rename width w -l cs`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pipeline.Request{
				Refactoring: "rename-variable",
				Params:      refactor.Params{OldName: args[0], NewName: args[1]},
			}
			return runRefactoring(cmd, g, flags, req, args[2:])
		},
	}

	addRefactorFlags(cmd, flags)
	return cmd
}
