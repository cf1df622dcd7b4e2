package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/codegen/csharp"
)

func newPrintCommand(g *globalFlags) *cobra.Command {
	var decl string

	cmd := &cobra.Command{
		Use:   "print [path]",
		Short: "Print the syntax tree of a file back as C#",
		Long: `Lower a file and pretty-print the tree as C# source, with the
indentation set by codegen.indent. Each Markdown code block is printed
under a comment naming its line. Constructs the front end keeps as raw
text are printed verbatim.

Reads standard input when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, cfg, err := lowerInput(cmd, g, args)
			if err != nil {
				return err
			}
			gen := csharp.New(cfg.Codegen.Indent)
			return printRegions(cmd, in, gen, decl)
		},
	}

	cmd.Flags().StringVar(&decl, "decl", "", "only print declarations with this name")
	return cmd
}

func printRegions(cmd *cobra.Command, in *lowered, gen *csharp.Generator, decl string) error {
	logger := logging.FromContext(commandContext(cmd))
	out := cmd.OutOrStdout()

	found := 0
	for i, lr := range in.regions {
		decls := selectDecls(lr.unit, decl)
		found += len(decls)

		if in.doc.IsMarkdown() {
			if i > 0 {
				if _, err := io.WriteString(out, "\n"); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			if _, err := fmt.Fprintf(out, "// %s:%d (%s)\n", in.doc.Path, lr.region.Line, lr.region.Language); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}

		code := gen.GenerateAll(decls)
		if code != "" && !strings.HasSuffix(code, "\n") {
			code += "\n"
		}
		if _, err := io.WriteString(out, code); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if decl != "" && found == 0 {
		logger.Warn("declaration not found", "decl", decl, logging.FieldPath, in.doc.Path)
	}
	return nil
}
