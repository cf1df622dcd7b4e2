package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/internal/ui/pretty"
	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/refactor"
)

type refactoringInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

type listOutput struct {
	Refactorings []refactoringInfo `json:"refactorings"`
	Languages    []string          `json:"languages"`
}

func newListCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the available refactorings and languages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := listOutput{Languages: frontend.DefaultRegistry.Languages()}
			for _, k := range refactor.DefaultRegistry.Kinds() {
				out.Refactorings = append(out.Refactorings, refactoringInfo{
					ID: k.ID, Name: k.Name, Description: k.Description, Params: k.Params,
				})
			}

			switch format {
			case "text":
				color, _ := cmd.Flags().GetString("color")
				return writeList(cmd, out, pretty.NewStyles(pretty.IsColorEnabled(color, cmd.OutOrStdout())))
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("%w: format %q, want text or json", ErrInvalidUsage, format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}

func writeList(cmd *cobra.Command, out listOutput, styles *pretty.Styles) error {
	var b strings.Builder

	b.WriteString(styles.Bold.Render("Refactorings"))
	b.WriteString("\n")
	for _, r := range out.Refactorings {
		fmt.Fprintf(&b, "  %s  %s\n", styles.TableHeader.Render(fmt.Sprintf("%-18s", r.ID)), r.Description)
		fmt.Fprintf(&b, "  %-18s  %s\n", "", styles.Dim.Render(r.Name+"("+strings.Join(r.Params, ", ")+")"))
	}

	b.WriteString("\n")
	b.WriteString(styles.Bold.Render("Languages"))
	b.WriteString("\n")
	for _, l := range out.Languages {
		fmt.Fprintf(&b, "  %s\n", l)
	}

	if _, err := fmt.Fprint(cmd.OutOrStdout(), b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
