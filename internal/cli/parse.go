package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/refract/pkg/config"
	"github.com/yaklabco/refract/pkg/uast"
)

// parseOutput is the tree dump written by the parse command.
type parseOutput struct {
	Path     string         `json:"path"     yaml:"path"`
	Language string         `json:"language" yaml:"language"`
	Flavor   string         `json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Regions  []regionOutput `json:"regions"  yaml:"regions"`
}

type regionOutput struct {
	Index       int             `json:"index"                 yaml:"index"`
	Language    string          `json:"language"              yaml:"language"`
	Line        int             `json:"line"                  yaml:"line"`
	Decls       []*uast.Encoded `json:"decls"                 yaml:"decls"`
	Diagnostics []diagnostic    `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	SpanErrors  []string        `json:"span_errors,omitempty" yaml:"span_errors,omitempty"`
}

type diagnostic struct {
	Start   int    `json:"start"   yaml:"start"`
	End     int    `json:"end"     yaml:"end"`
	Message string `json:"message" yaml:"message"`
}

func newParseCommand(g *globalFlags) *cobra.Command {
	var (
		format string
		decl   string
	)

	cmd := &cobra.Command{
		Use:   "parse [path]",
		Short: "Dump the syntax tree of a file",
		Long: `Lower a file and print its syntax tree as YAML or JSON. Offsets are
relative to each region's source. Every tree is checked for span
consistency and violations are listed under span_errors.

Reads standard input when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseOutputFormat(format)
			if err != nil || (f != config.FormatYAML && f != config.FormatJSON) {
				return fmt.Errorf("%w: format %q, want yaml or json", ErrInvalidUsage, format)
			}

			in, _, err := lowerInput(cmd, g, args)
			if err != nil {
				return err
			}
			return writeTree(cmd, buildParseOutput(in, decl), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, json")
	cmd.Flags().StringVar(&decl, "decl", "", "only dump declarations with this name")
	return cmd
}

func buildParseOutput(in *lowered, decl string) *parseOutput {
	out := &parseOutput{
		Path:     in.doc.Path,
		Language: in.doc.Language,
		Flavor:   in.doc.Flavor,
		Regions:  make([]regionOutput, 0, len(in.regions)),
	}

	for _, lr := range in.regions {
		ro := regionOutput{
			Index:    lr.region.Index,
			Language: lr.region.Language,
			Line:     lr.region.Line,
			Decls:    []*uast.Encoded{},
		}
		for _, d := range selectDecls(lr.unit, decl) {
			ro.Decls = append(ro.Decls, uast.Encode(d))
			ro.SpanErrors = append(ro.SpanErrors, spanErrors(d, len(lr.region.Source))...)
		}
		for _, d := range lr.unit.Diagnostics {
			ro.Diagnostics = append(ro.Diagnostics, diagnostic{Start: d.Span.Start, End: d.Span.End, Message: d.Message})
		}
		out.Regions = append(out.Regions, ro)
	}
	return out
}

func spanErrors(decl uast.TopLevel, bufLen int) []string {
	err := uast.Validate(decl, bufLen)
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range joined.Unwrap() {
		out = append(out, e.Error())
	}
	return out
}

func writeTree(cmd *cobra.Command, out *parseOutput, format config.OutputFormat) error {
	w := cmd.OutOrStdout()
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(config.YAMLIndent)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}
