package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/config"
	"github.com/yaklabco/refract/pkg/document"
	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/uast"
)

// loweredRegion is one code region and its syntax tree.
type loweredRegion struct {
	region *document.Region
	unit   *frontend.Unit
}

// lowered is an input file split into regions and lowered.
type lowered struct {
	doc     *document.Document
	regions []loweredRegion
}

// lowerInput reads the single path argument, or standard input, and lowers
// every code region in it.
func lowerInput(cmd *cobra.Command, g *globalFlags, args []string) (*lowered, *config.Config, error) {
	ctx := commandContext(cmd)

	cfg, err := g.loadConfig(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	path, content, err := readInput(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	lang := g.language
	if lang == "" && path == stdinPath {
		lang = cfg.Language
	}
	doc, err := document.Open(path, content, document.Options{
		Language:  lang,
		Flavor:    string(cfg.Markdown.Flavor),
		Languages: cfg.Markdown.Languages,
		Supports: func(l string) bool {
			_, ok := frontend.DefaultRegistry.Resolve(l)
			return ok
		},
	})
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedLanguage) {
			return nil, nil, fmt.Errorf("%w: %w", pipeline.ErrUnsupportedLanguage, err)
		}
		return nil, nil, err
	}

	out := &lowered{doc: doc}
	for _, region := range doc.Regions {
		unit, err := lowerRegion(ctx, path, region)
		if err != nil {
			return nil, nil, err
		}
		out.regions = append(out.regions, loweredRegion{region: region, unit: unit})
	}
	return out, cfg, nil
}

func lowerRegion(ctx context.Context, path string, region *document.Region) (*frontend.Unit, error) {
	fe, err := frontend.DefaultRegistry.Get(region.Language)
	if err != nil {
		return nil, err
	}
	unit, err := fe.Parse(ctx, path, region.Source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug("region lowered",
		logging.FieldPath, path,
		logging.FieldRegion, region.Index,
		logging.FieldLanguage, region.Language,
		logging.FieldDecls, len(unit.Decls),
		logging.FieldDiagnostics, len(unit.Diagnostics))
	return unit, nil
}

func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == stdinPath {
		content, err := readStdin(cmd.InOrStdin())
		return stdinPath, content, err
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", pipeline.ErrFileNotFound, args[0])
		}
		return "", nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return args[0], content, nil
}

// selectDecls returns the declarations named decl, or all of them.
func selectDecls(unit *frontend.Unit, decl string) []uast.TopLevel {
	if decl == "" {
		return unit.Decls
	}
	return unit.Find(decl)
}
