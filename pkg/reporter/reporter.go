// Package reporter prints the outcome of a refactoring run as text, a
// unified diff, JSON or YAML.
package reporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/refract/pkg/config"
	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/runner"
)

// Reporter writes a run result.
type Reporter interface {
	// Report writes result and returns the number of changed files.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the reporter for opts.Format.
//
//nolint:ireturn // callers pick the implementation by format
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}

	format, err := config.ParseOutputFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatYAML:
		return NewYAMLReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath returns path relative to workDir when that does not climb
// more than two directories.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return path
	}
	return filepath.ToSlash(rel)
}

// diffOf returns the diff computed by the pipeline, or computes it.
func diffOf(path string, file runner.FileOutcome) *fix.Diff {
	res := file.Result
	if res == nil || !res.Changed {
		return nil
	}
	if res.Diff != nil {
		d := *res.Diff
		d.Path = path
		return &d
	}
	return fix.GenerateDiff(path, string(res.Original), string(res.Modified))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// checkContext returns the cancellation error of ctx, wrapped.
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report cancelled: %w", err)
	}
	return nil
}
