package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/refract/internal/ui/pretty"
	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/runner"
)

// DiffReporter prints git-style unified diffs. Errors go to ErrorWriter so
// the output stays a valid patch.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter returns a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if err := checkContext(ctx); err != nil {
			return 0, err
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil && !errors.Is(file.Error, pipeline.ErrNoChanges) {
			fmt.Fprint(r.opts.ErrorWriter, r.styles.FormatError(path, file.Error))
			continue
		}

		d := diffOf(path, file)
		if !d.HasChanges() {
			continue
		}
		files++
		additions += d.Additions
		deletions += d.Deletions

		fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", d.Path, d.Path)))
		fmt.Fprint(r.bw, r.styles.FormatDiff(d))
	}

	if files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.opts.ErrorWriter, r.summary(files, additions, deletions))
	}
	return files, nil
}

func (r *DiffReporter) summary(files, additions, deletions int) string {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}
	return strings.Join(parts, ", ")
}
