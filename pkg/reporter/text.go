package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/refract/internal/ui/pretty"
	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/runner"
)

// TextReporter prints one block per file with warnings and diagnostics,
// then a summary line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.EditTable
	bw     *bufio.Writer
}

// NewTextReporter returns a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &TextReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewEditTable(styles, opts.TermWidth),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to refactor."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		if err := checkContext(ctx); err != nil {
			return 0, err
		}
		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(r.stats(result)))
	}
	return result.Stats.FilesChanged, nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := displayPath(file.Path, r.opts.WorkingDir)
	res := file.Result

	if file.Error != nil && !errors.Is(file.Error, pipeline.ErrNoChanges) {
		fmt.Fprint(r.bw, r.styles.FormatError(path, file.Error))
		return
	}
	if res == nil || (!res.Changed && len(res.Warnings) == 0 && len(res.Diagnostics) == 0) {
		return
	}

	edits := 0
	if res.Changed {
		edits = len(res.Edits)
	}
	header := r.styles.FormatFileHeader(path, edits)
	if res.Changed {
		header += " " + r.styles.Dim.Render(res.Summary())
	}
	fmt.Fprintln(r.bw, header)

	if r.opts.ShowEdits && res.Changed {
		fmt.Fprint(r.bw, r.table.Format(pretty.Rows(res.Original, res.Edits)))
	}
	for _, w := range res.Warnings {
		fmt.Fprint(r.bw, r.styles.FormatWarning(path, w))
	}
	for _, d := range res.Diagnostics {
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, res.Original, d, r.opts.ShowContext))
	}
	fmt.Fprintln(r.bw)
}

func (r *TextReporter) stats(result *runner.Result) pretty.Stats {
	s := result.Stats
	return pretty.Stats{
		FilesProcessed: s.FilesProcessed,
		FilesChanged:   s.FilesChanged,
		FilesWritten:   s.FilesWritten,
		FilesFailed:    s.FilesErrored,
		Edits:          s.Edits,
		Backups:        s.Backups,
		Warnings:       s.Warnings,
		Diagnostics:    s.Diagnostics,
		DryRun:         r.opts.DryRun,
	}
}
