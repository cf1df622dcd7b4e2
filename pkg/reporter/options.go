package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/refract/pkg/config"
)

const bufWriterSize = 64 * 1024

// Options configures a reporter.
type Options struct {
	Writer      io.Writer
	ErrorWriter io.Writer

	Format config.OutputFormat

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line under each front-end diagnostic.
	ShowContext bool

	// ShowSummary prints totals after the files.
	ShowSummary bool

	// ShowEdits prints a table of edits for each changed file.
	ShowEdits bool

	// DryRun marks the summary as a preview.
	DryRun bool

	// Compact disables indentation in JSON output.
	Compact bool

	// WorkingDir makes displayed paths relative. Empty keeps them as is.
	WorkingDir string

	// TermWidth bounds the edit table. Zero means 100 columns.
	TermWidth int
}

// DefaultOptions returns options for text output on stdout.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
	}
}
