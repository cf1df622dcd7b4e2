package runner

import (
	"errors"

	"github.com/yaklabco/refract/pkg/pipeline"
)

// FileOutcome is the result for one file. Result may be set together with
// Error when the pipeline failed after computing edits.
type FileOutcome struct {
	Path   string
	Result *pipeline.Result
	Error  error
}

// Stats totals a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesErrored    int
	Edits           int
	Backups         int
	Warnings        int
	Diagnostics     int
}

// Result is a whole run, with files in sorted path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file has pending or written edits.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	// A file without changes under RequireChanges is reported, not failed.
	if outcome.Error != nil && !errors.Is(outcome.Error, pipeline.ErrNoChanges) {
		r.Stats.FilesErrored++
	}

	res := outcome.Result
	if res == nil {
		return
	}
	r.Stats.FilesProcessed++
	r.Stats.Warnings += len(res.Warnings)
	r.Stats.Diagnostics += len(res.Diagnostics)
	if res.Changed {
		r.Stats.FilesChanged++
		r.Stats.Edits += len(res.Edits)
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
	if res.BackupCreated {
		r.Stats.Backups++
	}
}

// Collect builds a Result from outcomes computed outside Run, such as a
// buffer read from standard input.
func Collect(outcomes ...FileOutcome) *Result {
	r := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	r.Stats.FilesDiscovered = len(outcomes)
	for _, o := range outcomes {
		r.accumulate(o)
	}
	return r
}
