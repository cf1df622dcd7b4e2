package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/pipeline"
)

// Runner runs a pipeline over discovered files.
type Runner struct {
	Pipeline *pipeline.Pipeline
}

// New returns a runner over p.
func New(p *pipeline.Pipeline) *Runner {
	return &Runner{Pipeline: p}
}

// Run discovers files and refactors them concurrently. Per-file failures
// are recorded in the outcomes; Run itself fails only when discovery
// fails or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	logging.FromContext(ctx).Debug("running refactoring",
		logging.FieldRefactoring, opts.Request.Refactoring,
		"files", len(files),
		"jobs", min(jobs, len(files)))

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			req := opts.Request
			req.Path = path
			req.Content = nil

			res, err := r.Pipeline.Run(gctx, req)
			outcomes[i] = FileOutcome{Path: path, Result: res, Error: err}
			done[i] = true
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
