// Package pipeline runs a refactoring over one file: it reads the file,
// splits it into code regions, lowers each region, collects the edits,
// applies them, and optionally writes the result back safely.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/refract/internal/logging"
	"github.com/yaklabco/refract/pkg/document"
	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/fsutil"
	"github.com/yaklabco/refract/pkg/refactor"
	"github.com/yaklabco/refract/pkg/uast"
)

// Pipeline errors for errors.Is.
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrUnsupportedLanguage = frontend.ErrUnsupportedLanguage
	// ErrNoChanges is returned only when Request.RequireChanges is set.
	ErrNoChanges    = errors.New("refactoring produced no changes")
	ErrWriteFailure = errors.New("write failure")
)

// Request describes one run.
type Request struct {
	// Path names the file. It is read unless Content is set.
	Path    string
	Content []byte

	// Language overrides detection.
	Language string
	// Flavor and Languages control Markdown regions.
	Flavor    string
	Languages []string

	// Refactoring is a registry ID or name.
	Refactoring string
	// Params are passed to the refactoring. Selection offsets are document
	// offsets; Source is filled in per region.
	Params refactor.Params
	// Snippet selects the expression to extract by its text instead of by
	// offsets. The first occurrence that is a whole expression wins.
	Snippet string
	// Decl limits the refactoring to top-level declarations with this name.
	Decl string

	Diff           bool
	Write          bool
	Backup         fsutil.BackupMode
	RequireChanges bool
}

// Result is the outcome of a run.
type Result struct {
	Path     string
	Language string
	// Edits are in document coordinates.
	Edits         []fix.TextEdit
	Original      []byte
	Modified      []byte
	Diff          *fix.Diff
	Changed       bool
	Written       bool
	BackupCreated bool
	Regions       int
	Diagnostics   []frontend.Diagnostic
	Warnings      []string
}

// Summary returns a short description of the outcome.
func (r *Result) Summary() string {
	switch {
	case r.Written && r.BackupCreated:
		return fmt.Sprintf("%d edits written (backup created)", len(r.Edits))
	case r.Written:
		return fmt.Sprintf("%d edits written", len(r.Edits))
	case r.Changed:
		return fmt.Sprintf("%d edits pending", len(r.Edits))
	default:
		return "no changes"
	}
}

// Pipeline ties front ends and refactorings together.
type Pipeline struct {
	Frontends    *frontend.Registry
	Refactorings *refactor.Registry
}

// New returns a pipeline over the default registries.
func New() *Pipeline {
	return &Pipeline{
		Frontends:    frontend.DefaultRegistry,
		Refactorings: refactor.DefaultRegistry,
	}
}

// regionResult is what one region contributes.
type regionResult struct {
	edits    []fix.TextEdit
	warnings []string
	diags    []frontend.Diagnostic
	decls    int
}

// Run executes req.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	logger := logging.FromContext(ctx)

	snap, content, err := p.load(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := document.Open(req.Path, content, document.Options{
		Language:  req.Language,
		Flavor:    req.Flavor,
		Languages: req.Languages,
		Supports: func(lang string) bool {
			_, ok := p.Frontends.Resolve(lang)
			return ok
		},
	})
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedLanguage) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedLanguage, err)
		}
		return nil, fmt.Errorf("open %s: %w", req.Path, err)
	}

	result := &Result{Path: req.Path, Language: doc.Language, Original: content, Regions: len(doc.Regions)}
	for _, s := range doc.Skipped {
		logger.Debug("skipping code fence", logging.FieldPath, req.Path, "line", s.Line, logging.FieldLanguage, s.Language)
	}
	if doc.IsMarkdown() && len(doc.Regions) == 0 {
		result.Warnings = append(result.Warnings, "no supported code blocks")
	}

	results, err := p.runRegions(ctx, req, doc)
	if err != nil {
		return nil, err
	}

	decls := 0
	for i, rr := range results {
		decls += rr.decls
		result.Diagnostics = append(result.Diagnostics, rr.diags...)
		result.Warnings = append(result.Warnings, rr.warnings...)
		logger.Debug("region refactored",
			logging.FieldPath, req.Path,
			logging.FieldRegion, i,
			logging.FieldDecls, rr.decls,
			logging.FieldEdits, len(rr.edits),
			logging.FieldDiagnostics, len(rr.diags))

		// An extraction by text applies to the first region that has it.
		if req.Snippet != "" && len(rr.edits) > 0 {
			result.Edits = rr.edits
			break
		}
		result.Edits = append(result.Edits, rr.edits...)
	}
	if req.Decl != "" && decls == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("declaration %q not found", req.Decl))
	}
	if req.Snippet != "" && len(result.Edits) == 0 && decls > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%q is not a complete expression in any statement", req.Snippet))
	}
	if result.Edits == nil {
		result.Edits = []fix.TextEdit{}
	}

	result.Modified = doc.Apply(result.Edits)
	result.Changed = !bytes.Equal(content, result.Modified)
	if req.Diff {
		result.Diff = fix.GenerateDiff(req.Path, string(content), string(result.Modified))
	}

	logger.Debug("refactoring applied",
		logging.FieldPath, req.Path,
		logging.FieldRefactoring, req.Refactoring,
		logging.FieldEdits, len(result.Edits),
		logging.FieldChanged, result.Changed)

	if !result.Changed {
		if req.RequireChanges {
			return result, fmt.Errorf("%w: %s", ErrNoChanges, req.Path)
		}
		return result, nil
	}

	if req.Write {
		if err := p.write(ctx, snap, req, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (p *Pipeline) load(ctx context.Context, req Request) (*fsutil.Snapshot, []byte, error) {
	if req.Content != nil {
		return nil, req.Content, nil
	}
	snap, err := fsutil.Read(ctx, req.Path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, nil, err
	}
	return snap, snap.Content, nil
}

// runRegions lowers and refactors every region concurrently. Results keep
// region order.
func (p *Pipeline) runRegions(ctx context.Context, req Request, doc *document.Document) ([]regionResult, error) {
	results := make([]regionResult, len(doc.Regions))

	g, ctx := errgroup.WithContext(ctx)
	for i, region := range doc.Regions {
		g.Go(func() error {
			rr, err := p.runRegion(ctx, req, region)
			if err != nil {
				return err
			}
			results[i] = rr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) runRegion(ctx context.Context, req Request, region *document.Region) (regionResult, error) {
	var rr regionResult

	fe, err := p.Frontends.Get(region.Language)
	if err != nil {
		return rr, err
	}
	unit, err := fe.Parse(ctx, req.Path, region.Source)
	if err != nil {
		return rr, fmt.Errorf("parse %s: %w", req.Path, err)
	}
	for _, d := range unit.Diagnostics {
		start, _ := region.DocumentOffset(d.Span.Start, false)
		end, _ := region.DocumentOffset(d.Span.End, true)
		d.Span = uast.NewSpan(start, max(start, end))
		rr.diags = append(rr.diags, d)
	}

	targets := unit.Decls
	if req.Decl != "" {
		targets = unit.Find(req.Decl)
	}
	rr.decls = len(targets)
	if len(targets) == 0 {
		return rr, nil
	}

	edits, err := p.collect(ctx, req, region, targets)
	if err != nil || len(edits) == 0 {
		return rr, err
	}

	for _, o := range fix.FindOverlaps(edits) {
		rr.warnings = append(rr.warnings, "overlapping edits: "+o.String())
	}

	mapped, dropped := region.ToDocument(edits)
	for _, e := range dropped {
		rr.warnings = append(rr.warnings, fmt.Sprintf("region at line %d: edit %s crosses a container prefix", region.Line, e))
	}
	rr.edits = mapped
	return rr, nil
}

// collect builds the refactoring for one region and gathers its edits in
// region coordinates.
func (p *Pipeline) collect(ctx context.Context, req Request, region *document.Region, targets []uast.TopLevel) ([]fix.TextEdit, error) {
	source := string(region.Source)

	if req.Snippet != "" {
		found, ok := refactor.FindExtraction(targets, source, req.Snippet, req.Params.NewName)
		if !ok {
			return nil, nil
		}
		return found.Edits, nil
	}

	params := req.Params
	params.Source = source
	if params.SelectionEnd > params.SelectionStart {
		start, okStart := region.RegionOffset(params.SelectionStart)
		end, okEnd := region.RegionOffset(params.SelectionEnd)
		if !okStart || !okEnd {
			return nil, nil
		}
		params.SelectionStart, params.SelectionEnd = start, end
	}

	ref, err := p.Refactorings.Build(req.Refactoring, params)
	if err != nil {
		return nil, err
	}

	var edits []fix.TextEdit
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		edits = append(edits, ref.Apply(target)...)
	}
	return edits, nil
}

func (p *Pipeline) write(ctx context.Context, snap *fsutil.Snapshot, req Request, result *Result) error {
	logger := logging.FromContext(ctx)
	if snap == nil {
		result.Warnings = append(result.Warnings, "input was not read from a file; nothing written")
		return nil
	}

	if err := snap.Verify(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	mode := req.Backup
	if mode == "" {
		mode = fsutil.BackupModeNone
	}
	created, err := snap.Backup(ctx, mode)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, snap.Path, result.Modified, snap.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	logger.Info("file refactored",
		logging.FieldPath, snap.Path,
		logging.FieldEdits, len(result.Edits),
		logging.FieldBackup, created)
	return nil
}
