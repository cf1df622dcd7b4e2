package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/runner"
	"github.com/yaklabco/refract/pkg/uast"
)

// OutputVersion is the version of the JSON and YAML schema.
const OutputVersion = "1.0.0"

// Output is the machine-readable report.
type Output struct {
	Version string       `json:"version"          yaml:"version"`
	Files   []FileOutput `json:"files"            yaml:"files"`
	Summary Summary      `json:"summary"          yaml:"summary"`
}

// FileOutput is one file of the report.
type FileOutput struct {
	Path          string       `json:"path"                    yaml:"path"`
	Language      string       `json:"language,omitempty"      yaml:"language,omitempty"`
	Changed       bool         `json:"changed"                 yaml:"changed"`
	Written       bool         `json:"written"                 yaml:"written"`
	BackupCreated bool         `json:"backupCreated,omitempty" yaml:"backupCreated,omitempty"`
	Regions       int          `json:"regions"                 yaml:"regions"`
	Edits         []EditOutput `json:"edits"                   yaml:"edits"`
	Warnings      []string     `json:"warnings,omitempty"      yaml:"warnings,omitempty"`
	Diagnostics   []DiagOutput `json:"diagnostics,omitempty"   yaml:"diagnostics,omitempty"`
	Diff          string       `json:"diff,omitempty"          yaml:"diff,omitempty"`
	Error         string       `json:"error,omitempty"         yaml:"error,omitempty"`
}

// EditOutput is a text edit with the position of its start.
type EditOutput struct {
	StartOffset int    `json:"startOffset" yaml:"startOffset"`
	EndOffset   int    `json:"endOffset"   yaml:"endOffset"`
	Line        int    `json:"line"        yaml:"line"`
	Column      int    `json:"column"      yaml:"column"`
	NewText     string `json:"newText"     yaml:"newText"`
}

// DiagOutput is a front-end diagnostic.
type DiagOutput struct {
	Line    int    `json:"line"    yaml:"line"`
	Column  int    `json:"column"  yaml:"column"`
	Message string `json:"message" yaml:"message"`
}

// Summary totals the report.
type Summary struct {
	FilesProcessed int `json:"filesProcessed" yaml:"filesProcessed"`
	FilesChanged   int `json:"filesChanged"   yaml:"filesChanged"`
	FilesWritten   int `json:"filesWritten"   yaml:"filesWritten"`
	FilesErrored   int `json:"filesErrored"   yaml:"filesErrored"`
	Edits          int `json:"edits"          yaml:"edits"`
	Warnings       int `json:"warnings"       yaml:"warnings"`
}

// BuildOutput converts a run result into the report structure.
func BuildOutput(result *runner.Result, workDir string) *Output {
	out := &Output{Version: OutputVersion, Files: []FileOutput{}}
	if result == nil {
		return out
	}

	s := result.Stats
	out.Summary = Summary{
		FilesProcessed: s.FilesProcessed,
		FilesChanged:   s.FilesChanged,
		FilesWritten:   s.FilesWritten,
		FilesErrored:   s.FilesErrored,
		Edits:          s.Edits,
		Warnings:       s.Warnings,
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, workDir)
		fo := FileOutput{Path: path, Edits: []EditOutput{}}
		if file.Error != nil && !errors.Is(file.Error, pipeline.ErrNoChanges) {
			fo.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fo.Language = res.Language
			fo.Changed = res.Changed
			fo.Written = res.Written
			fo.BackupCreated = res.BackupCreated
			fo.Regions = res.Regions
			fo.Warnings = res.Warnings
			for _, e := range res.Edits {
				pos := uast.PositionOf(res.Original, e.StartOffset)
				fo.Edits = append(fo.Edits, EditOutput{
					StartOffset: e.StartOffset,
					EndOffset:   e.EndOffset,
					Line:        pos.Line,
					Column:      pos.Column,
					NewText:     e.NewText,
				})
			}
			for _, d := range res.Diagnostics {
				pos := uast.PositionOf(res.Original, d.Span.Start)
				fo.Diagnostics = append(fo.Diagnostics, DiagOutput{Line: pos.Line, Column: pos.Column, Message: d.Message})
			}
			fo.Diff = diffOf(path, file).String()
		}
		out.Files = append(out.Files, fo)
	}
	return out
}

// JSONReporter writes the report as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter returns a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	output := BuildOutput(result, r.opts.WorkingDir)
	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.FilesChanged, nil
}

// YAMLReporter writes the report as YAML.
type YAMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewYAMLReporter returns a YAML reporter.
func NewYAMLReporter(opts Options) *YAMLReporter {
	return &YAMLReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *YAMLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if err := checkContext(ctx); err != nil {
		return 0, err
	}

	output := BuildOutput(result, r.opts.WorkingDir)
	enc := yaml.NewEncoder(r.bw)
	enc.SetIndent(2)
	if err := enc.Encode(output); err != nil {
		return 0, fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("encode YAML: %w", err)
	}
	return output.Summary.FilesChanged, nil
}
