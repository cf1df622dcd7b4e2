package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/refract/pkg/config"
	_ "github.com/yaklabco/refract/pkg/frontend/csharp"
	"github.com/yaklabco/refract/pkg/pipeline"
	"github.com/yaklabco/refract/pkg/refactor"
	"github.com/yaklabco/refract/pkg/reporter"
	"github.com/yaklabco/refract/pkg/runner"
)

// run renames count to total in a changed file, an untouched file and a
// file that fails to parse as anything supported.
func run(t *testing.T) (*runner.Result, string) {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"A.cs":     "int count = 1;\nPrint(count);\n",
		"B.cs":     "class B { }\n",
		"notes.md": "# Notes\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	result, err := runner.New(pipeline.New()).Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Request: pipeline.Request{
			Refactoring: "rename-variable",
			Params:      refactor.Params{OldName: "count", NewName: "total"},
		},
	})
	require.NoError(t, err)
	return result, dir
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, string, int) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return out.String(), errOut.String(), n
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "sarif"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t)
	out, _, changed := report(t, reporter.Options{
		Format: config.FormatText, WorkingDir: dir, ShowSummary: true, ShowEdits: true,
	}, result)

	assert.Equal(t, 1, changed)
	assert.Contains(t, out, "A.cs (2 edits) 2 edits pending\n")
	assert.Contains(t, out, "LOC")
	assert.Contains(t, out, "notes.md  warning  no supported code blocks")
	assert.NotContains(t, out, "B.cs")
	assert.True(t, strings.HasSuffix(out, "2 edits in 1 file, not written, 1 warning\n"), out)
}

func TestTextReporterEmpty(t *testing.T) {
	t.Parallel()

	out, _, n := report(t, reporter.Options{ShowSummary: true}, &runner.Result{})
	assert.Equal(t, "No files to refactor.\n", out)
	assert.Zero(t, n)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t)
	out, errOut, changed := report(t, reporter.Options{
		Format: config.FormatDiff, WorkingDir: dir, ShowSummary: true,
	}, result)

	assert.Equal(t, 1, changed)
	assert.Equal(t, "diff --git a/A.cs b/A.cs\n"+
		"--- a/A.cs\n"+
		"+++ b/A.cs\n"+
		"@@ -1,2 +1,2 @@\n"+
		"-int count = 1;\n"+
		"-Print(count);\n"+
		"+int total = 1;\n"+
		"+Print(total);\n", out)
	assert.Equal(t, "1 file changed, 2 insertions(+), 2 deletions(-)\n", errOut)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t)
	out, _, _ := report(t, reporter.Options{Format: config.FormatJSON, WorkingDir: dir}, result)

	var got reporter.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, reporter.OutputVersion, got.Version)
	require.Len(t, got.Files, 3)
	a := got.Files[0]
	assert.Equal(t, "A.cs", a.Path)
	assert.Equal(t, "csharp", a.Language)
	assert.True(t, a.Changed)
	require.Len(t, a.Edits, 2)
	assert.Equal(t, reporter.EditOutput{StartOffset: 4, EndOffset: 9, Line: 1, Column: 5, NewText: "total"}, a.Edits[0])
	assert.Equal(t, 2, a.Edits[1].Line)
	assert.Contains(t, a.Diff, "+Print(total);")

	assert.Empty(t, got.Files[1].Edits)
	assert.Equal(t, []string{"no supported code blocks"}, got.Files[2].Warnings)
	assert.Equal(t, reporter.Summary{FilesProcessed: 3, FilesChanged: 1, Edits: 2, Warnings: 1}, got.Summary)
}

func TestYAMLReporter(t *testing.T) {
	t.Parallel()

	result, dir := run(t)
	out, _, changed := report(t, reporter.Options{Format: config.FormatYAML, WorkingDir: dir}, result)
	assert.Equal(t, 1, changed)

	var got reporter.Output
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got.Files, 3)
	assert.Equal(t, "total", got.Files[0].Edits[0].NewText)
	assert.Equal(t, 2, got.Summary.Edits)
}

func TestReportCancelled(t *testing.T) {
	t.Parallel()

	result, _ := run(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, format := range []config.OutputFormat{config.FormatText, config.FormatDiff, config.FormatJSON, config.FormatYAML} {
		rep, err := reporter.New(reporter.Options{Format: format, Writer: &bytes.Buffer{}, ErrorWriter: &bytes.Buffer{}})
		require.NoError(t, err)
		_, err = rep.Report(ctx, result)
		require.ErrorIs(t, err, context.Canceled, format)
	}
}
