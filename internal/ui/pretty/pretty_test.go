package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/refract/internal/ui/pretty"
	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/uast"
)

const source = "int x = 1;\nint y = x +;\n"

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := frontend.Diagnostic{Span: uast.NewSpan(22, 23), Message: "expected expression"}

	got := styles.FormatDiagnostic("A.cs", []byte(source), diag, false)
	assert.Equal(t, "  A.cs:2:12  warning  expected expression\n", got)

	got = styles.FormatDiagnostic("A.cs", []byte(source), diag, true)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "        int y = x +;", lines[1])
	assert.Equal(t, strings.Repeat(" ", 8+11)+"^", lines[2])
}

func TestFormatWarningAndError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "  a.md  warning  no supported code blocks\n", styles.FormatWarning("a.md", "no supported code blocks"))
	assert.Equal(t, "  a.md  error  boom\n", styles.FormatError("a.md", errors.New("boom")))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "A.cs", styles.FormatFileHeader("A.cs", 0))
	assert.Equal(t, "A.cs (1 edit)", styles.FormatFileHeader("A.cs", 1))
	assert.Equal(t, "A.cs (3 edits)", styles.FormatFileHeader("A.cs", 3))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Empty(t, styles.FormatDiff(nil))

	d := fix.GenerateDiff("A.cs", "int x = 1;\n", "int y = 1;\n")
	require.NotNil(t, d)
	assert.Equal(t, d.String(), styles.FormatDiff(d), "plain styles match the unified text")
}

func TestEditTable(t *testing.T) {
	t.Parallel()

	src := []byte("int total = price * 2;\n")
	edits := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 0, NewText: "var doubled = price * 2;\n"},
		{StartOffset: 12, EndOffset: 21, NewText: "doubled"},
	}

	rows := pretty.Rows(src, edits)
	require.Len(t, rows, 2)
	assert.Equal(t, pretty.EditRow{Location: "1:1", Old: "", New: "var doubled = price * 2;⏎"}, rows[0])
	assert.Equal(t, pretty.EditRow{Location: "1:13", Old: "price * 2", New: "doubled"}, rows[1])

	out := pretty.NewEditTable(pretty.NewStyles(false), 0).Format(rows)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "LOC"))
	assert.Contains(t, lines[3], "price * 2")
	assert.Contains(t, lines[3], "doubled")

	assert.Empty(t, pretty.NewEditTable(pretty.NewStyles(false), 80).Format(nil))
}

func TestEditTableTruncates(t *testing.T) {
	t.Parallel()

	rows := []pretty.EditRow{{Location: "1:1", Old: strings.Repeat("a", 80), New: strings.Repeat("b", 80)}}
	out := pretty.NewEditTable(pretty.NewStyles(false), 60).Format(rows)
	assert.Contains(t, out, "…")
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n")[2:] {
		assert.LessOrEqual(t, len([]rune(line)), 60)
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := []struct {
		name  string
		stats pretty.Stats
		want  string
	}{
		{"no changes", pretty.Stats{FilesProcessed: 1}, "No changes (1 file checked)\n"},
		{"no changes with failure", pretty.Stats{FilesProcessed: 2, FilesFailed: 1}, "No changes (2 files checked), 1 failed\n"},
		{"written", pretty.Stats{FilesProcessed: 2, FilesChanged: 2, FilesWritten: 2, Edits: 4, Backups: 2}, "4 edits in 2 files, 2 written (2 backups)\n"},
		{"dry run", pretty.Stats{FilesProcessed: 1, FilesChanged: 1, Edits: 1, DryRun: true}, "1 edit in 1 file, dry run\n"},
		{"pending with warnings", pretty.Stats{FilesProcessed: 1, FilesChanged: 1, Edits: 2, Warnings: 1}, "2 edits in 1 file, not written, 1 warning\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatSummary(pretty.Stats{FilesProcessed: 3, FilesWritten: 1, Edits: 5})
	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "Files processed:   3")
	assert.Contains(t, got, "Files written:     1")
	assert.Contains(t, got, "Edits:             5")
	assert.NotContains(t, got, "Warnings")
}
