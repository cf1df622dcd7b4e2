package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/refract/pkg/fix"
)

func TestGenerateDiffNoChanges(t *testing.T) {
	t.Parallel()

	assert.Nil(t, fix.GenerateDiff("a.cs", "", ""))
	assert.Nil(t, fix.GenerateDiff("a.cs", "x\ny\n", "x\ny\n"))

	var d *fix.Diff
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
}

func TestGenerateDiffSingleChange(t *testing.T) {
	t.Parallel()

	d := fix.GenerateDiff("a.cs", "a\nb\nc\n", "a\nB\nc\n")
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Additions)
	assert.Equal(t, 1, d.Deletions)
	require.Len(t, d.Hunks, 1)

	want := strings.Join([]string{
		"--- a/a.cs",
		"+++ b/a.cs",
		"@@ -1,3 +1,3 @@",
		" a",
		"-b",
		"+B",
		" c",
		"",
	}, "\n")
	assert.Equal(t, want, d.String())
}

func TestGenerateDiffInsertion(t *testing.T) {
	t.Parallel()

	orig := "class C {\n    void M() {\n        int x = 5 + 10;\n    }\n}\n"
	mod := "class C {\n    void M() {\n        var sum = 5 + 10;\n        int x = sum;\n    }\n}\n"

	d := fix.GenerateDiff("/src/C.cs", orig, mod)
	require.True(t, d.HasChanges())
	assert.Equal(t, 2, d.Additions)
	assert.Equal(t, 1, d.Deletions)

	h := d.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 5, h.OldLines)
	assert.Equal(t, 6, h.NewLines)
	assert.Contains(t, d.String(), "--- a/src/C.cs")
}

func TestGenerateDiffSeparateHunks(t *testing.T) {
	t.Parallel()

	var a, b []string
	for i := range 30 {
		line := strings.Repeat("x", i+1)
		a = append(a, line)
		switch i {
		case 2, 25:
			b = append(b, "changed")
		default:
			b = append(b, line)
		}
	}

	d := fix.GenerateDiff("f", strings.Join(a, "\n"), strings.Join(b, "\n"))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, 1, d.Hunks[0].OldStart)
	assert.Equal(t, 6, d.Hunks[0].OldLines)
	assert.Equal(t, 23, d.Hunks[1].OldStart)
	assert.Equal(t, 7, d.Hunks[1].OldLines)
}
