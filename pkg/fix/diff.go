package fix

import (
	"fmt"
	"strings"
)

// LineOp classifies a line in a diff hunk.
type LineOp int

const (
	// LineContext is unchanged.
	LineContext LineOp = iota
	// LineAdded appears only in the new text.
	LineAdded
	// LineRemoved appears only in the old text.
	LineRemoved
)

// Prefix returns the unified diff marker for the operation.
func (op LineOp) Prefix() string {
	switch op {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk, without its trailing newline.
type Line struct {
	Op   LineOp
	Text string
}

// Hunk is a contiguous group of changes with surrounding context.
// Start fields are 1-based line numbers.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

const diffContext = 3

// GenerateDiff compares original and modified line by line.
// It returns nil when the texts have identical lines.
func GenerateDiff(path, original, modified string) *Diff {
	oldLines := lines(original)
	newLines := lines(modified)

	script := editScript(oldLines, newLines)

	diff := &Diff{Path: path}
	for _, l := range script {
		switch l.Op {
		case LineAdded:
			diff.Additions++
		case LineRemoved:
			diff.Deletions++
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}

	diff.Hunks = hunks(script)
	return diff
}

// HasChanges reports whether d has any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders d in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	name := strings.TrimPrefix(d.Path, "/")
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(l.Op.Prefix())
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// editScript computes a minimal line script from a suffix LCS table.
func editScript(a, b []string) []Line {
	n, m := len(a), len(b)
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	script := make([]Line, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			script = append(script, Line{Op: LineContext, Text: a[i]})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			script = append(script, Line{Op: LineRemoved, Text: a[i]})
			i++
		default:
			script = append(script, Line{Op: LineAdded, Text: b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		script = append(script, Line{Op: LineRemoved, Text: a[i]})
	}
	for ; j < m; j++ {
		script = append(script, Line{Op: LineAdded, Text: b[j]})
	}
	return script
}

// hunks groups a script into hunks, merging changes separated by no more
// than twice the context width.
func hunks(script []Line) []Hunk {
	var out []Hunk
	var cur *Hunk
	oldLine, newLine := 1, 1
	lastChange := -1

	closeHunk := func() {
		tail := script[lastChange+1 : min(len(script), lastChange+1+diffContext)]
		cur.Lines = append(cur.Lines, tail...)
		out = append(out, count(*cur))
	}

	for idx, l := range script {
		if l.Op != LineContext {
			if cur != nil && idx-lastChange > 2*diffContext {
				closeHunk()
				cur = nil
			}
			if cur == nil {
				lead := script[max(0, idx-diffContext):idx]
				cur = &Hunk{OldStart: oldLine - len(lead), NewStart: newLine - len(lead)}
				cur.Lines = append(cur.Lines, lead...)
			} else {
				cur.Lines = append(cur.Lines, script[lastChange+1:idx]...)
			}
			cur.Lines = append(cur.Lines, l)
			lastChange = idx
		}
		if l.Op != LineAdded {
			oldLine++
		}
		if l.Op != LineRemoved {
			newLine++
		}
	}
	if cur != nil {
		closeHunk()
	}
	return out
}

func count(h Hunk) Hunk {
	h.OldLines, h.NewLines = 0, 0
	for _, l := range h.Lines {
		if l.Op != LineAdded {
			h.OldLines++
		}
		if l.Op != LineRemoved {
			h.NewLines++
		}
	}
	return h
}
