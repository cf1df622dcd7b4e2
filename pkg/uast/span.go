// Package uast defines a language-agnostic, span-annotated syntax tree.
//
// Front ends lower concrete syntax into these nodes; refactorings read them
// and produce byte-range text edits against the buffer the tree was lowered
// from. Nodes are never modified after construction.
package uast

import "fmt"

// Span is a half-open byte range [Start, End) into a source buffer.
type Span struct {
	// Start is the byte offset where the range begins (inclusive).
	Start int

	// End is the byte offset where the range ends (exclusive).
	End int
}

// NewSpan returns the span [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if offset falls within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Encloses returns true if other lies entirely within s.
func (s Span) Encloses(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// InBounds reports whether the span is well-formed for a buffer of n bytes.
func (s Span) InBounds(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

// Text returns the bytes covered by the span as a string.
// Out-of-bounds spans yield an empty string.
func (s Span) Text(src []byte) string {
	if !s.InBounds(len(src)) {
		return ""
	}
	return string(src[s.Start:s.End])
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf converts a byte offset into a line/column position.
// Columns count bytes. Offsets past the end clamp to the end of src.
func PositionOf(src []byte, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	pos := Position{Line: 1, Column: 1}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			pos.Line++
			pos.Column = 1
			continue
		}
		pos.Column++
	}
	return pos
}
