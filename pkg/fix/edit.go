// Package fix provides byte-range text edits and the applicator that
// splices them into a source buffer.
package fix

import "fmt"

// TextEdit replaces the bytes [StartOffset, EndOffset) of the original
// buffer with NewText. StartOffset == EndOffset is a pure insertion.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int `json:"start"`

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int `json:"end"`

	// NewText is the replacement text.
	NewText string `json:"replacement"`
}

// Len returns the number of original bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsInsertion reports whether the edit replaces no bytes.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d,%d)=%q", e.StartOffset, e.EndOffset, e.NewText)
}

// Shift returns a copy of edits with both offsets moved by delta.
func Shift(edits []TextEdit, delta int) []TextEdit {
	if len(edits) == 0 {
		return nil
	}
	out := make([]TextEdit, len(edits))
	for i, e := range edits {
		out[i] = TextEdit{StartOffset: e.StartOffset + delta, EndOffset: e.EndOffset + delta, NewText: e.NewText}
	}
	return out
}

// EditBuilder accumulates text edits in the order they are added.
type EditBuilder struct {
	edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.edits = append(b.edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Insert adds an edit that inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that removes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.edits)
}

// Edits returns the accumulated edits. The result is never nil.
func (b *EditBuilder) Edits() []TextEdit {
	if b.edits == nil {
		return []TextEdit{}
	}
	return b.edits
}
