package fix

import (
	"errors"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit its buffer.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// Overlap is a pair of edits whose ranges intersect.
type Overlap struct {
	First  TextEdit
	Second TextEdit
}

func (o Overlap) String() string {
	return fmt.Sprintf("[%d:%d] overlaps [%d:%d]",
		o.First.StartOffset, o.First.EndOffset, o.Second.StartOffset, o.Second.EndOffset)
}

// SortEdits orders edits for application: descending StartOffset, then
// descending EndOffset. The sort is stable.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if a.StartOffset != b.StartOffset {
			return b.StartOffset - a.StartOffset
		}
		return b.EndOffset - a.EndOffset
	})
}

// ValidateEdits checks every edit against a buffer of contentLen bytes and
// returns all failures joined, or nil.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	var errs []error
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			errs = append(errs, &ValidationError{Edit: edit, Message: "start offset is negative"})
		case edit.EndOffset < edit.StartOffset:
			errs = append(errs, &ValidationError{Edit: edit, Message: "end offset is before start offset"})
		case edit.EndOffset > contentLen:
			errs = append(errs, &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			})
		}
	}
	return errors.Join(errs...)
}

// FindOverlaps reports every pair of edits whose ranges intersect. Edits
// that merely touch, including an insertion at the boundary of a
// replacement, do not overlap. An insertion strictly inside a replaced range
// does. Pairs are reported in ascending source order.
func FindOverlaps(edits []TextEdit) []Overlap {
	ordered := slices.Clone(edits)
	slices.SortStableFunc(ordered, func(a, b TextEdit) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})

	var out []Overlap
	for i := range ordered {
		for j := i + 1; j < len(ordered); j++ {
			a, b := ordered[i], ordered[j]
			if b.StartOffset >= a.EndOffset {
				break
			}
			if intersects(a, b) {
				out = append(out, Overlap{First: a, Second: b})
			}
		}
	}
	return out
}

func intersects(a, b TextEdit) bool {
	if a.IsInsertion() && b.IsInsertion() {
		return false
	}
	return a.StartOffset < b.EndOffset && b.StartOffset < a.EndOffset
}
