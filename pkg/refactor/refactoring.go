// Package refactor implements structural refactorings over the UAST.
//
// A refactoring never modifies the tree it is given. It returns byte-range
// edits in the coordinates of the buffer the tree was lowered from; the
// caller applies them with fix.ApplyEdits.
package refactor

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/uast"
)

// Refactoring computes the edits for one transformation of target.
// Apply is pure and deterministic: the same tree and parameters always
// produce the same edits in the same order.
type Refactoring interface {
	Apply(target uast.TopLevel) []fix.TextEdit
}

// Func adapts a function to the Refactoring interface.
type Func func(target uast.TopLevel) []fix.TextEdit

// Apply calls f.
func (f Func) Apply(target uast.TopLevel) []fix.TextEdit {
	return f(target)
}

// Params carries the parameters a registered refactoring may need.
// Each refactoring reads only the fields it uses.
type Params struct {
	OldName        string
	NewName        string
	SelectionStart int
	SelectionEnd   int
	Source         string
}

// Errors returned by factories and the registry.
var (
	ErrInvalidParams       = errors.New("invalid refactoring parameters")
	ErrUnknownRefactoring  = errors.New("unknown refactoring")
	ErrSelectionOutOfRange = errors.New("selection out of range")
)

// IsIdentifier reports whether name is a plausible identifier: a letter or
// underscore followed by letters, digits or underscores. A leading '@'
// (C# verbatim identifier) is allowed.
func IsIdentifier(name string) bool {
	if len(name) > 1 && name[0] == '@' {
		name = name[1:]
	}
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
		if r == utf8.RuneError {
			return false
		}
	}
	return true
}
