package refactor

import (
	"fmt"

	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/uast"
)

// RenameVariable renames every identifier reference and declarator named
// OldName. Matching is by name alone: there is no scope analysis, so
// unrelated variables and shadowed names with the same spelling are renamed
// too. Member names in member accesses are never renamed, and nothing
// inside Raw or Unknown nodes is touched.
type RenameVariable struct {
	OldName string
	NewName string
}

// NewRenameVariable returns a RenameVariable from oldName to newName.
func NewRenameVariable(oldName, newName string) *RenameVariable {
	return &RenameVariable{OldName: oldName, NewName: newName}
}

// Apply returns one edit per occurrence, in source order.
func (r *RenameVariable) Apply(target uast.TopLevel) []fix.TextEdit {
	b := fix.NewEditBuilder()
	if r.OldName == "" || target == nil {
		return b.Edits()
	}

	uast.Inspect(target, func(n uast.Node) bool {
		switch n := n.(type) {
		case *uast.Identifier:
			if n.Name == r.OldName {
				b.ReplaceRange(n.Span.Start, n.Span.End, r.NewName)
			}
		case *uast.VarDecl:
			if n.Name == r.OldName {
				b.ReplaceRange(n.NameSpan.Start, n.NameSpan.End, r.NewName)
			}
		}
		return true
	})

	return b.Edits()
}

func newRename(p Params) (Refactoring, error) {
	if p.OldName == "" {
		return nil, fmt.Errorf("%w: old name is required", ErrInvalidParams)
	}
	if !IsIdentifier(p.NewName) {
		return nil, fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidParams, p.NewName)
	}
	return NewRenameVariable(p.OldName, p.NewName), nil
}

func init() {
	DefaultRegistry.Register(Kind{
		ID:          "rename-variable",
		Name:        "RenameVariable",
		Description: "Rename every reference and declaration of a variable by name",
		Params:      []string{"old-name", "new-name"},
		New:         newRename,
	})
}
