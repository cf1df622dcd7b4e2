// Package csharp lowers C# source into the UAST.
//
// The front end is a hand-written recursive descent parser covering the
// declaration and statement forms the refactorings understand. Anything
// else (properties, switch statements, lambdas, patterns) is preserved
// verbatim as Unknown, UnknownStatement or Raw nodes with exact spans, so
// edits computed over the tree can never touch text the parser skipped.
package csharp

import (
	"context"

	"github.com/yaklabco/refract/pkg/frontend"
)

// Language is the canonical language id.
const Language = "csharp"

// Frontend implements frontend.Frontend for C#.
type Frontend struct{}

// New creates a C# front end.
func New() *Frontend {
	return &Frontend{}
}

// Language returns "csharp".
func (*Frontend) Language() string {
	return Language
}

// Parse lowers src. It fails only when ctx is done.
func (*Frontend) Parse(ctx context.Context, path string, src []byte) (*frontend.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decls, diags := ParseSource(src)
	return &frontend.Unit{
		Path:        path,
		Language:    Language,
		Source:      src,
		Decls:       decls,
		Diagnostics: diags,
	}, nil
}

//nolint:gochecknoinits // self-registration, like database/sql drivers
func init() {
	frontend.DefaultRegistry.Register(New(), "cs", "c#", "c-sharp")
}
