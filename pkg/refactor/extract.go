package refactor

import (
	"fmt"
	"strings"

	"github.com/yaklabco/refract/pkg/fix"
	"github.com/yaklabco/refract/pkg/uast"
)

// ExtractVariable introduces a local variable for the expression spanning
// exactly [SelectionStart, SelectionEnd) and replaces every occurrence of
// that exact span within the enclosing statement.
//
// The declaration is inserted at the start of the innermost statement
// enclosing the selection, indented like that statement. A selection that
// matches no expression in that statement, or that crosses a statement
// boundary, produces no edits.
type ExtractVariable struct {
	SelectionStart int
	SelectionEnd   int
	NewName        string
	// Source is the buffer the target tree was lowered from.
	Source string
}

// NewExtractVariable returns an ExtractVariable for the given selection.
func NewExtractVariable(start, end int, newName, source string) *ExtractVariable {
	return &ExtractVariable{SelectionStart: start, SelectionEnd: end, NewName: newName, Source: source}
}

// site is a place an extracted declaration can be inserted: a statement, or
// an expression-bodied member.
type site struct {
	insertAt int
	exprs    []uast.Expression
}

// Apply returns the insertion edit followed by the replacement edits, or an
// empty list.
func (x *ExtractVariable) Apply(target uast.TopLevel) []fix.TextEdit {
	b := fix.NewEditBuilder()
	sel := uast.NewSpan(x.SelectionStart, x.SelectionEnd)
	if target == nil || sel.IsEmpty() || !sel.InBounds(len(x.Source)) {
		return b.Edits()
	}

	s, ok := findSite(target, sel)
	if !ok || !containsExact(s.exprs, sel) {
		return b.Edits()
	}

	decl := fmt.Sprintf("var %s = %s;\n%s", x.NewName, x.Source[sel.Start:sel.End], indentation(x.Source, s.insertAt))
	b.Insert(s.insertAt, decl)

	for _, e := range s.exprs {
		replaceExact(e, sel, x.NewName, b)
	}
	return b.Edits()
}

// indentation returns the whitespace that starts the line holding offset,
// up to offset. When the statement is the first thing on its line this is
// every byte between the line start and the statement.
func indentation(src string, offset int) string {
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	end := lineStart
	for end < offset && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[lineStart:end]
}

func findSite(decl uast.TopLevel, sel uast.Span) (site, bool) {
	if !uast.SpanOf(decl).Encloses(sel) {
		return site{}, false
	}

	switch d := decl.(type) {
	case *uast.Class:
		return findSiteInDecls(d.Body, sel)
	case *uast.Module:
		return findSiteInDecls(d.Body, sel)
	case *uast.Function:
		for _, item := range d.Body {
			if !uast.SpanOf(item).Encloses(sel) {
				continue
			}
			switch item := item.(type) {
			case *uast.Block:
				return findSiteInBlock(item, sel)
			case *uast.NestedDecl:
				return findSite(item.Decl, sel)
			case *uast.ExpressionBody:
				return site{insertAt: item.Pos(), exprs: []uast.Expression{item.Expression}}, true
			}
		}
	case *uast.StatementDecl:
		return findSiteInStatement(d.Statement, sel)
	}
	return site{}, false
}

func findSiteInDecls(decls []uast.TopLevel, sel uast.Span) (site, bool) {
	for _, d := range decls {
		if s, ok := findSite(d, sel); ok {
			return s, true
		}
	}
	return site{}, false
}

func findSiteInBlock(block *uast.Block, sel uast.Span) (site, bool) {
	if block == nil {
		return site{}, false
	}
	for _, stmt := range block.Statements {
		if uast.SpanOf(stmt).Encloses(sel) {
			return findSiteInStatement(stmt, sel)
		}
	}
	return site{}, false
}

// findSiteInStatement descends into nested blocks before settling on stmt.
func findSiteInStatement(stmt uast.Statement, sel uast.Span) (site, bool) {
	if !uast.SpanOf(stmt).Encloses(sel) {
		return site{}, false
	}

	for _, nested := range nestedBlocks(stmt) {
		if nested != nil && nested.Span.Encloses(sel) {
			return findSiteInBlock(nested, sel)
		}
	}

	exprs := directExpressions(stmt)
	if len(exprs) == 0 {
		return site{}, false
	}
	return site{insertAt: stmt.Pos(), exprs: exprs}, true
}

func nestedBlocks(stmt uast.Statement) []*uast.Block {
	switch s := stmt.(type) {
	case *uast.IfStatement:
		return []*uast.Block{s.Consequence, s.Alternative}
	case *uast.WhileLoop:
		return []*uast.Block{s.Body}
	case *uast.ForLoop:
		return []*uast.Block{s.Body}
	default:
		return nil
	}
}

// directExpressions lists the expression positions owned by stmt itself.
// A for loop owns the expressions of its initializer.
func directExpressions(stmt uast.Statement) []uast.Expression {
	var out []uast.Expression
	add := func(e uast.Expression) {
		if e != nil {
			out = append(out, e)
		}
	}

	switch s := stmt.(type) {
	case *uast.DeclStmt:
		for _, d := range s.VarDecls {
			add(d.Value)
		}
	case *uast.ExpressionStatement:
		add(s.Expression)
	case *uast.IfStatement:
		add(s.Condition)
	case *uast.WhileLoop:
		add(s.Condition)
	case *uast.ReturnStatement:
		add(s.Value)
	case *uast.ForLoop:
		if s.Initializer != nil {
			out = append(out, directExpressions(s.Initializer)...)
		}
		add(s.Condition)
		add(s.Update)
	}
	return out
}

func containsExact(exprs []uast.Expression, sel uast.Span) bool {
	for _, e := range exprs {
		found := uast.FindFirst(e, func(n uast.Node) bool {
			_, isExpr := n.(uast.Expression)
			return isExpr && uast.SpanOf(n) == sel
		})
		if found != nil {
			return true
		}
	}
	return false
}

// replaceExact replaces each maximal expression whose span equals sel.
func replaceExact(e uast.Expression, sel uast.Span, name string, b *fix.EditBuilder) {
	uast.Inspect(e, func(n uast.Node) bool {
		if _, isExpr := n.(uast.Expression); !isExpr {
			return true
		}
		if uast.SpanOf(n) == sel {
			b.ReplaceRange(sel.Start, sel.End, name)
			return false
		}
		return uast.SpanOf(n).Encloses(sel)
	})
}

func newExtract(p Params) (Refactoring, error) {
	if !IsIdentifier(p.NewName) {
		return nil, fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidParams, p.NewName)
	}
	sel := uast.NewSpan(p.SelectionStart, p.SelectionEnd)
	if sel.IsEmpty() || !sel.InBounds(len(p.Source)) {
		return nil, fmt.Errorf("%w: %s in %d bytes", ErrSelectionOutOfRange, sel, len(p.Source))
	}
	return NewExtractVariable(p.SelectionStart, p.SelectionEnd, p.NewName, p.Source), nil
}

func init() {
	DefaultRegistry.Register(Kind{
		ID:          "extract-variable",
		Name:        "ExtractVariable",
		Description: "Introduce a local variable for a selected expression",
		Params:      []string{"selection", "new-name"},
		New:         newExtract,
	})
}
