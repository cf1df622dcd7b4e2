package uast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/refract/pkg/uast"
)

// sample builds the tree for:
//
//	void M(int a) { return a + 5; }
//	0123456789012345678901234567890
func sample() (*uast.Function, string) {
	src := "void M(int a) { return a + 5; }"
	param := &uast.VarDecl{Span: uast.NewSpan(7, 12), Name: "a", NameSpan: uast.NewSpan(11, 12), VarType: "int"}
	sum := &uast.BinaryOp{
		Left:     &uast.Identifier{Name: "a", Span: uast.NewSpan(23, 24)},
		Operator: uast.OpAdd,
		Right:    &uast.Literal{Kind: uast.LitInteger, Int: 5, Span: uast.NewSpan(27, 28)},
		Span:     uast.NewSpan(23, 28),
	}
	body := &uast.Block{
		Statements: []uast.Statement{&uast.ReturnStatement{Value: sum, Span: uast.NewSpan(16, 29)}},
		Span:       uast.NewSpan(14, 31),
	}
	fn := &uast.Function{
		Name:       "M",
		Span:       uast.NewSpan(0, 31),
		Parameters: []*uast.VarDecl{param},
		Body:       []uast.FunctionBodyItem{body},
		ReturnType: "void",
	}
	return fn, src
}

func TestWalkPreOrder(t *testing.T) {
	t.Parallel()

	fn, _ := sample()

	var kinds []string
	require.NoError(t, uast.Walk(fn, func(n uast.Node) error {
		kinds = append(kinds, uast.Kind(n))
		return nil
	}))

	assert.Equal(t, []string{
		"Function", "VarDecl", "Block", "ReturnStatement", "BinaryOp", "Identifier", "Literal",
	}, kinds)
}

func TestWalkStops(t *testing.T) {
	t.Parallel()

	fn, _ := sample()
	stop := errors.New("stop")

	visited := 0
	err := uast.Walk(fn, func(uast.Node) error {
		visited++
		if visited == 3 {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, visited)
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	fn, _ := sample()
	depth, maxDepth := 0, 0
	require.NoError(t, uast.WalkWithContext(fn,
		func(uast.Node) error {
			depth++
			maxDepth = max(maxDepth, depth)
			return nil
		},
		func(uast.Node) error {
			depth--
			return nil
		}))

	assert.Zero(t, depth)
	assert.Equal(t, 5, maxDepth)
}

func TestInspectSkipsChildren(t *testing.T) {
	t.Parallel()

	fn, _ := sample()
	var seen []string
	uast.Inspect(fn, func(n uast.Node) bool {
		seen = append(seen, uast.Kind(n))
		_, isReturn := n.(*uast.ReturnStatement)
		return !isReturn
	})

	assert.NotContains(t, seen, "BinaryOp")
	assert.Contains(t, seen, "ReturnStatement")
}

func TestFind(t *testing.T) {
	t.Parallel()

	fn, _ := sample()

	idents := uast.FindAll(fn, func(n uast.Node) bool {
		_, ok := n.(*uast.Identifier)
		return ok
	})
	assert.Len(t, idents, 1)

	lit := uast.FindFirst(fn, func(n uast.Node) bool {
		_, ok := n.(*uast.Literal)
		return ok
	})
	require.NotNil(t, lit)
	assert.Equal(t, 27, lit.Pos())

	assert.Nil(t, uast.FindFirst(fn, func(n uast.Node) bool {
		_, ok := n.(*uast.Raw)
		return ok
	}))
}

func TestChildrenOmitsAbsent(t *testing.T) {
	t.Parallel()

	ifStmt := &uast.IfStatement{
		Condition:   &uast.Identifier{Name: "c", Span: uast.NewSpan(4, 5)},
		Consequence: &uast.Block{Span: uast.NewSpan(7, 9)},
		Span:        uast.NewSpan(0, 9),
	}
	assert.Len(t, uast.Children(ifStmt), 2)
	assert.Empty(t, uast.Children(&uast.Raw{SourceText: "x", Span: uast.NewSpan(0, 1)}))
	assert.Empty(t, uast.Children(&uast.ReturnStatement{Span: uast.NewSpan(0, 7)}))
}

func TestDeclName(t *testing.T) {
	t.Parallel()

	fn, _ := sample()
	assert.Equal(t, "M", uast.DeclName(fn))
	assert.Equal(t, "C", uast.DeclName(&uast.Class{Name: "C"}))
	assert.Empty(t, uast.DeclName(&uast.Unknown{SourceText: "using System;"}))
}
