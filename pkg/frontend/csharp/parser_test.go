package csharp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/frontend/csharp"
	"github.com/yaklabco/refract/pkg/uast"
)

func parse(t *testing.T, src string) []uast.TopLevel {
	t.Helper()
	decls, _ := csharp.ParseSource([]byte(src))
	for _, d := range decls {
		require.NoError(t, uast.Validate(d, len(src)))
	}
	return decls
}

func kinds[N uast.Node](nodes []N) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = uast.Kind(n)
	}
	return out
}

func textOf(src string, n uast.Node) string {
	return src[n.Pos():n.End()]
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	src := `public class MyClass {
    public int MyMethod(int a) {
        return a + 5;
    }
}`
	decls := parse(t, src)
	require.Len(t, decls, 1)

	class, ok := decls[0].(*uast.Class)
	require.True(t, ok)
	assert.Equal(t, "MyClass", class.Name)
	assert.Equal(t, []string{"public"}, class.Modifiers)
	assert.Equal(t, "class", class.Metadata["kind"])
	assert.Equal(t, src, textOf(src, class))
	require.Len(t, class.Body, 1)

	fn, ok := class.Body[0].(*uast.Function)
	require.True(t, ok)
	assert.Equal(t, "MyMethod", fn.Name)
	assert.Equal(t, "int", fn.ReturnType)
	require.Len(t, fn.Parameters, 1)
	param := fn.Parameters[0]
	assert.Equal(t, "a", param.Name)
	assert.Equal(t, "int", param.VarType)
	assert.Equal(t, "int a", textOf(src, param))
	assert.Equal(t, "a", param.NameSpan.Text([]byte(src)))

	require.Len(t, fn.Body, 1)
	block, ok := fn.Body[0].(*uast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 1)
	ret, ok := block.Statements[0].(*uast.ReturnStatement)
	require.True(t, ok)
	assert.Equal(t, "return a + 5;", textOf(src, ret))

	sum, ok := ret.Value.(*uast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, uast.OpAdd, sum.Operator)
	assert.Equal(t, &uast.Identifier{Name: "a", Span: sum.Left.(*uast.Identifier).Span}, sum.Left)
	lit, ok := sum.Right.(*uast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Int)
}

func TestParseDeclarations(t *testing.T) {
	t.Parallel()

	src := `using System;
using static System.Math;

namespace Shop.Orders
{
    [Serializable]
    public sealed class Order<T> : Base, IOrder where T : new()
    {
        private readonly int count = 3;
        public string Name { get; set; }
        public Order(int count) : base(count) { }
        public abstract void Abstract();
        public int Twice(int v) => v * 2;
        enum Kind { A, B }
        public static Order operator +(Order a, Order b) => a;
        public struct Inner { }
    }
}`
	decls := parse(t, src)
	assert.Equal(t, []string{"Unknown", "Unknown", "Module"}, kinds(decls))
	assert.Equal(t, "using static System.Math;", textOf(src, decls[1]))

	ns := decls[2].(*uast.Module)
	assert.Equal(t, "Shop.Orders", ns.Name)
	assert.Equal(t, "namespace", ns.Metadata["kind"])
	require.Len(t, ns.Body, 1)

	class := ns.Body[0].(*uast.Class)
	assert.Equal(t, "Order", class.Name)
	assert.Equal(t, []string{"Serializable"}, class.Annotations)
	assert.Equal(t, []string{"public", "sealed"}, class.Modifiers)
	assert.Equal(t, "<T>", class.Metadata["type_parameters"])
	assert.Equal(t, "Base, IOrder", class.Metadata["base"])
	assert.Equal(t, []string{
		"StatementDecl", "Unknown", "Function", "Function", "Function", "Unknown", "Unknown", "Class",
	}, kinds(class.Body))

	field := class.Body[0].(*uast.StatementDecl).Statement.(*uast.DeclStmt)
	assert.Equal(t, []string{"private", "readonly"}, field.Modifiers)
	assert.Equal(t, "private readonly int count = 3;", textOf(src, field))
	assert.Equal(t, "count = 3", textOf(src, field.VarDecls[0]))

	assert.Equal(t, "public string Name { get; set; }", textOf(src, class.Body[1]))

	ctor := class.Body[2].(*uast.Function)
	assert.Equal(t, "constructor", ctor.Metadata["kind"])
	assert.Empty(t, ctor.ReturnType)

	abstract := class.Body[3].(*uast.Function)
	assert.Nil(t, abstract.Body)

	twice := class.Body[4].(*uast.Function)
	require.Len(t, twice.Body, 1)
	body, ok := twice.Body[0].(*uast.ExpressionBody)
	require.True(t, ok)
	assert.Equal(t, "v * 2", textOf(src, body))

	assert.Equal(t, "enum Kind { A, B }", textOf(src, class.Body[5]))
	assert.Equal(t, "struct", class.Body[7].(*uast.Class).Metadata["kind"])
}

func TestParseFileScopedNamespace(t *testing.T) {
	t.Parallel()

	src := "namespace App;\n\nclass A { }\nrecord Point(int X, int Y);\n"
	decls := parse(t, src)
	require.Len(t, decls, 1)

	ns := decls[0].(*uast.Module)
	assert.Equal(t, "App", ns.Name)
	assert.Equal(t, "true", ns.Metadata["file_scoped"])
	require.Len(t, ns.Body, 2)
	point := ns.Body[1].(*uast.Class)
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, "record", point.Metadata["kind"])
	assert.Equal(t, "(int X, int Y)", point.Metadata["parameters"])
}

func TestParseTopLevelStatements(t *testing.T) {
	t.Parallel()

	src := `using System;
int x = 5 + 10;
Console.WriteLine(x);
static int Add(int a, int b) { return a + b; }
`
	decls := parse(t, src)
	assert.Equal(t, []string{"Unknown", "StatementDecl", "StatementDecl", "Function"}, kinds(decls))

	decl := decls[1].(*uast.StatementDecl).Statement.(*uast.DeclStmt)
	assert.Equal(t, "int x = 5 + 10;", textOf(src, decl))
	assert.Equal(t, "ExpressionStatement", uast.Kind(decls[2].(*uast.StatementDecl).Statement))

	add := decls[3].(*uast.Function)
	assert.Equal(t, "Add", add.Name)
	assert.Equal(t, "local_function", add.Metadata["kind"])
	assert.Equal(t, []string{"static"}, add.Modifiers)
}

func TestParseStatements(t *testing.T) {
	t.Parallel()

	src := `class C {
    void Run() {
        int x = 10, y;
        if (x > 5) x = 0; else { x = 1; }
        while (x < 10) { x++; }
        for (int i = 0; i < 3; i++) Console.WriteLine(i);
        foreach (var v in xs) { }
        switch (x) { case 1: break; }
        try { } finally { }
        var s = "a";
        return;
    }
}`
	decls := parse(t, src)
	fn := decls[0].(*uast.Class).Body[0].(*uast.Function)
	stmts := fn.Body[0].(*uast.Block).Statements
	assert.Equal(t, []string{
		"DeclStmt", "IfStatement", "WhileLoop", "ForLoop", "UnknownStatement",
		"UnknownStatement", "UnknownStatement", "DeclStmt", "ReturnStatement",
	}, kinds(stmts))

	decl := stmts[0].(*uast.DeclStmt)
	require.Len(t, decl.VarDecls, 2)
	assert.Equal(t, "y", decl.VarDecls[1].Name)
	assert.Nil(t, decl.VarDecls[1].Value)

	ifStmt := stmts[1].(*uast.IfStatement)
	assert.Equal(t, "x = 0;", textOf(src, ifStmt.Consequence))
	require.NotNil(t, ifStmt.Alternative)
	assert.Equal(t, "{ x = 1; }", textOf(src, ifStmt.Alternative))

	loop := stmts[3].(*uast.ForLoop)
	assert.Equal(t, "int i = 0", textOf(src, loop.Initializer))
	assert.Equal(t, "i < 3", textOf(src, loop.Condition))
	assert.Equal(t, "i++", textOf(src, loop.Update))

	assert.Equal(t, "foreach (var v in xs) { }", stmts[4].(*uast.UnknownStatement).SourceText)
	assert.Equal(t, "switch (x) { case 1: break; }", stmts[5].(*uast.UnknownStatement).SourceText)
	assert.Empty(t, stmts[7].(*uast.DeclStmt).VarDecls[0].VarType, "var declarations have no written type")
	assert.Nil(t, stmts[8].(*uast.ReturnStatement).Value)
}

func TestParseElseIf(t *testing.T) {
	t.Parallel()

	src := "class C { void M() { if (a) { } else if (b) { } } }"
	fn := parse(t, src)[0].(*uast.Class).Body[0].(*uast.Function)
	outer := fn.Body[0].(*uast.Block).Statements[0].(*uast.IfStatement)
	require.NotNil(t, outer.Alternative)
	require.Len(t, outer.Alternative.Statements, 1)
	inner, ok := outer.Alternative.Statements[0].(*uast.IfStatement)
	require.True(t, ok)
	assert.Equal(t, "if (b) { }", textOf(src, inner))
}

// valueOf parses "var r = <expr>;" and returns the initializer.
func valueOf(t *testing.T, expr string) (uast.Expression, string) {
	t.Helper()
	src := "var r = " + expr + ";"
	decls := parse(t, src)
	require.Len(t, decls, 1)
	stmt, ok := decls[0].(*uast.StatementDecl).Statement.(*uast.DeclStmt)
	require.True(t, ok, "got %s", uast.Kind(decls[0].(*uast.StatementDecl).Statement))
	return stmt.VarDecls[0].Value, src
}

func TestParseExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		kind string
	}{
		{"a", "Identifier"},
		{"a + b * c", "BinaryOp"},
		{"(a + b) * c", "BinaryOp"},
		{"a >> 2", "BinaryOp"},
		{"a < b", "BinaryOp"},
		{"a && b || c", "BinaryOp"},
		{"-x", "UnaryOp"},
		{"!done", "UnaryOp"},
		{"i++", "UnaryOp"},
		{"x = 1", "Assignment"},
		{"x += y -= 2", "Assignment"},
		{"Console.WriteLine(val)", "Invocation"},
		{"GetValue<int>(k)", "Invocation"},
		{"order.Total", "MemberAccess"},
		{"(a)", "Parenthesized"},
		{"a ? b : c", "Raw"},
		{"a ?? b", "Raw"},
		{"(int)x", "Raw"},
		{"(Foo)bar.Baz", "Raw"},
		{"x => x + 1", "Raw"},
		{"(a, b) => a", "Raw"},
		{"new List<int> { 1, 2 }", "Raw"},
		{"a is null", "Raw"},
		{"a is int n && n > 0", "BinaryOp"},
		{"a as string", "Raw"},
		{"x?.y", "Raw"},
		{"items[0]", "Raw"},
		{"await Task.Delay(1)", "Raw"},
		{`$"x{y}"`, "Raw"},
		{"typeof(int)", "Raw"},
		{"null", "Raw"},
		{"(a, b)", "Raw"},
		{"x switch { _ => 0 }", "Raw"},
		{"99999999999999999999", "Raw"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			e, src := valueOf(t, tt.expr)
			require.NotNil(t, e)
			assert.Equal(t, tt.kind, uast.Kind(e))
			assert.Equal(t, tt.expr, textOf(src, e))
		})
	}
}

func TestParseExpressionShape(t *testing.T) {
	t.Parallel()

	e, _ := valueOf(t, "a + b * c")
	sum := e.(*uast.BinaryOp)
	assert.Equal(t, uast.OpAdd, sum.Operator)
	assert.Equal(t, uast.OpMul, sum.Right.(*uast.BinaryOp).Operator)

	e, _ = valueOf(t, "a - b - c")
	diff := e.(*uast.BinaryOp)
	assert.Equal(t, "BinaryOp", uast.Kind(diff.Left), "subtraction is left associative")

	e, _ = valueOf(t, "a >> 2")
	assert.Equal(t, uast.OpShiftRight, e.(*uast.BinaryOp).Operator)

	e, _ = valueOf(t, "x += y -= 2")
	outer := e.(*uast.Assignment)
	assert.Equal(t, uast.OpAddAssign, outer.Operator)
	assert.Equal(t, uast.OpSubAssign, outer.Right.(*uast.Assignment).Operator)

	e, src := valueOf(t, "Console.WriteLine(val, 2)")
	call := e.(*uast.Invocation)
	require.Len(t, call.Arguments, 2)
	member := call.Function.(*uast.MemberAccess)
	assert.Equal(t, "WriteLine", member.Member)
	assert.Equal(t, "WriteLine", member.MemberSpan.Text([]byte(src)))
	assert.Equal(t, &uast.Identifier{Name: "Console", Span: member.Expression.(*uast.Identifier).Span}, member.Expression)

	e, _ = valueOf(t, "i--")
	assert.Equal(t, uast.OpPostDecrement, e.(*uast.UnaryOp).Operator)

	e, _ = valueOf(t, "F()")
	assert.NotNil(t, e.(*uast.Invocation).Arguments)
	assert.Empty(t, e.(*uast.Invocation).Arguments)
}

func TestParseLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want any
	}{
		{"42", int64(42)},
		{"0x10", int64(16)},
		{"0b101", int64(5)},
		{"1_000L", int64(1000)},
		{"1.5", 1.5},
		{"2.5f", 2.5},
		{"1e3", 1000.0},
		{`"hi\n"`, "hi\n"},
		{`"\u0041\x42"`, "AB"},
		{`@"C:\dir ""q"""`, `C:\dir "q"`},
		{`"""raw "x" """`, `raw "x" `},
		{`'c'`, 'c'},
		{`'\''`, '\''},
		{"true", true},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()

			e, _ := valueOf(t, tt.expr)
			lit, ok := e.(*uast.Literal)
			require.True(t, ok, "got %s", uast.Kind(e))
			assert.Equal(t, tt.want, lit.Value())
		})
	}
}

func TestParseRecovers(t *testing.T) {
	t.Parallel()

	src := `class C {
    void Broken() { int x = ; }
    void Fine() { return; }
}`
	decls, diags := csharp.ParseSource([]byte(src))
	assert.NotEmpty(t, diags)

	class := decls[0].(*uast.Class)
	assert.Equal(t, []string{"Function", "Function"}, kinds(class.Body))
	broken := class.Body[0].(*uast.Function)
	stmt := broken.Body[0].(*uast.Block).Statements[0]
	assert.Equal(t, &uast.UnknownStatement{SourceText: "int x = ;", Span: uast.SpanOf(stmt)}, stmt)
}

func TestParseUnclosedClass(t *testing.T) {
	t.Parallel()

	src := "class C { void M() { }"
	decls, diags := csharp.ParseSource([]byte(src))
	require.Len(t, decls, 1)
	assert.Equal(t, "Class", uast.Kind(decls[0]))
	assert.NotEmpty(t, diags)
}

func TestFrontendRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"csharp", "cs", "C#"} {
		f, err := frontend.DefaultRegistry.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, csharp.Language, f.Language())
	}

	unit, err := csharp.New().Parse(context.Background(), "a.cs", []byte("class A { }"))
	require.NoError(t, err)
	assert.Equal(t, "a.cs", unit.Path)
	assert.Len(t, unit.Find("A"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = csharp.New().Parse(ctx, "a.cs", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func FuzzParseSource(f *testing.F) {
	f.Add("public class C { public int M(int a) { return a + 5; } }")
	f.Add("namespace N; record R(int X); class D : B where T : new() { int P { get; } }")
	f.Add("if (x) ")
	f.Add("class { void (")

	f.Fuzz(func(t *testing.T, src string) {
		decls, _ := csharp.ParseSource([]byte(src))
		for _, d := range decls {
			if err := uast.Validate(d, len(src)); err != nil {
				t.Fatalf("%q: %v", src, err)
			}
		}
	})
}
