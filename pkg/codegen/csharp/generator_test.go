package csharp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csgen "github.com/yaklabco/refract/pkg/codegen/csharp"
	"github.com/yaklabco/refract/pkg/frontend/csharp"
	"github.com/yaklabco/refract/pkg/uast"
)

func lower(t *testing.T, src string) []uast.TopLevel {
	t.Helper()
	unit, err := csharp.New().Parse(context.Background(), "t.cs", []byte(src))
	require.NoError(t, err)
	return unit.Decls
}

func TestGenerateRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "class with method",
			src: `public class MyClass {
    public int MyMethod(int a) {
        return 5;
    }
}`,
		},
		{
			name: "statements",
			src: `public class Test {
    public void Run() {
        int x = 10;
        if (x > 5) {
            x = 0;
        } else if (x < 0) {
            x = 1;
        } else {
            x = 2;
        }
        while (x < 10) {
            x++;
        }
        for (int i = 0; i < 3; i++) {
            Console.WriteLine(i);
        }
        return;
    }
}`,
		},
		{
			name: "members",
			src: `namespace Shop {
    [Serializable]
    public abstract class Order<T> : Base {
        private int count = 3, total;
        public Order(int count) {
            this.count = count;
        }
        public abstract void Reset();
        public int Twice(int v) => v * 2;
        public string Name { get; set; }
    }
}`,
		},
	}

	gen := csgen.New("    ")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decls := lower(t, tt.src)
			require.Len(t, decls, 1)
			assert.Equal(t, tt.src, gen.Generate(decls[0]))
		})
	}
}

func TestGenerateNormalisesLayout(t *testing.T) {
	t.Parallel()

	src := `class C
{
    // dropped
    void M(int a)   {   var   s = "x";   if (a) return a; }
}`
	want := `class C {
	void M(int a) {
		var s = "x";
		if (a) {
			return a;
		}
	}
}`
	assert.Equal(t, want, csgen.New("\t").Generate(lower(t, src)[0]))
}

func TestGenerateAll(t *testing.T) {
	t.Parallel()

	src := "using System;\nnamespace App;\nclass A { }\n"
	got := (&csgen.Generator{}).GenerateAll(lower(t, src))
	assert.Equal(t, "using System;\nnamespace App;\n\nclass A {\n}\n", got)
}

func TestGenerateExpressions(t *testing.T) {
	t.Parallel()

	span := uast.Span{}
	id := func(name string) *uast.Identifier { return &uast.Identifier{Name: name, Span: span} }

	tests := []struct {
		name string
		expr uast.Expression
		want string
	}{
		{"integer", &uast.Literal{Kind: uast.LitInteger, Int: -7}, "-7"},
		{"whole float keeps its point", &uast.Literal{Kind: uast.LitFloat, Float: 1000}, "1000.0"},
		{"float", &uast.Literal{Kind: uast.LitFloat, Float: 2.5}, "2.5"},
		{"string is escaped", &uast.Literal{Kind: uast.LitString, Str: "say \"hi\"\n\\\x01"}, `"say \"hi\"\n\\\u0001"`},
		{"char", &uast.Literal{Kind: uast.LitChar, Char: '\''}, `'\''`},
		{"boolean", &uast.Literal{Kind: uast.LitBoolean, Bool: true}, "true"},
		{"prefix", &uast.UnaryOp{Operator: uast.OpNot, Operand: id("ok")}, "!ok"},
		{"postfix", &uast.UnaryOp{Operator: uast.OpPostIncrement, Operand: id("i")}, "i++"},
		{"compound assignment", &uast.Assignment{Left: id("a"), Operator: uast.OpShiftRightAssign, Right: id("b")}, "a >>= b"},
		{
			"invocation",
			&uast.Invocation{
				Function:  &uast.MemberAccess{Expression: id("Console"), Member: "WriteLine"},
				Arguments: []uast.Expression{id("a"), &uast.Raw{SourceText: "b ?? c"}},
			},
			"Console.WriteLine(a, b ?? c)",
		},
		{
			"parenthesized",
			&uast.BinaryOp{
				Left:     &uast.Parenthesized{Inner: &uast.BinaryOp{Left: id("a"), Operator: uast.OpAdd, Right: id("b")}},
				Operator: uast.OpMul,
				Right:    id("c"),
			},
			"(a + b) * c",
		},
	}

	gen := csgen.New("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gen.Expression(tt.expr))
		})
	}
}

func TestGenerateStatementPlaceholders(t *testing.T) {
	t.Parallel()

	gen := csgen.New("  ")
	decl := &uast.DeclStmt{
		Modifiers: []string{"const"},
		VarDecls: []*uast.VarDecl{
			{Name: "a", Value: &uast.Literal{Kind: uast.LitInteger, Int: 1}},
			{Name: "b"},
		},
	}
	assert.Equal(t, "const var a = 1, b;", gen.Statement(decl))

	fn := &uast.Function{Name: "Run"}
	assert.Equal(t, "void Run();", gen.Generate(fn))

	unknown := &uast.Unknown{SourceText: "enum E { A }"}
	assert.Equal(t, "enum E { A }", gen.Generate(unknown))
}
