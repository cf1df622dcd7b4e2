package csharp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/refract/pkg/frontend/csharp"
)

type tok struct {
	kind csharp.TokenKind
	text string
}

func lex(t *testing.T, src string) []tok {
	t.Helper()
	toks, diags := csharp.Tokenize([]byte(src))
	require.Empty(t, diags)
	out := make([]tok, 0, len(toks))
	for _, tk := range toks {
		assert.Equal(t, tk.Text, src[tk.Span.Start:tk.Span.End], "token text must equal its span")
		if tk.Kind != csharp.EOF {
			out = append(out, tok{tk.Kind, tk.Text})
		}
	}
	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{
			name: "declaration",
			src:  "int x = 5 + 10;",
			want: []tok{
				{csharp.Ident, "int"}, {csharp.Ident, "x"}, {csharp.Punct, "="},
				{csharp.Int, "5"}, {csharp.Punct, "+"}, {csharp.Int, "10"}, {csharp.Punct, ";"},
			},
		},
		{
			name: "comments and preprocessor lines are skipped",
			src:  "#region R\n// line\na /* block */ b\n  #endregion\n",
			want: []tok{{csharp.Ident, "a"}, {csharp.Ident, "b"}},
		},
		{
			name: "closing generics stay separate",
			src:  "List<List<int>> x",
			want: []tok{
				{csharp.Ident, "List"}, {csharp.Punct, "<"}, {csharp.Ident, "List"}, {csharp.Punct, "<"},
				{csharp.Ident, "int"}, {csharp.Punct, ">"}, {csharp.Punct, ">"}, {csharp.Ident, "x"},
			},
		},
		{
			name: "numbers",
			src:  "0xFF 0b1010 1_000 3.14 1e10 2.5f 10m 42UL",
			want: []tok{
				{csharp.Int, "0xFF"}, {csharp.Int, "0b1010"}, {csharp.Int, "1_000"}, {csharp.Real, "3.14"},
				{csharp.Real, "1e10"}, {csharp.Real, "2.5f"}, {csharp.Real, "10m"}, {csharp.Int, "42UL"},
			},
		},
		{
			name: "member access on integer",
			src:  "5.ToString()",
			want: []tok{
				{csharp.Int, "5"}, {csharp.Punct, "."}, {csharp.Ident, "ToString"},
				{csharp.Punct, "("}, {csharp.Punct, ")"},
			},
		},
		{
			name: "strings",
			src:  `"a\"b" @"c""d" """raw "x" """`,
			want: []tok{{csharp.String, `"a\"b"`}, {csharp.String, `@"c""d"`}, {csharp.String, `"""raw "x" """`}},
		},
		{
			name: "interpolated string with nested string",
			src:  `$"n={Get("k")}" x`,
			want: []tok{{csharp.InterpString, `$"n={Get("k")}"`}, {csharp.Ident, "x"}},
		},
		{
			name: "verbatim identifier and char",
			src:  `@class '\n'`,
			want: []tok{{csharp.Ident, "@class"}, {csharp.Char, `'\n'`}},
		},
		{
			name: "compound operators",
			src:  "a ??= b?.c => d",
			want: []tok{
				{csharp.Ident, "a"}, {csharp.Punct, "??="}, {csharp.Ident, "b"}, {csharp.Punct, "?."},
				{csharp.Ident, "c"}, {csharp.Punct, "=>"}, {csharp.Ident, "d"},
			},
		},
		{
			name: "byte order mark",
			src:  "\ufeffclass",
			want: []tok{{csharp.Ident, "class"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lex(t, tt.src))
		})
	}
}

func TestTokenizeReportsProblems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "unterminated string", src: "x = \"abc\ny;"},
		{name: "unterminated comment", src: "x /* never closed"},
		{name: "unterminated char", src: "'a"},
		{name: "stray character", src: "x ` y"},
		{name: "escape at end of input", src: `"\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks, diags := csharp.Tokenize([]byte(tt.src))
			assert.NotEmpty(t, diags)
			require.NotEmpty(t, toks)
			assert.Equal(t, csharp.EOF, toks[len(toks)-1].Kind)
			for _, d := range diags {
				assert.LessOrEqual(t, d.Span.End, len(tt.src))
			}
		})
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add("public class C { void M() { int x = 5 + 10; } }")
	f.Add(`$"{a}{{b}}" @"x""y" """z"""`)
	f.Add("/* x")

	f.Fuzz(func(t *testing.T, src string) {
		toks, _ := csharp.Tokenize([]byte(src))
		prev := 0
		for _, tk := range toks {
			if tk.Span.Start < prev || tk.Span.End > len(src) || tk.Span.Start > tk.Span.End {
				t.Fatalf("bad span %v after %d in %q", tk.Span, prev, src)
			}
			prev = tk.Span.End
		}
		if toks[len(toks)-1].Kind != csharp.EOF {
			t.Fatalf("missing EOF")
		}
	})
}
