package csharp

import "github.com/yaklabco/refract/pkg/uast"

// TokenKind classifies a token.
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	Ident
	Int
	Real
	String
	// InterpString is an interpolated string ($"..."), kept opaque.
	InterpString
	Char
	Punct
	// Illegal covers unterminated literals and stray bytes.
	Illegal
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Int:
		return "Int"
	case Real:
		return "Real"
	case String:
		return "String"
	case InterpString:
		return "InterpString"
	case Char:
		return "Char"
	case Punct:
		return "Punct"
	default:
		return "Illegal"
	}
}

// Token is a lexeme with its byte span. Text is the exact source text.
type Token struct {
	Kind TokenKind
	Text string
	Span uast.Span
}

// Is reports whether t is a punctuator or word with the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Ident) && t.Text == text
}

//nolint:gochecknoglobals // keyword tables
var (
	// reserved words can never be identifiers without a leading '@'.
	reserved = setOf(
		"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char",
		"checked", "class", "const", "continue", "decimal", "default", "delegate",
		"do", "double", "else", "enum", "event", "explicit", "extern", "false",
		"finally", "fixed", "float", "for", "foreach", "goto", "if", "implicit",
		"in", "int", "interface", "internal", "is", "lock", "long", "namespace",
		"new", "null", "object", "operator", "out", "override", "params", "private",
		"protected", "public", "readonly", "ref", "return", "sbyte", "sealed",
		"short", "sizeof", "stackalloc", "static", "string", "struct", "switch",
		"this", "throw", "true", "try", "typeof", "uint", "ulong", "unchecked",
		"unsafe", "ushort", "using", "virtual", "void", "volatile", "while",
	)

	predefinedTypes = setOf(
		"bool", "byte", "sbyte", "char", "decimal", "double", "float", "int", "uint",
		"long", "ulong", "short", "ushort", "object", "string", "void",
	)

	modifiers = setOf(
		"public", "private", "protected", "internal", "static", "abstract", "virtual",
		"override", "sealed", "readonly", "const", "extern", "unsafe", "new",
		"volatile", "async", "partial", "required", "file",
	)

	typeDeclKeywords = setOf("class", "struct", "interface", "record")

	paramModifiers = setOf("ref", "out", "in", "params", "this", "scoped", "readonly")
)

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// isName reports whether t can be used as an identifier.
func isName(t Token) bool {
	if t.Kind != Ident {
		return false
	}
	return t.Text[0] == '@' || !reserved[t.Text]
}
