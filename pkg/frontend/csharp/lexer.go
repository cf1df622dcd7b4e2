package csharp

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/uast"
)

// punctuators, longest first. '>' is never combined with a following '>'
// so that nested generic argument lists close correctly; the parser joins
// adjacent '>' tokens into shift operators.
//
//nolint:gochecknoglobals // lexer table
var punctuators = []string{
	"<<=", "??=", "...",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=",
	"%=", "&=", "|=", "^=", "<<", "??", "?.", "::", "->", "..",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", ":", "?", "+", "-", "*", "/",
	"%", "&", "|", "^", "!", "~", "<", ">", "=",
}

// Lexer splits C# source into tokens. Whitespace, comments and
// preprocessor lines are skipped.
type Lexer struct {
	src   []byte
	pos   int
	diags []frontend.Diagnostic
}

// NewLexer returns a lexer over src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Tokenize lexes src completely. The final token is always EOF.
func Tokenize(src []byte) ([]Token, []frontend.Diagnostic) {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, lx.diags
		}
	}
}

// Diagnostics returns the problems found so far.
func (lx *Lexer) Diagnostics() []frontend.Diagnostic {
	return lx.diags
}

// Next returns the next token.
func (lx *Lexer) Next() Token {
	lx.skipTrivia()
	if lx.pos >= len(lx.src) {
		return Token{Kind: EOF, Span: uast.NewSpan(len(lx.src), len(lx.src))}
	}

	start := lx.pos
	c := lx.src[lx.pos]

	switch {
	case c == '"' || (c == '@' && lx.peek(1) == '"'):
		return lx.lexString(start)
	case c == '$' || (c == '@' && lx.peek(1) == '$'):
		return lx.lexInterpolated(start)
	case c == '\'':
		return lx.lexChar(start)
	case isDigit(c) || (c == '.' && isDigit(lx.peek(1))):
		return lx.lexNumber(start)
	case c == '@' || c == '_' || c >= utf8.RuneSelf || isASCIILetter(c):
		if tok, ok := lx.lexIdent(start); ok {
			return tok
		}
	}

	for _, p := range punctuators {
		if lx.hasPrefix(p) {
			lx.pos += len(p)
			return lx.token(Punct, start)
		}
	}

	_, size := utf8.DecodeRune(lx.src[lx.pos:])
	lx.pos += size
	lx.errorf(start, "unexpected character")
	return lx.token(Illegal, start)
}

func (lx *Lexer) token(kind TokenKind, start int) Token {
	lx.pos = min(lx.pos, len(lx.src))
	return Token{Kind: kind, Text: string(lx.src[start:lx.pos]), Span: uast.NewSpan(start, lx.pos)}
}

func (lx *Lexer) errorf(start int, msg string) {
	lx.pos = min(lx.pos, len(lx.src))
	lx.diags = append(lx.diags, frontend.Diagnostic{Span: uast.NewSpan(start, lx.pos), Message: msg})
}

func (lx *Lexer) peek(n int) byte {
	if lx.pos+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func (lx *Lexer) hasPrefix(s string) bool {
	return len(lx.src)-lx.pos >= len(s) && string(lx.src[lx.pos:lx.pos+len(s)]) == s
}

func (lx *Lexer) skipTrivia() {
	lineStart := lx.pos == 0 || lx.src[lx.pos-1] == '\n'
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			lx.pos++
			lineStart = true
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			lx.pos++
		case c == '#' && lineStart:
			lx.skipLine()
		case lx.hasPrefix("//"):
			lx.skipLine()
		case lx.hasPrefix("/*"):
			start := lx.pos
			lx.pos += 2
			for lx.pos < len(lx.src) && !lx.hasPrefix("*/") {
				lx.pos++
			}
			if lx.pos >= len(lx.src) {
				lx.errorf(start, "unterminated comment")
				return
			}
			lx.pos += 2
			lineStart = false
		case c == 0xEF && lx.hasPrefix("\uFEFF"):
			lx.pos += len("\uFEFF")
		default:
			return
		}
	}
}

func (lx *Lexer) skipLine() {
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
}

func (lx *Lexer) lexIdent(start int) (Token, bool) {
	if lx.src[lx.pos] == '@' {
		lx.pos++
	}
	first := true
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRune(lx.src[lx.pos:])
		if r == '_' || unicode.IsLetter(r) || (!first && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r))) {
			lx.pos += size
			first = false
			continue
		}
		break
	}
	if first {
		lx.pos = start
		return Token{}, false
	}
	return lx.token(Ident, start), true
}

func (lx *Lexer) lexNumber(start int) Token {
	kind := Int
	if lx.src[lx.pos] == '0' && (lx.peek(1) == 'x' || lx.peek(1) == 'X' || lx.peek(1) == 'b' || lx.peek(1) == 'B') {
		lx.pos += 2
		for lx.pos < len(lx.src) && (isHexDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
			lx.pos++
		}
	} else {
		lx.digits()
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' && isDigit(lx.peek(1)) {
			kind = Real
			lx.pos++
			lx.digits()
		}
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
			next := lx.peek(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(lx.peek(2))) {
				kind = Real
				lx.pos += 2
				lx.digits()
			}
		}
	}

	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case 'f', 'F', 'd', 'D', 'm', 'M':
			kind = Real
		case 'u', 'U', 'l', 'L':
		default:
			return lx.token(kind, start)
		}
		lx.pos++
	}
	return lx.token(kind, start)
}

func (lx *Lexer) digits() {
	for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
		lx.pos++
	}
}

func (lx *Lexer) lexString(start int) Token {
	if lx.hasPrefix(`"""`) {
		return lx.lexRawString(start)
	}
	verbatim := lx.src[lx.pos] == '@'
	if verbatim {
		lx.pos++
	}
	lx.pos++ // opening quote

	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\\' && !verbatim:
			lx.pos += 2
			continue
		case c == '"' && verbatim && lx.peek(1) == '"':
			lx.pos += 2
			continue
		case c == '"':
			lx.pos++
			return lx.token(String, start)
		case c == '\n' && !verbatim:
			lx.errorf(start, "unterminated string literal")
			return lx.token(Illegal, start)
		}
		lx.pos++
	}
	lx.pos = len(lx.src)
	lx.errorf(start, "unterminated string literal")
	return lx.token(Illegal, start)
}

// lexRawString handles """...""" literals of any quote count.
func (lx *Lexer) lexRawString(start int) Token {
	quotes := 0
	for lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		quotes++
		lx.pos++
	}
	for lx.pos < len(lx.src) {
		if lx.src[lx.pos] == '"' {
			run := 0
			for lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
				run++
				lx.pos++
			}
			if run >= quotes {
				return lx.token(String, start)
			}
			continue
		}
		lx.pos++
	}
	lx.errorf(start, "unterminated raw string literal")
	return lx.token(Illegal, start)
}

// lexInterpolated consumes $"...", $@"..." and @$"..." including nested
// holes, which may contain further strings.
func (lx *Lexer) lexInterpolated(start int) Token {
	verbatim := false
	for lx.pos < len(lx.src) && (lx.src[lx.pos] == '$' || lx.src[lx.pos] == '@') {
		if lx.src[lx.pos] == '@' {
			verbatim = true
		}
		lx.pos++
	}
	if lx.pos >= len(lx.src) || lx.src[lx.pos] != '"' {
		lx.errorf(start, "unexpected character")
		return lx.token(Illegal, start)
	}
	if lx.hasPrefix(`"""`) {
		tok := lx.lexRawString(start)
		if tok.Kind == String {
			tok.Kind = InterpString
		}
		return tok
	}
	lx.pos++

	depth := 0
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case depth == 0 && c == '\\' && !verbatim:
			lx.pos += 2
			continue
		case depth == 0 && c == '"' && verbatim && lx.peek(1) == '"':
			lx.pos += 2
			continue
		case depth == 0 && (c == '{' || c == '}') && lx.peek(1) == c:
			lx.pos += 2
			continue
		case depth == 0 && c == '"':
			lx.pos++
			return lx.token(InterpString, start)
		case c == '{':
			depth++
		case c == '}':
			depth--
		case depth > 0 && (c == '"' || c == '\'' || c == '$' || c == '@'):
			inner := lx.Next()
			if inner.Kind == Illegal {
				return lx.token(Illegal, start)
			}
			continue
		case c == '\n' && depth == 0 && !verbatim:
			lx.errorf(start, "unterminated string literal")
			return lx.token(Illegal, start)
		}
		lx.pos++
	}
	lx.errorf(start, "unterminated string literal")
	return lx.token(Illegal, start)
}

func (lx *Lexer) lexChar(start int) Token {
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
			continue
		case '\'':
			lx.pos++
			return lx.token(Char, start)
		case '\n':
			lx.errorf(start, "unterminated character literal")
			return lx.token(Illegal, start)
		}
		lx.pos++
	}
	lx.errorf(start, "unterminated character literal")
	return lx.token(Illegal, start)
}

func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isASCIILetter(c byte) bool { return (c|0x20) >= 'a' && (c|0x20) <= 'z' }
func isHexDigit(c byte) bool    { return isDigit(c) || ((c|0x20) >= 'a' && (c|0x20) <= 'f') }
