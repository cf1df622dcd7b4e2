package csharp

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/refract/pkg/uast"
)

// Literals that cannot be represented exactly, such as integers
// overflowing int64, are kept as Raw.

func (p *Parser) intLiteral(t Token) uast.Expression {
	text := strings.TrimRight(strings.ReplaceAll(t.Text, "_", ""), "uUlL")
	base := 10
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			base, text = 16, text[2:]
		case 'b', 'B':
			base, text = 2, text[2:]
		}
	}
	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return p.raw(t.Span)
	}
	return &uast.Literal{Kind: uast.LitInteger, Int: v, Span: t.Span}
}

func (p *Parser) realLiteral(t Token) uast.Expression {
	text := strings.TrimRight(strings.ReplaceAll(t.Text, "_", ""), "fFdDmM")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return p.raw(t.Span)
	}
	return &uast.Literal{Kind: uast.LitFloat, Float: v, Span: t.Span}
}

func (p *Parser) stringLiteral(t Token) uast.Expression {
	text := t.Text
	var value string
	switch {
	case strings.HasPrefix(text, `"""`):
		value = rawStringValue(text)
	case strings.HasPrefix(text, `@"`):
		value = strings.ReplaceAll(text[2:len(text)-1], `""`, `"`)
	default:
		s, ok := unescape(text[1 : len(text)-1])
		if !ok {
			return p.raw(t.Span)
		}
		value = s
	}
	return &uast.Literal{Kind: uast.LitString, Str: value, Span: t.Span}
}

func (p *Parser) charLiteral(t Token) uast.Expression {
	s, ok := unescape(t.Text[1 : len(t.Text)-1])
	if !ok || utf8.RuneCountInString(s) != 1 {
		return p.raw(t.Span)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return &uast.Literal{Kind: uast.LitChar, Char: r, Span: t.Span}
}

// rawStringValue strips the quote runs of a raw string literal. For the
// multi-line form the first and last lines are dropped and the closing
// line's indentation is removed from every content line.
func rawStringValue(text string) string {
	q := len(text) - len(strings.TrimLeft(text, `"`))
	if len(text) < 2*q {
		return text
	}
	body := text[q : len(text)-q]
	if !strings.Contains(body, "\n") {
		return body
	}
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	indent := lines[len(lines)-1]
	lines = lines[1 : len(lines)-1]
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, indent)
	}
	return strings.Join(lines, "\n")
}

//nolint:gochecknoglobals // escape table
var simpleEscapes = map[byte]rune{
	'\'': '\'', '"': '"', '\\': '\\', '0': 0, 'a': '\a', 'b': '\b',
	'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v', 'e': 0x1b,
}

// unescape decodes the escape sequences of a regular string or character
// literal body.
func unescape(body string) (string, bool) {
	if !strings.Contains(body, `\`) {
		return body, true
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", false
		}
		if r, ok := simpleEscapes[body[i]]; ok {
			b.WriteRune(r)
			continue
		}
		digits := body[i+1:]
		var width int
		switch body[i] {
		case 'u':
			width = 4
		case 'U':
			width = 8
		case 'x':
			for width < 4 && width < len(digits) && isHexDigit(digits[width]) {
				width++
			}
			if width == 0 {
				return "", false
			}
		default:
			return "", false
		}
		if len(digits) < width {
			return "", false
		}
		v, err := strconv.ParseUint(digits[:width], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return "", false
		}
		b.WriteRune(rune(v))
		i += width
	}
	return b.String(), true
}
