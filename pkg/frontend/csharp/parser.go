package csharp

import (
	"fmt"

	"github.com/yaklabco/refract/pkg/frontend"
	"github.com/yaklabco/refract/pkg/uast"
)

// bailout aborts the construct being parsed. It is recovered by attempt,
// which rewinds the parser so the construct can be skipped as Unknown.
type bailout struct {
	msg  string
	span uast.Span
}

// Parser lowers a token stream to UAST declarations. It works on a fully
// lexed token slice so it can backtrack freely.
type Parser struct {
	src   []byte
	toks  []Token
	pos   int
	diags []frontend.Diagnostic
}

// NewParser lexes src and returns a parser positioned at the first token.
func NewParser(src []byte) *Parser {
	toks, diags := Tokenize(src)
	return &Parser{src: src, toks: toks, diags: diags}
}

// ParseSource lowers a whole compilation unit.
func ParseSource(src []byte) ([]uast.TopLevel, []frontend.Diagnostic) {
	p := NewParser(src)
	decls := p.ParseUnit()
	return decls, p.diags
}

// ParseUnit lowers every declaration up to EOF.
func (p *Parser) ParseUnit() []uast.TopLevel {
	return p.parseDecls(levelUnit, false)
}

// Diagnostics returns lexer and parser problems found so far.
func (p *Parser) Diagnostics() []frontend.Diagnostic {
	return p.diags
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) at(text string) bool { return p.cur().Is(text) }

func (p *Parser) atEOF() bool { return p.cur().Kind == EOF }

func (p *Parser) accept(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(text string) Token {
	if !p.at(text) {
		p.fail(fmt.Sprintf("expected %q", text))
	}
	return p.next()
}

func (p *Parser) expectName() Token {
	if !isName(p.cur()) {
		p.fail("expected identifier")
	}
	return p.next()
}

func (p *Parser) fail(msg string) {
	panic(bailout{msg: msg, span: p.cur().Span})
}

// attempt runs f. If f bails out, the position is restored and the
// failure returned.
func (p *Parser) attempt(f func()) (failure *bailout) {
	save := p.pos
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.pos = save
			failure = &b
		}
	}()
	f()
	return nil
}

// startOf returns the byte offset of token index i.
func (p *Parser) startOf(i int) int { return p.toks[i].Span.Start }

// prevEnd returns the end offset of the last consumed token.
func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

// spanFrom covers token index i through the last consumed token.
func (p *Parser) spanFrom(i int) uast.Span {
	return uast.NewSpan(p.startOf(i), max(p.startOf(i), p.prevEnd()))
}

func (p *Parser) text(s uast.Span) string { return s.Text(p.src) }

func (p *Parser) raw(s uast.Span) *uast.Raw {
	return &uast.Raw{SourceText: p.text(s), Span: s}
}

func (p *Parser) report(b *bailout) {
	p.diags = append(p.diags, frontend.Diagnostic{Span: b.span, Message: b.msg})
}

// skipBalanced consumes an open token through its matching close token.
func (p *Parser) skipBalanced(open, closing string) {
	p.expect(open)
	depth := 1
	for depth > 0 && !p.atEOF() {
		switch {
		case p.at(open):
			depth++
		case p.at(closing):
			depth--
		}
		p.next()
	}
}

// skipGeneric consumes tokens through a ';' at nesting depth zero, or
// through a braced group that is not continued by an operator. It stops in
// front of a '}' that closes an enclosing block.
func (p *Parser) skipGeneric() {
	depth := 0
	for !p.atEOF() {
		t := p.cur()
		switch {
		case t.Is("("), t.Is("["):
			depth++
		case t.Is(")"), t.Is("]"):
			if depth > 0 {
				depth--
			}
		case t.Is("{"):
			depth++
		case t.Is("}"):
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				if p.accept(";") {
					return
				}
				if n := p.cur(); n.Kind != Punct || n.Is("{") || n.Is("}") {
					return
				}
				continue
			}
		case t.Is(";") && depth == 0:
			p.next()
			return
		}
		p.next()
	}
}

// skipStatement consumes one statement of any kind.
//
//nolint:cyclop // one case per statement keyword
func (p *Parser) skipStatement() {
	t := p.cur()
	switch {
	case t.Is("{"):
		p.skipBalanced("{", "}")
	case t.Is("if"):
		p.next()
		p.skipParens()
		p.skipStatement()
		if p.accept("else") {
			p.skipStatement()
		}
	case t.Is("while"), t.Is("foreach"), t.Is("for"), t.Is("lock"), t.Is("fixed"),
		t.Is("using") && p.peek(1).Is("("):
		p.next()
		p.skipParens()
		p.skipStatement()
	case t.Is("do"):
		p.next()
		p.skipStatement()
		if p.accept("while") {
			p.skipParens()
			p.accept(";")
		}
	case t.Is("try"):
		p.next()
		p.skipBlock()
		for p.accept("catch") {
			p.skipParens()
			if p.accept("when") {
				p.skipParens()
			}
			p.skipBlock()
		}
		if p.accept("finally") {
			p.skipBlock()
		}
	case t.Is("switch"):
		p.next()
		p.skipParens()
		p.skipBlock()
	case (t.Is("checked") || t.Is("unchecked") || t.Is("unsafe")) && p.peek(1).Is("{"):
		p.next()
		p.skipBlock()
	case t.Is("else"):
		p.next()
		p.skipStatement()
	default:
		p.skipGeneric()
	}
}

func (p *Parser) skipParens() {
	if p.at("(") {
		p.skipBalanced("(", ")")
	}
}

func (p *Parser) skipBlock() {
	if p.at("{") {
		p.skipBalanced("{", "}")
	}
}

// skipAll runs skip from token index start, guaranteeing progress, and
// returns the covered span.
func (p *Parser) skipAll(start int, skip func()) uast.Span {
	p.pos = start
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(bailout); !ok {
					panic(r)
				}
			}
		}()
		skip()
	}()
	if p.pos == start {
		if p.atEOF() {
			return uast.NewSpan(p.prevEnd(), p.prevEnd())
		}
		p.next()
	}
	return p.spanFrom(start)
}
