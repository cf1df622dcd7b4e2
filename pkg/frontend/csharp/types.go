package csharp

import "github.com/yaklabco/refract/pkg/uast"

// parseType consumes a type reference and returns its span: predefined
// and qualified generic names, tuples, arrays, nullable and pointer forms.
func (p *Parser) parseType() uast.Span {
	start := p.pos
	if p.at("(") {
		p.next()
		for {
			p.parseType()
			if isName(p.cur()) {
				p.next()
			}
			if !p.accept(",") {
				break
			}
		}
		p.expect(")")
	} else {
		p.parseTypeName()
	}

	for {
		switch {
		case p.at("?"), p.at("*"):
			p.next()
		case p.at("[") && (p.peek(1).Is("]") || p.peek(1).Is(",")):
			p.next()
			for p.accept(",") {
			}
			p.expect("]")
		default:
			return p.spanFrom(start)
		}
	}
}

// parseTypeName consumes a predefined type or a possibly qualified,
// possibly generic name such as global::System.Collections.Generic.List<int>.
func (p *Parser) parseTypeName() {
	t := p.cur()
	if t.Kind == Ident && predefinedTypes[t.Text] {
		p.next()
		return
	}
	if t.Is("global") && p.peek(1).Is("::") {
		p.next()
		p.next()
	}
	for {
		p.expectName()
		if p.at("<") {
			p.parseTypeArgs()
		}
		if !p.accept(".") && !p.accept("::") {
			return
		}
	}
}

// parseTypeArgs consumes "<T, U>" including the unbound forms "<>" and "<,>".
func (p *Parser) parseTypeArgs() {
	p.expect("<")
	for !p.at(">") {
		if p.accept(",") {
			continue
		}
		p.parseType()
		if !p.at(">") {
			p.expect(",")
		}
	}
	p.expect(">")
}
