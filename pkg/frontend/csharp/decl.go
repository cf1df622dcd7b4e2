package csharp

import (
	"strings"

	"github.com/yaklabco/refract/pkg/uast"
)

// declLevel says which declarations may appear in a container.
type declLevel int

const (
	// levelUnit is the compilation unit; top-level statements are allowed.
	levelUnit declLevel = iota
	levelNamespace
	levelType
)

func (p *Parser) parseDecls(level declLevel, inBraces bool) []uast.TopLevel {
	decls := []uast.TopLevel{}
	for !p.atEOF() && (!inBraces || !p.at("}")) {
		decls = append(decls, p.parseDecl(level))
	}
	return decls
}

// parseDecl lowers one declaration. It always consumes at least one token.
func (p *Parser) parseDecl(level declLevel) uast.TopLevel {
	if level == levelUnit && !p.looksLikeDecl() {
		return &uast.StatementDecl{Statement: p.parseStatement()}
	}

	start := p.pos
	var decl uast.TopLevel
	if failure := p.attempt(func() { decl = p.parseDeclOrFail(level) }); failure != nil {
		p.report(failure)
		return p.unknownFrom(start)
	}
	return decl
}

// looksLikeDecl decides whether a unit-level item is a declaration or a
// top-level statement.
func (p *Parser) looksLikeDecl() bool {
	t := p.cur()
	switch {
	case t.Is("using"):
		return !p.peek(1).Is("(") && !p.peek(1).Is("var")
	case t.Is("global") && p.peek(1).Is("using"),
		t.Is("extern") && p.peek(1).Is("alias"),
		t.Is("namespace"), t.Is("["), t.Is("enum"), t.Is("~"),
		p.atTypeKeyword():
		return true
	case t.Is("new"):
		return false
	case t.Kind == Ident && modifiers[t.Text]:
		return p.atModifier()
	case t.Is("await"), t.Is("yield"):
		return false
	}
	ok := false
	p.attempt(func() {
		p.parseType()
		p.expectName()
		ok = p.at("(") || p.at("<")
		p.fail("lookahead")
	})
	return ok
}

func (p *Parser) parseDeclOrFail(level declLevel) uast.TopLevel {
	start := p.pos

	if p.at("using") || p.at("global") && p.peek(1).Is("using") || p.at("extern") && p.peek(1).Is("alias") {
		return p.unknownFrom(start)
	}

	var attrs []string
	for p.at("[") {
		s := p.pos
		p.skipBalanced("[", "]")
		inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(p.text(p.spanFrom(s)), "["), "]"))
		if strings.HasPrefix(inner, "assembly:") || strings.HasPrefix(inner, "module:") {
			return p.unknownSpan(start)
		}
		attrs = append(attrs, inner)
	}

	declStart := p.pos
	var mods []string
	for p.atModifier() && (level != levelUnit || !p.at("new")) {
		mods = append(mods, p.next().Text)
	}

	switch {
	case p.atEOF():
		return p.unknownSpan(start)
	case p.at("namespace"):
		return p.parseNamespace(start)
	case p.atTypeKeyword():
		return p.parseTypeDecl(start, attrs, mods)
	case p.at("enum"), p.at("delegate"), p.at("event"), p.at("~"),
		p.at("implicit"), p.at("explicit"):
		return p.unknownFrom(start)
	}
	return p.parseMember(start, declStart, attrs, mods, level)
}

func (p *Parser) atModifier() bool {
	t := p.cur()
	if t.Kind != Ident || !modifiers[t.Text] {
		return false
	}
	switch t.Text {
	case "async", "partial", "required", "file":
		return p.peek(1).Kind == Ident
	}
	return true
}

func (p *Parser) atTypeKeyword() bool {
	t := p.cur()
	if t.Is("record") {
		n := p.peek(1)
		return isName(n) || n.Is("class") || n.Is("struct")
	}
	return t.Kind == Ident && typeDeclKeywords[t.Text]
}

func (p *Parser) parseNamespace(start int) uast.TopLevel {
	p.next()
	s := p.pos
	p.expectName()
	for p.accept(".") {
		p.expectName()
	}
	name := p.text(p.spanFrom(s))
	meta := map[string]string{"kind": "namespace"}

	if p.accept(";") {
		meta["file_scoped"] = "true"
		body := p.parseDecls(levelNamespace, false)
		return &uast.Module{Name: name, Body: body, Span: p.spanFrom(start), Metadata: meta}
	}

	p.expect("{")
	body := p.parseDecls(levelNamespace, true)
	p.expectClose()
	p.accept(";")
	return &uast.Module{Name: name, Body: body, Span: p.spanFrom(start), Metadata: meta}
}

func (p *Parser) parseTypeDecl(start int, attrs, mods []string) uast.TopLevel {
	kind := p.next().Text
	if kind == "record" && (p.at("class") || p.at("struct")) {
		kind += " " + p.next().Text
	}
	name := p.expectName()
	meta := map[string]string{"kind": kind}

	if p.at("<") {
		s := p.pos
		p.skipBalanced("<", ">")
		meta["type_parameters"] = p.text(p.spanFrom(s))
	}
	if p.at("(") {
		s := p.pos
		p.skipBalanced("(", ")")
		meta["parameters"] = p.text(p.spanFrom(s))
	}
	if p.accept(":") {
		s := p.pos
		for !p.atEOF() && !p.at("{") && !p.at(";") && !p.at("where") {
			if p.at("(") {
				p.skipBalanced("(", ")")
				continue
			}
			p.next()
		}
		meta["base"] = p.text(p.spanFrom(s))
	}
	for p.at("where") {
		p.skipConstraint()
	}

	body := []uast.TopLevel{}
	if !p.accept(";") {
		p.expect("{")
		body = p.parseDecls(levelType, true)
		p.expectClose()
		p.accept(";")
	}

	return &uast.Class{
		Name:        name.Text,
		Span:        p.spanFrom(start),
		Body:        body,
		Modifiers:   mods,
		Annotations: attrs,
		Metadata:    meta,
	}
}

// parseMember lowers methods, constructors and fields. Properties, indexers
// and operators become Unknown.
func (p *Parser) parseMember(start, declStart int, attrs, mods []string, level declLevel) uast.TopLevel {
	if level == levelType && isName(p.cur()) && p.peek(1).Is("(") {
		name := p.next()
		params := p.parseParams()
		if p.accept(":") {
			p.next()
			p.skipParens()
		}
		return &uast.Function{
			Name:        name.Text,
			Body:        p.parseFunctionBody(),
			Span:        p.spanFrom(start),
			Modifiers:   mods,
			Parameters:  params,
			Annotations: attrs,
			Metadata:    map[string]string{"kind": "constructor"},
		}
	}

	typeSpan := p.parseType()
	if p.at("this") || p.at("operator") {
		return p.unknownFrom(start)
	}

	nameIdx := p.pos
	name := p.expectName().Text
	for p.at(".") && isName(p.peek(1)) {
		p.next()
		name += "." + p.next().Text
	}

	meta := map[string]string{"kind": "method"}
	if level == levelUnit {
		meta["kind"] = "local_function"
	}
	if p.at("<") {
		s := p.pos
		p.skipBalanced("<", ">")
		meta["type_parameters"] = p.text(p.spanFrom(s))
	}

	switch {
	case p.at("("):
		params := p.parseParams()
		for p.at("where") {
			p.skipConstraint()
		}
		return &uast.Function{
			Name:        name,
			Body:        p.parseFunctionBody(),
			Span:        p.spanFrom(start),
			Modifiers:   mods,
			Parameters:  params,
			ReturnType:  p.text(typeSpan),
			Annotations: attrs,
			Metadata:    meta,
		}
	case p.at("{"), p.at("=>"):
		return p.unknownFrom(start)
	case p.at("="), p.at(";"), p.at(","):
		p.pos = nameIdx
		decls := p.parseDeclarators(p.declaredType(typeSpan))
		p.expect(";")
		return &uast.StatementDecl{Statement: &uast.DeclStmt{
			Modifiers: mods,
			VarDecls:  decls,
			Span:      p.spanFrom(declStart),
		}}
	}
	p.fail("unexpected token in member declaration")
	return nil
}

// parseFunctionBody returns nil for a bodiless declaration.
func (p *Parser) parseFunctionBody() []uast.FunctionBodyItem {
	switch {
	case p.at("{"):
		return []uast.FunctionBodyItem{p.parseBlock()}
	case p.at("=>"):
		p.next()
		e := p.parseExpression()
		p.expect(";")
		return []uast.FunctionBodyItem{&uast.ExpressionBody{Expression: e}}
	case p.accept(";"):
		return nil
	}
	p.fail("expected method body")
	return nil
}

func (p *Parser) parseParams() []*uast.VarDecl {
	p.expect("(")
	params := []*uast.VarDecl{}
	for !p.at(")") {
		for p.at("[") {
			p.skipBalanced("[", "]")
		}
		declStart := p.pos
		var mods []string
		for p.atParamModifier() {
			mods = append(mods, p.next().Text)
		}
		typeSpan := p.parseType()
		name := p.expectName()
		var value uast.Expression
		if p.accept("=") {
			value = p.parseExpression()
		}
		params = append(params, &uast.VarDecl{
			Span:      p.spanFrom(declStart),
			Name:      name.Text,
			NameSpan:  name.Span,
			VarType:   p.text(typeSpan),
			Value:     value,
			Modifiers: mods,
		})
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return params
}

func (p *Parser) atParamModifier() bool {
	t := p.cur()
	if t.Kind != Ident || !paramModifiers[t.Text] {
		return false
	}
	if t.Text == "scoped" || t.Text == "readonly" {
		return p.peek(1).Kind == Ident
	}
	return true
}

// skipConstraint consumes one "where T : ..." clause.
func (p *Parser) skipConstraint() {
	p.expect("where")
	for !p.atEOF() && !p.at("{") && !p.at(";") && !p.at("=>") && !p.at("where") {
		if p.at("(") {
			p.skipBalanced("(", ")")
			continue
		}
		p.next()
	}
}

// expectClose consumes a closing brace. A missing brace at EOF is
// reported rather than failing the whole container.
func (p *Parser) expectClose() {
	if p.accept("}") {
		return
	}
	if p.atEOF() {
		p.report(&bailout{msg: `missing "}"`, span: p.cur().Span})
		return
	}
	p.fail(`expected "}"`)
}

// unknownFrom rewinds to start and skips one member.
func (p *Parser) unknownFrom(start int) uast.TopLevel {
	return p.unknownDecl(p.skipAll(start, p.skipGeneric))
}

// unknownSpan wraps the tokens consumed since start.
func (p *Parser) unknownSpan(start int) uast.TopLevel {
	if p.pos == start {
		p.next()
	}
	return p.unknownDecl(p.spanFrom(start))
}

func (p *Parser) unknownDecl(s uast.Span) uast.TopLevel {
	return &uast.Unknown{SourceText: p.text(s), Span: s}
}
