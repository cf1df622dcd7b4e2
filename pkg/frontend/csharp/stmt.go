package csharp

import "github.com/yaklabco/refract/pkg/uast"

//nolint:gochecknoglobals // keyword table
var opaqueStatements = setOf(
	"foreach", "do", "switch", "try", "using", "lock", "fixed", "unsafe",
	"checked", "unchecked", "throw", "break", "continue", "goto", "else",
	"case", "default",
)

// parseStatement lowers one statement. Statements outside the modelled
// subset, and statements that fail to parse, become UnknownStatement.
func (p *Parser) parseStatement() uast.Statement {
	start := p.pos
	var stmt uast.Statement
	failure := p.attempt(func() { stmt = p.parseStatementOrFail() })
	if failure == nil && stmt != nil {
		return stmt
	}
	if failure != nil {
		p.report(failure)
	}
	s := p.skipAll(start, p.skipStatement)
	return &uast.UnknownStatement{SourceText: p.text(s), Span: s}
}

func (p *Parser) parseStatementOrFail() uast.Statement {
	t := p.cur()
	switch {
	case t.Is("{"), t.Is(";"):
		return nil
	case t.Is("if"):
		return p.parseIf()
	case t.Is("while"):
		return p.parseWhile()
	case t.Is("for"):
		return p.parseFor()
	case t.Is("return"):
		return p.parseReturn()
	case t.Is("yield") && (p.peek(1).Is("return") || p.peek(1).Is("break")):
		return nil
	case t.Is("await") && (p.peek(1).Is("foreach") || p.peek(1).Is("using")):
		return nil
	case t.Kind == Ident && opaqueStatements[t.Text]:
		return nil
	case isName(t) && p.peek(1).Is(":") && !p.peek(2).Is(":"):
		// label
		return nil
	}

	start := p.pos
	if decl := p.tryLocalDecl(); decl != nil {
		p.expect(";")
		decl.Span = p.spanFrom(start)
		return decl
	}

	e := p.parseExpression()
	p.expect(";")
	return &uast.ExpressionStatement{Expression: e, Span: p.spanFrom(start)}
}

// tryLocalDecl parses "[const] Type a = 1, b" up to but excluding the
// terminator. It returns nil, with the position unchanged, when the tokens
// are not a declaration.
func (p *Parser) tryLocalDecl() *uast.DeclStmt {
	if p.at("await") {
		return nil
	}
	start := p.pos
	var mods []string
	for p.at("const") || p.at("ref") || p.at("readonly") || p.at("scoped") && p.peek(1).Kind == Ident {
		mods = append(mods, p.next().Text)
	}

	var typeSpan uast.Span
	if p.attempt(func() { typeSpan = p.parseType() }) != nil {
		p.pos = start
		return nil
	}
	next := p.peek(1)
	if !isName(p.cur()) || !next.Is("=") && !next.Is(";") && !next.Is(",") {
		p.pos = start
		return nil
	}

	return &uast.DeclStmt{
		Modifiers: mods,
		VarDecls:  p.parseDeclarators(p.declaredType(typeSpan)),
	}
}

// declaredType returns the written type, or "" when it is inferred with var.
func (p *Parser) declaredType(s uast.Span) string {
	text := p.text(s)
	if text == "var" {
		return ""
	}
	return text
}

// parseDeclarators parses "a = 1, b, c = 2". Each declarator spans its
// name through its initializer.
func (p *Parser) parseDeclarators(varType string) []*uast.VarDecl {
	var decls []*uast.VarDecl
	for {
		name := p.expectName()
		idx := p.pos - 1
		var value uast.Expression
		if p.accept("=") {
			value = p.parseInitializer()
		}
		decls = append(decls, &uast.VarDecl{
			Span:     p.spanFrom(idx),
			Name:     name.Text,
			NameSpan: name.Span,
			VarType:  varType,
			Value:    value,
		})
		if !p.accept(",") {
			return decls
		}
	}
}

// parseInitializer handles array initializers and ref locals, which are
// kept as Raw.
func (p *Parser) parseInitializer() uast.Expression {
	start := p.pos
	switch {
	case p.at("{"):
		p.skipBalanced("{", "}")
		return p.raw(p.spanFrom(start))
	case p.at("ref"):
		p.next()
		p.parseExpression()
		return p.raw(p.spanFrom(start))
	}
	return p.parseExpression()
}

func (p *Parser) parseBlock() *uast.Block {
	start := p.pos
	p.expect("{")
	stmts := []uast.Statement{}
	for !p.atEOF() && !p.at("}") {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect("}")
	return &uast.Block{Statements: stmts, Span: p.spanFrom(start)}
}

// parseEmbedded parses the body of if/while/for. A single statement is
// wrapped in a block spanning just that statement.
func (p *Parser) parseEmbedded() *uast.Block {
	if p.at("{") {
		return p.parseBlock()
	}
	stmt := p.parseStatement()
	return &uast.Block{Statements: []uast.Statement{stmt}, Span: uast.SpanOf(stmt)}
}

func (p *Parser) parseParenCondition() uast.Expression {
	p.expect("(")
	cond := p.parseExpression()
	p.expect(")")
	return cond
}

func (p *Parser) parseIf() uast.Statement {
	start := p.pos
	p.next()
	stmt := &uast.IfStatement{Condition: p.parseParenCondition()}
	stmt.Consequence = p.parseEmbedded()
	if p.accept("else") {
		stmt.Alternative = p.parseEmbedded()
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseWhile() uast.Statement {
	start := p.pos
	p.next()
	stmt := &uast.WhileLoop{Condition: p.parseParenCondition()}
	stmt.Body = p.parseEmbedded()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseFor() uast.Statement {
	start := p.pos
	p.next()
	p.expect("(")
	stmt := &uast.ForLoop{}

	if !p.at(";") {
		initStart := p.pos
		if decl := p.tryLocalDecl(); decl != nil {
			decl.Span = p.spanFrom(initStart)
			stmt.Initializer = decl
		} else {
			e := p.parseExpression()
			if p.at(",") {
				for p.accept(",") {
					p.parseExpression()
				}
				s := p.spanFrom(initStart)
				stmt.Initializer = &uast.UnknownStatement{SourceText: p.text(s), Span: s}
			} else {
				stmt.Initializer = &uast.ExpressionStatement{Expression: e, Span: uast.SpanOf(e)}
			}
		}
	}
	p.expect(";")

	if !p.at(";") {
		stmt.Condition = p.parseExpression()
	}
	p.expect(";")

	if !p.at(")") {
		updStart := p.pos
		stmt.Update = p.parseExpression()
		if p.at(",") {
			for p.accept(",") {
				p.parseExpression()
			}
			stmt.Update = p.raw(p.spanFrom(updStart))
		}
	}
	p.expect(")")

	stmt.Body = p.parseEmbedded()
	stmt.Span = p.spanFrom(start)
	return stmt
}

func (p *Parser) parseReturn() uast.Statement {
	start := p.pos
	p.next()
	stmt := &uast.ReturnStatement{}
	if !p.at(";") {
		stmt.Value = p.parseExpression()
	}
	p.expect(";")
	stmt.Span = p.spanFrom(start)
	return stmt
}
