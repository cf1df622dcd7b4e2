// Package csharp renders UAST declarations back to C# source.
//
// Output is normalised: comments and original layout are not preserved,
// and constructs the front end kept as Unknown or Raw are emitted
// verbatim. Use the edit pipeline when the original text must survive.
package csharp

import (
	"strconv"
	"strings"

	"github.com/yaklabco/refract/pkg/uast"
)

// DefaultIndent is used when Generator.Indent is empty.
const DefaultIndent = "    "

// Generator renders C#. The zero value is ready to use.
type Generator struct {
	// Indent is one level of indentation.
	Indent string
}

// New returns a generator using indent for each nesting level.
func New(indent string) *Generator {
	return &Generator{Indent: indent}
}

// Generate renders one declaration at column zero.
func (g *Generator) Generate(decl uast.TopLevel) string {
	p := g.printer()
	p.decl(decl)
	return p.String()
}

// GenerateAll renders declarations one per line, with a trailing newline.
func (g *Generator) GenerateAll(decls []uast.TopLevel) string {
	p := g.printer()
	for _, d := range decls {
		p.decl(d)
		p.WriteByte('\n')
	}
	return p.String()
}

// Statement renders a single statement at column zero.
func (g *Generator) Statement(stmt uast.Statement) string {
	p := g.printer()
	p.stmt(stmt)
	return p.String()
}

// Expression renders a single expression.
func (g *Generator) Expression(e uast.Expression) string {
	return g.printer().expr(e)
}

func (g *Generator) printer() *printer {
	indent := g.Indent
	if indent == "" {
		indent = DefaultIndent
	}
	return &printer{indent: indent}
}

type printer struct {
	strings.Builder
	indent string
	depth  int
}

func (p *printer) newline() {
	p.WriteByte('\n')
	p.WriteString(strings.Repeat(p.indent, p.depth))
}

func (p *printer) words(ws []string) {
	for _, w := range ws {
		p.WriteString(w)
		p.WriteByte(' ')
	}
}

func (p *printer) annotations(as []string) {
	for _, a := range as {
		p.WriteString("[" + a + "]")
		p.newline()
	}
}

func (p *printer) decl(decl uast.TopLevel) {
	switch d := decl.(type) {
	case *uast.Class:
		p.class(d)
	case *uast.Function:
		p.function(d)
	case *uast.Module:
		p.module(d)
	case *uast.StatementDecl:
		p.stmt(d.Statement)
	case *uast.Unknown:
		p.WriteString(d.SourceText)
	}
}

// members writes decls one per line inside braces.
func (p *printer) members(decls []uast.TopLevel) {
	p.WriteString(" {")
	p.depth++
	for _, d := range decls {
		p.newline()
		p.decl(d)
	}
	p.depth--
	p.newline()
	p.WriteByte('}')
}

func (p *printer) class(c *uast.Class) {
	p.annotations(c.Annotations)
	p.words(c.Modifiers)

	kind := c.Metadata["kind"]
	if kind == "" {
		kind = "class"
	}
	p.WriteString(kind + " " + c.Name)
	p.WriteString(c.Metadata["type_parameters"])
	p.WriteString(c.Metadata["parameters"])
	if base := c.Metadata["base"]; base != "" {
		p.WriteString(" : " + base)
	}

	if len(c.Body) == 0 && c.Metadata["parameters"] != "" {
		p.WriteByte(';')
		return
	}
	p.members(c.Body)
}

func (p *printer) function(f *uast.Function) {
	p.annotations(f.Annotations)
	p.words(f.Modifiers)

	if f.Metadata["kind"] != "constructor" {
		ret := f.ReturnType
		if ret == "" {
			ret = "void"
		}
		p.WriteString(ret + " ")
	}
	p.WriteString(f.Name)
	p.WriteString(f.Metadata["type_parameters"])

	p.WriteByte('(')
	for i, param := range f.Parameters {
		if i > 0 {
			p.WriteString(", ")
		}
		p.words(param.Modifiers)
		if param.VarType != "" {
			p.WriteString(param.VarType + " ")
		}
		p.WriteString(param.Name)
		if param.Value != nil {
			p.WriteString(" = " + p.expr(param.Value))
		}
	}
	p.WriteByte(')')

	if f.Body == nil {
		p.WriteByte(';')
		return
	}
	for _, item := range f.Body {
		switch it := item.(type) {
		case *uast.Block:
			p.WriteByte(' ')
			p.block(it)
		case *uast.ExpressionBody:
			p.WriteString(" => " + p.expr(it.Expression) + ";")
		case *uast.NestedDecl:
			p.newline()
			p.decl(it.Decl)
		}
	}
}

func (p *printer) module(m *uast.Module) {
	p.WriteString("namespace " + m.Name)
	if m.Metadata["file_scoped"] == "true" {
		p.WriteByte(';')
		for _, d := range m.Body {
			p.newline()
			p.newline()
			p.decl(d)
		}
		return
	}
	p.members(m.Body)
}

func (p *printer) block(b *uast.Block) {
	p.WriteByte('{')
	p.depth++
	for _, s := range b.Statements {
		p.newline()
		p.stmt(s)
	}
	p.depth--
	p.newline()
	p.WriteByte('}')
}

//nolint:cyclop // one case per statement kind
func (p *printer) stmt(stmt uast.Statement) {
	switch s := stmt.(type) {
	case *uast.DeclStmt:
		p.WriteString(p.declStmt(s) + ";")
	case *uast.IfStatement:
		p.WriteString("if (" + p.expr(s.Condition) + ") ")
		p.block(s.Consequence)
		if s.Alternative == nil {
			return
		}
		p.WriteString(" else ")
		if elseIf := chainedIf(s.Alternative); elseIf != nil {
			p.stmt(elseIf)
			return
		}
		p.block(s.Alternative)
	case *uast.WhileLoop:
		p.WriteString("while (" + p.expr(s.Condition) + ") ")
		p.block(s.Body)
	case *uast.ForLoop:
		p.WriteString("for (")
		switch init := s.Initializer.(type) {
		case nil:
		case *uast.DeclStmt:
			p.WriteString(p.declStmt(init))
		case *uast.ExpressionStatement:
			p.WriteString(p.expr(init.Expression))
		case *uast.UnknownStatement:
			p.WriteString(init.SourceText)
		}
		p.WriteString("; ")
		if s.Condition != nil {
			p.WriteString(p.expr(s.Condition))
		}
		p.WriteString("; ")
		if s.Update != nil {
			p.WriteString(p.expr(s.Update))
		}
		p.WriteString(") ")
		p.block(s.Body)
	case *uast.ReturnStatement:
		p.WriteString("return")
		if s.Value != nil {
			p.WriteString(" " + p.expr(s.Value))
		}
		p.WriteByte(';')
	case *uast.ExpressionStatement:
		p.WriteString(p.expr(s.Expression) + ";")
	case *uast.UnknownStatement:
		p.WriteString(s.SourceText)
	}
}

// chainedIf returns the if statement of an "else if", whose alternative
// block holds exactly that statement.
func chainedIf(b *uast.Block) *uast.IfStatement {
	if len(b.Statements) != 1 {
		return nil
	}
	s, ok := b.Statements[0].(*uast.IfStatement)
	if !ok || uast.SpanOf(s) != b.Span {
		return nil
	}
	return s
}

// declStmt renders a declaration without its terminator.
func (p *printer) declStmt(s *uast.DeclStmt) string {
	var b strings.Builder
	for _, m := range s.Modifiers {
		b.WriteString(m + " ")
	}
	varType := "var"
	if len(s.VarDecls) > 0 && s.VarDecls[0].VarType != "" {
		varType = s.VarDecls[0].VarType
	}
	b.WriteString(varType + " ")
	for i, d := range s.VarDecls {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Name)
		if d.Value != nil {
			b.WriteString(" = " + p.expr(d.Value))
		}
	}
	return b.String()
}

func (p *printer) expr(e uast.Expression) string {
	switch e := e.(type) {
	case *uast.Identifier:
		return e.Name
	case *uast.Literal:
		return literal(e)
	case *uast.BinaryOp:
		return p.expr(e.Left) + " " + e.Operator.String() + " " + p.expr(e.Right)
	case *uast.UnaryOp:
		if e.Operator.IsPostfix() {
			return p.expr(e.Operand) + e.Operator.String()
		}
		return e.Operator.String() + p.expr(e.Operand)
	case *uast.Assignment:
		return p.expr(e.Left) + " " + e.Operator.String() + " " + p.expr(e.Right)
	case *uast.Invocation:
		args := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = p.expr(a)
		}
		return p.expr(e.Function) + "(" + strings.Join(args, ", ") + ")"
	case *uast.MemberAccess:
		return p.expr(e.Expression) + "." + e.Member
	case *uast.Parenthesized:
		return "(" + p.expr(e.Inner) + ")"
	case *uast.Raw:
		return e.SourceText
	}
	return ""
}

func literal(l *uast.Literal) string {
	switch l.Kind {
	case uast.LitInteger:
		return strconv.FormatInt(l.Int, 10)
	case uast.LitFloat:
		s := strconv.FormatFloat(l.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	case uast.LitString:
		return quote(l.Str, '"')
	case uast.LitBoolean:
		return strconv.FormatBool(l.Bool)
	case uast.LitChar:
		return quote(string(l.Char), '\'')
	}
	return ""
}

// quote renders s as a regular C# string or character literal.
func quote(s string, delim rune) string {
	var b strings.Builder
	b.WriteRune(delim)
	for _, r := range s {
		switch r {
		case delim, '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < ' ' || r == 0x7f {
				b.WriteString(`\u` + leftPad(strconv.FormatInt(int64(r), 16), 4))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteRune(delim)
	return b.String()
}

func leftPad(s string, n int) string {
	return strings.Repeat("0", max(0, n-len(s))) + s
}
