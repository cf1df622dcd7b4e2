package csharp

import "github.com/yaklabco/refract/pkg/uast"

// Binary operator precedence, loosest first.
const (
	precNone = iota
	precCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precRange
)

//nolint:gochecknoglobals // operator table
var binaryPrec = map[string]int{
	"??": precCoalesce,
	"||": precOr,
	"&&": precAnd,
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"==": precEquality, "!=": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"is": precRelational, "as": precRelational,
	"<<": precShift, ">>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"..": precRange,
}

// parseExpression parses an assignment-level expression.
func (p *Parser) parseExpression() uast.Expression {
	if e := p.tryLambda(); e != nil {
		return e
	}
	left := p.parseConditional()
	text, n := p.assignOp()
	if n == 0 {
		return left
	}
	p.pos += n
	right := p.parseExpression()
	op, _ := uast.ParseAssignmentOperator(text)
	return &uast.Assignment{
		Left:     left,
		Operator: op,
		Right:    right,
		Span:     uast.NewSpan(left.Pos(), right.End()),
	}
}

// adjacent reports whether token i+1 directly follows token i.
func (p *Parser) adjacent(offset int) bool {
	return p.peek(offset).Span.End == p.peek(offset+1).Span.Start
}

// assignOp returns the assignment operator at the current position and
// its token count. ">>=" arrives as '>' followed by '>='.
func (p *Parser) assignOp() (string, int) {
	t := p.cur()
	if t.Is(">") {
		if p.peek(1).Is(">=") && p.adjacent(0) {
			return ">>=", 2
		}
		return "", 0
	}
	if t.Kind != Punct {
		return "", 0
	}
	if _, ok := uast.ParseAssignmentOperator(t.Text); ok {
		return t.Text, 1
	}
	return "", 0
}

// binaryOp returns the binary operator at the current position and its
// token count. ">>" arrives as two adjacent '>' tokens.
func (p *Parser) binaryOp() (string, int) {
	t := p.cur()
	switch {
	case t.Is("is"), t.Is("as"):
		return t.Text, 1
	case t.Kind != Punct:
		return "", 0
	case t.Is(">") && p.adjacent(0):
		switch {
		case p.peek(1).Is(">"):
			return ">>", 2
		case p.peek(1).Is(">="):
			return "", 0
		}
	}
	if _, ok := binaryPrec[t.Text]; ok {
		return t.Text, 1
	}
	return "", 0
}

func (p *Parser) parseConditional() uast.Expression {
	cond := p.parseBinary(precNone)
	if !p.at("?") {
		return cond
	}
	p.next()
	p.parseExpression()
	p.expect(":")
	p.parseExpression()
	return p.raw(uast.NewSpan(cond.Pos(), p.prevEnd()))
}

// parseBinary parses operators binding tighter than minPrec.
func (p *Parser) parseBinary(minPrec int) uast.Expression {
	left := p.parseUnary()
	for {
		text, n := p.binaryOp()
		prec := binaryPrec[text]
		if n == 0 || prec <= minPrec {
			return left
		}
		p.pos += n

		switch text {
		case "is":
			p.skipPattern()
		case "as":
			p.parseType()
		case "??":
			p.parseBinary(prec - 1)
		case "..":
			if p.canStartOperand(0) {
				p.parseBinary(prec)
			}
		default:
			right := p.parseBinary(prec)
			op, _ := uast.ParseBinaryOperator(text)
			left = &uast.BinaryOp{
				Left:     left,
				Operator: op,
				Right:    right,
				Span:     uast.NewSpan(left.Pos(), right.End()),
			}
			continue
		}
		left = p.raw(uast.NewSpan(left.Pos(), p.prevEnd()))
	}
}

// skipPattern consumes the pattern after "is".
func (p *Parser) skipPattern() {
	for {
		for p.at("not") {
			p.next()
		}
		switch {
		case p.at("("):
			p.skipBalanced("(", ")")
		case p.at("["):
			p.skipBalanced("[", "]")
		case p.at("{"):
		case p.at("<"), p.at(">"), p.at("<="), p.at(">="), p.at("=="), p.at("!="):
			p.next()
			p.parseUnary()
		case isName(p.cur()) || predefinedTypes[p.cur().Text]:
			p.parseType()
		default:
			p.parseUnary()
		}
		if p.at("{") {
			p.skipBalanced("{", "}")
		}
		if isName(p.cur()) && !p.at("and") && !p.at("or") && !p.at("when") {
			p.next()
		}
		if !p.accept("and") && !p.accept("or") {
			return
		}
	}
}

// canStartOperand reports whether the token at offset can begin a unary
// expression.
func (p *Parser) canStartOperand(offset int) bool {
	t := p.peek(offset)
	switch t.Kind {
	case Int, Real, String, InterpString, Char:
		return true
	case Ident:
		return !t.Is("is") && !t.Is("as")
	case Punct:
		switch t.Text {
		case "(", "!", "~", "-", "+", "++", "--", "[", "&", "*", "^", "..":
			return true
		}
	}
	return false
}

func (p *Parser) parseUnary() uast.Expression {
	t := p.cur()
	start := p.pos
	if t.Kind == Punct {
		switch t.Text {
		case "-", "+", "!", "~", "++", "--":
			p.next()
			operand := p.parseUnary()
			op, _ := uast.ParsePrefixOperator(t.Text)
			return &uast.UnaryOp{
				Operator: op,
				Operand:  operand,
				Span:     uast.NewSpan(t.Span.Start, operand.End()),
			}
		case "&", "*", "^":
			p.next()
			p.parseUnary()
			return p.raw(p.spanFrom(start))
		case "..":
			p.next()
			if p.canStartOperand(0) {
				p.parseUnary()
			}
			return p.raw(p.spanFrom(start))
		case "(":
			if e := p.tryCast(); e != nil {
				return e
			}
		}
	}
	if t.Is("await") && p.awaitFollows() {
		p.next()
		p.parseUnary()
		return p.raw(p.spanFrom(start))
	}
	return p.parsePostfix(p.parsePrimary())
}

// awaitFollows reports whether "await" is an operator rather than a name.
func (p *Parser) awaitFollows() bool {
	n := p.peek(1)
	switch n.Kind {
	case Int, Real, String, InterpString, Char:
		return true
	case Ident:
		return !n.Is("is") && !n.Is("as")
	case Punct:
		return n.Is("(")
	}
	return false
}

// tryCast parses "(Type)operand". It returns nil, leaving the position
// unchanged, when the parenthesis is not a cast.
func (p *Parser) tryCast() uast.Expression {
	start := p.pos
	ok := false
	p.attempt(func() {
		p.expect("(")
		typeSpan := p.parseType()
		p.expect(")")
		ok = p.castFollows(predefinedTypes[p.text(typeSpan)])
		p.fail("lookahead")
	})
	if !ok {
		return nil
	}
	p.skipBalanced("(", ")")
	p.parseUnary()
	return p.raw(p.spanFrom(start))
}

// castFollows applies the C# cast disambiguation rule to the token after
// the closing parenthesis.
func (p *Parser) castFollows(predefined bool) bool {
	t := p.cur()
	switch t.Kind {
	case Int, Real, String, InterpString, Char:
		return true
	case Ident:
		return !t.Is("is") && !t.Is("as") && !t.Is("switch") && !t.Is("with")
	case Punct:
		if t.Is("(") || t.Is("!") || t.Is("~") {
			return true
		}
		return predefined && p.canStartOperand(0)
	}
	return false
}

// tryLambda consumes "x => ...", "(a, b) => ..." and their async and
// static forms as Raw.
func (p *Parser) tryLambda() uast.Expression {
	start := p.pos
	for p.at("async") || p.at("static") {
		if !p.peek(1).Is("(") && !isName(p.peek(1)) && !p.peek(1).Is("static") && !p.peek(1).Is("async") {
			break
		}
		p.next()
	}
	switch {
	case isName(p.cur()) && p.peek(1).Is("=>"):
		p.next()
	case p.at("("):
		if p.attempt(func() {
			p.skipBalanced("(", ")")
			if !p.at("=>") {
				p.fail("lookahead")
			}
		}) != nil {
			p.pos = start
			return nil
		}
	default:
		p.pos = start
		return nil
	}

	p.expect("=>")
	if p.at("{") {
		p.skipBalanced("{", "}")
	} else {
		p.parseExpression()
	}
	return p.raw(p.spanFrom(start))
}

//nolint:cyclop // one case per primary form
func (p *Parser) parsePrimary() uast.Expression {
	t := p.cur()
	start := p.pos
	switch t.Kind {
	case Int:
		p.next()
		return p.intLiteral(t)
	case Real:
		p.next()
		return p.realLiteral(t)
	case String:
		p.next()
		return p.stringLiteral(t)
	case Char:
		p.next()
		return p.charLiteral(t)
	case InterpString:
		p.next()
		return p.raw(t.Span)
	case Ident:
		switch t.Text {
		case "true", "false":
			p.next()
			return &uast.Literal{Kind: uast.LitBoolean, Bool: t.Text == "true", Span: t.Span}
		case "null", "this", "base", "__arglist":
			p.next()
			return p.raw(t.Span)
		case "new", "stackalloc":
			return p.parseNew()
		case "typeof", "sizeof", "default", "checked", "unchecked", "nameof":
			p.next()
			p.skipParens()
			return p.raw(p.spanFrom(start))
		case "throw":
			p.next()
			p.parseExpression()
			return p.raw(p.spanFrom(start))
		case "ref", "out", "in":
			p.next()
			p.parseUnary()
			return p.raw(p.spanFrom(start))
		case "delegate":
			p.next()
			p.skipParens()
			p.skipBlock()
			return p.raw(p.spanFrom(start))
		}
		if predefinedTypes[t.Text] {
			p.next()
			return p.raw(t.Span)
		}
		if isName(t) {
			p.next()
			if p.at("<") && p.genericFollows() {
				return p.raw(p.spanFrom(start))
			}
			return &uast.Identifier{Name: t.Text, Span: t.Span}
		}
	case Punct:
		switch t.Text {
		case "(":
			return p.parseParenthesized()
		case "[":
			p.skipBalanced("[", "]")
			return p.raw(p.spanFrom(start))
		}
	}
	p.fail("expected expression")
	return nil
}

// genericFollows consumes a type argument list if it is followed by a call
// or member access, as in "Foo<int>(x)".
func (p *Parser) genericFollows() bool {
	return p.attempt(func() {
		p.parseTypeArgs()
		if !p.at("(") && !p.at(".") {
			p.fail("not a generic name")
		}
	}) == nil
}

// parseParenthesized parses "(e)" or a tuple "(a, b)", which becomes Raw.
func (p *Parser) parseParenthesized() uast.Expression {
	start := p.pos
	p.expect("(")
	inner := p.parseExpression()
	if p.at(",") {
		for p.accept(",") {
			p.parseExpression()
		}
		p.expect(")")
		return p.raw(p.spanFrom(start))
	}
	p.expect(")")
	return &uast.Parenthesized{Inner: inner, Span: p.spanFrom(start)}
}

// parseNew consumes object, array, anonymous and target-typed creation
// expressions as Raw.
func (p *Parser) parseNew() uast.Expression {
	start := p.pos
	p.next()
	switch {
	case p.at("("), p.at("{"):
	case p.at("["):
		p.skipBalanced("[", "]")
	default:
		p.parseTypeName()
		for p.at("[") {
			p.skipBalanced("[", "]")
		}
		for p.at("?") || p.at("*") {
			p.next()
		}
	}
	p.skipParens()
	p.skipBlock()
	return p.raw(p.spanFrom(start))
}

//nolint:cyclop // one case per postfix form
func (p *Parser) parsePostfix(left uast.Expression) uast.Expression {
	for {
		t := p.cur()
		switch {
		case t.Is(".") && p.peek(1).Kind == Ident:
			p.next()
			member := p.next()
			if p.at("<") && p.genericFollows() {
				left = p.raw(uast.NewSpan(left.Pos(), p.prevEnd()))
				continue
			}
			left = &uast.MemberAccess{
				Expression: left,
				Member:     member.Text,
				MemberSpan: member.Span,
				Span:       uast.NewSpan(left.Pos(), member.Span.End),
			}
		case t.Is("?.") || t.Is("->") || t.Is("::"):
			p.next()
			if p.at("[") {
				p.skipBalanced("[", "]")
			} else {
				p.expectName()
			}
			left = p.raw(uast.NewSpan(left.Pos(), p.prevEnd()))
		case t.Is("?") && p.peek(1).Is("[") && p.adjacent(0):
			p.next()
			p.skipBalanced("[", "]")
			left = p.raw(uast.NewSpan(left.Pos(), p.prevEnd()))
		case t.Is("("):
			args := p.parseArguments()
			left = &uast.Invocation{
				Function:  left,
				Arguments: args,
				Span:      uast.NewSpan(left.Pos(), p.prevEnd()),
			}
		case t.Is("["):
			p.skipBalanced("[", "]")
			left = p.raw(uast.NewSpan(left.Pos(), p.prevEnd()))
		case t.Is("++"), t.Is("--"):
			p.next()
			op := uast.OpPostIncrement
			if t.Is("--") {
				op = uast.OpPostDecrement
			}
			left = &uast.UnaryOp{Operator: op, Operand: left, Span: uast.NewSpan(left.Pos(), t.Span.End)}
		case t.Is("!") && !p.canStartOperand(1):
			p.next()
			left = p.raw(uast.NewSpan(left.Pos(), t.Span.End))
		case (t.Is("switch") || t.Is("with")) && p.peek(1).Is("{"):
			p.next()
			p.skipBalanced("{", "}")
			left = p.raw(uast.NewSpan(left.Pos(), p.prevEnd()))
		default:
			return left
		}
	}
}

// parseArguments parses a call's argument list. Named, ref and out
// arguments become Raw.
func (p *Parser) parseArguments() []uast.Expression {
	p.expect("(")
	args := []uast.Expression{}
	for !p.at(")") {
		start := p.pos
		switch {
		case isName(p.cur()) && p.peek(1).Is(":") && !p.peek(2).Is(":"):
			p.next()
			p.next()
			p.parseExpression()
			args = append(args, p.raw(p.spanFrom(start)))
		case p.at("out") || p.at("ref") || p.at("in"):
			p.next()
			if p.attempt(func() { p.parseType(); p.expectName() }) != nil {
				p.parseExpression()
			}
			args = append(args, p.raw(p.spanFrom(start)))
		default:
			args = append(args, p.parseExpression())
		}
		if !p.accept(",") {
			break
		}
	}
	p.expect(")")
	return args
}
