package uast

import "strconv"

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Span Span
}

// LiteralKind distinguishes literal values.
type LiteralKind int

// Literal kinds.
const (
	LitInteger LiteralKind = iota
	LitFloat
	LitString
	LitBoolean
	LitChar
)

func (k LiteralKind) String() string {
	switch k {
	case LitInteger:
		return "Integer"
	case LitFloat:
		return "Float"
	case LitString:
		return "String"
	case LitBoolean:
		return "Boolean"
	case LitChar:
		return "Char"
	default:
		return "Unknown"
	}
}

// Literal is a constant value. Only the field selected by Kind is meaningful.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Char  rune
	Span  Span
}

// Value returns the literal's decoded value.
func (l *Literal) Value() any {
	switch l.Kind {
	case LitInteger:
		return l.Int
	case LitFloat:
		return l.Float
	case LitString:
		return l.Str
	case LitBoolean:
		return l.Bool
	case LitChar:
		return l.Char
	default:
		return nil
	}
}

// ValueString renders the decoded value without source quoting.
func (l *Literal) ValueString() string {
	switch l.Kind {
	case LitInteger:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case LitString:
		return l.Str
	case LitBoolean:
		return strconv.FormatBool(l.Bool)
	case LitChar:
		return string(l.Char)
	default:
		return ""
	}
}

// BinaryOp is an infix operation.
type BinaryOp struct {
	Left     Expression
	Operator BinaryOperator
	Right    Expression
	Span     Span
}

// UnaryOp is a prefix or postfix operation.
type UnaryOp struct {
	Operator UnaryOperator
	Operand  Expression
	Span     Span
}

// Assignment assigns Right to Left.
type Assignment struct {
	Left     Expression
	Operator AssignmentOperator
	Right    Expression
	Span     Span
}

// Invocation is a call.
type Invocation struct {
	Function  Expression
	Arguments []Expression
	Span      Span
}

// MemberAccess selects Member from Expression. Member is a plain string
// and is never treated as a variable reference.
type MemberAccess struct {
	Expression Expression
	Member     string
	MemberSpan Span
	Span       Span
}

// Parenthesized is an expression wrapped in parentheses.
// Span covers the parentheses; Inner's span does not.
type Parenthesized struct {
	Inner Expression
	Span  Span
}

// Raw is an expression the front end did not model. SourceText is the
// verbatim source of Span.
type Raw struct {
	SourceText string
	Span       Span
}

func (e *Identifier) Pos() int    { return e.Span.Start }
func (e *Identifier) End() int    { return e.Span.End }
func (e *Literal) Pos() int       { return e.Span.Start }
func (e *Literal) End() int       { return e.Span.End }
func (e *BinaryOp) Pos() int      { return e.Span.Start }
func (e *BinaryOp) End() int      { return e.Span.End }
func (e *UnaryOp) Pos() int       { return e.Span.Start }
func (e *UnaryOp) End() int       { return e.Span.End }
func (e *Assignment) Pos() int    { return e.Span.Start }
func (e *Assignment) End() int    { return e.Span.End }
func (e *Invocation) Pos() int    { return e.Span.Start }
func (e *Invocation) End() int    { return e.Span.End }
func (e *MemberAccess) Pos() int  { return e.Span.Start }
func (e *MemberAccess) End() int  { return e.Span.End }
func (e *Parenthesized) Pos() int { return e.Span.Start }
func (e *Parenthesized) End() int { return e.Span.End }
func (e *Raw) Pos() int           { return e.Span.Start }
func (e *Raw) End() int           { return e.Span.End }

func (*Identifier) exprNode()    {}
func (*Literal) exprNode()       {}
func (*BinaryOp) exprNode()      {}
func (*UnaryOp) exprNode()       {}
func (*Assignment) exprNode()    {}
func (*Invocation) exprNode()    {}
func (*MemberAccess) exprNode()  {}
func (*Parenthesized) exprNode() {}
func (*Raw) exprNode()           {}
