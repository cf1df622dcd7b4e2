package uast

// VarDecl is a single declarator: a local, a field, or a parameter.
type VarDecl struct {
	Span Span
	Name string
	// NameSpan covers only the identifier token.
	NameSpan Span
	// VarType is empty when no type was written (or it was inferred).
	VarType string
	// Value is nil when there is no initializer.
	Value     Expression
	Modifiers []string
}

// Block is a braced statement list. Span includes the braces.
type Block struct {
	Statements []Statement
	Span       Span
}

// DeclStmt declares one or more variables.
type DeclStmt struct {
	Modifiers []string
	VarDecls  []*VarDecl
	Span      Span
}

// IfStatement is a conditional. Alternative is nil when there is no else.
type IfStatement struct {
	Condition   Expression
	Consequence *Block
	Alternative *Block
	Span        Span
}

// WhileLoop is a pre-tested loop.
type WhileLoop struct {
	Condition Expression
	Body      *Block
	Span      Span
}

// ForLoop is a C-style loop. Initializer, Condition and Update may be nil.
type ForLoop struct {
	Initializer Statement
	Condition   Expression
	Update      Expression
	Body        *Block
	Span        Span
}

// ReturnStatement returns from a function. Value is nil for a bare return.
type ReturnStatement struct {
	Value Expression
	Span  Span
}

// ExpressionStatement evaluates an expression for effect.
type ExpressionStatement struct {
	Expression Expression
	Span       Span
}

// UnknownStatement is a statement the front end did not model.
type UnknownStatement struct {
	SourceText string
	Span       Span
}

func (d *VarDecl) Pos() int             { return d.Span.Start }
func (d *VarDecl) End() int             { return d.Span.End }
func (b *Block) Pos() int               { return b.Span.Start }
func (b *Block) End() int               { return b.Span.End }
func (s *DeclStmt) Pos() int            { return s.Span.Start }
func (s *DeclStmt) End() int            { return s.Span.End }
func (s *IfStatement) Pos() int         { return s.Span.Start }
func (s *IfStatement) End() int         { return s.Span.End }
func (s *WhileLoop) Pos() int           { return s.Span.Start }
func (s *WhileLoop) End() int           { return s.Span.End }
func (s *ForLoop) Pos() int             { return s.Span.Start }
func (s *ForLoop) End() int             { return s.Span.End }
func (s *ReturnStatement) Pos() int     { return s.Span.Start }
func (s *ReturnStatement) End() int     { return s.Span.End }
func (s *ExpressionStatement) Pos() int { return s.Span.Start }
func (s *ExpressionStatement) End() int { return s.Span.End }
func (s *UnknownStatement) Pos() int    { return s.Span.Start }
func (s *UnknownStatement) End() int    { return s.Span.End }

func (*DeclStmt) stmtNode()            {}
func (*IfStatement) stmtNode()         {}
func (*WhileLoop) stmtNode()           {}
func (*ForLoop) stmtNode()             {}
func (*ReturnStatement) stmtNode()     {}
func (*ExpressionStatement) stmtNode() {}
func (*UnknownStatement) stmtNode()    {}
