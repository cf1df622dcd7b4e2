package uast

// Class is a type declaration. Body is nil when the declaration has none.
type Class struct {
	Name        string
	Span        Span
	Body        []TopLevel
	Modifiers   []string
	Annotations []string
	Metadata    map[string]string
}

// Function is a method, constructor or free function.
// Body and Parameters are nil when absent; ReturnType is empty when absent.
type Function struct {
	Name        string
	Span        Span
	Body        []FunctionBodyItem
	Modifiers   []string
	Parameters  []*VarDecl
	ReturnType  string
	Annotations []string
	Metadata    map[string]string
}

// Module is a named container of declarations, such as a namespace.
type Module struct {
	Name     string
	Body     []TopLevel
	Span     Span
	Metadata map[string]string
}

// StatementDecl is a statement at declaration level, such as a field.
type StatementDecl struct {
	Statement Statement
}

// Unknown is a declaration the front end did not model.
type Unknown struct {
	SourceText string
	Span       Span
}

// NestedDecl is a declaration inside a function body.
type NestedDecl struct {
	Decl TopLevel
}

// ExpressionBody is a function body consisting of a single expression.
type ExpressionBody struct {
	Expression Expression
}

func (d *Class) Pos() int          { return d.Span.Start }
func (d *Class) End() int          { return d.Span.End }
func (d *Function) Pos() int       { return d.Span.Start }
func (d *Function) End() int       { return d.Span.End }
func (d *Module) Pos() int         { return d.Span.Start }
func (d *Module) End() int         { return d.Span.End }
func (d *StatementDecl) Pos() int  { return d.Statement.Pos() }
func (d *StatementDecl) End() int  { return d.Statement.End() }
func (d *Unknown) Pos() int        { return d.Span.Start }
func (d *Unknown) End() int        { return d.Span.End }
func (b *NestedDecl) Pos() int     { return b.Decl.Pos() }
func (b *NestedDecl) End() int     { return b.Decl.End() }
func (b *ExpressionBody) Pos() int { return b.Expression.Pos() }
func (b *ExpressionBody) End() int { return b.Expression.End() }

func (*Class) topLevelNode()         {}
func (*Function) topLevelNode()      {}
func (*Module) topLevelNode()        {}
func (*StatementDecl) topLevelNode() {}
func (*Unknown) topLevelNode()       {}

func (*Block) bodyItem()          {}
func (*NestedDecl) bodyItem()     {}
func (*ExpressionBody) bodyItem() {}

// DeclName returns the declared name of a Class, Function or Module,
// or "" for other declarations.
func DeclName(d TopLevel) string {
	switch d := d.(type) {
	case *Class:
		return d.Name
	case *Function:
		return d.Name
	case *Module:
		return d.Name
	default:
		return ""
	}
}
