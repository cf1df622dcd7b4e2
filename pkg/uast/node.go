package uast

// Node is implemented by every tree element that occupies source bytes.
type Node interface {
	// Pos returns the byte offset of the first byte of the node.
	Pos() int
	// End returns the byte offset just past the node.
	End() int
}

// SpanOf returns the span of n.
func SpanOf(n Node) Span {
	return Span{Start: n.Pos(), End: n.End()}
}

// Expression is a value-producing node.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node executed for effect inside a block.
type Statement interface {
	Node
	stmtNode()
}

// TopLevel is a declaration-level node.
type TopLevel interface {
	Node
	topLevelNode()
}

// FunctionBodyItem is one element of a function body: a Block,
// a NestedDecl or an ExpressionBody.
type FunctionBodyItem interface {
	Node
	bodyItem()
}
