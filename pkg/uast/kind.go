package uast

// Kind returns the stable kind name of n, such as "Identifier" or "DeclStmt".
//
//nolint:cyclop // one case per node kind
func Kind(n Node) string {
	switch n.(type) {
	case *Identifier:
		return "Identifier"
	case *Literal:
		return "Literal"
	case *BinaryOp:
		return "BinaryOp"
	case *UnaryOp:
		return "UnaryOp"
	case *Assignment:
		return "Assignment"
	case *Invocation:
		return "Invocation"
	case *MemberAccess:
		return "MemberAccess"
	case *Parenthesized:
		return "Parenthesized"
	case *Raw:
		return "Raw"
	case *VarDecl:
		return "VarDecl"
	case *Block:
		return "Block"
	case *DeclStmt:
		return "DeclStmt"
	case *IfStatement:
		return "IfStatement"
	case *WhileLoop:
		return "WhileLoop"
	case *ForLoop:
		return "ForLoop"
	case *ReturnStatement:
		return "ReturnStatement"
	case *ExpressionStatement:
		return "ExpressionStatement"
	case *UnknownStatement:
		return "UnknownStatement"
	case *Class:
		return "Class"
	case *Function:
		return "Function"
	case *Module:
		return "Module"
	case *StatementDecl:
		return "StatementDecl"
	case *Unknown:
		return "Unknown"
	case *NestedDecl:
		return "NestedDecl"
	case *ExpressionBody:
		return "ExpressionBody"
	default:
		return "Invalid"
	}
}
