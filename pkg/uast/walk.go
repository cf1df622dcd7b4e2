package uast

import "errors"

// Children returns the direct child nodes of n in source order.
// Nil optional children are omitted. Raw and Unknown nodes have none.
//
//nolint:cyclop,gocyclo // one case per node kind
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil && !isNilNode(c) {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *BinaryOp:
		add(n.Left)
		add(n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *Assignment:
		add(n.Left)
		add(n.Right)
	case *Invocation:
		add(n.Function)
		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberAccess:
		add(n.Expression)
	case *Parenthesized:
		add(n.Inner)
	case *VarDecl:
		add(n.Value)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *DeclStmt:
		for _, d := range n.VarDecls {
			add(d)
		}
	case *IfStatement:
		add(n.Condition)
		add(n.Consequence)
		add(n.Alternative)
	case *WhileLoop:
		add(n.Condition)
		add(n.Body)
	case *ForLoop:
		add(n.Initializer)
		add(n.Condition)
		add(n.Update)
		add(n.Body)
	case *ReturnStatement:
		add(n.Value)
	case *ExpressionStatement:
		add(n.Expression)
	case *Class:
		for _, d := range n.Body {
			add(d)
		}
	case *Function:
		for _, p := range n.Parameters {
			add(p)
		}
		for _, b := range n.Body {
			add(b)
		}
	case *Module:
		for _, d := range n.Body {
			add(d)
		}
	case *StatementDecl:
		add(n.Statement)
	case *NestedDecl:
		add(n.Decl)
	case *ExpressionBody:
		add(n.Expression)
	}

	return out
}

// isNilNode catches typed nil pointers stored in interface fields.
func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Block:
		return n == nil
	case *VarDecl:
		return n == nil
	default:
		return false
	}
}

// WalkFunc is the callback for Walk. Return a non-nil error to stop.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal starting at root.
func Walk(root Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}
	for _, c := range Children(root) {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkWithContext traverses root calling enter before and leave after
// visiting children. Either callback may be nil.
func WalkWithContext(root Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for _, c := range Children(root) {
		if err := WalkWithContext(c, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		return leave(root)
	}
	return nil
}

// Inspect traverses root in pre-order. If f returns false the children of
// that node are skipped.
func Inspect(root Node, f func(Node) bool) {
	if root == nil || !f(root) {
		return
	}
	for _, c := range Children(root) {
		Inspect(c, f)
	}
}

// FindAll returns all nodes matching the predicate in pre-order.
func FindAll(root Node, predicate func(Node) bool) []Node {
	var result []Node
	Inspect(root, func(n Node) bool {
		if predicate(n) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root Node, predicate func(Node) bool) Node {
	var found Node
	err := Walk(root, func(n Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return nil
	}
	return found
}

var errStopWalk = errors.New("stop walk")
