package uast

// Encoded is a serialisable view of a node, for dumping trees as JSON or YAML.
type Encoded struct {
	Kind  string         `json:"kind"            yaml:"kind"`
	Start int            `json:"start"           yaml:"start"`
	End   int            `json:"end"             yaml:"end"`
	Attrs map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Encode converts n and its descendants into an Encoded tree.
//
//nolint:cyclop,gocyclo,funlen // one case per node kind
func Encode(n Node) *Encoded {
	if n == nil || isNilNode(n) {
		return nil
	}

	out := &Encoded{Kind: Kind(n), Start: n.Pos(), End: n.End(), Attrs: map[string]any{}}
	set := func(key string, v any) {
		switch v := v.(type) {
		case nil:
			return
		case string:
			if v == "" {
				return
			}
		case []string:
			if len(v) == 0 {
				return
			}
		case map[string]string:
			if len(v) == 0 {
				return
			}
		case *Encoded:
			if v == nil {
				return
			}
		}
		out.Attrs[key] = v
	}

	switch n := n.(type) {
	case *Identifier:
		set("name", n.Name)
	case *Literal:
		set("literal_kind", n.Kind.String())
		set("value", n.Value())
	case *BinaryOp:
		set("operator", n.Operator.String())
		set("left", Encode(n.Left))
		set("right", Encode(n.Right))
	case *UnaryOp:
		set("operator", n.Operator.String())
		if n.Operator.IsPostfix() {
			set("postfix", true)
		}
		set("operand", Encode(n.Operand))
	case *Assignment:
		set("operator", n.Operator.String())
		set("left", Encode(n.Left))
		set("right", Encode(n.Right))
	case *Invocation:
		set("function", Encode(n.Function))
		set("arguments", encodeExprs(n.Arguments))
	case *MemberAccess:
		set("expression", Encode(n.Expression))
		set("member", n.Member)
	case *Parenthesized:
		set("inner", Encode(n.Inner))
	case *Raw:
		set("source", n.SourceText)
	case *VarDecl:
		set("name", n.Name)
		set("type", n.VarType)
		set("modifiers", n.Modifiers)
		set("value", Encode(n.Value))
	case *Block:
		stmts := make([]*Encoded, 0, len(n.Statements))
		for _, s := range n.Statements {
			stmts = append(stmts, Encode(s))
		}
		set("statements", stmts)
	case *DeclStmt:
		set("modifiers", n.Modifiers)
		decls := make([]*Encoded, 0, len(n.VarDecls))
		for _, d := range n.VarDecls {
			decls = append(decls, Encode(d))
		}
		set("declarators", decls)
	case *IfStatement:
		set("condition", Encode(n.Condition))
		set("consequence", Encode(n.Consequence))
		set("alternative", Encode(n.Alternative))
	case *WhileLoop:
		set("condition", Encode(n.Condition))
		set("body", Encode(n.Body))
	case *ForLoop:
		set("initializer", Encode(n.Initializer))
		set("condition", Encode(n.Condition))
		set("update", Encode(n.Update))
		set("body", Encode(n.Body))
	case *ReturnStatement:
		set("value", Encode(n.Value))
	case *ExpressionStatement:
		set("expression", Encode(n.Expression))
	case *UnknownStatement:
		set("source", n.SourceText)
	case *Class:
		set("name", n.Name)
		set("modifiers", n.Modifiers)
		set("annotations", n.Annotations)
		set("metadata", n.Metadata)
		if n.Body != nil {
			set("body", encodeDecls(n.Body))
		}
	case *Function:
		set("name", n.Name)
		set("modifiers", n.Modifiers)
		set("annotations", n.Annotations)
		set("return_type", n.ReturnType)
		set("metadata", n.Metadata)
		if n.Parameters != nil {
			params := make([]*Encoded, 0, len(n.Parameters))
			for _, p := range n.Parameters {
				params = append(params, Encode(p))
			}
			set("parameters", params)
		}
		if n.Body != nil {
			body := make([]*Encoded, 0, len(n.Body))
			for _, b := range n.Body {
				body = append(body, Encode(b))
			}
			set("body", body)
		}
	case *Module:
		set("name", n.Name)
		set("metadata", n.Metadata)
		set("body", encodeDecls(n.Body))
	case *StatementDecl:
		set("statement", Encode(n.Statement))
	case *Unknown:
		set("source", n.SourceText)
	case *NestedDecl:
		set("decl", Encode(n.Decl))
	case *ExpressionBody:
		set("expression", Encode(n.Expression))
	}

	if len(out.Attrs) == 0 {
		out.Attrs = nil
	}
	return out
}

func encodeExprs(exprs []Expression) []*Encoded {
	out := make([]*Encoded, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, Encode(e))
	}
	return out
}

func encodeDecls(decls []TopLevel) []*Encoded {
	out := make([]*Encoded, 0, len(decls))
	for _, d := range decls {
		out = append(out, Encode(d))
	}
	return out
}
