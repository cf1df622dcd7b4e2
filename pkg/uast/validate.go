package uast

import (
	"errors"
	"fmt"
)

// SpanError reports a node whose span breaks a tree invariant.
type SpanError struct {
	Kind   string
	Span   Span
	Parent Span
	Reason string
}

func (e *SpanError) Error() string {
	if e.Parent != (Span{}) {
		return fmt.Sprintf("%s %s: %s (parent %s)", e.Kind, e.Span, e.Reason, e.Parent)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Span, e.Reason)
}

// Validate checks that every span under root is well-formed for a buffer of
// bufLen bytes and that every child span lies within its parent's span.
// All violations are returned joined.
func Validate(root Node, bufLen int) error {
	if root == nil {
		return nil
	}
	var errs []error
	validateNode(root, Span{}, false, bufLen, &errs)
	return errors.Join(errs...)
}

func validateNode(n Node, parent Span, hasParent bool, bufLen int, errs *[]error) {
	span := SpanOf(n)
	kind := Kind(n)

	switch {
	case !span.InBounds(bufLen):
		*errs = append(*errs, &SpanError{Kind: kind, Span: span, Reason: "span out of bounds"})
	case hasParent && !parent.Encloses(span):
		*errs = append(*errs, &SpanError{Kind: kind, Span: span, Parent: parent, Reason: "span escapes parent"})
	}

	switch n := n.(type) {
	case *VarDecl:
		if !n.Span.Encloses(n.NameSpan) {
			*errs = append(*errs, &SpanError{Kind: kind, Span: n.NameSpan, Parent: n.Span, Reason: "name span escapes declarator"})
		}
	case *MemberAccess:
		if !n.Span.Encloses(n.MemberSpan) {
			*errs = append(*errs, &SpanError{Kind: kind, Span: n.MemberSpan, Parent: n.Span, Reason: "member span escapes access"})
		}
	}

	for _, c := range Children(n) {
		validateNode(c, span, true, bufLen, errs)
	}
}
