package rules

import (
	"bytes"

	"fortio.org/safecast"

	"jsvet/internal/ast"
	"jsvet/internal/source"
)

// bindings collects the BindingIdentifiers under id in source order.
func bindings(t *ast.Tree, id ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	var visit func(ast.NodeID)
	visit = func(n ast.NodeID) {
		node := t.Node(n)
		if node == nil {
			return
		}
		switch node.Kind {
		case ast.KindBindingIdentifier:
			out = append(out, n)
			return
		case ast.KindAssignmentPattern:
			// defaults are expressions, not bindings
			visit(node.Child(ast.SlotLeft))
			return
		case ast.KindBindingProperty:
			visit(node.Child(ast.SlotValue))
			return
		}
		for _, k := range node.Kids {
			visit(k)
		}
	}
	visit(id)
	return out
}

// findToken returns the span of the first tok in src[from:to]. Callers pass
// a gap between two nodes, so only whitespace and comments can precede it.
func findToken(src []byte, file source.FileID, from, to uint32, tok string) (source.Span, bool) {
	if int(to) > len(src) || from >= to {
		return source.Span{}, false
	}
	i := bytes.Index(src[from:to], []byte(tok))
	if i < 0 {
		return source.Span{}, false
	}
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		return source.Span{}, false
	}
	start := from + off
	return source.Span{File: file, Start: start, End: start + uint32(len(tok))}, true
}

// isTestOf reports whether id is the test expression of its parent
// statement or conditional.
func isTestOf(t *ast.Tree, id ast.NodeID) bool {
	p := t.Parent(id)
	switch t.Kind(p) {
	case ast.KindIfStatement, ast.KindWhileStatement, ast.KindDoWhileStatement,
		ast.KindForStatement, ast.KindConditionalExpression:
		return t.Child(p, ast.SlotTest) == id
	}
	return false
}

// inBooleanContext reports whether the value of id is only used for its
// truthiness.
func inBooleanContext(t *ast.Tree, id ast.NodeID) bool {
	for {
		if isTestOf(t, id) {
			return true
		}
		p := t.Parent(id)
		switch t.Kind(p) {
		case ast.KindParenthesizedExpression:
			id = p
			continue
		case ast.KindUnaryExpression:
			return t.Node(p).Op == ast.OpNot
		case ast.KindCallExpression, ast.KindNewExpression:
			return isBooleanCall(t, p) && len(t.CallArgs(p)) > 0 && t.CallArgs(p)[0] == id
		}
		return false
	}
}

// isBooleanCall matches `Boolean(x)` and `new Boolean(x)`.
func isBooleanCall(t *ast.Tree, call ast.NodeID) bool {
	callee := t.Child(call, ast.SlotCallee)
	return t.Kind(callee) == ast.KindIdentifierReference && t.Name(callee) == "Boolean"
}
