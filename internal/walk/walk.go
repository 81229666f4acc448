// Package walk drives a depth-first traversal over an ast.Tree and reports
// node and lexical-scope boundaries to a Visitor.
package walk

import (
	"jsvet/internal/ast"
)

// Event describes the node being entered or left.
type Event struct {
	ID       ast.NodeID
	Node     *ast.Node
	Category ast.Category // normalized: export wrappers report the wrapped declaration
	Depth    int
}

func (e Event) Kind() ast.Kind { return e.Node.Kind }

// Visitor receives walk callbacks. For every node the order is Enter,
// EnterScope (scope kinds only), children, LeaveScope, Leave. Returning false
// from Enter skips the children but not the remaining callbacks.
type Visitor interface {
	Enter(ev Event) bool
	Leave(ev Event)
	EnterScope(flags ScopeFlags, id ast.NodeID)
	LeaveScope(id ast.NodeID)
}

// NopVisitor descends everywhere and ignores every event. Embed it and
// override only what is needed.
type NopVisitor struct{}

func (NopVisitor) Enter(Event) bool                  { return true }
func (NopVisitor) Leave(Event)                       {}
func (NopVisitor) EnterScope(ScopeFlags, ast.NodeID) {}
func (NopVisitor) LeaveScope(ast.NodeID)             {}

// Walker holds the state of one traversal. It is not safe for concurrent use.
type Walker struct {
	tree    *ast.Tree
	v       Visitor
	scopes  []ScopeFlags
	stopped bool
}

func NewWalker(tree *ast.Tree, v Visitor) *Walker {
	return &Walker{tree: tree, v: v, scopes: make([]ScopeFlags, 0, 16)}
}

// Walk traverses the subtree at root. Scope flags of scopes above root are
// not reconstructed; strictness starts from the module flag of the tree.
func Walk(tree *ast.Tree, root ast.NodeID, v Visitor) {
	NewWalker(tree, v).Walk(root)
}

func (w *Walker) Walk(root ast.NodeID) {
	w.stopped = false
	w.visit(root, 0)
}

// Stop ends the walk: no further nodes are entered, but every node and scope
// already entered is still left.
func (w *Walker) Stop() { w.stopped = true }

func (w *Walker) Stopped() bool { return w.stopped }

// Scope returns the flags of the innermost scope, or 0 outside any scope.
func (w *Walker) Scope() ScopeFlags {
	if len(w.scopes) == 0 {
		return 0
	}
	return w.scopes[len(w.scopes)-1]
}

// ScopeDepth is the number of scopes currently open.
func (w *Walker) ScopeDepth() int { return len(w.scopes) }

func (w *Walker) visit(id ast.NodeID, depth int) {
	n := w.tree.Node(id)
	if n == nil || w.stopped {
		return
	}
	ev := Event{ID: id, Node: n, Category: w.tree.CategoryOf(id), Depth: depth}
	descend := w.v.Enter(ev)

	scope := n.Kind.IsScope()
	if scope {
		flags := w.scopeFlags(id, n)
		w.scopes = append(w.scopes, flags)
		w.v.EnterScope(flags, id)
	}
	if descend {
		for _, kid := range n.Kids {
			if w.stopped {
				break
			}
			w.visit(kid, depth+1)
		}
	}
	if scope {
		w.v.LeaveScope(id)
		w.scopes = w.scopes[:len(w.scopes)-1]
	}
	w.v.Leave(ev)
}

func (w *Walker) scopeFlags(id ast.NodeID, n *ast.Node) ScopeFlags {
	strict := w.Scope() & ScopeStrictMode
	t := w.tree
	switch n.Kind {
	case ast.KindProgram:
		if n.Flags.Has(ast.FlagModule) || HasUseStrict(t, id) {
			strict = ScopeStrictMode
		}
		return ScopeTop | strict
	case ast.KindFunctionDeclaration, ast.KindFunctionExpression:
		if HasUseStrict(t, t.Child(id, ast.SlotBody)) {
			strict = ScopeStrictMode
		}
		return methodKind(t, id) | strict
	case ast.KindArrowFunctionExpression:
		if HasUseStrict(t, t.Child(id, ast.SlotBody)) {
			strict = ScopeStrictMode
		}
		return ScopeArrow | strict
	case ast.KindClassDeclaration, ast.KindClassExpression:
		return ScopeClass | ScopeStrictMode
	case ast.KindStaticBlock:
		return ScopeClassStaticBlock | strict
	case ast.KindTSModuleDeclaration:
		return ScopeTsModuleBlock | strict
	case ast.KindCatchClause:
		return ScopeCatchClause | strict
	}
	return strict
}

// methodKind picks Constructor/GetAccessor/SetAccessor for a function that
// is the value of a class or object method, Function otherwise.
func methodKind(t *ast.Tree, fn ast.NodeID) ScopeFlags {
	p := t.Parent(fn)
	pn := t.Node(p)
	if pn == nil || t.Child(p, ast.SlotValue) != fn {
		return ScopeFunction
	}
	switch pn.Kind {
	case ast.KindMethodDefinition, ast.KindObjectProperty:
		switch {
		case pn.Flags.Has(ast.FlagConstructor):
			return ScopeConstructor
		case pn.Flags.Has(ast.FlagGetter):
			return ScopeGetAccessor
		case pn.Flags.Has(ast.FlagSetter):
			return ScopeSetAccessor
		}
	}
	return ScopeFunction
}

// HasUseStrict reports whether the directive prologue of a Program or
// FunctionBody contains "use strict".
func HasUseStrict(t *ast.Tree, body ast.NodeID) bool {
	switch t.Kind(body) {
	case ast.KindProgram, ast.KindFunctionBody:
	default:
		return false
	}
	for _, stmt := range t.Tail(body) {
		switch t.Kind(stmt) {
		case ast.KindHashbang:
		case ast.KindDirective:
			if t.Name(stmt) == "use strict" {
				return true
			}
		default:
			return false
		}
	}
	return false
}
