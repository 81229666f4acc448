package exhaustivedeps

import (
	"jsvet/internal/ast"
	"jsvet/internal/symbols"
	"jsvet/internal/walk"
)

// stability is what is known about a value's identity across renders.
type stability uint8

const (
	dynamic stability = iota // may or may not change; not reported
	stable                   // same identity every render
	fresh                    // new identity every render
)

func (s stability) String() string {
	switch s {
	case stable:
		return "stable"
	case fresh:
		return "fresh"
	}
	return "dynamic"
}

// tupleHooks return [value, stableSetter].
var tupleHooks = []string{"useState", "useReducer", "useActionState", "useTransition"}

// stableKnown reports values React guarantees to keep: setters from state
// tuples, refs, effect events, and const primitives.
func (a *analysis) stableKnown(id symbols.SymbolID) bool {
	t := a.tree
	sym := a.oracle.Symbol(id)
	if sym == nil || t.Kind(sym.Owner) != ast.KindVariableDeclarator {
		return false
	}
	decl := t.Parent(sym.Owner)
	if t.Node(decl).DeclKind() != ast.FlagConst {
		return false
	}
	init := t.Unparen(t.Child(sym.Owner, ast.SlotInit))
	pat := t.Child(sym.Owner, ast.SlotID)
	switch {
	case pat == sym.Decl:
		if isHookCall(t, init, "useRef", "useEffectEvent") {
			return true
		}
		return isPrimitiveLiteral(t, init)
	case t.Kind(pat) == ast.KindArrayPattern && t.Parent(sym.Decl) == pat:
		elems := t.Tail(pat)
		return len(elems) >= 2 && elems[1] == sym.Decl && isHookCall(t, init, tupleHooks...)
	}
	return false
}

// isStateSetter reports the second element of a useState tuple.
func (a *analysis) isStateSetter(id symbols.SymbolID) bool {
	t := a.tree
	sym := a.oracle.Symbol(id)
	if sym == nil || t.Kind(sym.Owner) != ast.KindVariableDeclarator {
		return false
	}
	pat := t.Child(sym.Owner, ast.SlotID)
	if t.Kind(pat) != ast.KindArrayPattern {
		return false
	}
	elems := t.Tail(pat)
	return len(elems) >= 2 && elems[1] == sym.Decl && isHookCall(t, t.Child(sym.Owner, ast.SlotInit), "useState")
}

func isPrimitiveLiteral(t *ast.Tree, id ast.NodeID) bool {
	switch t.Kind(id) {
	case ast.KindStringLiteral, ast.KindNumericLiteral, ast.KindBooleanLiteral,
		ast.KindNullLiteral, ast.KindBigIntLiteral:
		return true
	case ast.KindTemplateLiteral:
		// a template without substitutions is a plain string
		for _, k := range t.Tail(id) {
			if t.Kind(k) != ast.KindTemplateElement {
				return false
			}
		}
		return true
	case ast.KindUnaryExpression:
		op := t.Node(id).Op
		return (op == ast.OpNeg || op == ast.OpPlus) && t.Kind(t.Child(id, ast.SlotArgument)) == ast.KindNumericLiteral
	}
	return false
}

// classifier infers stability of symbols. Each symbol is classified once;
// a symbol met again while its own classification is in progress counts
// as stable, so mutually recursive closures terminate.
type classifier struct {
	a        *analysis
	done     map[symbols.SymbolID]stability
	visiting map[symbols.SymbolID]bool
}

func (a *analysis) newClassifier() *classifier {
	return &classifier{
		a:        a,
		done:     make(map[symbols.SymbolID]stability),
		visiting: make(map[symbols.SymbolID]bool),
	}
}

func (c *classifier) symbol(id symbols.SymbolID) stability {
	if s, ok := c.done[id]; ok {
		return s
	}
	if c.visiting[id] {
		return stable
	}
	c.visiting[id] = true
	s := c.classify(id)
	delete(c.visiting, id)
	c.done[id] = s
	return s
}

func (c *classifier) classify(id symbols.SymbolID) stability {
	a := c.a
	t := a.tree
	sym := a.oracle.Symbol(id)
	if sym == nil {
		return dynamic
	}
	if !a.pure[sym.Scope] {
		return stable // module values and imports are not re-created per render
	}
	if a.stableKnown(id) {
		return stable
	}
	switch t.Kind(sym.Owner) {
	case ast.KindFunctionDeclaration:
		return c.function(sym.Owner)
	case ast.KindVariableDeclarator:
		if t.Child(sym.Owner, ast.SlotID) != sym.Decl {
			return dynamic // destructured
		}
		init := t.Child(sym.Owner, ast.SlotInit)
		if !init.IsValid() {
			return dynamic
		}
		if s := construction(t, init); s == fresh {
			return fresh
		}
		init = t.Unparen(init)
		if t.Kind(init).IsFunction() {
			return c.function(init)
		}
		if t.Node(t.Parent(sym.Owner)).DeclKind() == ast.FlagConst && isPrimitiveLiteral(t, init) {
			return stable
		}
	}
	return dynamic
}

// construction classifies an initializer by its syntax alone. A fresh
// value in any branch of a conditional or logical expression makes the
// whole initializer fresh.
func construction(t *ast.Tree, id ast.NodeID) stability {
	if freshNode(t, id, false).IsValid() {
		return fresh
	}
	return dynamic
}

// freshNode returns the node that makes id a new value on every
// evaluation, or NoNodeID. Function literals count only inside a branch;
// at the top they are classified by what they capture.
func freshNode(t *ast.Tree, id ast.NodeID, branch bool) ast.NodeID {
	id = t.Unparen(id)
	switch t.Kind(id) {
	case ast.KindArrayExpression, ast.KindObjectExpression, ast.KindClassExpression,
		ast.KindNewExpression, ast.KindRegExpLiteral, ast.KindJSXElement, ast.KindJSXFragment:
		return id
	case ast.KindFunctionExpression, ast.KindArrowFunctionExpression:
		if branch {
			return id
		}
	case ast.KindConditionalExpression:
		if n := freshNode(t, t.Child(id, ast.SlotConsequent), true); n.IsValid() {
			return n
		}
		return freshNode(t, t.Child(id, ast.SlotAlternate), true)
	case ast.KindLogicalExpression:
		if n := freshNode(t, t.Child(id, ast.SlotLeft), true); n.IsValid() {
			return n
		}
		return freshNode(t, t.Child(id, ast.SlotRight), true)
	case ast.KindSequenceExpression:
		if tail := t.Tail(id); len(tail) > 0 {
			return freshNode(t, tail[len(tail)-1], branch)
		}
	case ast.KindAssignmentExpression:
		return freshNode(t, t.Child(id, ast.SlotRight), branch)
	}
	return ast.NoNodeID
}

// function is stable when every outside value its body reads is stable,
// and fresh otherwise: the closure is re-created each render.
func (c *classifier) function(fn ast.NodeID) stability {
	a := c.a
	fnScope, ok := a.oracle.ScopeOf(fn)
	if !ok {
		return fresh
	}
	var captures []symbols.SymbolID
	seen := make(map[symbols.SymbolID]bool)
	walk.Walk(a.tree, fn, refVisitor(func(id ast.NodeID) {
		sym, ok := a.oracle.DeclarationOf(id)
		if !ok {
			return
		}
		if s := a.oracle.Symbol(sym); s != nil && !seen[sym] && !symbols.IsAncestorScope(a.oracle, fnScope, s.Scope) {
			seen[sym] = true
			captures = append(captures, sym)
		}
	}))
	for _, sym := range captures {
		if c.symbol(sym) != stable {
			return fresh
		}
	}
	return stable
}

// refVisitor calls fn for every identifier reference.
type refVisitor func(id ast.NodeID)

func (f refVisitor) Enter(ev walk.Event) bool {
	if ev.Node.Kind == ast.KindIdentifierReference {
		f(ev.ID)
	}
	return true
}
func (refVisitor) Leave(walk.Event)                       {}
func (refVisitor) EnterScope(walk.ScopeFlags, ast.NodeID) {}
func (refVisitor) LeaveScope(ast.NodeID)                  {}
