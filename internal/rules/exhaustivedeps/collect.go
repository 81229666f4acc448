package exhaustivedeps

import (
	"jsvet/internal/ast"
	"jsvet/internal/symbols"
	"jsvet/internal/walk"
)

// captured is one dependency read inside the callback.
type captured struct {
	Dependency
	stable bool
}

// staleRef is a `.current` read inside an effect's cleanup function.
type staleRef struct {
	ref    ast.NodeID
	symbol symbols.SymbolID
}

// collector gathers the dependencies a callback reads from the component.
type collector struct {
	walk.NopVisitor
	a        *analysis
	deps     []captured
	setters  []ast.NodeID // unconditional state-setter calls at callback depth
	stale    []staleRef
	external []Dependency // reads of values declared outside the component
}

func (c *collector) Enter(ev walk.Event) bool {
	if ev.Node.Kind != ast.KindIdentifierReference {
		return true
	}
	a := c.a
	t := a.tree
	symID, ok := a.oracle.DeclarationOf(ev.ID)
	if !ok || symbols.IsWriteTarget(t, ev.ID) && !isUpdate(t, ev.ID) {
		return true
	}
	sym := a.oracle.Symbol(symID)
	if sym == nil || sym.Flags.Has(symbols.SymbolFlagTypeOnly) {
		return true
	}
	if symbols.IsAncestorScope(a.oracle, a.callbackScope, sym.Scope) {
		return true // local to the callback
	}
	dep, top := capturedChain(t, ev.ID)
	dep.Symbol = symID
	if !a.pure[sym.Scope] {
		c.external = append(c.external, dep)
		return true
	}

	if a.info.effect && isCurrentRead(t, ev.ID) && a.insideCleanup(ev.ID) {
		c.stale = append(c.stale, staleRef{ref: ev.ID, symbol: symID})
	}
	stable := a.stableKnown(symID)
	if stable && a.isStateSetter(symID) && isCallee(t, ev.ID) && a.unconditional(ev.ID) {
		c.setters = append(c.setters, ev.ID)
	}
	for _, d := range narrow(t, dep, top) {
		c.deps = append(c.deps, captured{Dependency: d, stable: stable})
	}
	return true
}

func isUpdate(t *ast.Tree, id ast.NodeID) bool {
	p := t.Parent(id)
	if t.Kind(p) == ast.KindUpdateExpression {
		return true
	}
	return t.Kind(p) == ast.KindAssignmentExpression && t.Node(p).Op != ast.OpAssign
}

// isCurrentRead reports `id.current` with nothing between.
func isCurrentRead(t *ast.Tree, id ast.NodeID) bool {
	p := t.Parent(id)
	return t.Kind(p) == ast.KindStaticMemberExpression &&
		t.Child(p, ast.SlotObject) == id &&
		t.Name(t.Child(p, ast.SlotProperty)) == "current"
}

func isCallee(t *ast.Tree, id ast.NodeID) bool {
	cur := id
	p := t.Parent(cur)
	for isWrapper(t.Kind(p)) {
		cur, p = p, t.Parent(p)
	}
	return t.Kind(p) == ast.KindCallExpression && t.Child(p, ast.SlotCallee) == cur
}

// nearestFunction returns the closest function or arrow above id.
func nearestFunction(t *ast.Tree, id ast.NodeID) ast.NodeID {
	var fn ast.NodeID
	t.Ancestors(id, func(a ast.NodeID) bool {
		if t.Kind(a).IsFunction() {
			fn = a
			return false
		}
		return true
	})
	return fn
}

// insideCleanup reports whether id sits in a function the callback returns.
func (a *analysis) insideCleanup(id ast.NodeID) bool {
	t := a.tree
	for fn := nearestFunction(t, id); fn.IsValid() && fn != a.callback; fn = nearestFunction(t, fn) {
		p := t.Parent(fn)
		for isWrapper(t.Kind(p)) {
			p = t.Parent(p)
		}
		switch {
		case t.Kind(p) == ast.KindReturnStatement && nearestFunction(t, p) == a.callback:
			return true
		case p == a.callback && t.Node(a.callback).Flags.Has(ast.FlagExpressionBody):
			return true
		}
	}
	return false
}

// unconditional reports whether id runs every time the callback does: it
// is at the callback's own function depth with no branch or loop between.
func (a *analysis) unconditional(id ast.NodeID) bool {
	t := a.tree
	ok := true
	t.Ancestors(id, func(n ast.NodeID) bool {
		if n == a.callback {
			return false
		}
		switch k := t.Kind(n); {
		case k.IsFunction():
			ok = false
		case k == ast.KindIfStatement, k == ast.KindConditionalExpression, k == ast.KindLogicalExpression,
			k == ast.KindSwitchStatement, k == ast.KindForStatement, k == ast.KindForInStatement,
			k == ast.KindForOfStatement, k == ast.KindWhileStatement, k == ast.KindDoWhileStatement,
			k == ast.KindTryStatement, k == ast.KindCatchClause:
			ok = false
		}
		return ok
	})
	return ok
}
