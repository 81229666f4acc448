package exhaustivedeps

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/source"
	"jsvet/internal/symbols"
	"jsvet/internal/walk"
)

// analysis is the state of checking one hook call.
type analysis struct {
	ctx    *lint.Context
	tree   *ast.Tree
	oracle symbols.Oracle
	call   ast.NodeID
	info   hookInfo
	hook   string

	callback      ast.NodeID
	list          ast.NodeID
	callbackScope symbols.ScopeID
	// pure holds the scopes from the call up to the component function,
	// excluding the module scope. Only values declared there can change
	// between renders.
	pure map[symbols.ScopeID]bool
}

// declared is one resolved entry of the dependency list.
type declared struct {
	Dependency
	el       ast.NodeID
	resolved bool
	used     bool
	dropped  bool
}

func (a *analysis) run() {
	t := a.tree
	args := t.CallArgs(a.call)
	if len(args) <= a.info.callback {
		if a.info.effect {
			a.report(t.Span(t.Child(a.call, ast.SlotCallee)), msgMissingCallback(a.hook)).Emit()
		}
		return
	}
	cbArg := args[a.info.callback]
	if len(args) > a.info.list {
		a.list = args[a.info.list]
	}

	if !a.list.IsValid() && !a.info.effect {
		if a.info.requiresList {
			a.report(t.Span(t.Child(a.call, ast.SlotCallee)), msgRequiresList(a.hook)).
				WithFix(addListFix(t, cbArg, nil)).
				Emit()
		}
		return
	}

	if !a.resolveCallback(cbArg) {
		return
	}
	scope, ok := a.oracle.ScopeOf(a.callback)
	if !ok {
		return
	}
	a.callbackScope = scope
	a.pure = a.pureScopes()

	if a.info.effect && t.Node(a.callback).Flags.Has(ast.FlagAsync) {
		a.report(t.Span(a.callback), msgAsyncEffect()).Emit()
	}

	col := &collector{a: a}
	walk.Walk(t, a.callback, col)

	if !a.list.IsValid() {
		if len(col.setters) > 0 {
			setter := col.setters[0]
			a.report(t.Span(t.Child(a.call, ast.SlotCallee)), msgInfiniteChain(a.hook, t.Name(setter))).
				WithLabel(t.Span(setter), "called here on every run").
				WithHelp("pass a dependency list as the next argument").
				WithFix(addListFix(t, cbArg, a.missing(col.deps, nil))).
				Emit()
		}
		return
	}
	if t.Kind(t.Unparen(a.list)) != ast.KindArrayExpression {
		a.report(t.Span(a.list), msgNotArray(a.hook)).Emit()
		return
	}
	a.list = t.Unparen(a.list)

	a.reportStaleRefs(col.stale)
	entries := a.declaredEntries()
	a.filterOuter(entries)

	missing := a.missing(col.deps, entries)
	a.reportMissing(missing, col.deps)
	a.reportUnnecessary(entries)
	a.reportUnstable(entries)
}

func (a *analysis) report(span source.Span, msg string) *diag.ReportBuilder {
	return a.ctx.Diag(span, msg)
}

// resolveCallback finds the function to analyze. It reports unknown
// dependencies for anything it cannot follow and returns false.
func (a *analysis) resolveCallback(arg ast.NodeID) bool {
	t := a.tree
	cb := t.Unparen(arg)
	switch t.Kind(cb) {
	case ast.KindFunctionExpression, ast.KindArrowFunctionExpression:
		a.callback = cb
		return true
	case ast.KindIdentifierReference:
		if !a.list.IsValid() {
			return false
		}
		name := t.Name(cb)
		for _, el := range t.Tail(t.Unparen(a.list)) {
			if t.Kind(el) == ast.KindIdentifierReference && t.Name(el) == name {
				return false
			}
		}
		if fn := a.functionOf(cb); fn.IsValid() {
			a.callback = fn
			return true
		}
	}
	a.report(t.Span(t.Child(a.call, ast.SlotCallee)), msgUnknown(a.hook)).Emit()
	return false
}

// functionOf returns the function a reference is bound to, if any.
func (a *analysis) functionOf(ref ast.NodeID) ast.NodeID {
	t := a.tree
	symID, ok := a.oracle.DeclarationOf(ref)
	if !ok {
		return ast.NoNodeID
	}
	sym := a.oracle.Symbol(symID)
	switch t.Kind(sym.Owner) {
	case ast.KindFunctionDeclaration:
		return sym.Owner
	case ast.KindVariableDeclarator:
		if t.Child(sym.Owner, ast.SlotID) != sym.Decl {
			return ast.NoNodeID
		}
		init := t.Unparen(t.Child(sym.Owner, ast.SlotInit))
		if t.Kind(init) == ast.KindFunctionExpression || t.Kind(init) == ast.KindArrowFunctionExpression {
			return init
		}
	}
	return ast.NoNodeID
}

// pureScopes collects the scopes from the one holding the call up to the
// nearest enclosing function or arrow, which is taken as the component.
func (a *analysis) pureScopes() map[symbols.ScopeID]bool {
	pure := make(map[symbols.ScopeID]bool)
	start := symbols.EnclosingScope(a.oracle, a.tree, a.tree.Parent(a.call))
	root := a.oracle.Root()
	for _, s := range a.oracle.Ancestors(start) {
		if s == root {
			break
		}
		pure[s] = true
		if flags := a.oracle.ScopeFlags(s); flags.IsFunctionLike() || flags.Has(walk.ScopeArrow) {
			break
		}
	}
	return pure
}
