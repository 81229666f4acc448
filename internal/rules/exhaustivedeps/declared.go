package exhaustivedeps

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/symbols"
)

// declaredEntries resolves the list elements. Literals, complex
// expressions and repeats are reported here and left out of the result.
func (a *analysis) declaredEntries() []*declared {
	t := a.tree
	var out []*declared
	seen := make(map[string]bool)
	for _, el := range t.Tail(a.list) {
		switch k := t.Kind(t.Unparen(el)); {
		case k == ast.KindElision:
			continue
		case k.IsLiteral() || isPrimitiveLiteral(t, t.Unparen(el)):
			a.report(t.Span(el), msgLiteral(t.Text(el))).
				WithFix(removeFix(t, a.list, el, diag.Safe)).
				Emit()
			continue
		}
		dep, ok := declaredChain(t, el)
		if !ok {
			a.report(t.Span(el), msgComplex(a.hook)).Emit()
			continue
		}
		key := dep.Key()
		if seen[key] {
			a.report(t.Span(el), msgDuplicate(a.hook, key)).
				WithFix(removeFix(t, a.list, el, diag.Safe)).
				Emit()
			continue
		}
		seen[key] = true
		d := &declared{Dependency: dep, el: el}
		if sym, ok := a.oracle.DeclarationOf(dep.Ref); ok {
			d.Symbol = sym
			d.resolved = true
		}
		out = append(out, d)
	}
	return out
}

// filterOuter reports entries whose root is not a component value. They
// can never trigger the hook, so removing them is safe.
func (a *analysis) filterOuter(entries []*declared) {
	t := a.tree
	for _, d := range entries {
		if d.endsWithCurrent() {
			continue
		}
		if d.resolved {
			if sym := a.oracle.Symbol(d.Symbol); sym != nil && a.pure[sym.Scope] {
				continue
			}
		}
		d.dropped = true
		a.report(t.Span(a.list), msgUnnecessary(a.hook, d.Key())).
			WithLabel(t.Span(d.el), "declared here").
			WithHelp(helpOuterScope(d.Key())).
			WithFix(removeFix(t, a.list, d.el, diag.Safe)).
			Emit()
	}
}

// missing matches every captured chain to the most specific entry that
// covers it, marking that entry used, and returns the minimal set of
// uncovered chains in discovery order. Known-stable values never need to
// be listed.
func (a *analysis) missing(deps []captured, entries []*declared) []Dependency {
	var out []Dependency
	for _, c := range deps {
		var best *declared
		for _, d := range entries {
			if d.dropped || !d.Contains(c.Dependency) {
				continue
			}
			if best == nil || len(d.Chain) > len(best.Chain) {
				best = d
			}
		}
		if best != nil {
			best.used = true
			continue
		}
		if !c.stable {
			out = append(out, c.Dependency)
		}
	}
	return minimal(out)
}

// minimal drops chains covered by another chain of the set, keeping the
// first occurrence of each key.
func minimal(deps []Dependency) []Dependency {
	var out []Dependency
	for i, d := range deps {
		redundant := false
		for j, o := range deps {
			if i == j {
				continue
			}
			if o.Contains(d) && (!o.Equal(d) || j < i) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, d)
		}
	}
	return out
}

func (a *analysis) reportMissing(missing []Dependency, deps []captured) {
	if len(missing) == 0 {
		return
	}
	t := a.tree
	keys := make([]string, len(missing))
	for i, m := range missing {
		keys[i] = m.Key()
	}
	b := a.report(t.Span(a.list), msgMissing(a.hook, keys))
	if len(missing) == 1 {
		for _, c := range deps {
			if missing[0].Contains(c.Dependency) {
				b.WithLabel(c.Span, "'"+c.Key()+"' used here")
			}
		}
	}
	b.WithFix(appendFix(t, a.list, missing)).Emit()
}

// reportUnnecessary reports entries no captured chain needed, and entries
// that extend another used entry. Effects may list extra values to re-run
// on, except mutable .current reads.
func (a *analysis) reportUnnecessary(entries []*declared) {
	t := a.tree
	for _, d := range entries {
		if d.dropped {
			continue
		}
		redundant := !a.info.effect && coveredByUsed(d, entries)
		if d.used && !redundant {
			continue
		}
		if !redundant && a.info.effect && !d.endsWithCurrent() {
			continue
		}
		d.dropped = true
		b := a.report(t.Span(a.list), msgUnnecessary(a.hook, d.Key())).
			WithLabel(t.Span(d.el), "declared here")
		if d.endsWithCurrent() {
			b.WithHelp(helpMutable(d.Key()))
		}
		b.WithFix(removeFix(t, a.list, d.el, diag.DangerousSuggestion)).Emit()
	}
}

// coveredByUsed reports whether another used entry strictly contains d.
func coveredByUsed(d *declared, entries []*declared) bool {
	for _, o := range entries {
		if o != d && o.used && !o.dropped && o.Contains(d.Dependency) && !o.Equal(d.Dependency) {
			return true
		}
	}
	return false
}

// reportUnstable reports plain identifier entries whose value is re-created
// on every render, which makes the list change every time.
func (a *analysis) reportUnstable(entries []*declared) {
	t := a.tree
	c := a.newClassifier()
	for _, d := range entries {
		if d.dropped || !d.resolved || len(d.Chain) > 0 {
			continue
		}
		if c.symbol(d.Symbol) != fresh {
			continue
		}
		what := a.describe(d.Symbol)
		a.report(t.Span(d.el), msgChangesEveryRender(a.hook, d.Name, what)).
			WithHelp(helpChangesEveryRender(a.hook, d.Name, what)).
			WithFix(removeFix(t, a.list, d.el, diag.DangerousSuggestion)).
			Emit()
	}
}

// describe names the construct behind a fresh value for messages.
func (a *analysis) describe(id symbols.SymbolID) string {
	t := a.tree
	sym := a.oracle.Symbol(id)
	if t.Kind(sym.Owner) == ast.KindFunctionDeclaration {
		return "function"
	}
	init := t.Unparen(t.Child(sym.Owner, ast.SlotInit))
	if n := freshNode(t, init, false); n.IsValid() {
		init = n
	}
	switch t.Kind(init) {
	case ast.KindArrayExpression:
		return "array"
	case ast.KindObjectExpression:
		return "object"
	case ast.KindFunctionExpression, ast.KindArrowFunctionExpression:
		return "function"
	case ast.KindClassExpression:
		return "class"
	case ast.KindNewExpression:
		return "object construction"
	case ast.KindRegExpLiteral:
		return "regular expression"
	case ast.KindJSXElement, ast.KindJSXFragment:
		return "JSX element"
	}
	return "conditional value"
}

// reportStaleRefs warns about ref.current read in cleanup for refs React
// manages, that is refs the code never assigns .current on itself.
func (a *analysis) reportStaleRefs(stale []staleRef) {
	t := a.tree
	done := make(map[symbols.SymbolID]bool)
	for _, s := range stale {
		if done[s.symbol] {
			continue
		}
		done[s.symbol] = true
		if a.assignsCurrent(s.symbol) {
			continue
		}
		name := t.Name(s.ref)
		a.report(t.Span(t.Parent(s.ref)), msgStaleRef(name)).Emit()
	}
}

func (a *analysis) assignsCurrent(id symbols.SymbolID) bool {
	t := a.tree
	for _, ref := range a.oracle.ReferencesOf(id) {
		if !isCurrentRead(t, ref.Node) {
			continue
		}
		member := t.Parent(ref.Node)
		p := t.Parent(member)
		if t.Kind(p) == ast.KindAssignmentExpression && t.Child(p, ast.SlotLeft) == member {
			return true
		}
	}
	return false
}
