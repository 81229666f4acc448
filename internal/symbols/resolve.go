// Package symbols builds the scope tree of one file and resolves every
// identifier reference to its declaration. The resulting Table implements
// Oracle, the read-only interface rules use.
package symbols

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/walk"
)

type ResolveOptions struct {
	Reporter diag.Reporter
	Hints    Hints
}

// ResolveFile walks tree once, declaring every binding, then resolves the
// recorded references against the finished scope tree.
func ResolveFile(tree *ast.Tree, opts ResolveOptions) *Table {
	table := NewTable(opts.Hints, tree.Strings)
	r := NewResolver(table, opts.Reporter)
	walk.Walk(tree, tree.Root, &resolveVisitor{tree: tree, r: r})
	table.link()
	return table
}

func (t *Table) link() {
	for i := range t.References {
		ref := &t.References[i]
		id, ok := t.Lookup(ref.Scope, ref.Name)
		if !ok {
			name := t.Strings.MustLookup(ref.Name)
			t.unresolved[name] = append(t.unresolved[name], i)
			continue
		}
		ref.Symbol = id
		t.refsBySymbol[id] = append(t.refsBySymbol[id], i)
		if ref.Write {
			t.Symbols.Get(id).Flags |= SymbolFlagWritten
		}
	}
}
