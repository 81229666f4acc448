package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"jsvet/internal/ast"
	"jsvet/internal/source"
	"jsvet/internal/walk"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates scopes, symbols and references of one file. After
// ResolveFile returns it is immutable and implements Oracle.
type Table struct {
	Scopes     *Scopes
	Symbols    *Symbols
	Strings    *source.Interner
	References []Reference

	root         ScopeID
	scopeOfNode  map[ast.NodeID]ScopeID
	symOfBinding map[ast.NodeID]SymbolID
	refIndex     map[ast.NodeID]int
	refsBySymbol map[SymbolID][]int
	unresolved   map[string][]int
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:       NewScopes(scopeCap),
		Symbols:      NewSymbols(symCap),
		Strings:      strings,
		scopeOfNode:  make(map[ast.NodeID]ScopeID),
		symOfBinding: make(map[ast.NodeID]SymbolID),
		refIndex:     make(map[ast.NodeID]int),
		refsBySymbol: make(map[SymbolID][]int),
		unresolved:   make(map[string][]int),
	}
}

var _ Oracle = (*Table)(nil)

func (t *Table) Root() ScopeID { return t.root }

func (t *Table) Ancestors(s ScopeID) []ScopeID {
	var out []ScopeID
	for s.IsValid() {
		out = append(out, s)
		sc := t.Scopes.Get(s)
		if sc == nil {
			break
		}
		s = sc.Parent
	}
	return out
}

func (t *Table) DeclarationOf(ref ast.NodeID) (SymbolID, bool) {
	i, ok := t.refIndex[ref]
	if !ok || !t.References[i].Symbol.IsValid() {
		return NoSymbolID, false
	}
	return t.References[i].Symbol, true
}

func (t *Table) ReferencesOf(sym SymbolID) []Reference {
	idx := t.refsBySymbol[sym]
	out := make([]Reference, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.References[i])
	}
	return out
}

func (t *Table) IsGlobalUnresolved(name string) bool {
	return len(t.unresolved[name]) > 0
}

// Unresolved lists the names used without a declaration, in first-use order.
func (t *Table) Unresolved() []string {
	seen := make(map[string]bool, len(t.unresolved))
	var out []string
	for _, ref := range t.References {
		if ref.Symbol.IsValid() {
			continue
		}
		name := t.refName(ref)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

func (t *Table) ScopeOf(node ast.NodeID) (ScopeID, bool) {
	s, ok := t.scopeOfNode[node]
	return s, ok
}

func (t *Table) ScopeFlags(s ScopeID) walk.ScopeFlags {
	if sc := t.Scopes.Get(s); sc != nil {
		return sc.Flags
	}
	return 0
}

func (t *Table) SymbolOfBinding(binding ast.NodeID) (SymbolID, bool) {
	s, ok := t.symOfBinding[binding]
	return s, ok
}

// Name returns the text of a symbol's name.
func (t *Table) Name(id SymbolID) string {
	if sym := t.Symbols.Get(id); sym != nil {
		return t.Strings.MustLookup(sym.Name)
	}
	return ""
}

// Lookup finds name starting at scope s and walking outwards.
func (t *Table) Lookup(s ScopeID, name source.StringID) (SymbolID, bool) {
	for s.IsValid() {
		sc := t.Scopes.Get(s)
		if sc == nil {
			break
		}
		if id, ok := sc.NameIndex[name]; ok {
			return id, true
		}
		s = sc.Parent
	}
	return NoSymbolID, false
}

func (t *Table) refName(ref Reference) string {
	return t.Strings.MustLookup(ref.Name)
}
