package symbols

import (
	"jsvet/internal/ast"
	"jsvet/internal/source"
	"jsvet/internal/walk"
)

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Flags     walk.ScopeFlags
	Parent    ScopeID
	Node      ast.NodeID // the scope-introducing node
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}

// IsVarScope reports whether `var` declarations hoist into s.
func (s *Scope) IsVarScope() bool {
	return s.Flags.IsVarScope()
}
