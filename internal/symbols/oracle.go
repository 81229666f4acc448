package symbols

import (
	"jsvet/internal/ast"
	"jsvet/internal/walk"
)

// Oracle is the read-only view of scope and symbol information that rules
// consume. It is computed once per file before linting starts.
type Oracle interface {
	Root() ScopeID
	// Ancestors returns s and its enclosing scopes, closest first.
	Ancestors(s ScopeID) []ScopeID
	// DeclarationOf resolves an IdentifierReference to its symbol.
	DeclarationOf(ref ast.NodeID) (SymbolID, bool)
	ReferencesOf(sym SymbolID) []Reference
	// IsGlobalUnresolved reports whether name is used somewhere in the file
	// without any declaration in scope.
	IsGlobalUnresolved(name string) bool
	Symbol(id SymbolID) *Symbol
	// ScopeOf returns the scope introduced by a scope-introducing node.
	ScopeOf(node ast.NodeID) (ScopeID, bool)
	// ScopeFlags returns the walker flags the scope was created with.
	ScopeFlags(s ScopeID) walk.ScopeFlags
	// SymbolOfBinding returns the symbol declared by a BindingIdentifier.
	SymbolOfBinding(binding ast.NodeID) (SymbolID, bool)
}

// EnclosingScope returns the scope of the closest scope-introducing node at
// or above node.
func EnclosingScope(o Oracle, t *ast.Tree, node ast.NodeID) ScopeID {
	for id := node; id.IsValid(); id = t.Parent(id) {
		if s, ok := o.ScopeOf(id); ok {
			return s
		}
	}
	return o.Root()
}

// IsAncestorScope reports whether anc is s or one of its ancestors.
func IsAncestorScope(o Oracle, anc, s ScopeID) bool {
	for _, a := range o.Ancestors(s) {
		if a == anc {
			return true
		}
	}
	return false
}
