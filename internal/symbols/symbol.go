package symbols

import (
	"jsvet/internal/ast"
	"jsvet/internal/source"
)

// SymbolKind classifies how a name was declared.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolLet
	SymbolConst
	SymbolUsing
	SymbolFunction
	SymbolClass
	SymbolParam
	SymbolCatchParam
	SymbolImport
	SymbolType // interface or type alias
	SymbolEnum
	SymbolNamespace
)

var symbolKindNames = [...]string{
	SymbolInvalid:    "invalid",
	SymbolVar:        "var",
	SymbolLet:        "let",
	SymbolConst:      "const",
	SymbolUsing:      "using",
	SymbolFunction:   "function",
	SymbolClass:      "class",
	SymbolParam:      "param",
	SymbolCatchParam: "catch-param",
	SymbolImport:     "import",
	SymbolType:       "type",
	SymbolEnum:       "enum",
	SymbolNamespace:  "namespace",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "invalid"
}

// IsBlockScoped is true for declarations that may not be redeclared in the
// same scope.
func (k SymbolKind) IsBlockScoped() bool {
	switch k {
	case SymbolLet, SymbolConst, SymbolUsing, SymbolClass:
		return true
	}
	return false
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagExported SymbolFlags = 1 << iota
	SymbolFlagTypeOnly
	SymbolFlagWritten // assigned after declaration
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if f&SymbolFlagExported != 0 {
		labels = append(labels, "exported")
	}
	if f&SymbolFlagTypeOnly != 0 {
		labels = append(labels, "type-only")
	}
	if f&SymbolFlagWritten != 0 {
		labels = append(labels, "written")
	}
	return labels
}

// Symbol describes a named entity declared in a scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	// Decl is the BindingIdentifier that introduced the name.
	Decl ast.NodeID
	// Owner is the declaring construct: VariableDeclarator, FunctionDeclaration,
	// ClassDeclaration, FormalParameter, CatchClause, import specifier, ...
	Owner ast.NodeID
}

// Reference is one use of a name.
type Reference struct {
	Node   ast.NodeID // IdentifierReference
	Name   source.StringID
	Scope  ScopeID  // scope the reference occurs in
	Symbol SymbolID // NoSymbolID when unresolved
	Write  bool
}
