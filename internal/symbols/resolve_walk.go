package symbols

import (
	"jsvet/internal/ast"
	"jsvet/internal/walk"
)

// resolveVisitor declares bindings as the walk reaches them and records
// references. References are resolved after the walk, so hoisted and
// later-declared names are found.
type resolveVisitor struct {
	walk.NopVisitor
	tree *ast.Tree
	r    *Resolver
}

func (v *resolveVisitor) EnterScope(flags walk.ScopeFlags, id ast.NodeID) {
	v.r.Enter(flags, id, v.tree.Span(id))
}

func (v *resolveVisitor) LeaveScope(id ast.NodeID) {
	v.r.Leave(id)
}

func (v *resolveVisitor) Enter(ev walk.Event) bool {
	switch ev.Node.Kind {
	case ast.KindBindingIdentifier:
		v.declare(ev.ID, ev.Node)
	case ast.KindIdentifierReference:
		tbl := v.r.table
		tbl.refIndex[ev.ID] = len(tbl.References)
		tbl.References = append(tbl.References, Reference{
			Node:  ev.ID,
			Name:  ev.Node.Name,
			Scope: v.r.CurrentScope(),
			Write: IsWriteTarget(v.tree, ev.ID),
		})
	}
	return true
}

func (v *resolveVisitor) declare(id ast.NodeID, n *ast.Node) {
	t := v.tree
	owner := bindingOwner(t, id)
	sym := Symbol{Span: n.Span, Decl: id, Owner: owner}
	scope := v.r.CurrentScope()

	switch t.Kind(owner) {
	case ast.KindVariableDeclarator:
		decl := t.Parent(owner)
		switch t.Node(decl).DeclKind() {
		case ast.FlagVar:
			sym.Kind = SymbolVar
			scope = v.r.VarScope()
		case ast.FlagConst:
			sym.Kind = SymbolConst
		case ast.FlagUsing:
			sym.Kind = SymbolUsing
		default:
			sym.Kind = SymbolLet
		}
		if isExported(t, decl) {
			sym.Flags |= SymbolFlagExported
		}
	case ast.KindFormalParameter, ast.KindTSParameterProperty, ast.KindFormalParameters:
		sym.Kind = SymbolParam
	case ast.KindCatchClause:
		sym.Kind = SymbolCatchParam
	case ast.KindFunctionDeclaration, ast.KindClassDeclaration, ast.KindTSModuleDeclaration:
		// The name belongs to the scope around the node, not the one it opens.
		switch t.Kind(owner) {
		case ast.KindFunctionDeclaration:
			sym.Kind = SymbolFunction
		case ast.KindClassDeclaration:
			sym.Kind = SymbolClass
		default:
			sym.Kind = SymbolNamespace
		}
		scope = v.r.ParentScope()
		if isExported(t, owner) {
			sym.Flags |= SymbolFlagExported
		}
	case ast.KindFunctionExpression, ast.KindTSDeclareFunction:
		sym.Kind = SymbolFunction
	case ast.KindClassExpression:
		sym.Kind = SymbolClass
	case ast.KindImportSpecifier, ast.KindImportDefaultSpecifier, ast.KindImportNamespaceSpecifier,
		ast.KindTSImportEqualsDeclaration:
		sym.Kind = SymbolImport
		if t.Node(owner).Flags.Has(ast.FlagTypeOnly) || t.Node(t.Parent(owner)).Flags.Has(ast.FlagTypeOnly) {
			sym.Flags |= SymbolFlagTypeOnly
		}
	case ast.KindTSInterfaceDeclaration, ast.KindTSTypeAliasDeclaration:
		sym.Kind = SymbolType
		sym.Flags |= SymbolFlagTypeOnly
	case ast.KindTSEnumDeclaration:
		sym.Kind = SymbolEnum
	default:
		sym.Kind = SymbolLet
	}
	symID := v.r.Declare(scope, n.Name, sym)
	if symID.IsValid() {
		v.r.table.symOfBinding[id] = symID
	}
}

// bindingOwner climbs out of destructuring patterns to the construct that
// declares the binding.
func bindingOwner(t *ast.Tree, id ast.NodeID) ast.NodeID {
	p := t.Parent(id)
	for {
		switch t.Kind(p) {
		case ast.KindObjectPattern, ast.KindArrayPattern, ast.KindBindingProperty,
			ast.KindRestElement, ast.KindAssignmentPattern:
			p = t.Parent(p)
		default:
			return p
		}
	}
}

func isExported(t *ast.Tree, decl ast.NodeID) bool {
	switch t.Kind(t.Parent(decl)) {
	case ast.KindExportNamedDeclaration, ast.KindExportDefaultDeclaration:
		return true
	}
	return false
}

// IsWriteTarget reports whether the reference at id is assigned to.
func IsWriteTarget(t *ast.Tree, id ast.NodeID) bool {
	p := t.Parent(id)
	switch t.Kind(p) {
	case ast.KindAssignmentExpression, ast.KindAssignmentTargetWithDefault:
		return t.Child(p, ast.SlotLeft) == id
	case ast.KindUpdateExpression, ast.KindAssignmentTargetRest, ast.KindArrayAssignmentTarget:
		return true
	case ast.KindAssignmentTargetPropertyIdentifier:
		return t.Child(p, ast.SlotName) == id
	case ast.KindAssignmentTargetPropertyProperty:
		return t.Child(p, ast.SlotValue) == id
	case ast.KindForInStatement, ast.KindForOfStatement:
		return t.Child(p, ast.SlotLeft) == id
	}
	return false
}
