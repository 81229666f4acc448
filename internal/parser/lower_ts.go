package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

// Types are kept as opaque span-only nodes: no rule looks inside them, and
// type names never resolve to runtime values.
func (l *lowerer) typeAnnotation(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	return l.leaf(ast.KindTSTypeAnnotation, n)
}

func (l *lowerer) typeParams(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	return l.leaf(ast.KindTSTypeParameterDeclaration, n)
}

func (l *lowerer) typeArgs(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	return l.leaf(ast.KindTSTypeParameterInstantiation, n)
}

func (l *lowerer) tsExpr(n *sitter.Node) (ast.NodeID, bool) {
	kids := namedKids(n)
	switch n.Type() {
	case "as_expression", "satisfies_expression":
		if len(kids) < 2 {
			return ast.NoNodeID, false
		}
		kind := ast.KindTSAsExpression
		if n.Type() == "satisfies_expression" {
			kind = ast.KindTSSatisfiesExpression
		}
		return l.node(kind, n, l.expr(kids[0]), l.typeAnnotation(kids[len(kids)-1])), true
	case "non_null_expression":
		return l.node(ast.KindTSNonNullExpression, n, l.exprList(n, kids)), true
	case "type_assertion":
		if len(kids) < 2 {
			return ast.NoNodeID, false
		}
		return l.node(ast.KindTSTypeAssertion, n, l.typeAnnotation(kids[0]), l.expr(kids[len(kids)-1])), true
	case "instantiation_expression":
		if len(kids) < 2 {
			return ast.NoNodeID, false
		}
		return l.node(ast.KindTSInstantiationExpression, n, l.expr(kids[0]), l.typeArgs(kids[len(kids)-1])), true
	}
	return ast.NoNodeID, false
}

func (l *lowerer) tsStmt(n *sitter.Node) (ast.NodeID, bool) {
	switch n.Type() {
	case "interface_declaration":
		return l.node(ast.KindTSInterfaceDeclaration, n,
			l.binding(field(n, "name")),
			l.typeParams(field(n, "type_parameters"))), true
	case "type_alias_declaration":
		return l.node(ast.KindTSTypeAliasDeclaration, n,
			l.binding(field(n, "name")),
			l.typeParams(field(n, "type_parameters")),
			l.typeAnnotation(field(n, "value"))), true
	case "enum_declaration":
		return l.enum(n), true
	case "internal_module", "module":
		return l.tsModule(n), true
	case "function_signature":
		return l.node(ast.KindTSDeclareFunction, n,
			l.binding(field(n, "name")),
			l.typeParams(field(n, "type_parameters")),
			l.params(field(n, "parameters")),
			l.typeAnnotation(field(n, "return_type"))), true
	case "ambient_declaration":
		return l.ambient(n), true
	case "import_alias":
		kids := namedKids(n)
		if len(kids) < 2 {
			return ast.NoNodeID, false
		}
		return l.node(ast.KindTSImportEqualsDeclaration, n, l.binding(kids[0]), l.expr(kids[1])), true
	}
	return ast.NoNodeID, false
}

func (l *lowerer) enum(n *sitter.Node) ast.NodeID {
	kids := []ast.NodeID{l.binding(field(n, "name"))}
	for _, m := range namedKids(field(n, "body")) {
		switch m.Type() {
		case "enum_assignment":
			key, _ := l.propertyKey(field(m, "name"))
			kids = append(kids, l.node(ast.KindTSEnumMember, m, key, l.optExpr(field(m, "value"))))
		default:
			key, _ := l.propertyKey(m)
			kids = append(kids, l.node(ast.KindTSEnumMember, m, key))
		}
	}
	id := l.node(ast.KindTSEnumDeclaration, n, kids...)
	if hasToken(n, "const") {
		l.b.SetFlags(id, ast.FlagConst)
	}
	return id
}

func (l *lowerer) tsModule(n *sitter.Node) ast.NodeID {
	var name ast.NodeID
	if nm := field(n, "name"); nm != nil {
		if nm.Type() == "identifier" {
			name = l.binding(nm)
		} else {
			name = l.moduleName(nm)
		}
	}
	var body ast.NodeID
	if b := field(n, "body"); b != nil {
		body = l.node(ast.KindTSModuleBlock, b, l.statements(namedKids(b), false)...)
	}
	return l.node(ast.KindTSModuleDeclaration, n, name, body)
}

// ambient lowers `declare ...`; the inner declaration is flagged FlagDeclare.
func (l *lowerer) ambient(n *sitter.Node) ast.NodeID {
	kids := namedKids(n)
	if len(kids) == 0 {
		return l.unknown(n)
	}
	inner := kids[0]
	if hasToken(n, "global") && inner.Type() == "statement_block" {
		name := l.b.NewNamed(ast.KindIdentifierName, l.span(n), "global")
		body := l.node(ast.KindTSModuleBlock, inner, l.statements(namedKids(inner), false)...)
		id := l.node(ast.KindTSModuleDeclaration, n, name, body)
		l.b.SetFlags(id, ast.FlagDeclare)
		return id
	}
	id := l.stmt(inner)
	l.b.SetFlags(id, ast.FlagDeclare)
	return id
}
