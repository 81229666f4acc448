package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

func (l *lowerer) moduleName(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	if n.Type() == "string" {
		return l.named(ast.KindStringLiteral, n, l.stringValue(n))
	}
	return l.named(ast.KindIdentifierName, n, l.text(n))
}

func (l *lowerer) importStmt(n *sitter.Node) ast.NodeID {
	src := l.moduleName(field(n, "source"))
	kids := []ast.NodeID{src}
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "import_clause":
			kids = append(kids, l.importClause(c)...)
		case "import_require_clause":
			// import x = require("y")
			ident := firstNamed(c)
			ref := l.node(ast.KindTSExternalModuleReference, c, l.moduleName(field(c, "source")))
			return l.node(ast.KindTSImportEqualsDeclaration, n, l.binding(ident), ref)
		}
	}
	id := l.node(ast.KindImportDeclaration, n, kids...)
	if hasToken(n, "type") {
		l.b.SetFlags(id, ast.FlagTypeOnly)
	}
	return id
}

func (l *lowerer) importClause(n *sitter.Node) []ast.NodeID {
	var specs []ast.NodeID
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "identifier":
			specs = append(specs, l.node(ast.KindImportDefaultSpecifier, c, l.binding(c)))
		case "namespace_import":
			specs = append(specs, l.node(ast.KindImportNamespaceSpecifier, c, l.binding(firstNamed(c))))
		case "named_imports":
			for _, s := range namedKids(c) {
				if s.Type() != "import_specifier" {
					continue
				}
				name := field(s, "name")
				local := field(s, "alias")
				if local == nil {
					local = name
				}
				id := l.node(ast.KindImportSpecifier, s, l.moduleName(name), l.binding(local))
				if hasToken(s, "type") {
					l.b.SetFlags(id, ast.FlagTypeOnly)
				}
				specs = append(specs, id)
			}
		}
	}
	return specs
}

func (l *lowerer) exportStmt(n *sitter.Node) ast.NodeID {
	srcNode := field(n, "source")
	if hasToken(n, "default") {
		var decl ast.NodeID
		if d := field(n, "declaration"); d != nil {
			decl = l.any(d)
		} else if v := field(n, "value"); v != nil {
			decl = l.expr(v)
		}
		return l.node(ast.KindExportDefaultDeclaration, n, decl)
	}
	if d := field(n, "declaration"); d != nil {
		return l.node(ast.KindExportNamedDeclaration, n, l.stmt(d))
	}
	if hasToken(n, "=") {
		return l.node(ast.KindTSExportAssignment, n, l.optExprList(n))
	}
	var clause *sitter.Node
	var namespace *sitter.Node
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "export_clause":
			clause = c
		case "namespace_export":
			namespace = firstNamed(c)
		case "identifier":
			if hasToken(n, "namespace") {
				return l.node(ast.KindTSNamespaceExportDeclaration, n, l.named(ast.KindIdentifierName, c, l.text(c)))
			}
		}
	}
	if clause == nil && hasToken(n, "*") {
		return l.node(ast.KindExportAllDeclaration, n, l.moduleName(namespace), l.moduleName(srcNode))
	}
	kids := []ast.NodeID{ast.NoNodeID, l.moduleName(srcNode)}
	for _, s := range namedKids(clause) {
		if s.Type() != "export_specifier" {
			continue
		}
		name := field(s, "name")
		alias := field(s, "alias")
		if alias == nil {
			alias = name
		}
		// Without a source the local name refers to a binding of this module.
		var local ast.NodeID
		if srcNode == nil && name != nil && name.Type() == "identifier" {
			local = l.named(ast.KindIdentifierReference, name, l.text(name))
		} else {
			local = l.moduleName(name)
		}
		kids = append(kids, l.node(ast.KindExportSpecifier, s, local, l.moduleName(alias)))
	}
	id := l.node(ast.KindExportNamedDeclaration, n, kids...)
	if hasToken(n, "type") {
		l.b.SetFlags(id, ast.FlagTypeOnly)
	}
	return id
}
