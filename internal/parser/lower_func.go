package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

func (l *lowerer) funcFlags(n *sitter.Node) ast.Flags {
	var f ast.Flags
	if hasToken(n, "async") {
		f |= ast.FlagAsync
	}
	if hasToken(n, "*") || n.Type() == "generator_function" || n.Type() == "generator_function_declaration" {
		f |= ast.FlagGenerator
	}
	return f
}

// function lowers declarations and expressions; both share one layout.
func (l *lowerer) function(n *sitter.Node, kind ast.Kind) ast.NodeID {
	var name ast.NodeID
	if nm := field(n, "name"); nm != nil {
		name = l.binding(nm)
	}
	id := l.node(kind, n,
		name,
		l.typeParams(field(n, "type_parameters")),
		l.params(field(n, "parameters")),
		l.typeAnnotation(field(n, "return_type")),
		l.functionBody(field(n, "body")))
	l.b.SetFlags(id, l.funcFlags(n))
	return id
}

func (l *lowerer) arrow(n *sitter.Node) ast.NodeID {
	var params ast.NodeID
	if p := field(n, "parameter"); p != nil {
		param := l.node(ast.KindFormalParameter, p, l.binding(p))
		params = l.node(ast.KindFormalParameters, p, param)
	} else {
		params = l.params(field(n, "parameters"))
	}
	flags := l.funcFlags(n)
	var body ast.NodeID
	if b := field(n, "body"); b != nil {
		if b.Type() == "statement_block" {
			body = l.functionBody(b)
		} else {
			body = l.expr(b)
			flags |= ast.FlagExpressionBody
		}
	}
	id := l.node(ast.KindArrowFunctionExpression, n,
		l.typeParams(field(n, "type_parameters")),
		params,
		l.typeAnnotation(field(n, "return_type")),
		body)
	l.b.SetFlags(id, flags)
	return id
}

func (l *lowerer) functionBody(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	return l.node(ast.KindFunctionBody, n, l.statements(namedKids(n), true)...)
}

func (l *lowerer) params(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	var items []ast.NodeID
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "required_parameter", "optional_parameter":
			pat := field(c, "pattern")
			if pat == nil || pat.Type() == "this" {
				continue
			}
			binding := l.binding(pat)
			if v := field(c, "value"); v != nil {
				binding = l.b.New(ast.KindAssignmentPattern, l.span(c), binding, l.expr(v))
			}
			if hasChildType(c, "accessibility_modifier", "readonly", "override_modifier") {
				items = append(items, l.node(ast.KindTSParameterProperty, c, binding))
				continue
			}
			items = append(items, l.node(ast.KindFormalParameter, c, binding))
		case "decorator":
		default:
			items = append(items, l.node(ast.KindFormalParameter, c, l.binding(c)))
		}
	}
	return l.node(ast.KindFormalParameters, n, items...)
}

func (l *lowerer) class(n *sitter.Node, kind ast.Kind) ast.NodeID {
	var name ast.NodeID
	if nm := field(n, "name"); nm != nil {
		name = l.binding(nm)
	}
	var super ast.NodeID
	for _, c := range namedKids(n) {
		if c.Type() != "class_heritage" {
			continue
		}
		ext := firstNamed(c)
		if ext != nil && ext.Type() == "extends_clause" {
			if v := field(ext, "value"); v != nil {
				ext = v
			} else {
				ext = firstNamed(ext)
			}
		}
		if ext != nil && ext.Type() != "implements_clause" {
			super = l.expr(ext)
		}
	}
	id := l.node(kind, n,
		name,
		l.typeParams(field(n, "type_parameters")),
		super,
		l.classBody(field(n, "body")))
	if n.Type() == "abstract_class_declaration" {
		l.b.SetFlags(id, ast.FlagDeclare)
	}
	return id
}

func (l *lowerer) classBody(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	var members []ast.NodeID
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "method_definition":
			members = append(members, l.method(c, ast.KindMethodDefinition))
		case "field_definition", "public_field_definition":
			members = append(members, l.classField(c))
		case "class_static_block":
			body := field(c, "body")
			var stmts []ast.NodeID
			if body != nil {
				stmts = l.statements(namedKids(body), false)
			}
			members = append(members, l.node(ast.KindStaticBlock, c, stmts...))
		case "decorator":
			members = append(members, l.node(ast.KindDecorator, c, l.optExprList(c)))
		case "abstract_method_signature", "method_signature":
			key, _ := l.propertyKey(field(c, "name"))
			members = append(members, l.node(ast.KindTSAbstractMethodDefinition, c, key))
		case "index_signature":
			members = append(members, l.leaf(ast.KindTSIndexSignature, c))
		default:
			members = append(members, l.unknown(c))
		}
	}
	return l.node(ast.KindClassBody, n, members...)
}

// method lowers a class method (MethodDefinition) or an object method
// (ObjectProperty with FlagMethod). The function value spans the whole member.
func (l *lowerer) method(n *sitter.Node, kind ast.Kind) ast.NodeID {
	nameNode := field(n, "name")
	key, computed := l.propertyKey(nameNode)
	fn := l.node(ast.KindFunctionExpression, n,
		ast.NoNodeID,
		l.typeParams(field(n, "type_parameters")),
		l.params(field(n, "parameters")),
		l.typeAnnotation(field(n, "return_type")),
		l.functionBody(field(n, "body")))
	l.b.SetFlags(fn, l.funcFlags(n))

	id := l.node(kind, n, key, fn)
	flags := ast.FlagMethod
	if computed {
		flags |= ast.FlagComputed
	}
	switch {
	case hasToken(n, "get"):
		flags |= ast.FlagGetter
	case hasToken(n, "set"):
		flags |= ast.FlagSetter
	}
	if hasToken(n, "static") {
		flags |= ast.FlagStatic
	}
	if kind == ast.KindMethodDefinition && !computed && nameNode != nil && l.text(nameNode) == "constructor" {
		flags |= ast.FlagConstructor
	}
	l.b.SetFlags(id, flags)
	return id
}

func (l *lowerer) classField(n *sitter.Node) ast.NodeID {
	nameNode := field(n, "property")
	if nameNode == nil {
		nameNode = field(n, "name")
	}
	key, computed := l.propertyKey(nameNode)
	kind := ast.KindPropertyDefinition
	var kids []ast.NodeID
	if hasToken(n, "accessor") {
		kind = ast.KindAccessorProperty
		kids = []ast.NodeID{key, l.optExpr(field(n, "value"))}
	} else {
		kids = []ast.NodeID{key, l.typeAnnotation(field(n, "type")), l.optExpr(field(n, "value"))}
	}
	id := l.node(kind, n, kids...)
	var flags ast.Flags
	if computed {
		flags |= ast.FlagComputed
	}
	if hasToken(n, "static") {
		flags |= ast.FlagStatic
	}
	if hasToken(n, "declare") {
		flags |= ast.FlagDeclare
	}
	l.b.SetFlags(id, flags)
	return id
}
