package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

// binding lowers a declaration target: identifiers become BindingIdentifier.
func (l *lowerer) binding(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern", "type_identifier", "undefined":
		return l.named(ast.KindBindingIdentifier, n, l.text(n))
	case "object_pattern":
		var props []ast.NodeID
		for _, c := range namedKids(n) {
			props = append(props, l.bindingProperty(c))
		}
		return l.node(ast.KindObjectPattern, n, props...)
	case "array_pattern":
		return l.node(ast.KindArrayPattern, n, l.elements(n, l.binding)...)
	case "assignment_pattern":
		return l.node(ast.KindAssignmentPattern, n, l.binding(field(n, "left")), l.expr(field(n, "right")))
	case "rest_pattern":
		return l.node(ast.KindRestElement, n, l.binding(firstNamed(n)))
	}
	return l.unknown(n)
}

func (l *lowerer) bindingProperty(n *sitter.Node) ast.NodeID {
	switch n.Type() {
	case "shorthand_property_identifier_pattern":
		name := l.text(n)
		id := l.node(ast.KindBindingProperty, n,
			l.named(ast.KindIdentifierName, n, name),
			l.named(ast.KindBindingIdentifier, n, name))
		l.b.SetFlags(id, ast.FlagShorthand)
		return id
	case "object_assignment_pattern":
		left := field(n, "left")
		if left == nil || left.Type() != "shorthand_property_identifier_pattern" {
			return l.unknown(n)
		}
		name := l.text(left)
		value := l.node(ast.KindAssignmentPattern, n,
			l.named(ast.KindBindingIdentifier, left, name),
			l.expr(field(n, "right")))
		id := l.node(ast.KindBindingProperty, n, l.named(ast.KindIdentifierName, left, name), value)
		l.b.SetFlags(id, ast.FlagShorthand)
		return id
	case "pair_pattern":
		key, computed := l.propertyKey(field(n, "key"))
		id := l.node(ast.KindBindingProperty, n, key, l.binding(field(n, "value")))
		if computed {
			l.b.SetFlags(id, ast.FlagComputed)
		}
		return id
	case "rest_pattern":
		return l.binding(n)
	}
	return l.unknown(n)
}

// target lowers the left side of an assignment or a for-in/of head without
// a declaration. Identifiers there are references, not bindings.
func (l *lowerer) target(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	switch n.Type() {
	case "object_pattern", "object":
		var props []ast.NodeID
		for _, c := range namedKids(n) {
			props = append(props, l.targetProperty(c))
		}
		return l.node(ast.KindObjectAssignmentTarget, n, props...)
	case "array_pattern", "array":
		return l.node(ast.KindArrayAssignmentTarget, n, l.elements(n, l.targetWithDefault)...)
	case "assignment_pattern":
		return l.targetWithDefault(n)
	case "rest_pattern":
		return l.node(ast.KindAssignmentTargetRest, n, l.target(firstNamed(n)))
	case "shorthand_property_identifier_pattern":
		return l.named(ast.KindIdentifierReference, n, l.text(n))
	}
	return l.expr(n)
}

func (l *lowerer) targetWithDefault(n *sitter.Node) ast.NodeID {
	if n.Type() == "assignment_pattern" || n.Type() == "assignment_expression" {
		return l.node(ast.KindAssignmentTargetWithDefault, n, l.target(field(n, "left")), l.expr(field(n, "right")))
	}
	return l.target(n)
}

func (l *lowerer) targetProperty(n *sitter.Node) ast.NodeID {
	switch n.Type() {
	case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
		return l.node(ast.KindAssignmentTargetPropertyIdentifier, n,
			l.named(ast.KindIdentifierReference, n, l.text(n)))
	case "object_assignment_pattern":
		left := field(n, "left")
		return l.node(ast.KindAssignmentTargetPropertyIdentifier, n,
			l.target(left), l.expr(field(n, "right")))
	case "pair_pattern", "pair":
		key, computed := l.propertyKey(field(n, "key"))
		id := l.node(ast.KindAssignmentTargetPropertyProperty, n, key, l.targetWithDefault(field(n, "value")))
		if computed {
			l.b.SetFlags(id, ast.FlagComputed)
		}
		return id
	case "rest_pattern", "spread_element":
		return l.node(ast.KindAssignmentTargetRest, n, l.target(firstNamed(n)))
	}
	return l.unknown(n)
}
