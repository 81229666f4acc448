package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

func (l *lowerer) jsx(n *sitter.Node) ast.NodeID {
	switch n.Type() {
	case "jsx_self_closing_element":
		open := l.jsxOpening(n)
		l.b.SetFlags(open, ast.FlagSelfClosing)
		return l.node(ast.KindJSXElement, n, open, ast.NoNodeID)
	case "jsx_fragment":
		return l.node(ast.KindJSXFragment, n, l.jsxChildren(n, nil, nil)...)
	}
	openNode := field(n, "open_tag")
	closeNode := field(n, "close_tag")
	children := l.jsxChildren(n, openNode, closeNode)
	// Older grammars represent <></> as an element whose tags have no name.
	if openNode == nil || field(openNode, "name") == nil {
		return l.node(ast.KindJSXFragment, n, children...)
	}
	open := l.jsxOpening(openNode)
	var closing ast.NodeID
	if closeNode != nil {
		closing = l.node(ast.KindJSXClosingElement, closeNode, l.jsxName(field(closeNode, "name"), true))
	}
	return l.node(ast.KindJSXElement, n, append([]ast.NodeID{open, closing}, children...)...)
}

func (l *lowerer) jsxOpening(n *sitter.Node) ast.NodeID {
	kids := []ast.NodeID{l.jsxName(field(n, "name"), true), l.typeArgs(field(n, "type_arguments"))}
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "jsx_attribute":
			kids = append(kids, l.jsxAttribute(c))
		case "jsx_expression":
			// {...props}
			inner := firstNamed(c)
			if inner != nil && inner.Type() == "spread_element" {
				kids = append(kids, l.node(ast.KindJSXSpreadAttribute, c, l.optExprList(inner)))
			} else {
				kids = append(kids, l.node(ast.KindJSXSpreadAttribute, c, l.optExprList(c)))
			}
		}
	}
	return l.node(ast.KindJSXOpeningElement, n, kids...)
}

func (l *lowerer) jsxAttribute(n *sitter.Node) ast.NodeID {
	kids := namedKids(n)
	if len(kids) == 0 {
		return l.unknown(n)
	}
	name := l.jsxName(kids[0], false)
	var value ast.NodeID
	if len(kids) > 1 {
		v := kids[1]
		switch v.Type() {
		case "string":
			value = l.named(ast.KindStringLiteral, v, l.stringValue(v))
		case "jsx_expression":
			value = l.jsxExpression(v)
		default:
			value = l.expr(v)
		}
	}
	return l.node(ast.KindJSXAttribute, n, name, value)
}

func (l *lowerer) jsxChildren(n, open, closing *sitter.Node) []ast.NodeID {
	var out []ast.NodeID
	for _, c := range namedKids(n) {
		if sameNode(c, open) || sameNode(c, closing) {
			continue
		}
		switch c.Type() {
		case "jsx_opening_element", "jsx_closing_element":
		case "jsx_text", "html_character_reference":
			out = append(out, l.named(ast.KindJSXText, c, l.text(c)))
		case "jsx_expression":
			out = append(out, l.jsxExpression(c))
		default:
			out = append(out, l.expr(c))
		}
	}
	return out
}

func (l *lowerer) jsxExpression(n *sitter.Node) ast.NodeID {
	inner := firstNamed(n)
	switch {
	case inner == nil:
		return l.node(ast.KindJSXExpressionContainer, n, l.b.New(ast.KindJSXEmptyExpression, l.span(n)))
	case inner.Type() == "spread_element":
		return l.node(ast.KindJSXSpreadChild, n, l.optExprList(inner))
	}
	return l.node(ast.KindJSXExpressionContainer, n, l.optExprList(n))
}

// jsxName lowers a tag or attribute name. Capitalized tag names and member
// roots refer to bindings in scope; lower-case tags are intrinsic elements.
func (l *lowerer) jsxName(n *sitter.Node, tag bool) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	switch n.Type() {
	case "identifier", "property_identifier", "jsx_identifier":
		text := l.text(n)
		if tag && n.Type() == "identifier" && isComponentName(text) {
			return l.named(ast.KindIdentifierReference, n, text)
		}
		return l.named(ast.KindJSXIdentifier, n, text)
	case "this":
		return l.leaf(ast.KindThisExpression, n)
	case "member_expression", "nested_identifier":
		obj := field(n, "object")
		prop := field(n, "property")
		if obj == nil || prop == nil {
			kids := namedKids(n)
			if len(kids) < 2 {
				return l.unknown(n)
			}
			obj, prop = kids[0], kids[len(kids)-1]
		}
		var objID ast.NodeID
		if obj.Type() == "identifier" {
			objID = l.named(ast.KindIdentifierReference, obj, l.text(obj))
		} else {
			objID = l.jsxName(obj, tag)
		}
		return l.node(ast.KindJSXMemberExpression, n, objID, l.named(ast.KindJSXIdentifier, prop, l.text(prop)))
	case "jsx_namespace_name":
		kids := namedKids(n)
		if len(kids) != 2 {
			return l.unknown(n)
		}
		return l.node(ast.KindJSXNamespacedName, n,
			l.named(ast.KindJSXIdentifier, kids[0], l.text(kids[0])),
			l.named(ast.KindJSXIdentifier, kids[1], l.text(kids[1])))
	}
	return l.unknown(n)
}

func isComponentName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return (unicode.IsUpper(r) || r == '_' || r == '$') && !strings.Contains(name, "-")
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
