package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

func (l *lowerer) optExpr(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	return l.expr(n)
}

// exprList lowers the expression children of an expression-bearing node;
// several become a SequenceExpression.
func (l *lowerer) exprList(parent *sitter.Node, kids []*sitter.Node) ast.NodeID {
	switch len(kids) {
	case 0:
		return ast.NoNodeID
	case 1:
		return l.expr(kids[0])
	}
	ids := make([]ast.NodeID, 0, len(kids))
	for _, k := range kids {
		ids = append(ids, l.expr(k))
	}
	return l.b.New(ast.KindSequenceExpression, l.spanFrom(kids[0], kids[len(kids)-1]), ids...)
}

func (l *lowerer) optExprList(n *sitter.Node) ast.NodeID {
	return l.exprList(n, namedKids(n))
}

func (l *lowerer) expr(n *sitter.Node) ast.NodeID {
	switch n.Type() {
	case "identifier", "undefined":
		return l.named(ast.KindIdentifierReference, n, l.text(n))
	case "this":
		return l.leaf(ast.KindThisExpression, n)
	case "super":
		return l.leaf(ast.KindSuper, n)
	case "true", "false":
		id := l.named(ast.KindBooleanLiteral, n, n.Type())
		if n.Type() == "true" {
			l.b.SetFlags(id, ast.FlagTrue)
		}
		return id
	case "null":
		return l.leaf(ast.KindNullLiteral, n)
	case "number":
		text := l.text(n)
		if strings.HasSuffix(text, "n") && !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
			return l.named(ast.KindBigIntLiteral, n, text)
		}
		return l.named(ast.KindNumericLiteral, n, text)
	case "string":
		return l.named(ast.KindStringLiteral, n, l.stringValue(n))
	case "regex":
		return l.named(ast.KindRegExpLiteral, n, l.text(n))
	case "template_string":
		return l.template(n)
	case "array":
		return l.array(n)
	case "object":
		return l.object(n)
	case "function", "function_expression", "generator_function":
		return l.function(n, ast.KindFunctionExpression)
	case "arrow_function":
		return l.arrow(n)
	case "class":
		return l.class(n, ast.KindClassExpression)
	case "call_expression":
		return l.call(n)
	case "new_expression":
		var args []ast.NodeID
		if a := field(n, "arguments"); a != nil {
			args = l.arguments(a)
		}
		kids := append([]ast.NodeID{l.expr(field(n, "constructor")), l.typeArgs(field(n, "type_arguments"))}, args...)
		return l.node(ast.KindNewExpression, n, kids...)
	case "member_expression", "nested_identifier":
		return l.member(n)
	case "subscript_expression":
		id := l.node(ast.KindComputedMemberExpression, n,
			l.expr(field(n, "object")),
			l.optExprList(field(n, "index")))
		if hasChildType(n, "optional_chain", "?.") {
			l.b.SetFlags(id, ast.FlagOptional)
		}
		return id
	case "assignment_expression":
		id := l.node(ast.KindAssignmentExpression, n, l.target(field(n, "left")), l.expr(field(n, "right")))
		l.b.SetOp(id, ast.OpAssign)
		return id
	case "augmented_assignment_expression":
		id := l.node(ast.KindAssignmentExpression, n, l.target(field(n, "left")), l.expr(field(n, "right")))
		l.setOp(id, ast.OpClassAssign, field(n, "operator"))
		return id
	case "unary_expression":
		id := l.node(ast.KindUnaryExpression, n, l.expr(field(n, "argument")))
		l.setOp(id, ast.OpClassUnary, field(n, "operator"))
		return id
	case "update_expression":
		arg, op := field(n, "argument"), field(n, "operator")
		id := l.node(ast.KindUpdateExpression, n, l.target(arg))
		l.setOp(id, ast.OpClassUpdate, op)
		if op != nil && arg != nil && op.StartByte() < arg.StartByte() {
			l.b.SetFlags(id, ast.FlagPrefix)
		}
		return id
	case "binary_expression":
		return l.binary(n)
	case "ternary_expression":
		return l.node(ast.KindConditionalExpression, n,
			l.expr(field(n, "condition")),
			l.expr(field(n, "consequence")),
			l.expr(field(n, "alternative")))
	case "sequence_expression":
		return l.node(ast.KindSequenceExpression, n, l.sequence(n, nil)...)
	case "parenthesized_expression":
		return l.node(ast.KindParenthesizedExpression, n, l.optExprList(n))
	case "await_expression":
		return l.node(ast.KindAwaitExpression, n, l.optExprList(n))
	case "yield_expression":
		id := l.node(ast.KindYieldExpression, n, l.optExprList(n))
		if hasToken(n, "*") {
			l.b.SetFlags(id, ast.FlagDelegate)
		}
		return id
	case "spread_element":
		return l.node(ast.KindSpreadElement, n, l.optExprList(n))
	case "meta_property":
		return l.metaProperty(n)
	case "private_property_identifier":
		return l.named(ast.KindPrivateIdentifier, n, l.text(n))
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return l.jsx(n)
	case "import":
		return l.named(ast.KindIdentifierName, n, "import")
	}
	if id, ok := l.tsExpr(n); ok {
		return id
	}
	return l.unknown(n)
}

func (l *lowerer) setOp(id ast.NodeID, class ast.OpClass, op *sitter.Node) {
	if op == nil {
		return
	}
	if o, ok := ast.LookupOp(class, l.text(op)); ok {
		l.b.SetOp(id, o)
	}
}

func (l *lowerer) binary(n *sitter.Node) ast.NodeID {
	opNode := field(n, "operator")
	opText := ""
	if opNode != nil {
		opText = l.text(opNode)
	}
	left := field(n, "left")
	if op, ok := ast.LookupOp(ast.OpClassLogical, opText); ok {
		id := l.node(ast.KindLogicalExpression, n, l.expr(left), l.expr(field(n, "right")))
		l.b.SetOp(id, op)
		return id
	}
	kind := ast.KindBinaryExpression
	if opText == "in" && left != nil && left.Type() == "private_property_identifier" {
		kind = ast.KindPrivateInExpression
	}
	id := l.node(kind, n, l.expr(left), l.expr(field(n, "right")))
	l.setOp(id, ast.OpClassBinary, opNode)
	return id
}

// sequence flattens the left-nested sequence_expression of older grammars.
func (l *lowerer) sequence(n *sitter.Node, out []ast.NodeID) []ast.NodeID {
	for _, c := range namedKids(n) {
		if c.Type() == "sequence_expression" {
			out = l.sequence(c, out)
			continue
		}
		out = append(out, l.expr(c))
	}
	return out
}

func (l *lowerer) template(n *sitter.Node) ast.NodeID {
	var parts []ast.NodeID
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "template_substitution":
			parts = append(parts, l.optExprList(c))
		case "string_fragment":
			parts = append(parts, l.named(ast.KindTemplateElement, c, l.text(c)))
		}
	}
	return l.node(ast.KindTemplateLiteral, n, parts...)
}

// elements lowers array-like children, turning holes into Elision nodes.
func (l *lowerer) elements(n *sitter.Node, lower func(*sitter.Node) ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	sep := true
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		switch {
		case c == nil, c.Type() == "comment", c.Type() == "[", c.Type() == "]":
		case c.Type() == ",":
			if sep {
				out = append(out, l.b.New(ast.KindElision, l.span(c)))
			}
			sep = true
		default:
			out = append(out, lower(c))
			sep = false
		}
	}
	return out
}

func (l *lowerer) array(n *sitter.Node) ast.NodeID {
	return l.node(ast.KindArrayExpression, n, l.elements(n, l.expr)...)
}

func (l *lowerer) object(n *sitter.Node) ast.NodeID {
	var props []ast.NodeID
	for _, c := range namedKids(n) {
		switch c.Type() {
		case "pair":
			key, computed := l.propertyKey(field(c, "key"))
			id := l.node(ast.KindObjectProperty, c, key, l.expr(field(c, "value")))
			if computed {
				l.b.SetFlags(id, ast.FlagComputed)
			}
			props = append(props, id)
		case "shorthand_property_identifier":
			name := l.text(c)
			id := l.node(ast.KindObjectProperty, c,
				l.named(ast.KindIdentifierName, c, name),
				l.named(ast.KindIdentifierReference, c, name))
			l.b.SetFlags(id, ast.FlagShorthand)
			props = append(props, id)
		case "method_definition":
			props = append(props, l.method(c, ast.KindObjectProperty))
		case "spread_element":
			props = append(props, l.expr(c))
		default:
			props = append(props, l.unknown(c))
		}
	}
	return l.node(ast.KindObjectExpression, n, props...)
}

// propertyKey lowers an object or class key and reports whether it is computed.
func (l *lowerer) propertyKey(n *sitter.Node) (ast.NodeID, bool) {
	if n == nil {
		return ast.NoNodeID, false
	}
	switch n.Type() {
	case "property_identifier", "identifier", "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		return l.named(ast.KindIdentifierName, n, l.text(n)), false
	case "private_property_identifier":
		return l.named(ast.KindPrivateIdentifier, n, l.text(n)), false
	case "computed_property_name":
		return l.optExprList(n), true
	}
	return l.expr(n), false
}

func (l *lowerer) call(n *sitter.Node) ast.NodeID {
	fn := field(n, "function")
	args := field(n, "arguments")
	if args != nil && args.Type() == "template_string" {
		return l.node(ast.KindTaggedTemplateExpression, n,
			l.expr(fn), l.typeArgs(field(n, "type_arguments")), l.template(args))
	}
	var argIDs []ast.NodeID
	if args != nil {
		argIDs = l.arguments(args)
	}
	if fn != nil && fn.Type() == "import" {
		var src ast.NodeID
		if len(argIDs) > 0 {
			src, argIDs = argIDs[0], argIDs[1:]
		}
		return l.node(ast.KindImportExpression, n, append([]ast.NodeID{src}, argIDs...)...)
	}
	kids := append([]ast.NodeID{l.expr(fn), l.typeArgs(field(n, "type_arguments"))}, argIDs...)
	id := l.node(ast.KindCallExpression, n, kids...)
	if hasChildType(n, "optional_chain", "?.") {
		l.b.SetFlags(id, ast.FlagOptional)
	}
	return id
}

func (l *lowerer) arguments(n *sitter.Node) []ast.NodeID {
	kids := namedKids(n)
	out := make([]ast.NodeID, 0, len(kids))
	for _, c := range kids {
		out = append(out, l.expr(c))
	}
	return out
}

func (l *lowerer) member(n *sitter.Node) ast.NodeID {
	obj := field(n, "object")
	prop := field(n, "property")
	if prop == nil {
		return l.unknown(n)
	}
	var id ast.NodeID
	if prop.Type() == "private_property_identifier" {
		id = l.node(ast.KindPrivateFieldExpression, n,
			l.expr(obj), l.named(ast.KindPrivateIdentifier, prop, l.text(prop)))
	} else {
		id = l.node(ast.KindStaticMemberExpression, n,
			l.expr(obj), l.named(ast.KindIdentifierName, prop, l.text(prop)))
	}
	if hasChildType(n, "optional_chain", "?.") {
		l.b.SetFlags(id, ast.FlagOptional)
	}
	return id
}

func (l *lowerer) metaProperty(n *sitter.Node) ast.NodeID {
	meta, prop, _ := strings.Cut(l.text(n), ".")
	sp := l.span(n)
	return l.b.New(ast.KindMetaProperty, sp,
		l.b.NewNamed(ast.KindIdentifierName, sp, strings.TrimSpace(meta)),
		l.b.NewNamed(ast.KindIdentifierName, sp, strings.TrimSpace(prop)))
}
