package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
)

func (l *lowerer) program(n *sitter.Node, module bool) ast.NodeID {
	stmts := l.statements(namedKids(n), true)
	prog := l.node(ast.KindProgram, n, stmts...)
	flags := ast.Flags(0)
	switch l.opts.Language {
	case LangTypeScript:
		flags |= ast.FlagTypeScript
	case LangTSX:
		flags |= ast.FlagTypeScript | ast.FlagJSX
	default:
		flags |= ast.FlagJSX
	}
	if !module {
		for _, c := range namedKids(n) {
			if c.Type() == "import_statement" || c.Type() == "export_statement" {
				module = true
				break
			}
		}
	}
	if module {
		flags |= ast.FlagModule
	}
	l.b.SetFlags(prog, flags)
	return prog
}

// statements lowers a statement list. With prologue set, leading string
// expression statements become directives.
func (l *lowerer) statements(kids []*sitter.Node, prologue bool) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(kids))
	for _, c := range kids {
		if prologue {
			if d, ok := l.directive(c); ok {
				out = append(out, d)
				continue
			}
			if c.Type() != "hash_bang_line" {
				prologue = false
			}
		}
		out = append(out, l.stmt(c))
	}
	return out
}

func (l *lowerer) directive(n *sitter.Node) (ast.NodeID, bool) {
	if n.Type() != "expression_statement" {
		return ast.NoNodeID, false
	}
	kids := namedKids(n)
	if len(kids) != 1 || kids[0].Type() != "string" {
		return ast.NoNodeID, false
	}
	return l.named(ast.KindDirective, n, l.stringValue(kids[0])), true
}

func (l *lowerer) block(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	if n.Type() != "statement_block" {
		return l.stmt(n)
	}
	return l.node(ast.KindBlockStatement, n, l.statements(namedKids(n), false)...)
}

// optStmt lowers an optional statement child.
func (l *lowerer) optStmt(n *sitter.Node) ast.NodeID {
	if n == nil {
		return ast.NoNodeID
	}
	return l.stmt(n)
}

func (l *lowerer) stmt(n *sitter.Node) ast.NodeID {
	switch n.Type() {
	case "hash_bang_line":
		return l.leaf(ast.KindHashbang, n)
	case "expression_statement":
		kids := namedKids(n)
		if len(kids) == 0 {
			return l.leaf(ast.KindEmptyStatement, n)
		}
		return l.node(ast.KindExpressionStatement, n, l.exprList(n, kids))
	case "empty_statement":
		return l.leaf(ast.KindEmptyStatement, n)
	case "statement_block":
		return l.block(n)
	case "variable_declaration":
		return l.varDecl(n, ast.FlagVar)
	case "lexical_declaration":
		return l.varDecl(n, lexicalKind(n))
	case "if_statement":
		alt := field(n, "alternative")
		if alt != nil && alt.Type() == "else_clause" {
			alt = firstNamed(alt)
		}
		return l.node(ast.KindIfStatement, n,
			l.expr(unparen(field(n, "condition"))),
			l.optStmt(field(n, "consequence")),
			l.optStmt(alt))
	case "for_statement":
		return l.forStmt(n)
	case "for_in_statement":
		return l.forInStmt(n)
	case "while_statement":
		return l.node(ast.KindWhileStatement, n,
			l.expr(unparen(field(n, "condition"))),
			l.optStmt(field(n, "body")))
	case "do_statement":
		return l.node(ast.KindDoWhileStatement, n,
			l.optStmt(field(n, "body")),
			l.expr(unparen(field(n, "condition"))))
	case "return_statement":
		return l.node(ast.KindReturnStatement, n, l.optExprList(n))
	case "throw_statement":
		return l.node(ast.KindThrowStatement, n, l.optExprList(n))
	case "break_statement", "continue_statement":
		kind := ast.KindBreakStatement
		if n.Type() == "continue_statement" {
			kind = ast.KindContinueStatement
		}
		var label ast.NodeID
		if lb := field(n, "label"); lb != nil {
			label = l.named(ast.KindLabelIdentifier, lb, l.text(lb))
		}
		return l.node(kind, n, label)
	case "try_statement":
		return l.tryStmt(n)
	case "switch_statement":
		return l.switchStmt(n)
	case "labeled_statement":
		lb := field(n, "label")
		body := field(n, "body")
		if body == nil {
			if kids := namedKids(n); len(kids) > 1 {
				body = kids[len(kids)-1]
			}
		}
		return l.node(ast.KindLabeledStatement, n,
			l.named(ast.KindLabelIdentifier, lb, l.text(lb)),
			l.optStmt(body))
	case "with_statement":
		return l.node(ast.KindWithStatement, n,
			l.expr(unparen(field(n, "object"))),
			l.optStmt(field(n, "body")))
	case "debugger_statement":
		return l.leaf(ast.KindDebuggerStatement, n)
	case "function_declaration", "generator_function_declaration":
		return l.function(n, ast.KindFunctionDeclaration)
	case "class_declaration", "abstract_class_declaration":
		return l.class(n, ast.KindClassDeclaration)
	case "import_statement":
		return l.importStmt(n)
	case "export_statement":
		return l.exportStmt(n)
	}
	if id, ok := l.tsStmt(n); ok {
		return id
	}
	return l.unknown(n)
}

func lexicalKind(n *sitter.Node) ast.Flags {
	kind := field(n, "kind")
	if kind == nil && n.ChildCount() > 0 {
		kind = n.Child(0)
	}
	if kind != nil {
		switch kind.Type() {
		case "const":
			return ast.FlagConst
		case "using", "await":
			return ast.FlagUsing
		}
	}
	return ast.FlagLet
}

func (l *lowerer) varDecl(n *sitter.Node, kind ast.Flags) ast.NodeID {
	var decls []ast.NodeID
	for _, c := range namedKids(n) {
		if c.Type() != "variable_declarator" {
			continue
		}
		decls = append(decls, l.node(ast.KindVariableDeclarator, c,
			l.binding(field(c, "name")),
			l.optExpr(field(c, "value"))))
	}
	id := l.node(ast.KindVariableDeclaration, n, decls...)
	l.b.SetFlags(id, kind)
	return id
}

func (l *lowerer) forStmt(n *sitter.Node) ast.NodeID {
	var init, test, update ast.NodeID
	if in := field(n, "initializer"); in != nil {
		switch in.Type() {
		case "variable_declaration", "lexical_declaration":
			init = l.stmt(in)
		case "expression_statement":
			init = l.optExprList(in)
		case "empty_statement", ";":
		default:
			init = l.expr(in)
		}
	}
	if cond := field(n, "condition"); cond != nil {
		switch cond.Type() {
		case "expression_statement":
			test = l.optExprList(cond)
		case "empty_statement", ";":
		default:
			test = l.expr(cond)
		}
	}
	if inc := field(n, "increment"); inc != nil {
		update = l.expr(inc)
	}
	return l.node(ast.KindForStatement, n, init, test, update, l.optStmt(field(n, "body")))
}

func (l *lowerer) forInStmt(n *sitter.Node) ast.NodeID {
	kind := ast.KindForInStatement
	if hasToken(n, "of") {
		kind = ast.KindForOfStatement
	}
	left := field(n, "left")
	var leftID ast.NodeID
	if kw := field(n, "kind"); kw != nil && left != nil {
		decl := l.b.New(ast.KindVariableDeclarator, l.span(left), l.binding(left))
		leftID = l.b.New(ast.KindVariableDeclaration, l.spanFrom(kw, left), decl)
		switch kw.Type() {
		case "var":
			l.b.SetFlags(leftID, ast.FlagVar)
		case "const":
			l.b.SetFlags(leftID, ast.FlagConst)
		default:
			l.b.SetFlags(leftID, ast.FlagLet)
		}
	} else if left != nil {
		leftID = l.target(left)
	}
	id := l.node(kind, n, leftID, l.optExpr(field(n, "right")), l.optStmt(field(n, "body")))
	if hasToken(n, "await") {
		l.b.SetFlags(id, ast.FlagAwait)
	}
	return id
}

func (l *lowerer) tryStmt(n *sitter.Node) ast.NodeID {
	var handler, finalizer ast.NodeID
	if h := field(n, "handler"); h != nil {
		var param ast.NodeID
		if p := field(h, "parameter"); p != nil {
			param = l.binding(p)
		}
		handler = l.node(ast.KindCatchClause, h, param, l.block(field(h, "body")))
	}
	if f := field(n, "finalizer"); f != nil {
		finalizer = l.block(field(f, "body"))
	}
	return l.node(ast.KindTryStatement, n, l.block(field(n, "body")), handler, finalizer)
}

func (l *lowerer) switchStmt(n *sitter.Node) ast.NodeID {
	disc := l.expr(unparen(field(n, "value")))
	kids := []ast.NodeID{disc}
	for _, c := range namedKids(field(n, "body")) {
		var test ast.NodeID
		value := field(c, "value")
		if c.Type() == "switch_case" && value != nil {
			test = l.exprList(value, []*sitter.Node{value})
		}
		var body []*sitter.Node
		for _, s := range namedKids(c) {
			if value != nil && s.StartByte() == value.StartByte() && s.EndByte() == value.EndByte() {
				continue
			}
			body = append(body, s)
		}
		caseKids := append([]ast.NodeID{test}, l.statements(body, false)...)
		kids = append(kids, l.node(ast.KindSwitchCase, c, caseKids...))
	}
	return l.node(ast.KindSwitchStatement, n, kids...)
}
