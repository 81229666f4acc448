package parser

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// lowerer converts one tree-sitter CST into ast nodes. Children are always
// lowered before the node that owns them.
type lowerer struct {
	b      *ast.Builder
	src    []byte
	file   source.FileID
	opts   Options
	errors uint
}

func newLowerer(f *source.File, opts Options) *lowerer {
	return &lowerer{
		b:    ast.NewBuilder(f.ID, f.Content, nil, uint(len(f.Content)/4)),
		src:  f.Content,
		file: f.ID,
		opts: opts,
	}
}

func (l *lowerer) span(n *sitter.Node) source.Span {
	return source.Span{File: l.file, Start: n.StartByte(), End: n.EndByte()}
}

func (l *lowerer) spanFrom(start, end *sitter.Node) source.Span {
	return source.Span{File: l.file, Start: start.StartByte(), End: end.EndByte()}
}

func (l *lowerer) text(n *sitter.Node) string {
	return n.Content(l.src)
}

func (l *lowerer) leaf(kind ast.Kind, n *sitter.Node) ast.NodeID {
	return l.b.New(kind, l.span(n))
}

func (l *lowerer) named(kind ast.Kind, n *sitter.Node, name string, kids ...ast.NodeID) ast.NodeID {
	return l.b.NewNamed(kind, l.span(n), name, kids...)
}

func (l *lowerer) node(kind ast.Kind, n *sitter.Node, kids ...ast.NodeID) ast.NodeID {
	return l.b.New(kind, l.span(n), kids...)
}

func (l *lowerer) collectErrors(n *sitter.Node) {
	if n == nil {
		return
	}
	switch {
	case n.IsMissing():
		l.report(n, fmt.Sprintf("missing %s", n.Type()))
		return
	case n.IsError():
		l.report(n, "unexpected syntax")
		return
	}
	if !n.HasError() {
		return
	}
	for i := range int(n.ChildCount()) {
		l.collectErrors(n.Child(i))
	}
}

func (l *lowerer) report(n *sitter.Node, msg string) {
	l.errors++
	if l.opts.MaxErrors > 0 && l.errors > l.opts.MaxErrors {
		return
	}
	if l.opts.Reporter != nil {
		diag.ReportError(l.opts.Reporter, diag.CodeSyntaxError, l.span(n), msg).Emit()
	}
}

// field is ChildByFieldName that tolerates a nil receiver.
func field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

// namedKids returns the named children of n, comments excluded.
func namedKids(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" || c.Type() == "html_comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	kids := namedKids(n)
	if len(kids) == 0 {
		return nil
	}
	return kids[0]
}

// hasToken reports whether n has an anonymous child spelled tok.
func hasToken(n *sitter.Node, toks ...string) bool {
	if n == nil {
		return false
	}
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c == nil || c.IsNamed() {
			continue
		}
		for _, tok := range toks {
			if c.Type() == tok {
				return true
			}
		}
	}
	return false
}

// hasChildType is hasToken for named children.
func hasChildType(n *sitter.Node, types ...string) bool {
	if n == nil {
		return false
	}
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c == nil {
			continue
		}
		for _, typ := range types {
			if c.Type() == typ {
				return true
			}
		}
	}
	return false
}

// unparen skips the parentheses tree-sitter keeps around conditions.
func unparen(n *sitter.Node) *sitter.Node {
	if n != nil && n.Type() == "parenthesized_expression" {
		if inner := firstNamed(n); inner != nil {
			return inner
		}
	}
	return n
}

// stringValue returns the contents of a string literal without its quotes.
func (l *lowerer) stringValue(n *sitter.Node) string {
	s := l.text(n)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'' || s[0] == '`') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// unknown keeps a construct the lowering does not model, with its named
// children lowered so nothing below it escapes the walk.
func (l *lowerer) unknown(n *sitter.Node) ast.NodeID {
	kids := namedKids(n)
	ids := make([]ast.NodeID, 0, len(kids))
	for _, c := range kids {
		ids = append(ids, l.any(c))
	}
	return l.named(ast.KindUnknown, n, n.Type(), ids...)
}

// any lowers n in whatever position it syntactically belongs to.
func (l *lowerer) any(n *sitter.Node) ast.NodeID {
	if isStatement(n.Type()) {
		return l.stmt(n)
	}
	return l.expr(n)
}

func isStatement(typ string) bool {
	return strings.HasSuffix(typ, "_statement") || strings.HasSuffix(typ, "_declaration") ||
		typ == "statement_block" || typ == "lexical_declaration" || typ == "hash_bang_line"
}
