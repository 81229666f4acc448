package rules

import (
	"fmt"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/lint"
	"jsvet/internal/symbols"
)

// NoVar reports var declarations and suggests let for bindings that are
// reassigned, const otherwise.
type NoVar struct{}

func (NoVar) Name() string      { return "no-var" }
func (NoVar) Kinds() []ast.Kind { return []ast.Kind{ast.KindVariableDeclaration} }
func (NoVar) Meta() lint.Meta {
	return lint.Meta{Doc: "require let or const instead of var", Severity: diag.SevWarning, Fixable: true}
}

func (NoVar) Run(ctx *lint.Context, id ast.NodeID) {
	t := ctx.Tree
	if t.Node(id).DeclKind() != ast.FlagVar {
		return
	}
	sp := t.Span(id)
	kw, ok := findToken(t.Source, t.File, sp.Start, sp.End, "var")
	if !ok || kw.Start != sp.Start {
		return
	}
	keyword := "const"
	for _, decl := range t.Tail(id) {
		if !t.Child(decl, ast.SlotInit).IsValid() && !isForInOfHead(t, id) {
			keyword = "let"
			break
		}
		if anyWritten(ctx.Oracle, t, decl) {
			keyword = "let"
			break
		}
	}
	ctx.Diag(kw, "Don't use var in modern JavaScript").
		WithHelp(fmt.Sprintf("consider using %q here instead", keyword)).
		WithFix(fix.ReplaceSpan(fmt.Sprintf("replace var with %s", keyword), kw, keyword, fix.Dangerous())).
		Emit()
}

func isForInOfHead(t *ast.Tree, decl ast.NodeID) bool {
	switch t.Kind(t.Parent(decl)) {
	case ast.KindForInStatement, ast.KindForOfStatement:
		return true
	}
	return false
}

func anyWritten(o symbols.Oracle, t *ast.Tree, decl ast.NodeID) bool {
	if o == nil {
		return true
	}
	for _, b := range bindings(t, t.Child(decl, ast.SlotID)) {
		sym, ok := o.SymbolOfBinding(b)
		if !ok {
			return true
		}
		if s := o.Symbol(sym); s == nil || s.Flags.Has(symbols.SymbolFlagWritten) {
			return true
		}
	}
	return false
}
