package rules

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
)

// NoWith reports with statements.
type NoWith struct{}

func (NoWith) Name() string      { return "no-with" }
func (NoWith) Kinds() []ast.Kind { return []ast.Kind{ast.KindWithStatement} }
func (NoWith) Meta() lint.Meta {
	return lint.Meta{Doc: "disallow with statements", Severity: diag.SevError}
}

func (NoWith) Run(ctx *lint.Context, id ast.NodeID) {
	ctx.Diag(ctx.Tree.Span(id), "Don't use with statements in modern JavaScript").
		WithHelp("with makes name resolution depend on runtime object shape").
		Emit()
}
