package rules

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/source"
)

// NoEmptyFile reports files with no statements besides directives.
type NoEmptyFile struct{}

func (NoEmptyFile) Name() string { return "no-empty-file" }
func (NoEmptyFile) Meta() lint.Meta {
	return lint.Meta{Doc: "disallow files without code", Severity: diag.SevInfo}
}

func (NoEmptyFile) RunOnce(ctx *lint.Context) {
	t := ctx.Tree
	for _, stmt := range t.Tail(t.Root) {
		switch t.Kind(stmt) {
		case ast.KindDirective, ast.KindHashbang, ast.KindEmptyStatement:
			continue
		}
		return
	}
	ctx.Diag(source.Span{File: t.File}, "File has no code").Emit()
}
