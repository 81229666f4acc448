package rules

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/lint"
)

// NoDebugger reports debugger statements and suggests deleting them.
type NoDebugger struct{}

func (NoDebugger) Name() string      { return "no-debugger" }
func (NoDebugger) Kinds() []ast.Kind { return []ast.Kind{ast.KindDebuggerStatement} }
func (NoDebugger) Meta() lint.Meta {
	return lint.Meta{Doc: "disallow debugger statements", Severity: diag.SevError, Fixable: true}
}

func (NoDebugger) Run(ctx *lint.Context, id ast.NodeID) {
	sp := ctx.Tree.Span(id)
	ctx.Diag(sp, "Unexpected 'debugger' statement").
		WithFix(fix.DeleteSpan("remove the debugger statement", sp, fix.Dangerous())).
		Emit()
}
