package rules

import (
	"fmt"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
)

// NoCondAssign reports assignments used as a condition. In the default
// except-parens mode an extra pair of parentheses marks the assignment as
// intended.
type NoCondAssign struct {
	always bool
}

func (*NoCondAssign) Name() string      { return "no-cond-assign" }
func (*NoCondAssign) Kinds() []ast.Kind { return []ast.Kind{ast.KindAssignmentExpression} }
func (*NoCondAssign) Meta() lint.Meta {
	return lint.Meta{Doc: "disallow assignment in conditions", Severity: diag.SevError}
}

func (r *NoCondAssign) Configure(opts lint.Options) error {
	switch mode := opts.String("mode", "except-parens"); mode {
	case "except-parens":
		r.always = false
	case "always":
		r.always = true
	default:
		return fmt.Errorf("unknown mode %q (expected except-parens|always)", mode)
	}
	return nil
}

func (r *NoCondAssign) Run(ctx *lint.Context, id ast.NodeID) {
	t := ctx.Tree
	test := id
	if r.always {
		for t.Kind(t.Parent(test)) == ast.KindParenthesizedExpression {
			test = t.Parent(test)
		}
	}
	if !isTestOf(t, test) {
		return
	}
	ctx.Diag(t.Span(id), "Avoid assigning to variables in conditions").
		WithHelp("did you mean to compare with ===?").
		Emit()
}
