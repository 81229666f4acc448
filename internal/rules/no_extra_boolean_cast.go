package rules

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/lint"
)

// NoExtraBooleanCast reports !!x and Boolean(x) where the value is only
// tested for truthiness anyway.
type NoExtraBooleanCast struct{}

func (NoExtraBooleanCast) Name() string { return "no-extra-boolean-cast" }
func (NoExtraBooleanCast) Kinds() []ast.Kind {
	return []ast.Kind{ast.KindUnaryExpression, ast.KindCallExpression}
}
func (NoExtraBooleanCast) Meta() lint.Meta {
	return lint.Meta{Doc: "disallow redundant boolean casts", Severity: diag.SevWarning, Fixable: true}
}

func (NoExtraBooleanCast) Run(ctx *lint.Context, id ast.NodeID) {
	t := ctx.Tree
	var operand ast.NodeID
	switch t.Kind(id) {
	case ast.KindUnaryExpression:
		if t.Node(id).Op != ast.OpNot {
			return
		}
		inner := t.Child(id, ast.SlotArgument)
		if t.Kind(inner) != ast.KindUnaryExpression || t.Node(inner).Op != ast.OpNot {
			return
		}
		operand = t.Child(inner, ast.SlotArgument)
	case ast.KindCallExpression:
		args := t.CallArgs(id)
		if !isBooleanCall(t, id) || len(args) != 1 || t.Kind(args[0]) == ast.KindSpreadElement {
			return
		}
		operand = args[0]
	default:
		return
	}
	if !inBooleanContext(t, id) {
		return
	}
	msg := "Redundant double negation"
	if t.Kind(id) == ast.KindCallExpression {
		msg = "Redundant Boolean call"
	}
	ctx.Diag(t.Span(id), msg).
		WithFix(fix.ReplaceSpan("remove the cast", t.Span(id), parenthesizeFor(t, id, operand))).
		Emit()
}

// parenthesizeFor returns the text of operand, wrapped when it replaces a
// `!` operand and is not already atomic.
func parenthesizeFor(t *ast.Tree, id, operand ast.NodeID) string {
	text := t.Text(operand)
	if t.Kind(t.Parent(id)) != ast.KindUnaryExpression {
		return text
	}
	switch t.Kind(operand) {
	case ast.KindIdentifierReference, ast.KindCallExpression, ast.KindStaticMemberExpression,
		ast.KindComputedMemberExpression, ast.KindParenthesizedExpression, ast.KindThisExpression:
		return text
	}
	if t.Kind(operand).IsLiteral() {
		return text
	}
	return "(" + text + ")"
}
