package rules

import (
	"fmt"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/lint"
)

// Eqeqeq reports == and != in favor of their strict forms. With the smart
// option, comparisons against null are allowed.
type Eqeqeq struct {
	smart bool
}

func (*Eqeqeq) Name() string      { return "eqeqeq" }
func (*Eqeqeq) Kinds() []ast.Kind { return []ast.Kind{ast.KindBinaryExpression} }
func (*Eqeqeq) Meta() lint.Meta {
	return lint.Meta{Doc: "require === and !==", Severity: diag.SevWarning, Fixable: true}
}

func (r *Eqeqeq) Configure(opts lint.Options) error {
	switch mode := opts.String("mode", "always"); mode {
	case "always":
		r.smart = false
	case "smart":
		r.smart = true
	default:
		return fmt.Errorf("unknown mode %q (expected always|smart)", mode)
	}
	return nil
}

func (r *Eqeqeq) Run(ctx *lint.Context, id ast.NodeID) {
	t := ctx.Tree
	n := t.Node(id)
	var strict ast.Op
	switch n.Op {
	case ast.OpEq:
		strict = ast.OpStrictEq
	case ast.OpNotEq:
		strict = ast.OpStrictNotEq
	default:
		return
	}
	left, right := t.Child(id, ast.SlotLeft), t.Child(id, ast.SlotRight)
	if r.smart && (isNull(t, left) || isNull(t, right)) {
		return
	}
	opSpan, ok := findToken(t.Source, t.File, t.Span(left).End, t.Span(right).Start, n.Op.String())
	if !ok {
		return
	}
	app := diag.DangerousSuggestion
	if isTypeofCompare(t, left, right) || sameLiteralKind(t, left, right) {
		app = diag.Safe
	}
	ctx.Diag(opSpan, fmt.Sprintf("%s may perform type coercion, leading to unexpected results", n.Op)).
		WithHelp(fmt.Sprintf("consider using %s instead", strict)).
		WithFix(fix.ReplaceSpan(fmt.Sprintf("use %s", strict), opSpan, strict.String(), fix.WithApplicability(app))).
		Emit()
}

func isNull(t *ast.Tree, id ast.NodeID) bool {
	return t.Kind(t.Unparen(id)) == ast.KindNullLiteral
}

func isTypeofCompare(t *ast.Tree, a, b ast.NodeID) bool {
	isTypeof := func(id ast.NodeID) bool {
		id = t.Unparen(id)
		return t.Kind(id) == ast.KindUnaryExpression && t.Node(id).Op == ast.OpTypeof
	}
	isString := func(id ast.NodeID) bool { return t.Kind(t.Unparen(id)) == ast.KindStringLiteral }
	return (isTypeof(a) && isString(b)) || (isString(a) && isTypeof(b))
}

func sameLiteralKind(t *ast.Tree, a, b ast.NodeID) bool {
	ka, kb := t.Kind(t.Unparen(a)), t.Kind(t.Unparen(b))
	return ka == kb && ka.IsLiteral() && ka != ast.KindRegExpLiteral
}
