// Package exhaustivedeps checks the dependency lists of React hooks: every
// component value a callback reads must be listed, nothing else should be,
// and listed values must not change identity on every render.
package exhaustivedeps

import (
	"fmt"
	"regexp"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
)

const Name = "react-hooks/exhaustive-deps"

// Rule holds only configuration; each call is analyzed independently.
type Rule struct {
	additionalHooks *regexp.Regexp
}

func New() *Rule { return &Rule{} }

func (*Rule) Name() string      { return Name }
func (*Rule) Kinds() []ast.Kind { return []ast.Kind{ast.KindCallExpression} }
func (*Rule) Meta() lint.Meta {
	return lint.Meta{
		Doc:      "verify the dependency lists of React hooks",
		Severity: diag.SevWarning,
		Fixable:  true,
	}
}

// Configure accepts additionalHooks, a regular expression of custom hook
// names that behave like useEffect.
func (r *Rule) Configure(opts lint.Options) error {
	pattern := opts.String("additionalHooks", "")
	if pattern == "" {
		r.additionalHooks = nil
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("additionalHooks: %w", err)
	}
	r.additionalHooks = re
	return nil
}

func (r *Rule) Run(ctx *lint.Context, call ast.NodeID) {
	if ctx.Oracle == nil {
		return
	}
	info, ok := lookupHook(ctx.Tree, call, r.additionalHooks)
	if !ok {
		return
	}
	a := &analysis{
		ctx:    ctx,
		tree:   ctx.Tree,
		oracle: ctx.Oracle,
		call:   call,
		info:   info,
		hook:   ctx.Tree.Text(ctx.Tree.Child(call, ast.SlotCallee)),
	}
	a.run()
}
