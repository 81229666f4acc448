package lint

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/source"
	"jsvet/internal/symbols"
	"jsvet/internal/walk"
)

// Context is what a rule sees while it runs. The Linter reuses one Context
// per file and retargets it for each rule call; rules must not keep it.
type Context struct {
	Tree    *ast.Tree
	File    *source.File
	Oracle  symbols.Oracle
	Options Options

	rule     string
	severity diag.Severity
	sink     diag.Reporter
	walker   *walk.Walker
	reported int
}

// Rule returns the name of the running rule.
func (c *Context) Rule() string { return c.rule }

// ScopeFlags returns the flags of the innermost scope around the current
// node. Outside the walk it reports the top scope.
func (c *Context) ScopeFlags() walk.ScopeFlags {
	if c.walker == nil {
		return walk.ScopeTop
	}
	return c.walker.Scope()
}

// Text returns the source text of id.
func (c *Context) Text(id ast.NodeID) string { return c.Tree.Text(id) }

// Report implements diag.Reporter, stamping the rule name and its
// configured severity.
func (c *Context) Report(d diag.Diagnostic) {
	d.Code = diag.Code(c.rule)
	d.Severity = c.severity
	c.reported++
	c.sink.Report(d)
}

// Diag starts a diagnostic at span; finish it with Emit.
func (c *Context) Diag(span source.Span, msg string) *diag.ReportBuilder {
	return diag.NewReportBuilder(c, c.severity, diag.Code(c.rule), span, msg)
}

// Reported counts diagnostics reported through c for the current file.
func (c *Context) Reported() int { return c.reported }
