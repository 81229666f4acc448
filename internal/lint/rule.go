package lint

import (
	"jsvet/internal/ast"
	"jsvet/internal/diag"
)

// Rule is the minimal contract: a stable name used as the diagnostic code.
type Rule interface {
	Name() string
}

// NodeRule is called for every node whose kind the rule is interested in.
type NodeRule interface {
	Rule
	Run(ctx *Context, id ast.NodeID)
}

// OnceRule is called once per file before the walk.
type OnceRule interface {
	Rule
	RunOnce(ctx *Context)
}

// Configurable rules accept options from jsvet.toml.
type Configurable interface {
	Rule
	Configure(opts Options) error
}

// KindFilter declares the node kinds a NodeRule wants. Rules without it, or
// returning no kinds, are dispatched every node.
type KindFilter interface {
	Kinds() []ast.Kind
}

// Meta describes a rule for listings and default severity.
type Meta struct {
	Doc      string
	Severity diag.Severity
	Fixable  bool
}

// Described rules provide Meta. Others default to a warning without docs.
type Described interface {
	Meta() Meta
}

// MetaOf returns the rule's Meta or the defaults.
func MetaOf(r Rule) Meta {
	if d, ok := r.(Described); ok {
		return d.Meta()
	}
	return Meta{Severity: diag.SevWarning}
}

// Options is the opaque option table of one rule.
type Options map[string]any

// String returns the option key as a string, or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the option key as a bool, or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}
