package symbols

import (
	"fmt"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/source"
	"jsvet/internal/walk"
)

// Resolver drives scope management and declarations while the tree is walked.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

func NewResolver(table *Table, reporter diag.Reporter) *Resolver {
	return &Resolver{
		table:    table,
		reporter: reporter,
		stack:    make([]ScopeID, 0, 16),
	}
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// ParentScope returns the scope enclosing the current one.
func (r *Resolver) ParentScope() ScopeID {
	if len(r.stack) < 2 {
		return r.CurrentScope()
	}
	return r.stack[len(r.stack)-2]
}

// VarScope returns the innermost scope `var` declarations hoist into.
func (r *Resolver) VarScope() ScopeID {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if sc := r.table.Scopes.Get(r.stack[i]); sc != nil && sc.IsVarScope() {
			return r.stack[i]
		}
	}
	if len(r.stack) > 0 {
		return r.stack[0]
	}
	return NoScopeID
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(flags walk.ScopeFlags, node ast.NodeID, span source.Span) ScopeID {
	scope := r.table.Scopes.New(flags, r.CurrentScope(), node, span)
	if len(r.stack) == 0 {
		r.table.root = scope
	}
	r.table.scopeOfNode[node] = scope
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. A mismatch is a walker defect and panics.
func (r *Resolver) Leave(node ast.NodeID) {
	if len(r.stack) == 0 {
		panic(fmt.Sprintf("symbols: leave of scope node %d with empty stack", node))
	}
	top := r.table.Scopes.Get(r.stack[len(r.stack)-1])
	if top.Node != node {
		panic(fmt.Sprintf("symbols: scope mismatch: leaving %d, top is %d", node, top.Node))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs name into scope. A repeated var/function/param
// declaration resolves to the existing symbol; a repeated block-scoped one
// is reported and also resolves to the first.
func (r *Resolver) Declare(scopeID ScopeID, name source.StringID, sym Symbol) SymbolID {
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID
	}
	if existing, ok := scope.NameIndex[name]; ok {
		prev := r.table.Symbols.Get(existing)
		if prev.Kind.IsBlockScoped() || sym.Kind.IsBlockScoped() {
			r.reportDuplicate(name, sym.Span, prev.Span)
		}
		return existing
	}
	sym.Name = name
	sym.Scope = scopeID
	id := r.table.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = id
	return id
}

func (r *Resolver) reportDuplicate(name source.StringID, span, prevSpan source.Span) {
	if r.reporter == nil {
		return
	}
	msg := fmt.Sprintf("'%s' has already been declared", r.table.Strings.MustLookup(name))
	diag.ReportError(r.reporter, diag.CodeRedeclaration, span, msg).
		WithLabel(prevSpan, "first declared here").
		Emit()
}
