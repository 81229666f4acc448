package lint

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/source"
	"jsvet/internal/symbols"
	"jsvet/internal/trace"
	"jsvet/internal/walk"
)

// RuleFailure records a rule that panicked. The rule is skipped for the
// rest of the file.
type RuleFailure struct {
	Rule  string
	Node  ast.NodeID // NoNodeID for RunOnce failures
	Err   error
	Stack []byte
}

func (f RuleFailure) Error() string {
	if f.Node.IsValid() {
		return fmt.Sprintf("rule %s failed at node %d: %v", f.Rule, f.Node, f.Err)
	}
	return fmt.Sprintf("rule %s failed: %v", f.Rule, f.Err)
}

func (f RuleFailure) Unwrap() error { return f.Err }

// File is the per-file input of a lint run.
type File struct {
	Path     string
	Tree     *ast.Tree
	Source   *source.File
	Oracle   symbols.Oracle
	Reporter diag.Reporter
}

// Result summarizes one Lint call.
type Result struct {
	Failures []RuleFailure
	Visited  int
	Reported int
}

// Linter runs the enabled rules of a Registry. It is safe for concurrent
// use by several files once built.
type Linter struct {
	index    *Index
	settings []Setting
	tracer   trace.Tracer
}

// NewLinter indexes the enabled rules of reg. Metadata defects are traced
// at detail level.
func NewLinter(reg *Registry, tracer trace.Tracer) *Linter {
	if tracer == nil {
		tracer = trace.Nop
	}
	rules, settings := reg.Enabled()
	idx := NewIndex(rules)
	for _, d := range idx.Defects() {
		trace.Point(tracer, trace.ScopeRule, "interest", "", d)
	}
	return &Linter{index: idx, settings: settings, tracer: tracer}
}

// Index exposes the dispatch index.
func (l *Linter) Index() *Index { return l.index }

// Lint runs OnceRules, then walks the tree once and dispatches each node
// to the interested NodeRules. A cancelled ctx stops the walk, still
// balanced, and its error is returned with the partial result.
func (l *Linter) Lint(ctx context.Context, f File) (Result, error) {
	if f.Reporter == nil {
		f.Reporter = diag.NopReporter{}
	}
	run := &linterRun{
		l:      l,
		ctx:    ctx,
		file:   f,
		failed: make([]bool, l.index.Len()),
		counts: make([]int, l.index.Len()),
		lc: &Context{
			Tree:   f.Tree,
			File:   f.Source,
			Oracle: f.Oracle,
			sink:   f.Reporter,
		},
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	for i := range l.index.Len() {
		if once, ok := l.index.Rule(i).(OnceRule); ok {
			run.call(i, ast.NoNodeID, func() { once.RunOnce(run.lc) })
		}
	}

	w := walk.NewWalker(f.Tree, run)
	run.walker = w
	run.lc.walker = w
	w.Walk(f.Tree.Root)
	run.lc.walker = nil

	if l.tracer.Level() >= trace.LevelDebug {
		for i, n := range run.counts {
			if n > 0 {
				ev := trace.Event{
					Time:  time.Now(),
					Kind:  trace.KindPoint,
					Scope: trace.ScopeDispatch,
					Name:  l.index.Rule(i).Name(),
					File:  f.Path,
					Extra: map[string]string{"calls": strconv.Itoa(n)},
				}
				l.tracer.Emit(&ev)
			}
		}
	}

	res := Result{Failures: run.failures, Visited: run.visited, Reported: run.lc.reported}
	if run.cancelled != nil {
		return res, run.cancelled
	}
	return res, nil
}

type linterRun struct {
	walk.NopVisitor
	l         *Linter
	ctx       context.Context
	file      File
	lc        *Context
	walker    *walk.Walker
	failed    []bool
	counts    []int
	failures  []RuleFailure
	visited   int
	cancelled error
}

func (r *linterRun) Enter(ev walk.Event) bool {
	if r.cancelled != nil {
		return false
	}
	if err := r.ctx.Err(); err != nil {
		r.cancelled = err
		r.walker.Stop()
		return false
	}
	r.visited++
	for _, i := range r.l.index.For(ev.Kind()) {
		if r.failed[i] {
			continue
		}
		rule := r.l.index.Rule(i).(NodeRule)
		r.counts[i]++
		r.call(i, ev.ID, func() { rule.Run(r.lc, ev.ID) })
	}
	return true
}

// call runs fn as rule i, converting a panic into a RuleFailure.
func (r *linterRun) call(i int, node ast.NodeID, fn func()) {
	rule := r.l.index.Rule(i)
	set := r.l.settings[i]
	r.lc.rule = rule.Name()
	r.lc.severity = set.Severity
	r.lc.Options = set.Options
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		err, ok := rec.(error)
		if !ok {
			err = fmt.Errorf("%v", rec)
		}
		failure := RuleFailure{Rule: rule.Name(), Node: node, Err: err, Stack: debug.Stack()}
		r.failed[i] = true
		r.failures = append(r.failures, failure)
		trace.Failure(r.l.tracer, trace.ScopeRule, rule.Name(), r.file.Path, err.Error())
	}()
	fn()
}
