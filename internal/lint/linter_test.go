package lint_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/source"
	"jsvet/internal/testkit"
	"jsvet/internal/testkit/fixture"
	"jsvet/internal/trace"
)

// recorder logs every node it is dispatched.
type recorder struct {
	name  string
	kinds []ast.Kind
	seen  []ast.Kind
}

func (r *recorder) Name() string      { return r.name }
func (r *recorder) Kinds() []ast.Kind { return r.kinds }
func (r *recorder) Run(ctx *lint.Context, id ast.NodeID) {
	r.seen = append(r.seen, ctx.Tree.Kind(id))
}

type panicky struct{ calls int }

func (p *panicky) Name() string      { return "panicky" }
func (p *panicky) Kinds() []ast.Kind { return []ast.Kind{ast.KindIdentifierReference} }
func (p *panicky) Run(*lint.Context, ast.NodeID) {
	p.calls++
	panic("boom")
}

type reporterRule struct{}

func (reporterRule) Name() string      { return "report-debugger" }
func (reporterRule) Kinds() []ast.Kind { return []ast.Kind{ast.KindDebuggerStatement} }
func (reporterRule) Meta() lint.Meta   { return lint.Meta{Severity: diag.SevError} }
func (reporterRule) Run(ctx *lint.Context, id ast.NodeID) {
	ctx.Diag(ctx.Tree.Span(id), "debugger").Emit()
}

type onceRule struct{ ran int }

func (o *onceRule) Name() string          { return "once" }
func (o *onceRule) RunOnce(*lint.Context) { o.ran++ }

func TestInterestNormalizes(t *testing.T) {
	in := lint.KindsInterest(ast.KindCallExpression, ast.KindIdentifierReference, ast.KindCallExpression)
	if diff := cmp.Diff([]ast.Kind{ast.KindIdentifierReference, ast.KindCallExpression}, in.Kinds()); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	for _, k := range ast.Kinds() {
		want := k == ast.KindCallExpression || k == ast.KindIdentifierReference
		if in.Wants(k) != want {
			t.Fatalf("expected Wants(%s) == %v", k, want)
		}
	}
	if !lint.KindsInterest().IsAny() || !lint.KindsInterest(ast.KindInvalid).IsAny() {
		t.Fatalf("expected empty interest to resolve to any")
	}
}

func TestAnyInterestFiresOnEveryNode(t *testing.T) {
	fx := fixture.JS(t, "function f(a) { return a + 1; }\nf(2);")
	all := &recorder{name: "all"}
	calls := &recorder{name: "calls", kinds: []ast.Kind{ast.KindCallExpression}}
	reg := lint.MustRegistry(all, calls)
	l := lint.NewLinter(reg, trace.Nop)

	if got := l.Index().Defects(); len(got) != 1 {
		t.Fatalf("expected one metadata defect, got %v", got)
	}
	res, err := l.Lint(context.Background(), lint.File{Tree: fx.Tree, Source: fx.File, Oracle: fx.Table})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(all.seen) != res.Visited || res.Visited != fx.Tree.Len() {
		t.Fatalf("expected any-rule on all %d nodes, got %d (visited %d)", fx.Tree.Len(), len(all.seen), res.Visited)
	}
	if diff := cmp.Diff([]ast.Kind{ast.KindCallExpression}, calls.seen); diff != "" {
		t.Fatalf("call dispatch mismatch (-want +got):\n%s", diff)
	}
}

func TestPanickingRuleIsIsolated(t *testing.T) {
	fx := fixture.JS(t, "a; b; debugger; c;")
	p := &panicky{}
	bag := diag.NewBag(0)
	l := lint.NewLinter(lint.MustRegistry(p, reporterRule{}), nil)
	res, err := l.Lint(context.Background(), lint.File{
		Tree: fx.Tree, Source: fx.File, Oracle: fx.Table,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("expected failed rule to be skipped after the first panic, got %d calls", p.calls)
	}
	if len(res.Failures) != 1 || res.Failures[0].Rule != "panicky" || !res.Failures[0].Node.IsValid() {
		t.Fatalf("unexpected failures %v", res.Failures)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != "report-debugger" || items[0].Severity != diag.SevError {
		t.Fatalf("expected the other rule to keep reporting, got %v", items)
	}
}

func TestCancelledLintStops(t *testing.T) {
	fx := fixture.JS(t, "a; b; c;")
	rec := &recorder{name: "all"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := lint.NewLinter(lint.MustRegistry(rec), nil).Lint(ctx, lint.File{Tree: fx.Tree, Source: fx.File, Oracle: fx.Table})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rec.seen) != 0 {
		t.Fatalf("expected no dispatch after cancellation, got %d", len(rec.seen))
	}
}

func TestRegistryConfigure(t *testing.T) {
	o := &onceRule{}
	reg := lint.MustRegistry(reporterRule{}, o)
	if names := []string{reg.Rules()[0].Name(), reg.Rules()[1].Name()}; names[0] != "once" {
		t.Fatalf("expected rules sorted by name, got %v", names)
	}
	if err := reg.Configure("missing", lint.Setting{}); !errors.Is(err, lint.ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
	if err := reg.Configure("once", lint.Setting{Options: lint.Options{"x": 1}}); err == nil {
		t.Fatalf("expected error for options on a non-configurable rule")
	}
	if err := reg.Configure("report-debugger", lint.Setting{Off: true}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	rules, _ := reg.Enabled()
	if len(rules) != 1 || rules[0].Name() != "once" {
		t.Fatalf("expected only once enabled, got %v", rules)
	}
	if _, err := lint.NewRegistry(o, o); !errors.Is(err, lint.ErrDuplicateRule) {
		t.Fatalf("expected ErrDuplicateRule, got %v", err)
	}

	fx := fixture.JS(t, "debugger;")
	bag := diag.NewBag(0)
	if _, err := lint.NewLinter(reg, nil).Lint(context.Background(), lint.File{
		Tree: fx.Tree, Source: fx.File, Oracle: fx.Table, Reporter: diag.BagReporter{Bag: bag},
	}); err != nil {
		t.Fatalf("lint: %v", err)
	}
	if o.ran != 1 || bag.Len() != 0 {
		t.Fatalf("expected once rule to run and disabled rule to stay quiet, got ran=%d diags=%d", o.ran, bag.Len())
	}
}

// generatedTree builds a random tree holding one node of every kind under
// a Program root. Kinds are created in shuffled order and adopt nodes made
// earlier as children, so the shape differs per seed.
func generatedTree(seed uint64) *ast.Tree {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	kinds := ast.Kinds()
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	b := ast.NewBuilder(1, nil, nil, uint(len(kinds)+1))
	var pool []ast.NodeID
	take := func() ast.NodeID {
		if len(pool) == 0 || rng.IntN(3) == 0 {
			return ast.NoNodeID
		}
		i := rng.IntN(len(pool))
		id := pool[i]
		pool = append(pool[:i], pool[i+1:]...)
		return id
	}
	for _, k := range kinds {
		kids := make([]ast.NodeID, len(k.FixedSlots()))
		for i := range kids {
			kids[i] = take()
		}
		if k.HasTail() {
			for range rng.IntN(3) {
				if id := take(); id.IsValid() {
					kids = append(kids, id)
				}
			}
		}
		pool = append(pool, b.New(k, source.Span{}, kids...))
	}
	return b.Finish(b.New(ast.KindProgram, source.Span{}, pool...))
}

func TestAnyInterestFiresOnEveryKind(t *testing.T) {
	for seed := range uint64(8) {
		tree := generatedTree(seed)
		if err := testkit.CheckBalanced(tree, 0); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if err := testkit.CheckBalanced(tree, tree.Len()/2); err != nil {
			t.Fatalf("seed %d, stopped walk: %v", seed, err)
		}

		all := &recorder{name: "all"}
		res, err := lint.NewLinter(lint.MustRegistry(all), nil).Lint(context.Background(), lint.File{Tree: tree})
		if err != nil {
			t.Fatalf("seed %d: lint: %v", seed, err)
		}
		if res.Visited != tree.Len() || len(all.seen) != tree.Len() {
			t.Fatalf("seed %d: expected %d dispatches, got %d (visited %d)", seed, tree.Len(), len(all.seen), res.Visited)
		}
		seen := make(map[ast.Kind]bool, len(all.seen))
		for _, k := range all.seen {
			seen[k] = true
		}
		for _, k := range ast.Kinds() {
			if !seen[k] {
				t.Fatalf("seed %d: expected the any-rule to see %s", seed, k)
			}
		}
	}
}
