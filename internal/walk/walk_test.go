package walk_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsvet/internal/ast"
	"jsvet/internal/source"
	"jsvet/internal/testkit"
	"jsvet/internal/walk"
)

type recorder struct {
	walk.NopVisitor
	tree   *ast.Tree
	events []string
	skip   ast.Kind
}

func (r *recorder) Enter(ev walk.Event) bool {
	r.events = append(r.events, "enter "+ev.Kind().String())
	return ev.Kind() != r.skip
}

func (r *recorder) Leave(ev walk.Event) {
	r.events = append(r.events, "leave "+ev.Kind().String())
}

func (r *recorder) EnterScope(flags walk.ScopeFlags, id ast.NodeID) {
	r.events = append(r.events, fmt.Sprintf("scope %s %s", r.tree.Kind(id), flags))
}

func (r *recorder) LeaveScope(id ast.NodeID) {
	r.events = append(r.events, "unscope "+r.tree.Kind(id).String())
}

func span() source.Span { return source.Span{File: 1} }

// function f() { if (a) {} }
func buildFunction(directive string) *ast.Tree {
	b := ast.NewBuilder(1, nil, nil, 0)
	name := b.NewNamed(ast.KindBindingIdentifier, span(), "f")
	params := b.New(ast.KindFormalParameters, span())
	test := b.NewNamed(ast.KindIdentifierReference, span(), "a")
	block := b.New(ast.KindBlockStatement, span())
	ifs := b.New(ast.KindIfStatement, span(), test, block)
	body := b.New(ast.KindFunctionBody, span(), ifs)
	fn := b.New(ast.KindFunctionDeclaration, span(), name, ast.NoNodeID, params, ast.NoNodeID, body)
	var stmts []ast.NodeID
	if directive != "" {
		stmts = append(stmts, b.NewNamed(ast.KindDirective, span(), directive))
	}
	stmts = append(stmts, fn)
	return b.Finish(b.New(ast.KindProgram, span(), stmts...))
}

func TestWalkOrder(t *testing.T) {
	tree := buildFunction("")
	r := &recorder{tree: tree}
	walk.Walk(tree, tree.Root, r)
	want := []string{
		"enter Program",
		"scope Program top",
		"enter FunctionDeclaration",
		"scope FunctionDeclaration function",
		"enter BindingIdentifier",
		"leave BindingIdentifier",
		"enter FormalParameters",
		"leave FormalParameters",
		"enter FunctionBody",
		"enter IfStatement",
		"enter IdentifierReference",
		"leave IdentifierReference",
		"enter BlockStatement",
		"scope BlockStatement block",
		"unscope BlockStatement",
		"leave BlockStatement",
		"leave IfStatement",
		"leave FunctionBody",
		"unscope FunctionDeclaration",
		"leave FunctionDeclaration",
		"unscope Program",
		"leave Program",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestEnterFalseSkipsChildrenOnly(t *testing.T) {
	tree := buildFunction("")
	r := &recorder{tree: tree, skip: ast.KindFunctionDeclaration}
	walk.Walk(tree, tree.Root, r)
	want := []string{
		"enter Program",
		"scope Program top",
		"enter FunctionDeclaration",
		"scope FunctionDeclaration function",
		"unscope FunctionDeclaration",
		"leave FunctionDeclaration",
		"unscope Program",
		"leave Program",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestStrictModeIsInherited(t *testing.T) {
	tree := buildFunction("use strict")
	r := &recorder{tree: tree}
	walk.Walk(tree, tree.Root, r)
	for _, want := range []string{
		"scope Program top|strict",
		"scope FunctionDeclaration function|strict",
		"scope BlockStatement strict",
	} {
		if !contains(r.events, want) {
			t.Fatalf("expected event %q in %v", want, r.events)
		}
	}
}

func TestMethodScopeKinds(t *testing.T) {
	b := ast.NewBuilder(1, nil, nil, 0)
	method := func(flags ast.Flags, key string) ast.NodeID {
		params := b.New(ast.KindFormalParameters, span())
		body := b.New(ast.KindFunctionBody, span())
		fn := b.New(ast.KindFunctionExpression, span(), ast.NoNodeID, ast.NoNodeID, params, ast.NoNodeID, body)
		k := b.NewNamed(ast.KindIdentifierName, span(), key)
		m := b.New(ast.KindMethodDefinition, span(), k, fn)
		b.SetFlags(m, flags)
		return m
	}
	ctor := method(ast.FlagConstructor, "constructor")
	get := method(ast.FlagGetter, "x")
	set := method(ast.FlagSetter, "x")
	plain := method(ast.FlagMethod, "run")
	cbody := b.New(ast.KindClassBody, span(), ctor, get, set, plain)
	class := b.New(ast.KindClassDeclaration, span(), ast.NoNodeID, ast.NoNodeID, ast.NoNodeID, cbody)
	tree := b.Finish(b.New(ast.KindProgram, span(), class))

	r := &recorder{tree: tree}
	walk.Walk(tree, tree.Root, r)
	var scopes []string
	for _, ev := range r.events {
		if len(ev) > 6 && ev[:6] == "scope " {
			scopes = append(scopes, ev)
		}
	}
	want := []string{
		"scope Program top",
		"scope ClassDeclaration class|strict",
		"scope FunctionExpression constructor|strict",
		"scope FunctionExpression get|strict",
		"scope FunctionExpression set|strict",
		"scope FunctionExpression function|strict",
	}
	if diff := cmp.Diff(want, scopes); diff != "" {
		t.Fatalf("unexpected scopes (-want +got):\n%s", diff)
	}
}

func TestStopKeepsEventsBalanced(t *testing.T) {
	tree := buildFunction("use strict")
	for stop := 1; stop <= tree.Len(); stop++ {
		if err := testkit.CheckBalanced(tree, stop); err != nil {
			t.Fatalf("stop after %d: %v", stop, err)
		}
	}
}

func TestStopEntersNoFurtherNodes(t *testing.T) {
	tree := buildFunction("")
	r := &stopAt{recorder: recorder{tree: tree}, at: ast.KindIfStatement}
	r.w = walk.NewWalker(tree, r)
	r.w.Walk(tree.Root)
	if contains(r.events, "enter IdentifierReference") || contains(r.events, "enter BlockStatement") {
		t.Fatalf("expected no nodes entered after stop, got %v", r.events)
	}
	if last := r.events[len(r.events)-1]; last != "leave Program" {
		t.Fatalf("expected walk to unwind to Program, got %q", last)
	}
}

type stopAt struct {
	recorder
	w  *walk.Walker
	at ast.Kind
}

func (s *stopAt) Enter(ev walk.Event) bool {
	if ev.Kind() == s.at {
		s.w.Stop()
	}
	return s.recorder.Enter(ev)
}

func contains(events []string, want string) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}
