package parser

import (
	"context"
	"errors"
	"testing"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/testkit"
)

func parse(t *testing.T, lang Language, src string) *ast.Tree {
	t.Helper()
	bag := diag.NewBag(0)
	fs, res, err := ParseString(context.Background(), "test", src, Options{
		Language: lang,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Errors != 0 {
		t.Fatalf("expected no syntax errors, got %d: %v", res.Errors, bag.Items())
	}
	if err := testkit.CheckSpanInvariants(res.Tree, fs.Get(res.Tree.File)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	if err := testkit.CheckBalanced(res.Tree, 0); err != nil {
		t.Fatalf("balance: %v", err)
	}
	return res.Tree
}

// find returns the first node of kind in source order.
func find(tree *ast.Tree, kind ast.Kind) ast.NodeID {
	var found ast.NodeID
	var visit func(id ast.NodeID)
	visit = func(id ast.NodeID) {
		n := tree.Node(id)
		if n == nil || found.IsValid() {
			return
		}
		if n.Kind == kind {
			found = id
			return
		}
		for _, k := range n.Kids {
			visit(k)
		}
	}
	visit(tree.Root)
	return found
}

func TestLowerStateDestructuring(t *testing.T) {
	tree := parse(t, LangJavaScript, "const [count, setCount] = useState(0);")
	decl := find(tree, ast.KindVariableDeclaration)
	if tree.Node(decl).DeclKind() != ast.FlagConst {
		t.Fatalf("expected const declaration")
	}
	pat := find(tree, ast.KindArrayPattern)
	elems := tree.Tail(pat)
	if len(elems) != 2 || tree.Name(elems[0]) != "count" || tree.Name(elems[1]) != "setCount" {
		t.Fatalf("unexpected pattern elements %v", elems)
	}
	for _, e := range elems {
		if tree.Kind(e) != ast.KindBindingIdentifier {
			t.Fatalf("expected binding identifier, got %s", tree.Kind(e))
		}
	}
	call := find(tree, ast.KindCallExpression)
	if tree.Name(tree.Child(call, ast.SlotCallee)) != "useState" || len(tree.CallArgs(call)) != 1 {
		t.Fatalf("unexpected call %q", tree.Text(call))
	}
}

func TestLowerMemberChain(t *testing.T) {
	tree := parse(t, LangJavaScript, "props.foo?.bar;")
	outer := find(tree, ast.KindStaticMemberExpression)
	if tree.Name(tree.Child(outer, ast.SlotProperty)) != "bar" {
		t.Fatalf("expected outer property bar, got %q", tree.Text(outer))
	}
	if !tree.Node(outer).Flags.Has(ast.FlagOptional) {
		t.Fatalf("expected optional flag on ?.bar")
	}
	inner := tree.Child(outer, ast.SlotObject)
	if tree.Kind(inner) != ast.KindStaticMemberExpression || tree.Name(tree.Child(inner, ast.SlotObject)) != "props" {
		t.Fatalf("unexpected inner member %q", tree.Text(inner))
	}
}

func TestLowerDirectivesAndArrows(t *testing.T) {
	tree := parse(t, LangJavaScript, "'use strict';\nconst f = async (a, {b}) => a + b;\n")
	dir := find(tree, ast.KindDirective)
	if tree.Name(dir) != "use strict" {
		t.Fatalf("expected use strict directive, got %q", tree.Name(dir))
	}
	arrow := find(tree, ast.KindArrowFunctionExpression)
	flags := tree.Node(arrow).Flags
	if !flags.Has(ast.FlagAsync) || !flags.Has(ast.FlagExpressionBody) {
		t.Fatalf("expected async expression-bodied arrow, got %s", flags)
	}
	if n := len(tree.FunctionParams(arrow)); n != 2 {
		t.Fatalf("expected 2 params, got %d", n)
	}
	if tree.Kind(tree.Child(arrow, ast.SlotBody)) != ast.KindBinaryExpression {
		t.Fatalf("expected binary body")
	}
}

func TestLowerAssignmentTargetsAreReferences(t *testing.T) {
	tree := parse(t, LangJavaScript, "let a, b; [a, b] = [b, a];")
	target := find(tree, ast.KindArrayAssignmentTarget)
	for _, e := range tree.Tail(target) {
		if tree.Kind(e) != ast.KindIdentifierReference {
			t.Fatalf("expected reference in assignment target, got %s", tree.Kind(e))
		}
	}
}

func TestLowerClassMembers(t *testing.T) {
	tree := parse(t, LangJavaScript, "class A extends B { constructor() { super(); } get x() { return 1; } static y = 2; }")
	class := find(tree, ast.KindClassDeclaration)
	if tree.Name(tree.Child(class, ast.SlotSuperClass)) != "B" {
		t.Fatalf("expected superclass B")
	}
	members := tree.Tail(tree.Child(class, ast.SlotBody))
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	if !tree.Node(members[0]).Flags.Has(ast.FlagConstructor) {
		t.Fatalf("expected constructor flag")
	}
	if !tree.Node(members[1]).Flags.Has(ast.FlagGetter) {
		t.Fatalf("expected getter flag")
	}
	if tree.Kind(members[2]) != ast.KindPropertyDefinition || !tree.Node(members[2]).Flags.Has(ast.FlagStatic) {
		t.Fatalf("expected static property, got %s", tree.Kind(members[2]))
	}
}

func TestLowerJSX(t *testing.T) {
	tree := parse(t, LangJavaScript, "const el = <Foo bar={x}><div /></Foo>;")
	el := find(tree, ast.KindJSXElement)
	open := tree.Child(el, ast.SlotOpening)
	name := tree.Child(open, ast.SlotName)
	if tree.Kind(name) != ast.KindIdentifierReference || tree.Name(name) != "Foo" {
		t.Fatalf("expected component reference Foo, got %s %q", tree.Kind(name), tree.Name(name))
	}
	attr := find(tree, ast.KindJSXAttribute)
	value := tree.Child(attr, ast.SlotValue)
	if tree.Kind(value) != ast.KindJSXExpressionContainer {
		t.Fatalf("expected expression container, got %s", tree.Kind(value))
	}
	if !tree.Node(tree.Root).Flags.Has(ast.FlagJSX) {
		t.Fatalf("expected program to carry the jsx flag")
	}
}

func TestLowerTypeScript(t *testing.T) {
	tree := parse(t, LangTypeScript, "export const x = (y as Foo)!;\ninterface Foo { a: number }\n")
	if flags := tree.Node(tree.Root).Flags; !flags.Has(ast.FlagModule) || !flags.Has(ast.FlagTypeScript) {
		t.Fatalf("expected module typescript program, got %s", tree.Node(tree.Root).Flags)
	}
	as := find(tree, ast.KindTSAsExpression)
	if tree.Name(tree.Child(as, ast.SlotExpression)) != "y" {
		t.Fatalf("expected y under as-expression")
	}
	if !find(tree, ast.KindTSNonNullExpression).IsValid() || !find(tree, ast.KindTSInterfaceDeclaration).IsValid() {
		t.Fatalf("expected non-null expression and interface")
	}
	decl := find(tree, ast.KindVariableDeclaration)
	if tree.Unparen(tree.Child(tree.Tail(decl)[0], ast.SlotInit)) != tree.Child(as, ast.SlotExpression) {
		t.Fatalf("expected Unparen to strip the TS wrappers")
	}
}

func TestSyntaxErrorsAreReported(t *testing.T) {
	bag := diag.NewBag(0)
	_, res, err := ParseString(context.Background(), "bad.js", "let = ;", Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Errors == 0 || bag.Len() == 0 {
		t.Fatalf("expected syntax errors")
	}
	if bag.Items()[0].Code != diag.CodeSyntaxError {
		t.Fatalf("expected syntax-error code, got %s", bag.Items()[0].Code)
	}
	if res.Tree == nil || !res.Tree.Root.IsValid() {
		t.Fatalf("expected a tree even for invalid input")
	}
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]Language{
		"a.js": LangJavaScript, "b.JSX": LangJavaScript, "c.mjs": LangJavaScript,
		"d.ts": LangTypeScript, "e.tsx": LangTSX,
	}
	for path, want := range cases {
		got, err := LanguageForPath(path)
		if err != nil || got != want {
			t.Fatalf("LanguageForPath(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	if _, err := LanguageForPath("x.py"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}
