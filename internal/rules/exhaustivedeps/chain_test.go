package exhaustivedeps

import (
	"strings"
	"testing"

	"jsvet/internal/ast"
	"jsvet/internal/testkit/fixture"
)

func dep(path string) Dependency {
	parts := strings.Split(path, ".")
	return Dependency{Name: parts[0], Chain: parts[1:], Optional: make([]bool, len(parts)-1)}
}

func TestContainmentLaws(t *testing.T) {
	paths := []string{"a", "a.b", "a.b.c", "a.c", "b", "b.b"}
	for _, p := range paths {
		if !dep(p).Contains(dep(p)) {
			t.Fatalf("expected %s to contain itself", p)
		}
	}
	for _, x := range paths {
		for _, y := range paths {
			dx, dy := dep(x), dep(y)
			if dx.Contains(dy) && dy.Contains(dx) && x != y {
				t.Fatalf("expected antisymmetry, %s and %s contain each other", x, y)
			}
			for _, z := range paths {
				dz := dep(z)
				if dx.Contains(dy) && dy.Contains(dz) && !dx.Contains(dz) {
					t.Fatalf("expected transitivity over %s, %s, %s", x, y, z)
				}
			}
		}
	}
	if !dep("a.b").Contains(dep("a.b.c")) {
		t.Fatalf("expected a.b to contain a.b.c")
	}
	if dep("a.b.c").Contains(dep("a.b")) {
		t.Fatalf("expected a.b.c not to contain a.b")
	}
	if dep("a.b").Contains(dep("b.b")) {
		t.Fatalf("expected different roots to be unrelated")
	}
}

func TestDependencyText(t *testing.T) {
	d := Dependency{Name: "a", Chain: []string{"b", "c"}, Optional: []bool{true, false}}
	if d.Key() != "a.b.c" {
		t.Fatalf("expected key a.b.c, got %q", d.Key())
	}
	if d.Text() != "a?.b.c" {
		t.Fatalf("expected text a?.b.c, got %q", d.Text())
	}
	if !d.Equal(dep("a.b.c")) {
		t.Fatalf("expected equality to ignore optional markers")
	}
}

func TestMinimalKeepsFirstAndDropsCovered(t *testing.T) {
	got := minimal([]Dependency{dep("a.b.c"), dep("x"), dep("a.b"), dep("x"), dep("a.bc")})
	keys := make([]string, len(got))
	for i, d := range got {
		keys[i] = d.Key()
	}
	if strings.Join(keys, " ") != "x a.b a.bc" {
		t.Fatalf("expected x a.b a.bc, got %v", keys)
	}
}

func TestCapturedChain(t *testing.T) {
	fx := fixture.TS(t, `a.b?.c.current.d;
f.g(1);
h.i = 2;
(j!.k as any).l;
m.n[o].p;`)
	want := map[string]string{
		"a": "a.b?.c",
		"f": "f",
		"h": "h",
		"j": "j.k.l",
		"m": "m.n",
	}
	for _, ref := range fx.FindAll(ast.KindIdentifierReference) {
		name := fx.Tree.Name(ref)
		w, ok := want[name]
		if !ok {
			continue
		}
		d, _ := capturedChain(fx.Tree, ref)
		if d.Text() != w {
			t.Fatalf("chain of %s: expected %s, got %s", name, w, d.Text())
		}
		delete(want, name)
	}
	if len(want) != 0 {
		t.Fatalf("references not found: %v", want)
	}
}

func TestDeclaredChain(t *testing.T) {
	fx := fixture.JS(t, `[a.b.c, (d).e, f[0], g()];`)
	arr := fx.Find(t, ast.KindArrayExpression)
	var got []string
	for _, el := range fx.Tree.Tail(arr) {
		d, ok := declaredChain(fx.Tree, el)
		if !ok {
			got = append(got, "!")
			continue
		}
		got = append(got, d.Key())
	}
	if strings.Join(got, " ") != "a.b.c d.e ! !" {
		t.Fatalf("expected a.b.c d.e ! !, got %v", got)
	}
}
