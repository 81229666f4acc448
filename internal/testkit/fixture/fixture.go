// Package fixture parses and resolves source snippets for tests in the
// packages above the parser.
package fixture

import (
	"bytes"
	"context"
	"testing"

	"fortio.org/safecast"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/parser"
	"jsvet/internal/source"
	"jsvet/internal/symbols"
)

// Fixture is one parsed and resolved file.
type Fixture struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Table   *symbols.Table
}

// JS parses src as a JSX-enabled JavaScript file.
func JS(t testing.TB, src string) *Fixture {
	t.Helper()
	return Parse(t, "test.jsx", src)
}

// TS parses src as TSX.
func TS(t testing.TB, src string) *Fixture {
	t.Helper()
	return Parse(t, "test.tsx", src)
}

// Parse picks the language from name and fails the test on syntax errors.
func Parse(t testing.TB, name, src string) *Fixture {
	t.Helper()
	lang, err := parser.LanguageForPath(name)
	if err != nil {
		t.Fatalf("language for %s: %v", name, err)
	}
	bag := diag.NewBag(0)
	fs, res, err := parser.ParseString(context.Background(), name, src, parser.Options{
		Language: lang,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Errors != 0 {
		t.Fatalf("expected no syntax errors, got %v", bag.Items())
	}
	return &Fixture{
		FileSet: fs,
		File:    fs.Get(res.Tree.File),
		Tree:    res.Tree,
		Table:   symbols.ResolveFile(res.Tree, symbols.ResolveOptions{}),
	}
}

// FindAll returns the nodes of kind in source order.
func (f *Fixture) FindAll(kind ast.Kind) []ast.NodeID {
	var out []ast.NodeID
	var visit func(id ast.NodeID)
	visit = func(id ast.NodeID) {
		n := f.Tree.Node(id)
		if n == nil {
			return
		}
		if n.Kind == kind {
			out = append(out, id)
		}
		for _, k := range n.Kids {
			visit(k)
		}
	}
	visit(f.Tree.Root)
	return out
}

// Find returns the first node of kind, failing the test if there is none.
func (f *Fixture) Find(t testing.TB, kind ast.Kind) ast.NodeID {
	t.Helper()
	all := f.FindAll(kind)
	if len(all) == 0 {
		t.Fatalf("no %s in source", kind)
	}
	return all[0]
}

// Offset returns the byte offset of the first occurrence of needle.
func (f *Fixture) Offset(t testing.TB, needle string) uint32 {
	t.Helper()
	i := bytes.Index(f.Tree.Source, []byte(needle))
	if i < 0 {
		t.Fatalf("%q not found in source", needle)
	}
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		t.Fatalf("offset: %v", err)
	}
	return off
}
