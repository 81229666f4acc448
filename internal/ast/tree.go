package ast

import (
	"jsvet/internal/source"
)

// Tree is a lowered source file. It is immutable once Builder.Finish returns
// and may be read from several goroutines.
type Tree struct {
	File    source.FileID
	Source  []byte
	Strings *source.Interner
	Nodes   *Arena[Node]
	Root    NodeID
}

func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, KindInvalid for NoNodeID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Child(id NodeID, slot Slot) NodeID {
	return t.Node(id).Child(slot)
}

func (t *Tree) Tail(id NodeID) []NodeID {
	return t.Node(id).Tail()
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{File: t.File}
}

// Name returns the interned name of id ("" if it has none).
func (t *Tree) Name(id NodeID) string {
	n := t.Node(id)
	if n == nil || n.Name == source.NoStringID {
		return ""
	}
	return t.Strings.MustLookup(n.Name)
}

// Text returns the source text of id.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	end := min(int(n.Span.End), len(t.Source))
	start := min(int(n.Span.Start), end)
	return string(t.Source[start:end])
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return int(t.Nodes.Len())
}

// Unparen strips parentheses and TypeScript wrappers that do not change the
// runtime value (`(x)`, `x as T`, `x!`, `x satisfies T`, `<T>x`).
func (t *Tree) Unparen(id NodeID) NodeID {
	for {
		switch t.Kind(id) {
		case KindParenthesizedExpression, KindTSAsExpression, KindTSSatisfiesExpression,
			KindTSNonNullExpression, KindTSTypeAssertion, KindTSInstantiationExpression:
			id = t.Child(id, SlotExpression)
		default:
			return id
		}
	}
}

// Declaration unwraps export wrappers and expression statements so callers
// see the declaration or expression they carry.
func (t *Tree) Declaration(id NodeID) NodeID {
	switch t.Kind(id) {
	case KindExportNamedDeclaration, KindExportDefaultDeclaration:
		if d := t.Child(id, SlotDeclaration); d.IsValid() {
			return d
		}
	case KindExpressionStatement:
		return t.Child(id, SlotExpression)
	}
	return id
}

// CategoryOf is the normalized category of id: export wrappers take the
// category of the declaration they carry.
func (t *Tree) CategoryOf(id NodeID) Category {
	k := t.Kind(id)
	if k == KindExportNamedDeclaration || k == KindExportDefaultDeclaration {
		if d := t.Child(id, SlotDeclaration); d.IsValid() {
			if c := t.Kind(d).Category(); c != CategoryExpression {
				return c
			}
		}
	}
	return k.Category()
}

// Ancestors calls fn for each ancestor of id, closest first, until fn returns false.
func (t *Tree) Ancestors(id NodeID, fn func(NodeID) bool) {
	for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
		if !fn(p) {
			return
		}
	}
}

// IsAncestor reports whether anc is id or encloses it.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for ; id.IsValid(); id = t.Parent(id) {
		if id == anc {
			return true
		}
	}
	return false
}

// FunctionParams returns the parameter list items of a function-like node.
func (t *Tree) FunctionParams(fn NodeID) []NodeID {
	return t.Tail(t.Child(fn, SlotParams))
}

// CallArgs returns the argument list of a call or new expression.
func (t *Tree) CallArgs(call NodeID) []NodeID {
	return t.Tail(call)
}
