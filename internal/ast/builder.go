package ast

import (
	"fmt"

	"jsvet/internal/source"
)

// Builder accumulates nodes for one file. Children are created before their
// parent; Finish links parents and seals the tree.
type Builder struct {
	tree *Tree
}

func NewBuilder(file source.FileID, src []byte, strings *source.Interner, capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{tree: &Tree{
		File:    file,
		Source:  src,
		Strings: strings,
		Nodes:   NewArena[Node](capHint),
	}}
}

// New allocates a node of kind. kids lists the fixed slots in layout order,
// followed by tail children; missing trailing slots are filled with NoNodeID.
// Passing tail children to a kind without a tail is a programmer error.
func (b *Builder) New(kind Kind, sp source.Span, kids ...NodeID) NodeID {
	fixedN := len(kind.FixedSlots())
	if len(kids) > fixedN && !kind.HasTail() {
		panic(fmt.Sprintf("ast: %s takes %d children, got %d", kind, fixedN, len(kids)))
	}
	if len(kids) < fixedN {
		padded := make([]NodeID, fixedN)
		copy(padded, kids)
		kids = padded
	}
	return NodeID(b.tree.Nodes.Allocate(Node{Kind: kind, Span: sp, Kids: kids}))
}

// NewNamed is New plus an interned name.
func (b *Builder) NewNamed(kind Kind, sp source.Span, name string, kids ...NodeID) NodeID {
	id := b.New(kind, sp, kids...)
	b.tree.Node(id).Name = b.tree.Strings.Intern(name)
	return id
}

// Node gives mutable access while building.
func (b *Builder) Node(id NodeID) *Node {
	return b.tree.Node(id)
}

func (b *Builder) SetFlags(id NodeID, f Flags) {
	if n := b.tree.Node(id); n != nil {
		n.Flags |= f
	}
}

func (b *Builder) SetOp(id NodeID, op Op) {
	if n := b.tree.Node(id); n != nil {
		n.Op = op
	}
}

// Text returns the source text under sp.
func (b *Builder) Text(sp source.Span) string {
	end := min(int(sp.End), len(b.tree.Source))
	start := min(int(sp.Start), end)
	return string(b.tree.Source[start:end])
}

// Finish records root, links every child to its parent, and returns the tree.
// The builder must not be used afterwards.
func (b *Builder) Finish(root NodeID) *Tree {
	t := b.tree
	t.Root = root
	nodes := t.Nodes.Slice()
	for i := range nodes {
		parent := NodeID(i + 1)
		for _, kid := range nodes[i].Kids {
			if kid.IsValid() {
				nodes[kid-1].Parent = parent
			}
		}
	}
	b.tree = nil
	return t
}
