package ast

import (
	"jsvet/internal/source"
)

// Node is one syntax node. Kids follows the layout of Kind: the fixed slots
// in declaration order (NoNodeID when an optional child is absent), then the
// variadic tail.
type Node struct {
	Kind   Kind
	Op     Op
	Flags  Flags
	Span   source.Span
	Name   source.StringID // identifier text, property name, cooked string value, directive text
	Parent NodeID
	Kids   []NodeID
}

// Child returns the node in slot, or NoNodeID when the kind has no such slot
// or the child is absent.
func (n *Node) Child(slot Slot) NodeID {
	if n == nil || n.Kind >= KindCount {
		return NoNodeID
	}
	i := slotIndex[n.Kind][slot]
	if i < 0 || int(i) >= len(n.Kids) {
		return NoNodeID
	}
	return n.Kids[i]
}

// Tail returns the variadic children that follow the fixed slots.
func (n *Node) Tail() []NodeID {
	if n == nil || n.Kind >= KindCount || kindTable[n.Kind].tail == "" {
		return nil
	}
	fixed := len(kindTable[n.Kind].slots)
	if fixed >= len(n.Kids) {
		return nil
	}
	return n.Kids[fixed:]
}

// DeclKind returns the declaration keyword flag (FlagVar, FlagLet, ...) of a
// VariableDeclaration.
func (n *Node) DeclKind() Flags {
	return n.Flags & FlagDeclKindMask
}
