package ast

import (
	"fmt"
	"io"
	"strings"
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagVar, "var"}, {FlagLet, "let"}, {FlagConst, "const"}, {FlagUsing, "using"},
	{FlagAsync, "async"}, {FlagGenerator, "generator"}, {FlagExpressionBody, "expr-body"},
	{FlagComputed, "computed"}, {FlagShorthand, "shorthand"}, {FlagMethod, "method"},
	{FlagGetter, "get"}, {FlagSetter, "set"}, {FlagConstructor, "constructor"},
	{FlagStatic, "static"}, {FlagOptional, "optional"}, {FlagPrefix, "prefix"},
	{FlagDelegate, "delegate"}, {FlagTrue, "true"}, {FlagAwait, "await"},
	{FlagSelfClosing, "self-closing"}, {FlagModule, "module"}, {FlagTypeOnly, "type-only"},
	{FlagDeclare, "declare"}, {FlagTypeScript, "ts"}, {FlagJSX, "jsx"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, ",")
}

// Dump writes an indented outline of the subtree at id, one node per line:
//
//	slot: Kind [start,end) "name" op flags
func Dump(w io.Writer, t *Tree, id NodeID) error {
	return dumpNode(w, t, id, "", 0)
}

func dumpNode(w io.Writer, t *Tree, id NodeID, label string, depth int) error {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		sb.WriteString(label)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "%s [%d,%d)", n.Kind, n.Span.Start, n.Span.End)
	if name := t.Name(id); name != "" {
		fmt.Fprintf(&sb, " %q", name)
	}
	if n.Op != OpNone {
		sb.WriteString(" ")
		sb.WriteString(n.Op.String())
	}
	if n.Flags != 0 {
		sb.WriteString(" <")
		sb.WriteString(n.Flags.String())
		sb.WriteString(">")
	}
	sb.WriteByte('\n')
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	slots := n.Kind.FixedSlots()
	for i, kid := range n.Kids {
		label := n.Kind.TailName()
		if i < len(slots) {
			label = slots[i].String()
		}
		if err := dumpNode(w, t, kid, label, depth+1); err != nil {
			return err
		}
	}
	return nil
}
