package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"

	"jsvet/internal/source"
	"jsvet/internal/symbols"
)

// SemanticsOutput is the scope tree and symbol table of one file.
type SemanticsOutput struct {
	File       string       `json:"file"`
	Scopes     []ScopeJSON  `json:"scopes"`
	Symbols    []SymbolJSON `json:"symbols"`
	Unresolved []string     `json:"unresolved,omitempty"`
}

type ScopeJSON struct {
	ID       uint32   `json:"id"`
	Flags    string   `json:"flags"`
	Parent   uint32   `json:"parent,omitempty"`
	Span     SpanJSON `json:"span"`
	Symbols  []uint32 `json:"symbols,omitempty"`
	Children []uint32 `json:"children,omitempty"`
}

type SymbolJSON struct {
	ID         uint32   `json:"id"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Scope      uint32   `json:"scope"`
	Span       SpanJSON `json:"span"`
	Flags      []string `json:"flags,omitempty"`
	References int      `json:"references"`
}

type SpanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

func spanJSON(sp source.Span) SpanJSON { return SpanJSON{Start: sp.Start, End: sp.End} }

func toUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("semantics id overflow: %w", err))
	}
	return v
}

// BuildSemantics flattens table. Scope and symbol ids start at 1.
func BuildSemantics(table *symbols.Table, fs *source.FileSet, file source.FileID, mode PathMode) SemanticsOutput {
	out := SemanticsOutput{
		File:       formatPath(fs, file, mode),
		Scopes:     make([]ScopeJSON, 0, table.Scopes.Len()),
		Symbols:    make([]SymbolJSON, 0, table.Symbols.Len()),
		Unresolved: table.Unresolved(),
	}
	for i := 1; i <= table.Scopes.Len(); i++ {
		id := symbols.ScopeID(toUint32(i))
		sc := table.Scopes.Get(id)
		sj := ScopeJSON{
			ID:     uint32(id),
			Flags:  sc.Flags.String(),
			Parent: uint32(sc.Parent),
			Span:   spanJSON(sc.Span),
		}
		for _, s := range sc.Symbols {
			sj.Symbols = append(sj.Symbols, uint32(s))
		}
		for _, c := range sc.Children {
			sj.Children = append(sj.Children, uint32(c))
		}
		out.Scopes = append(out.Scopes, sj)
	}
	for i := 1; i <= table.Symbols.Len(); i++ {
		id := symbols.SymbolID(toUint32(i))
		sym := table.Symbols.Get(id)
		out.Symbols = append(out.Symbols, SymbolJSON{
			ID:         uint32(id),
			Name:       table.Name(id),
			Kind:       sym.Kind.String(),
			Scope:      uint32(sym.Scope),
			Span:       spanJSON(sym.Span),
			Flags:      sym.Flags.Strings(),
			References: len(table.ReferencesOf(id)),
		})
	}
	return out
}

// SemanticsJSON writes BuildSemantics as indented JSON.
func SemanticsJSON(w io.Writer, out SemanticsOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// SemanticsText writes the scope tree as an indented outline with the
// symbols of each scope listed under it.
func SemanticsText(w io.Writer, out SemanticsOutput) error {
	if len(out.Scopes) == 0 {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", out.File)
	var visit func(id uint32, depth int)
	visit = func(id uint32, depth int) {
		sc := out.Scopes[id-1]
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(&sb, "%sscope#%d %s [%d,%d)\n", indent, sc.ID, sc.Flags, sc.Span.Start, sc.Span.End)
		for _, sid := range sc.Symbols {
			sym := out.Symbols[sid-1]
			fmt.Fprintf(&sb, "%s  %s %s refs=%d", indent, sym.Kind, sym.Name, sym.References)
			if len(sym.Flags) > 0 {
				fmt.Fprintf(&sb, " %s", strings.Join(sym.Flags, ","))
			}
			sb.WriteByte('\n')
		}
		for _, c := range sc.Children {
			visit(c, depth+1)
		}
	}
	for _, sc := range out.Scopes {
		if sc.Parent == 0 {
			visit(sc.ID, 0)
		}
	}
	if len(out.Unresolved) > 0 {
		fmt.Fprintf(&sb, "unresolved: %s\n", strings.Join(out.Unresolved, ", "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
