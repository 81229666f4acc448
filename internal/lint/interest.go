package lint

import (
	"fmt"
	"slices"
	"strings"

	"jsvet/internal/ast"
)

// Interest is the set of node kinds a rule handles, or Any.
type Interest struct {
	any   bool
	kinds []ast.Kind // sorted, deduplicated
}

// AnyInterest matches every kind.
func AnyInterest() Interest { return Interest{any: true} }

// KindsInterest normalizes kinds. An empty or invalid-only set is Any.
func KindsInterest(kinds ...ast.Kind) Interest {
	out := make([]ast.Kind, 0, len(kinds))
	for _, k := range kinds {
		if k > ast.KindInvalid && k < ast.KindCount {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return AnyInterest()
	}
	slices.Sort(out)
	return Interest{kinds: slices.Compact(out)}
}

func (i Interest) IsAny() bool { return i.any }

// Kinds returns the sorted kinds, nil for Any.
func (i Interest) Kinds() []ast.Kind { return i.kinds }

// Wants reports whether kind is in the interest.
func (i Interest) Wants(kind ast.Kind) bool {
	if i.any {
		return true
	}
	_, found := slices.BinarySearch(i.kinds, kind)
	return found
}

func (i Interest) String() string {
	if i.any {
		return "any"
	}
	names := make([]string, len(i.kinds))
	for j, k := range i.kinds {
		names[j] = k.String()
	}
	return strings.Join(names, ",")
}

// Index holds the resolved interest of each rule plus per-kind dispatch
// lists. It is built once and read concurrently.
type Index struct {
	rules     []Rule
	interests []Interest
	byKind    [ast.KindCount][]int
	defects   []string
}

// NewIndex resolves the interest of every rule. Rules that implement
// NodeRule without usable KindFilter metadata fall back to Any and are
// recorded in Defects.
func NewIndex(rules []Rule) *Index {
	idx := &Index{
		rules:     rules,
		interests: make([]Interest, len(rules)),
	}
	for i, r := range rules {
		var kinds []ast.Kind
		if f, ok := r.(KindFilter); ok {
			kinds = f.Kinds()
		}
		in := KindsInterest(kinds...)
		idx.interests[i] = in
		if _, isNode := r.(NodeRule); !isNode {
			continue
		}
		if in.IsAny() {
			idx.defects = append(idx.defects, fmt.Sprintf("%s: no kind metadata, dispatched on every node", r.Name()))
		}
		for k := ast.KindInvalid + 1; k < ast.KindCount; k++ {
			if in.Wants(k) {
				idx.byKind[k] = append(idx.byKind[k], i)
			}
		}
	}
	return idx
}

// Len reports the number of indexed rules.
func (idx *Index) Len() int { return len(idx.rules) }

func (idx *Index) Rule(i int) Rule { return idx.rules[i] }

func (idx *Index) Interest(i int) Interest { return idx.interests[i] }

// Wants reports whether rule i handles kind.
func (idx *Index) Wants(i int, kind ast.Kind) bool {
	return idx.interests[i].Wants(kind)
}

// For returns the positions of the NodeRules dispatched for kind, in
// registration order.
func (idx *Index) For(kind ast.Kind) []int {
	if kind >= ast.KindCount {
		return nil
	}
	return idx.byKind[kind]
}

// Defects lists rules whose interest metadata was missing.
func (idx *Index) Defects() []string { return idx.defects }
