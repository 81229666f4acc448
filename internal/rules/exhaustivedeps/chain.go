package exhaustivedeps

import (
	"slices"
	"strings"

	"jsvet/internal/ast"
	"jsvet/internal/source"
	"jsvet/internal/symbols"
)

// Dependency is a root identifier plus the property steps read from it.
type Dependency struct {
	Name     string
	Chain    []string
	Optional []bool // Optional[i] is set when Chain[i] was reached with ?.
	Ref      ast.NodeID
	Symbol   symbols.SymbolID
	Span     source.Span
}

// Key is the dotted path. Optional markers do not take part.
func (d Dependency) Key() string {
	if len(d.Chain) == 0 {
		return d.Name
	}
	return d.Name + "." + strings.Join(d.Chain, ".")
}

// Text renders the dependency as source, keeping ?. where it was used.
func (d Dependency) Text() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	for i, seg := range d.Chain {
		if i < len(d.Optional) && d.Optional[i] {
			sb.WriteString("?.")
		} else {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

func (d Dependency) Equal(o Dependency) bool {
	return d.Name == o.Name && slices.Equal(d.Chain, o.Chain)
}

// Contains reports whether o reads d or something below it.
func (d Dependency) Contains(o Dependency) bool {
	if d.Name != o.Name || len(d.Chain) > len(o.Chain) {
		return false
	}
	return slices.Equal(d.Chain, o.Chain[:len(d.Chain)])
}

func (d Dependency) endsWithCurrent() bool {
	return len(d.Chain) > 0 && d.Chain[len(d.Chain)-1] == "current"
}

// isWrapper reports expression wrappers a chain passes through unchanged.
func isWrapper(k ast.Kind) bool {
	switch k {
	case ast.KindParenthesizedExpression, ast.KindChainExpression, ast.KindTSNonNullExpression,
		ast.KindTSAsExpression, ast.KindTSSatisfiesExpression, ast.KindTSTypeAssertion:
		return true
	}
	return false
}

// capturedChain extends the reference ref upward through static member
// accesses. It stops before .current, at computed access, and anything
// else it cannot follow. A member used as a callee or assigned to drops
// its last step, since only its object is read.
func capturedChain(t *ast.Tree, ref ast.NodeID) (Dependency, ast.NodeID) {
	dep := Dependency{Name: t.Name(ref), Ref: ref}
	tops := []ast.NodeID{ref}
	cur := ref
	for {
		p := t.Parent(cur)
		if isWrapper(t.Kind(p)) {
			cur = p
			continue
		}
		if t.Kind(p) != ast.KindStaticMemberExpression || t.Child(p, ast.SlotObject) != cur {
			break
		}
		prop := t.Name(t.Child(p, ast.SlotProperty))
		if prop == "current" {
			break
		}
		dep.Chain = append(dep.Chain, prop)
		dep.Optional = append(dep.Optional, t.Node(p).Flags.Has(ast.FlagOptional))
		cur = p
		tops = append(tops, p)
	}
	if len(dep.Chain) > 0 {
		p := t.Parent(cur)
		for isWrapper(t.Kind(p)) {
			p = t.Parent(p)
		}
		callee := t.Kind(p) == ast.KindCallExpression && t.Unparen(t.Child(p, ast.SlotCallee)) == t.Unparen(cur)
		assigned := t.Kind(p) == ast.KindAssignmentExpression && t.Unparen(t.Child(p, ast.SlotLeft)) == t.Unparen(cur)
		if callee || assigned {
			dep.Chain = dep.Chain[:len(dep.Chain)-1]
			dep.Optional = dep.Optional[:len(dep.Optional)-1]
			tops = tops[:len(tops)-1]
			cur = tops[len(tops)-1]
		}
	}
	top := tops[len(tops)-1]
	dep.Span = t.Span(top)
	return dep, cur
}

// declaredChain resolves a dependency list element. ok is false for
// anything other than an identifier followed by static member steps.
func declaredChain(t *ast.Tree, el ast.NodeID) (Dependency, bool) {
	var steps []ast.NodeID
	cur := el
	for {
		switch k := t.Kind(cur); {
		case isWrapper(k):
			cur = t.Child(cur, ast.SlotExpression)
			continue
		case k == ast.KindStaticMemberExpression:
			steps = append(steps, cur)
			cur = t.Child(cur, ast.SlotObject)
			continue
		case k == ast.KindIdentifierReference:
		default:
			return Dependency{}, false
		}
		break
	}
	dep := Dependency{Name: t.Name(cur), Ref: cur, Span: t.Span(el)}
	for i := len(steps) - 1; i >= 0; i-- {
		dep.Chain = append(dep.Chain, t.Name(t.Child(steps[i], ast.SlotProperty)))
		dep.Optional = append(dep.Optional, t.Node(steps[i]).Flags.Has(ast.FlagOptional))
	}
	return dep, true
}

// narrow returns the chains read through an object pattern that
// destructures the value at top, e.g. `const {x, y} = props` yields
// props.x and props.y. Array patterns, rest elements and computed keys
// keep the full chain.
func narrow(t *ast.Tree, dep Dependency, top ast.NodeID) []Dependency {
	decl := t.Parent(top)
	for isWrapper(t.Kind(decl)) {
		decl = t.Parent(decl)
	}
	if t.Kind(decl) != ast.KindVariableDeclarator || t.Unparen(t.Child(decl, ast.SlotInit)) != t.Unparen(top) {
		return []Dependency{dep}
	}
	pat := t.Child(decl, ast.SlotID)
	if t.Kind(pat) != ast.KindObjectPattern {
		return []Dependency{dep}
	}
	props := t.Tail(pat)
	if len(props) == 0 {
		return []Dependency{dep}
	}
	out := make([]Dependency, 0, len(props))
	for _, p := range props {
		if t.Kind(p) != ast.KindBindingProperty || t.Node(p).Flags.Has(ast.FlagComputed) {
			return []Dependency{dep}
		}
		key := t.Child(p, ast.SlotKey)
		switch t.Kind(key) {
		case ast.KindIdentifierName, ast.KindBindingIdentifier, ast.KindIdentifierReference:
		default:
			return []Dependency{dep}
		}
		d := dep
		d.Chain = append(append([]string(nil), dep.Chain...), t.Name(key))
		d.Optional = append(append([]bool(nil), dep.Optional...), false)
		out = append(out, d)
	}
	return out
}
