package exhaustivedeps

import (
	"strings"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/source"
)

// Fixes rewrite the whole list node from element text, so the result stays
// well formed whatever is removed or appended.

func serialize(texts []string) string {
	return "[" + strings.Join(texts, ", ") + "]"
}

func elementTexts(t *ast.Tree, list ast.NodeID, drop source.Span) []string {
	var out []string
	for _, el := range t.Tail(list) {
		if t.Kind(el) == ast.KindElision || t.Span(el) == drop {
			continue
		}
		out = append(out, t.Text(el))
	}
	return out
}

func removeFix(t *ast.Tree, list, el ast.NodeID, app diag.Applicability) diag.Fix {
	title := "remove '" + t.Text(el) + "' from the dependency list"
	return fix.ReplaceSpan(title, t.Span(list), serialize(elementTexts(t, list, t.Span(el))), fix.WithApplicability(app))
}

func appendFix(t *ast.Tree, list ast.NodeID, deps []Dependency) diag.Fix {
	texts := elementTexts(t, list, source.Span{})
	for _, d := range deps {
		texts = append(texts, d.Text())
	}
	return fix.ReplaceSpan("update the dependency list", t.Span(list), serialize(texts), fix.Dangerous())
}

// addListFix appends a list argument after arg.
func addListFix(t *ast.Tree, arg ast.NodeID, deps []Dependency) diag.Fix {
	texts := make([]string, len(deps))
	for i, d := range deps {
		texts[i] = d.Text()
	}
	return fix.InsertText("add a dependency list", t.Span(arg), ", "+serialize(texts), fix.Dangerous())
}
