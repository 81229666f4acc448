package exhaustivedeps

import (
	"regexp"
	"slices"

	"jsvet/internal/ast"
)

// hookInfo says where a reactive hook takes its callback and list.
type hookInfo struct {
	callback     int
	list         int
	effect       bool // tolerates extra dependencies
	requiresList bool // meaningless without a list
}

var knownHooks = map[string]hookInfo{
	"useEffect":           {callback: 0, list: 1, effect: true},
	"useLayoutEffect":     {callback: 0, list: 1, effect: true},
	"useInsertionEffect":  {callback: 0, list: 1, effect: true},
	"useCallback":         {callback: 0, list: 1, requiresList: true},
	"useMemo":             {callback: 0, list: 1, requiresList: true},
	"useImperativeHandle": {callback: 1, list: 2},
}

// calleeName returns the hook name of `useX` or `React.useX`.
func calleeName(t *ast.Tree, callee ast.NodeID) (string, bool) {
	callee = t.Unparen(callee)
	switch t.Kind(callee) {
	case ast.KindIdentifierReference:
		return t.Name(callee), true
	case ast.KindStaticMemberExpression:
		obj := t.Child(callee, ast.SlotObject)
		if t.Kind(obj) == ast.KindIdentifierReference && t.Name(obj) == "React" {
			return t.Name(t.Child(callee, ast.SlotProperty)), true
		}
	}
	return "", false
}

// lookupHook classifies call. Names matching additional are effect-like
// with the callback first.
func lookupHook(t *ast.Tree, call ast.NodeID, additional *regexp.Regexp) (hookInfo, bool) {
	name, ok := calleeName(t, t.Child(call, ast.SlotCallee))
	if !ok {
		return hookInfo{}, false
	}
	if info, ok := knownHooks[name]; ok {
		return info, true
	}
	if additional != nil && additional.MatchString(name) {
		return hookInfo{callback: 0, list: 1, effect: true}, true
	}
	return hookInfo{}, false
}

// isHookCall reports whether init is a call to one of names.
func isHookCall(t *ast.Tree, init ast.NodeID, names ...string) bool {
	init = t.Unparen(init)
	if t.Kind(init) != ast.KindCallExpression {
		return false
	}
	name, ok := calleeName(t, t.Child(init, ast.SlotCallee))
	if !ok {
		return false
	}
	return slices.Contains(names, name)
}
