package walk

import "strings"

// ScopeFlags classifies a lexical scope. The kind bits (Top through Class) are
// mutually exclusive; block-like scopes carry none of them and only inherit
// StrictMode.
type ScopeFlags uint16

const (
	ScopeTop ScopeFlags = 1 << iota
	ScopeFunction
	ScopeArrow
	ScopeClassStaticBlock
	ScopeTsModuleBlock
	ScopeConstructor
	ScopeGetAccessor
	ScopeSetAccessor
	ScopeCatchClause
	ScopeClass
	ScopeStrictMode

	ScopeKindMask = ScopeTop | ScopeFunction | ScopeArrow | ScopeClassStaticBlock | ScopeTsModuleBlock |
		ScopeConstructor | ScopeGetAccessor | ScopeSetAccessor | ScopeCatchClause | ScopeClass
)

func (f ScopeFlags) Has(flag ScopeFlags) bool { return f&flag != 0 }

// IsStrict reports whether code in the scope runs in strict mode.
func (f ScopeFlags) IsStrict() bool { return f.Has(ScopeStrictMode) }

// IsFunctionLike is true for scopes that own `this` and `arguments`.
func (f ScopeFlags) IsFunctionLike() bool {
	return f.Has(ScopeFunction | ScopeConstructor | ScopeGetAccessor | ScopeSetAccessor)
}

// IsVarScope reports whether `var` declarations hoist to this scope.
func (f ScopeFlags) IsVarScope() bool {
	return f.Has(ScopeTop | ScopeFunction | ScopeArrow | ScopeConstructor | ScopeGetAccessor |
		ScopeSetAccessor | ScopeClassStaticBlock | ScopeTsModuleBlock)
}

var scopeFlagNames = [...]string{
	"top", "function", "arrow", "static-block", "ts-module", "constructor",
	"get", "set", "catch", "class", "strict",
}

func (f ScopeFlags) String() string {
	if f == 0 {
		return "block"
	}
	var parts []string
	for i, name := range scopeFlagNames {
		if f.Has(1 << i) {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
