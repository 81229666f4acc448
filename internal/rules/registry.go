package rules

import (
	"jsvet/internal/lint"
	"jsvet/internal/rules/exhaustivedeps"
)

// All returns fresh instances of every built-in rule.
func All() []lint.Rule {
	return []lint.Rule{
		NoWith{},
		NoVar{},
		&Eqeqeq{},
		NoExtraBooleanCast{},
		&NoCondAssign{},
		NoDebugger{},
		NoEmptyFile{},
		exhaustivedeps.New(),
	}
}

// Default builds a registry of All.
func Default() *lint.Registry {
	return lint.MustRegistry(All()...)
}
