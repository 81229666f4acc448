// Package rules holds the built-in rules and the default registry. Every
// rule here is a lint.NodeRule with kind metadata, so they all share the
// one walk the Linter makes over a file.
package rules
