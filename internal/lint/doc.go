// Package lint runs many independent rules over one file in a single walk.
//
// Rules declare the node kinds they care about through KindFilter. The
// Index turns that metadata into per-kind dispatch lists once, so a walk
// over a file touches only the rules interested in each node. A rule that
// panics is isolated: it is recorded as a RuleFailure and skipped for the
// rest of the file while the other rules continue.
package lint
