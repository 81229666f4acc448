package diag

import (
	"jsvet/internal/source"
)

// Label attaches a message to a secondary span.
type Label struct {
	Span source.Span
	Msg  string
}

// Applicability says whether a fix may be applied without review.
type Applicability uint8

const (
	// Safe fixes preserve behavior and are applied by `jsvet fix`.
	Safe Applicability = iota
	// DangerousSuggestion fixes may change behavior; they need --unsafe.
	DangerousSuggestion
)

func (a Applicability) String() string {
	if a == Safe {
		return "safe"
	}
	return "dangerous"
}

// Fix replaces the text under Span with NewText.
type Fix struct {
	Title         string
	Applicability Applicability
	Span          source.Span
	NewText       string
}

type Diagnostic struct {
	Severity Severity
	Code     Code // the reporting rule, or one of the built-in codes
	Message  string
	Primary  source.Span
	Labels   []Label
	Help     string
	Fix      *Fix
}
