package fix

import (
	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.Applicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// Dangerous marks the fix as a suggestion that may change behavior.
func Dangerous() Option {
	return WithApplicability(diag.DangerousSuggestion)
}

func applyOptions(f diag.Fix, opts []Option) diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at the end of span.
func InsertText(title string, after source.Span, text string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Applicability: diag.Safe,
		Span:          source.Span{File: after.File, Start: after.End, End: after.End},
		NewText:       text,
	}
	return applyOptions(fix, opts)
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Applicability: diag.Safe,
		Span:          span,
	}
	return applyOptions(fix, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText string, opts ...Option) diag.Fix {
	fix := diag.Fix{
		Title:         title,
		Applicability: diag.Safe,
		Span:          span,
		NewText:       newText,
	}
	return applyOptions(fix, opts)
}
