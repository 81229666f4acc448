package diag

import "jsvet/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithLabel(sp source.Span, msg string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithFix sets the single fix of d, replacing any previous one.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fix = &fix
	return d
}

// Spans returns the primary span followed by every label span.
func (d Diagnostic) Spans() []source.Span {
	out := make([]source.Span, 0, 1+len(d.Labels))
	out = append(out, d.Primary)
	for _, l := range d.Labels {
		out = append(out, l.Span)
	}
	return out
}
