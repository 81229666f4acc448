package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// LocationJSON is a span in serialized output.
type LocationJSON struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

type LabelJSON struct {
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

type FixJSON struct {
	Title         string       `json:"title" msgpack:"title"`
	Applicability string       `json:"applicability" msgpack:"applicability"`
	Location      LocationJSON `json:"location" msgpack:"location"`
	NewText       string       `json:"new_text" msgpack:"new_text"`
	OldText       string       `json:"old_text,omitempty" msgpack:"old_text,omitempty"`
	BeforeLines   []string     `json:"before_lines,omitempty" msgpack:"before_lines,omitempty"`
	AfterLines    []string     `json:"after_lines,omitempty" msgpack:"after_lines,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
	Labels   []LabelJSON  `json:"labels,omitempty" msgpack:"labels,omitempty"`
	Help     string       `json:"help,omitempty" msgpack:"help,omitempty"`
	Fix      *FixJSON     `json:"fix,omitempty" msgpack:"fix,omitempty"`
}

// DiagnosticsOutput is the root object of json and msgpack output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
	// Truncated is the number of diagnostics dropped by JSONOpts.Max.
	Truncated int `json:"truncated,omitempty" msgpack:"truncated,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts the bag without serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, n),
		Truncated:   len(items) - n,
	}
	for _, d := range items[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
			Help:     d.Help,
		}
		for _, l := range d.Labels {
			dj.Labels = append(dj.Labels, LabelJSON{
				Message:  l.Msg,
				Location: makeLocation(l.Span, fs, opts.PathMode, opts.IncludePositions),
			})
		}
		if opts.IncludeFixes && d.Fix != nil {
			fj := &FixJSON{
				Title:         d.Fix.Title,
				Applicability: d.Fix.Applicability.String(),
				Location:      makeLocation(d.Fix.Span, fs, opts.PathMode, opts.IncludePositions),
				NewText:       d.Fix.NewText,
				OldText:       fs.Text(d.Fix.Span),
			}
			if opts.IncludePreviews {
				if preview, err := buildFixPreview(fs, d.Fix); err == nil {
					fj.BeforeLines = preview.before
					fj.AfterLines = preview.after
				}
			}
			dj.Fix = fj
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}

// Msgpack writes the same document as JSON in MessagePack encoding.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
