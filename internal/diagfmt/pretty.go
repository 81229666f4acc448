package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, gutter, caret, help, add, del, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		help:   color.New(color.FgGreen),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.gutter, p.caret, p.help, p.add, p.del, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty prints diagnostics for humans, in bag order (sort the bag first):
//
//	warning[code]: message
//	  --> path:line:col
//	   |
//	 4 |   }, []);
//	   |      ^^
//	   = note: path:line:col: label
//	   = help: text
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sev := pal.severity(d.Severity)
	fmt.Fprintf(&sb, "%s: %s\n", sev.Sprintf("%s[%s]", d.Severity.Label(), d.Code), pal.bold.Sprint(d.Message))

	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	gutterWidth := len(strconv.FormatUint(uint64(end.Line), 10))
	pad := strings.Repeat(" ", gutterWidth)
	bar := pal.gutter.Sprint("|")

	fmt.Fprintf(&sb, "%s%s %s:%d:%d\n", pad, pal.gutter.Sprint("-->"), formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col)
	if file != nil && len(file.Content) > 0 {
		fmt.Fprintf(&sb, "%s %s\n", pad, bar)
		first := start.Line
		if ctx := uint32(max(opts.Context, 0)); first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		for ln := first; ln < start.Line; ln++ {
			fmt.Fprintf(&sb, "%s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, ln), bar, expandTabs(file.GetLine(ln)))
		}
		line := file.GetLine(start.Line)
		fmt.Fprintf(&sb, "%s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, start.Line), bar, expandTabs(line))
		col, width := caretColumns(line, start, end)
		fmt.Fprintf(&sb, "%s %s %s%s\n", pad, bar, strings.Repeat(" ", col), pal.caret.Sprint(strings.Repeat("^", width)))
	}

	for _, l := range d.Labels {
		lstart, _ := fs.Resolve(l.Span)
		fmt.Fprintf(&sb, "%s %s note: %s:%d:%d: %s\n", pad, pal.gutter.Sprint("="),
			formatPath(fs, l.Span.File, opts.PathMode), lstart.Line, lstart.Col, l.Msg)
	}
	if d.Help != "" {
		fmt.Fprintf(&sb, "%s %s %s %s\n", pad, pal.gutter.Sprint("="), pal.help.Sprint("help:"), d.Help)
	}
	if opts.ShowFixes && d.Fix != nil {
		fmt.Fprintf(&sb, "%s %s fix (%s): %s\n", pad, pal.gutter.Sprint("="), d.Fix.Applicability, d.Fix.Title)
		if preview, err := buildFixPreview(fs, d.Fix); err == nil {
			for _, l := range preview.before {
				fmt.Fprintf(&sb, "%s %s\n", pad, pal.del.Sprint("- "+expandTabs(l)))
			}
			for _, l := range preview.after {
				fmt.Fprintf(&sb, "%s %s\n", pad, pal.add.Sprint("+ "+expandTabs(l)))
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// caretColumns returns the display column and width of the underline for
// a span starting on line. Spans running past the line are cut at its end.
func caretColumns(line string, start, end source.LineCol) (col, width int) {
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	col = runewidth.StringWidth(expandTabs(line[:from]))
	width = runewidth.StringWidth(expandTabs(line[from:max(to, from)]))
	return col, max(width, 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
