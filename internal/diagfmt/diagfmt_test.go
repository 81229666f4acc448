package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"jsvet/internal/diag"
	"jsvet/internal/source"
	"jsvet/internal/testkit/fixture"
)

const sample = "const a = 1;\nvar b = 2;\n"

func sampleBag(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(sample))
	varSpan := source.Span{File: id, Start: 13, End: 16}
	if got := fs.Text(varSpan); got != "var" {
		t.Fatalf("expected var span, got %q", got)
	}
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, "no-var", varSpan, "Unexpected var.").
		WithLabel(source.Span{File: id, Start: 6, End: 7}, "declared here").
		WithHelp("use let").
		WithFix(diag.Fix{Title: "replace var", Applicability: diag.Safe, Span: varSpan, NewText: "let"}))
	bag.Add(diag.NewError(diag.CodeSyntaxError, source.Span{File: id, Start: 0, End: 5}, "bad"))
	bag.Sort()
	return fs, bag
}

func TestPrettyPlain(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowFixes: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := strings.Join([]string{
		"error[syntax-error]: bad",
		" --> test.js:1:1",
		"  |",
		"1 | const a = 1;",
		"  | ^^^^^",
		"",
		"warning[no-var]: Unexpected var.",
		" --> test.js:2:1",
		"  |",
		"1 | const a = 1;",
		"2 | var b = 2;",
		"  | ^^^",
		"  = note: test.js:1:7: declared here",
		"  = help: use let",
		"  = fix (safe): replace var",
		"  - var b = 2;",
		"  + let b = 2;",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("unexpected pretty output (-want +got):\n%s", diff)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestCaretColumnsWideRunes(t *testing.T) {
	line := "\tlet 名前 = x;"
	// "名前" starts after a tab and "let ".
	start := source.LineCol{Line: 1, Col: 6}
	end := source.LineCol{Line: 1, Col: 12}
	col, width := caretColumns(line, start, end)
	if col != tabWidth+4 || width != 4 {
		t.Fatalf("expected col %d width 4, got col %d width %d", tabWidth+4, col, width)
	}
}

func TestShort(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs, PathModeAuto); err != nil {
		t.Fatalf("short: %v", err)
	}
	want := "test.js:1:1: error: bad [syntax-error]\ntest.js:2:1: warning: Unexpected var. [no-var]\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, IncludeFixes: true, IncludePreviews: true, Max: 1}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || out.Truncated != 1 {
		t.Fatalf("expected 1 diagnostic and 1 truncated, got %d and %d", out.Count, out.Truncated)
	}
	if out.Diagnostics[0].Severity != "error" || out.Diagnostics[0].Location.StartLine != 1 {
		t.Fatalf("unexpected diagnostic %+v", out.Diagnostics[0])
	}

	buf.Reset()
	opts.Max = 0
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("json: %v", err)
	}
	var full DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &full); err != nil {
		t.Fatalf("decode: %v", err)
	}
	fix := full.Diagnostics[1].Fix
	if fix == nil {
		t.Fatalf("expected a fix on %+v", full.Diagnostics[1])
	}
	want := FixJSON{
		Title:         "replace var",
		Applicability: "safe",
		Location:      LocationJSON{File: "test.js", StartByte: 13, EndByte: 16, StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 4},
		NewText:       "let",
		OldText:       "var",
		BeforeLines:   []string{"var b = 2;"},
		AfterLines:    []string{"let b = 2;"},
	}
	if diff := cmp.Diff(want, *fix); diff != "" {
		t.Fatalf("unexpected fix (-want +got):\n%s", diff)
	}
}

func TestMsgpackMatchesJSONDocument(t *testing.T) {
	fs, bag := sampleBag(t)
	opts := JSONOpts{IncludeFixes: true}
	var buf bytes.Buffer
	if err := Msgpack(&buf, bag, fs, opts); err != nil {
		t.Fatalf("msgpack: %v", err)
	}
	var got DiagnosticsOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(BuildDiagnosticsOutput(bag, fs, opts), got); diff != "" {
		t.Fatalf("msgpack document differs (-want +got):\n%s", diff)
	}
}

func TestSarif(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "jsvet", ToolVersion: "test", Rules: map[string]string{"no-var": "Require let or const"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header %+v", log)
	}
	run := log.Runs[0]
	if len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "no-var" {
		t.Fatalf("expected no-var rule descriptor, got %+v", run.Tool.Driver.Rules)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("expected executionSuccessful=false with an error present")
	}
	res := run.Results[1]
	if res.RuleID != "no-var" || res.Level != "warning" {
		t.Fatalf("unexpected result %+v", res)
	}
	region := res.Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 1 || region.CharLength != 3 {
		t.Fatalf("unexpected region %+v", region)
	}
	if len(res.RelatedLocations) != 1 || len(res.Fixes) != 1 {
		t.Fatalf("expected one related location and one fix, got %+v", res)
	}
	if got := res.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text; got != "let" {
		t.Fatalf("expected inserted content let, got %q", got)
	}
}

func TestSemantics(t *testing.T) {
	fx := fixture.JS(t, "function f(a) { let b = a; }\nf(1);\ng();\n")
	out := BuildSemantics(fx.Table, fx.FileSet, fx.File.ID, PathModeBasename)
	if diff := cmp.Diff([]string{"g"}, out.Unresolved); diff != "" {
		t.Fatalf("unexpected unresolved (-want +got):\n%s", diff)
	}
	byName := map[string]SymbolJSON{}
	for _, s := range out.Symbols {
		byName[s.Name] = s
	}
	if s := byName["f"]; s.Kind != "function" || s.References != 1 {
		t.Fatalf("expected function f with one reference, got %+v", s)
	}
	if s := byName["b"]; s.Kind != "let" {
		t.Fatalf("expected let b, got %+v", s)
	}
	if out.Scopes[0].Parent != 0 || !strings.Contains(out.Scopes[0].Flags, "top") {
		t.Fatalf("expected a root top scope, got %+v", out.Scopes[0])
	}

	var buf bytes.Buffer
	if err := SemanticsText(&buf, out); err != nil {
		t.Fatalf("text: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"test.jsx\n", "scope#1 top", "  function f refs=1", "let b refs=0", "unresolved: g"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in\n%s", want, text)
		}
	}
}
