package fix

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func withFix(code diag.Code, f diag.Fix) diag.Diagnostic {
	return diag.Diagnostic{Code: code, Message: string(code), Primary: f.Span, Fix: &f}
}

func TestApplyTextSafeOnly(t *testing.T) {
	src := []byte("var a = b == c;")
	diags := []diag.Diagnostic{
		withFix("no-var", ReplaceSpan("use let", span(0, 3), "let", Dangerous())),
		withFix("eqeqeq", ReplaceSpan("use ===", span(10, 12), "===")),
		{Code: "no-fix", Primary: span(4, 5)},
	}

	res, err := ApplyText(src, diags, ApplyOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(res.Output); got != "var a = b === c;" {
		t.Fatalf("expected safe fix only, got %q", got)
	}
	if len(res.Applied) != 1 || res.Applied[0].Code != "eqeqeq" {
		t.Fatalf("expected eqeqeq applied, got %+v", res.Applied)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "applicability is dangerous" {
		t.Fatalf("expected dangerous fix skipped, got %+v", res.Skipped)
	}

	res, err = ApplyText(src, diags, ApplyOptions{Unsafe: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(res.Output); got != "let a = b === c;" {
		t.Fatalf("expected both fixes, got %q", got)
	}
}

func TestApplyTextSkipsOverlap(t *testing.T) {
	src := []byte("[a, b, c]")
	diags := []diag.Diagnostic{
		withFix("x", ReplaceSpan("drop a", span(0, 9), "[b, c]")),
		withFix("x", ReplaceSpan("drop b", span(0, 9), "[a, c]")),
		withFix("y", InsertText("append", span(0, 9), ";")),
	}
	res, err := ApplyText(src, diags, ApplyOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(res.Output); got != "[b, c];" {
		t.Fatalf("expected first list fix and insertion, got %q", got)
	}
	want := []SkippedFix{{Title: "drop b", Code: "x", Reason: "conflicts with previously applied edits"}}
	if diff := cmp.Diff(want, res.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyTextNoFixes(t *testing.T) {
	_, err := ApplyText([]byte("x"), []diag.Diagnostic{{Code: "a"}}, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	diags := []diag.Diagnostic{withFix("a", DeleteSpan("oob", span(0, 10)))}
	res, err := ApplyText([]byte("x"), diags, ApplyOptions{})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes for out of range span, got %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "edit span out of range" {
		t.Fatalf("expected out of range skip, got %+v", res.Skipped)
	}
}

func TestSpansConflict(t *testing.T) {
	tests := []struct {
		a, b source.Span
		want bool
	}{
		{span(0, 3), span(3, 5), false},
		{span(0, 4), span(3, 5), true},
		{span(2, 2), span(2, 2), true},
		{span(2, 2), span(3, 3), false},
		{span(2, 2), span(0, 2), false},
		{span(1, 1), span(0, 2), true},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Fatalf("spansConflict(%v, %v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
		if got := spansConflict(tt.b, tt.a); got != tt.want {
			t.Fatalf("spansConflict(%v, %v): expected symmetric %v, got %v", tt.b, tt.a, tt.want, got)
		}
	}
}

// countdown reports one fix per 'x' in src, rewriting it to 'y'.
func countdown(_ context.Context, src []byte) ([]diag.Diagnostic, error) {
	i := strings.IndexByte(string(src), 'x')
	if i < 0 {
		return nil, nil
	}
	at := uint32(i)
	return []diag.Diagnostic{withFix("xy", ReplaceSpan("x to y", span(at, at+1), "y"))}, nil
}

func TestFixpointConverges(t *testing.T) {
	out, err := Fixpoint(context.Background(), []byte("axbxc"), 0, countdown, ApplyOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.Output) != "aybyc" {
		t.Fatalf("expected aybyc, got %q", out.Output)
	}
	if out.Rounds != 2 || len(out.Applied) != 2 {
		t.Fatalf("expected 2 rounds and 2 fixes, got %d and %d", out.Rounds, len(out.Applied))
	}
}

func TestFixpointBounded(t *testing.T) {
	grow := func(_ context.Context, src []byte) ([]diag.Diagnostic, error) {
		end := uint32(len(src))
		return []diag.Diagnostic{withFix("grow", InsertText("grow", span(end, end), "!"))}, nil
	}
	out, err := Fixpoint(context.Background(), []byte("a"), 3, grow, ApplyOptions{})
	if !errors.Is(err, ErrNoFixpoint) {
		t.Fatalf("expected ErrNoFixpoint, got %v", err)
	}
	if string(out.Output) != "a!!!" {
		t.Fatalf("expected three rounds of output, got %q", out.Output)
	}
}

func TestFixpointRelintError(t *testing.T) {
	boom := errors.New("boom")
	fail := func(context.Context, []byte) ([]diag.Diagnostic, error) { return nil, boom }
	_, err := Fixpoint(context.Background(), []byte("a"), 1, fail, ApplyOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped relint error, got %v", err)
	}
}
