package fix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ErrNoFixpoint is returned when fixes keep producing new fixes after the round limit.
var ErrNoFixpoint = errors.New("fixes did not converge")

// DefaultRounds bounds the fixpoint loop of `jsvet fix`.
const DefaultRounds = 10

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	// Unsafe also applies DangerousSuggestion fixes.
	Unsafe bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.Applicability
	Span          source.Span
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Code   diag.Code
	Reason string
}

// ApplyResult aggregates applied fixes, skipped ones, and the rewritten text.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Output  []byte
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// ApplyText applies the fixes carried by diagnostics to src. All diagnostics
// must describe src; offsets are taken as given. Fixes that overlap an
// earlier accepted fix are skipped and left for the next round.
func ApplyText(src []byte, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
		Output:  src,
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skipped := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)

	accepted := make([]candidate, 0, len(selected))
	for _, cand := range selected {
		switch {
		case int(cand.fix.Span.End) > len(src) || cand.fix.Span.Start > cand.fix.Span.End:
			result.Skipped = append(result.Skipped, skip(cand, "edit span out of range"))
		case conflictsWithExisting(accepted, cand.fix.Span):
			result.Skipped = append(result.Skipped, skip(cand, "conflicts with previously applied edits"))
		default:
			accepted = append(accepted, cand)
		}
	}
	if len(accepted) == 0 {
		return result, ErrNoFixes
	}

	result.Output = rewrite(src, accepted)
	for _, cand := range accepted {
		result.Applied = append(result.Applied, AppliedFix{
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			Span:          cand.fix.Span,
		})
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	cands := make([]candidate, 0)
	for i, d := range diagnostics {
		if d.Fix == nil {
			continue
		}
		cands = append(cands, candidate{diag: d, fix: *d.Fix, order: i})
	}
	return cands
}

// sortCandidates orders by span start, span end, then report order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		fi, fj := candidates[i].fix.Span, candidates[j].fix.Span
		if fi.Start != fj.Start {
			return fi.Start < fj.Start
		}
		if fi.End != fj.End {
			return fi.End < fj.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	selected := make([]candidate, 0, len(candidates))
	skipped := make([]SkippedFix, 0)
	for _, cand := range candidates {
		if cand.fix.Applicability == diag.Safe || opts.Unsafe {
			selected = append(selected, cand)
			continue
		}
		skipped = append(skipped, skip(cand, fmt.Sprintf("applicability is %s", cand.fix.Applicability)))
	}
	return selected, skipped
}

func skip(cand candidate, reason string) SkippedFix {
	return SkippedFix{Title: cand.fix.Title, Code: cand.diag.Code, Reason: reason}
}

// rewrite splices accepted fixes, which are sorted and disjoint, into src.
func rewrite(src []byte, accepted []candidate) []byte {
	out := make([]byte, 0, len(src))
	pos := uint32(0)
	for _, cand := range accepted {
		sp := cand.fix.Span
		out = append(out, src[pos:sp.Start]...)
		out = append(out, cand.fix.NewText...)
		pos = sp.End
	}
	return append(out, src[pos:]...)
}

func conflictsWithExisting(existing []candidate, span source.Span) bool {
	for _, prev := range existing {
		if spansConflict(prev.fix.Span, span) {
			return true
		}
	}
	return false
}

// spansConflict reports whether two edit spans overlap.
// Spans are half-open. Two insertions at the same point conflict, since
// their relative order is not defined. An insertion conflicts with a
// replacement if it falls strictly inside it.
func spansConflict(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return a.Start == b.Start
	}
	if a.Empty() {
		return b.Start < a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// Relint produces the diagnostics for the current text of a file.
type Relint func(ctx context.Context, src []byte) ([]diag.Diagnostic, error)

// Outcome summarises a fixpoint run.
type Outcome struct {
	Output  []byte
	Rounds  int
	Applied []AppliedFix
	// Skipped holds the fixes left over by the final round.
	Skipped []SkippedFix
}

// Fixpoint alternates relint and ApplyText until no fix applies or rounds
// is exhausted, in which case the partial outcome comes with ErrNoFixpoint.
func Fixpoint(ctx context.Context, src []byte, rounds int, relint Relint, opts ApplyOptions) (*Outcome, error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	out := &Outcome{Output: src}
	for out.Rounds < rounds {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		diagnostics, err := relint(ctx, out.Output)
		if err != nil {
			return out, fmt.Errorf("fix: relint round %d: %w", out.Rounds+1, err)
		}
		res, err := ApplyText(out.Output, diagnostics, opts)
		out.Skipped = res.Skipped
		if errors.Is(err, ErrNoFixes) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out.Output = res.Output
		out.Applied = append(out.Applied, res.Applied...)
		out.Rounds++
	}
	return out, ErrNoFixpoint
}

// WriteFile replaces the file at path, keeping its permissions.
func WriteFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
