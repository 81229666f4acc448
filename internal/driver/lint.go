package driver

import (
	"context"
	"fmt"

	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/observ"
	"jsvet/internal/source"
	"jsvet/internal/trace"
)

// Options configures a lint run.
type Options struct {
	Registry *lint.Registry
	Jobs     int // <= 0 means GOMAXPROCS
	// MaxDiagnostics caps the merged result; per-file work is not capped.
	MaxDiagnostics int
	// Ignore lists directory and file base names skipped while walking.
	Ignore  []string
	Timings bool
	Cache   *DiskCache
	// Progress, when set, receives per-file stage events.
	Progress ProgressSink
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Failures []lint.RuleFailure
	Cached   bool
}

// lintUnit runs parse, resolve and lint over file id of fs. Rule panics
// become CodeRuleFailure diagnostics. The returned error is a
// cancellation or a parser that could not run.
func lintUnit(ctx context.Context, fs *source.FileSet, id source.FileID, linter *lint.Linter,
	opts Options, digest Digest, timer *observ.Timer,
) (FileResult, error) {
	file := fs.Get(id)
	res := FileResult{Path: file.Path, FileID: id}
	tracer := trace.FromContext(ctx)
	span := trace.BeginFile(tracer, trace.ScopeFile, "file", file.Path, trace.ParentSpan(ctx))
	defer func() { span.End(fmt.Sprintf("diagnostics=%d", bagLen(res.Bag))) }()

	key := combineDigest(Digest(file.Hash), digest)
	if opts.Cache != nil {
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", file.Path, err.Error())
		}
		if ok {
			res.Bag = payloadToBag(&payload, id)
			res.Cached = true
			emit(opts.Progress, Event{File: file.Path, Stage: StageLint, Status: StatusCached, Diagnostics: res.Bag.Len()})
			return res, nil
		}
	}

	bag := diag.NewBag(0)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	res.Bag = bag
	tree, table, err := parseAndResolve(ctx, fs, id, rep, opts.MaxDiagnostics, timer, span.ID(), opts.Progress)
	if err != nil {
		return res, err
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageLint, Status: StatusWorking})
	lspan := trace.BeginFile(tracer, trace.ScopePhase, "lint", file.Path, span.ID())
	idx := timer.Begin("lint")
	out, err := linter.Lint(ctx, lint.File{
		Path:     file.Path,
		Tree:     tree,
		Source:   file,
		Oracle:   table,
		Reporter: rep,
	})
	timer.End(idx)
	lspan.End(fmt.Sprintf("visited=%d reported=%d", out.Visited, out.Reported))
	if err != nil {
		return res, err
	}

	res.Failures = out.Failures
	for _, f := range out.Failures {
		sp := source.Span{File: id}
		if n := tree.Node(f.Node); n != nil {
			sp = n.Span
		}
		rep.Report(diag.NewError(diag.CodeRuleFailure, sp, f.Error()).
			WithHelp("the rule was skipped for the rest of this file; please report this as a bug"))
	}

	if opts.Cache != nil && len(out.Failures) == 0 {
		if err := opts.Cache.Put(key, bagToPayload(file.Path, bag)); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", file.Path, err.Error())
		}
	}
	return res, nil
}

func bagLen(b *diag.Bag) int {
	if b == nil {
		return 0
	}
	return b.Len()
}
