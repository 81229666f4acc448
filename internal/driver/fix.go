package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"jsvet/internal/diag"
	"jsvet/internal/fix"
	"jsvet/internal/lint"
	"jsvet/internal/source"
	"jsvet/internal/trace"
)

// ErrSyntaxRegression stops fixing a file whose edits introduced syntax
// errors; the file is left untouched.
var ErrSyntaxRegression = errors.New("fixes introduced syntax errors")

type FixOptions struct {
	Unsafe bool
	Rounds int  // <= 0 means fix.DefaultRounds
	DryRun bool // compute edits without writing files
}

// FixResult is the outcome of fixing one file.
type FixResult struct {
	Path    string
	Rounds  int
	Applied []fix.AppliedFix
	Skipped []fix.SkippedFix
	Changed bool
	Output  []byte
	Err     error
}

// FixPaths applies fixes to every source file under paths until no more
// apply. Per-file problems are reported in FixResult.Err; the returned
// error is for collection failures and cancellation.
func FixPaths(ctx context.Context, paths []string, opts Options, fopts FixOptions) ([]FixResult, error) {
	if opts.Registry == nil {
		return nil, errors.New("driver: no rule registry")
	}
	files, err := CollectFiles(paths, opts.Ignore)
	if err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeRun, "fix", trace.ParentSpan(ctx))
	defer run.End(fmt.Sprintf("files=%d", len(files)))
	ctx = trace.WithParentSpan(ctx, run.ID())

	linter := lint.NewLinter(opts.Registry, tracer)
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FixResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(files)), 1))
	for i, path := range files {
		g.Go(func() error {
			res := fixFile(gctx, path, linter, opts, fopts)
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func fixFile(ctx context.Context, path string, linter *lint.Linter, opts Options, fopts FixOptions) FixResult {
	res := FixResult{Path: path}
	loaded := source.NewFileSet()
	id, err := loaded.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	orig := loaded.Get(id)

	baseline := -1
	relint := func(ctx context.Context, src []byte) ([]diag.Diagnostic, error) {
		fs := source.NewFileSet()
		fid := fs.Add(path, src, source.FileVirtual)
		unit, err := lintUnit(ctx, fs, fid, linter, Options{MaxDiagnostics: opts.MaxDiagnostics}, Digest{}, nil)
		if err != nil {
			return nil, err
		}
		syntax := 0
		for _, d := range unit.Bag.Items() {
			if d.Code == diag.CodeSyntaxError {
				syntax++
			}
		}
		if baseline < 0 {
			baseline = syntax
		} else if syntax > baseline {
			return nil, ErrSyntaxRegression
		}
		return unit.Bag.Items(), nil
	}

	out, err := fix.Fixpoint(ctx, orig.Content, fopts.Rounds, relint, fix.ApplyOptions{Unsafe: fopts.Unsafe})
	res.Rounds = out.Rounds
	res.Applied = out.Applied
	res.Skipped = out.Skipped
	if err != nil && !errors.Is(err, fix.ErrNoFixpoint) {
		res.Err = err
		return res
	}
	res.Err = err
	res.Changed = !bytes.Equal(out.Output, orig.Content)
	res.Output = restoreEncoding(out.Output, orig.Flags)
	if res.Changed && !fopts.DryRun {
		if werr := fix.WriteFile(path, res.Output); werr != nil {
			res.Err = werr
		}
	}
	return res
}

// restoreEncoding undoes the CRLF and BOM normalization of FileSet.Load.
func restoreEncoding(content []byte, flags source.FileFlags) []byte {
	if flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		content = append([]byte("\xef\xbb\xbf"), content...)
	}
	return content
}
