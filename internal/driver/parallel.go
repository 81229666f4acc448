package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"jsvet/internal/diag"
	"jsvet/internal/lint"
	"jsvet/internal/observ"
	"jsvet/internal/parser"
	"jsvet/internal/source"
	"jsvet/internal/trace"
)

// Result is the outcome of LintPaths.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult // in path order
	// Bag holds the diagnostics of every file, sorted and capped at
	// Options.MaxDiagnostics.
	Bag     *diag.Bag
	Dropped int
	Timer   *observ.Timer // nil unless Options.Timings
}

// Failures counts rule failures over all files.
func (r *Result) Failures() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Failures)
	}
	return n
}

// CollectFiles expands paths into a sorted, deduplicated list of source
// files. Directories are walked, skipping entries whose base name is in
// ignore and files without a known extension. Files named explicitly are
// always kept.
func CollectFiles(paths []string, ignore []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && isIgnored(d.Name(), ignore) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && hasSourceExt(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// deterministic order
	slices.Sort(files)
	return slices.Compact(files), nil
}

func isIgnored(name string, ignore []string) bool {
	for _, pat := range ignore {
		if ok, err := filepath.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

func hasSourceExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if strings.HasSuffix(strings.ToLower(path), ".d.ts") {
		return false
	}
	return slices.Contains(parser.Extensions, ext)
}

// LintPaths lints every source file under paths in parallel. Files are
// loaded up front; workers only read the FileSet and write their own
// result slot.
func LintPaths(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if opts.Registry == nil {
		return nil, errors.New("driver: no rule registry")
	}
	files, err := CollectFiles(paths, opts.Ignore)
	if err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeRun, "lint", trace.ParentSpan(ctx))
	defer run.End(fmt.Sprintf("files=%d", len(files)))
	ctx = trace.WithParentSpan(ctx, run.ID())

	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// keep a slot so the diagnostic has a file to point at
			id = fileSet.Add(path, nil, source.FileVirtual)
			loadErrors[i] = err
		}
		ids[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	linter := lint.NewLinter(opts.Registry, tracer)
	digest := RegistryDigest(opts.Registry)

	// indexes are unique per goroutine, no mutex needed
	results := make([]FileResult, len(files))
	timers := make([]*observ.Timer, len(files))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(files)), 1))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if loadErr, bad := loadErrors[i]; bad {
				bag := diag.NewBag(0)
				bag.Add(diag.NewError(diag.CodeIOError, source.Span{File: ids[i]},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, FileID: ids[i], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError})
				return nil
			}
			var timer *observ.Timer
			if opts.Timings {
				timer = observ.NewTimer()
				timers[i] = timer
			}
			res, err := lintUnit(gctx, fileSet, ids[i], linter, opts, digest, timer)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				if res.Bag == nil {
					res.Bag = diag.NewBag(0)
				}
				res.Bag.Add(diag.NewError(diag.CodeIOError, source.Span{File: ids[i]}, err.Error()))
				emit(opts.Progress, Event{File: path, Stage: StageLint, Status: StatusError})
			} else if !res.Cached {
				status := StatusDone
				if len(res.Failures) > 0 {
					status = StatusError
				}
				emit(opts.Progress, Event{File: path, Stage: StageLint, Status: status, Diagnostics: res.Bag.Len()})
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{FileSet: fileSet, Files: results}
	if opts.Timings {
		out.Timer = observ.NewTimer()
		for _, t := range timers {
			out.Timer.Merge(t)
		}
	}
	out.Bag, out.Dropped = mergeBags(results, opts.MaxDiagnostics)
	return out, nil
}

// mergeBags sorts all diagnostics and keeps at most limit of them.
func mergeBags(results []FileResult, limit int) (*diag.Bag, int) {
	all := diag.NewBag(0)
	for _, r := range results {
		all.Merge(r.Bag)
	}
	all.Sort()
	if limit <= 0 || all.Len() <= limit {
		return all, 0
	}
	capped := diag.NewBag(limit)
	for _, d := range all.Items() {
		capped.Add(d)
	}
	return capped, all.Len() - capped.Len()
}
