package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/observ"
	"jsvet/internal/parser"
	"jsvet/internal/source"
	"jsvet/internal/symbols"
	"jsvet/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Table   *symbols.Table
	Bag     *diag.Bag
}

// Parse loads, parses and resolves one file. Syntax errors and
// redeclarations go to the returned bag.
func Parse(ctx context.Context, filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	tree, table, err := parseAndResolve(ctx, fs, fileID, diag.BagReporter{Bag: bag}, maxDiagnostics, nil, 0, nil)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Tree:    tree,
		Table:   table,
		Bag:     bag,
	}, nil
}

// parseAndResolve runs the parse and resolve phases of one file, timing
// them on timer, tracing them under the span parent and reporting each
// phase to sink.
func parseAndResolve(ctx context.Context, fs *source.FileSet, id source.FileID, rep diag.Reporter,
	maxDiagnostics int, timer *observ.Timer, parent uint64, sink ProgressSink,
) (*ast.Tree, *symbols.Table, error) {
	file := fs.Get(id)
	lang, err := parser.LanguageForPath(file.Path)
	if err != nil {
		return nil, nil, err
	}
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, nil, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	tracer := trace.FromContext(ctx)

	emit(sink, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	span := trace.BeginFile(tracer, trace.ScopePhase, "parse", file.Path, parent)
	idx := timer.Begin("parse")
	res, err := parser.Parse(ctx, fs, id, parser.Options{
		Language:  lang,
		MaxErrors: maxErrors,
		Reporter:  rep,
	})
	timer.End(idx)
	if err != nil {
		span.End("failed")
		return nil, nil, err
	}
	span.End(fmt.Sprintf("errors=%d", res.Errors))

	emit(sink, Event{File: file.Path, Stage: StageResolve, Status: StatusWorking})
	span = trace.BeginFile(tracer, trace.ScopePhase, "resolve", file.Path, parent)
	idx = timer.Begin("resolve")
	table := symbols.ResolveFile(res.Tree, symbols.ResolveOptions{Reporter: rep})
	timer.End(idx)
	span.End(fmt.Sprintf("scopes=%d symbols=%d", table.Scopes.Len(), table.Symbols.Len()))
	return res.Tree, table, nil
}
