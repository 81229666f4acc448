// Package parser turns JavaScript and TypeScript source into an ast.Tree.
// Parsing is delegated to tree-sitter; this package lowers the concrete
// syntax tree into the closed node model the rest of jsvet works with.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"jsvet/internal/ast"
	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// ErrUnsupportedLanguage is returned for file extensions jsvet cannot parse.
var ErrUnsupportedLanguage = errors.New("unsupported language")

type Language uint8

const (
	LangJavaScript Language = iota // JavaScript with JSX
	LangTypeScript
	LangTSX
)

func (l Language) String() string {
	switch l {
	case LangTypeScript:
		return "typescript"
	case LangTSX:
		return "tsx"
	}
	return "javascript"
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case LangTypeScript:
		return typescript.GetLanguage()
	case LangTSX:
		return tsx.GetLanguage()
	}
	return javascript.GetLanguage()
}

// Extensions lists the file extensions LanguageForPath accepts.
var Extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".mts", ".cts", ".tsx"}

// LanguageForPath picks the grammar from the file extension.
func LanguageForPath(path string) (Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript, nil
	case ".ts", ".mts", ".cts":
		return LangTypeScript, nil
	case ".tsx":
		return LangTSX, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedLanguage)
}

// isModulePath reports extensions that are always ES modules.
func isModulePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mjs", ".mts":
		return true
	}
	return false
}

type Options struct {
	Language Language
	// Module forces module semantics; otherwise a file is a module when it
	// has a top-level import or export, or a .mjs/.mts extension.
	Module    bool
	MaxErrors uint
	Reporter  diag.Reporter
}

type Result struct {
	Tree *ast.Tree
	// Errors counts syntax errors found by tree-sitter. The tree is still
	// complete: erroneous regions are lowered as KindUnknown.
	Errors uint
}

// Parse parses one file of fs. An error is returned only when parsing could
// not run at all; syntax errors go to opts.Reporter.
func Parse(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (Result, error) {
	file := fs.Get(id)
	if file == nil {
		return Result{}, fmt.Errorf("parse: unknown file id %d", id)
	}
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(opts.Language.grammar())

	cst, err := p.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", file.Path, err)
	}
	defer cst.Close()

	l := newLowerer(file, opts)
	root := cst.RootNode()
	if root.HasError() {
		l.collectErrors(root)
	}
	prog := l.program(root, opts.Module || isModulePath(file.Path))
	return Result{Tree: l.b.Finish(prog), Errors: l.errors}, nil
}

// ParseString parses src as a virtual file. It is a convenience for tests and
// the `parse` command.
func ParseString(ctx context.Context, name string, src string, opts Options) (*source.FileSet, Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	res, err := Parse(ctx, fs, id, opts)
	return fs, res, err
}
