package driver

import (
	"context"
	"strconv"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/lexer"
	"macroemu/internal/parser"
	"macroemu/internal/source"
	"macroemu/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Syntax  *ast.File
	Bag     *diag.Bag
	// Errors counts error diagnostics, including ones the bag dropped.
	Errors int
}

// Failed reports whether the file must be treated as unparseable.
func (r *ParseResult) Failed() bool {
	return r.Errors > 0 || r.Bag.HasErrors()
}

// Parse loads and parses the file at path.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, fs, id, opts), nil
}

// ParseFile lexes and parses a file already in fs.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *ParseResult {
	file := fs.Get(id)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx))
	idx := opts.Timer.Begin("parse " + file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := newReporter(bag)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: opts.maxErrors()})
	bag.Sort()

	opts.Timer.End(idx, strconv.Itoa(len(res.File.Items))+" items")
	span.WithExtra("errors", itoa(rep.errors)).End("")
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Syntax:  res.File,
		Bag:     bag,
		Errors:  rep.errors,
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
