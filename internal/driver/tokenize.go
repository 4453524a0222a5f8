package driver

import (
	"context"

	"macroemu/internal/diag"
	"macroemu/internal/lexer"
	"macroemu/internal/source"
	"macroemu/internal/token"
	"macroemu/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens end with the EOF token.
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize lexes the file at path.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return TokenizeFile(ctx, fs, id, opts), nil
}

// TokenizeFile lexes a file already in fs.
func TokenizeFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *TokenizeResult {
	file := fs.Get(id)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", trace.CurrentSpan(ctx))
	idx := opts.Timer.Begin("lex " + file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: newReporter(bag)})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	opts.Timer.End(idx, "")
	span.WithExtra("tokens", itoa(len(tokens)-1)).End("")
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}
}
