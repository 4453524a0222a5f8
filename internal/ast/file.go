package ast

import (
	"macroemu/internal/source"
	"macroemu/internal/token"
)

// File: корень дерева; внутренние атрибуты, items и плоский список токенов.
type File struct {
	Source *source.File
	// Tokens are the significant tokens of the file, EOF excluded.
	Tokens []token.Token
	Attrs  []Attr
	Items  []*Item
	Span   source.Span
}

// Range returns the range covering all tokens of the file.
func (f *File) Range() TokenRange {
	return RangeOf(0, len(f.Tokens))
}

// Slice returns the tokens of r without copying. Callers must not modify them.
func (f *File) Slice(r TokenRange) []token.Token {
	if r.Empty() || int(r.End) > len(f.Tokens) {
		return nil
	}
	return f.Tokens[r.Start:r.End]
}

// SpanOf returns the source span covered by r.
func (f *File) SpanOf(r TokenRange) source.Span {
	toks := f.Slice(r)
	if len(toks) == 0 {
		return source.Span{File: f.Span.File, Start: f.Span.End, End: f.Span.End}
	}
	return toks[0].Span.Cover(toks[len(toks)-1].Span)
}
