// Package reconstruct copies the token input of an invocation out of a
// parsed file. Results never alias the file's token slice.
package reconstruct

import (
	"slices"

	"macroemu/internal/ast"
	"macroemu/internal/token"
)

// Copy returns the tokens of r.
func Copy(toks []token.Token, r ast.TokenRange) []token.Token {
	r = clamp(r, len(toks))
	out := make([]token.Token, 0, r.Len())
	for _, tok := range toks[r.Start:r.End] {
		out = append(out, clone(tok))
	}
	return out
}

// Subtract returns the tokens of r that are not covered by any range in
// excl. Exclusions may be unsorted or overlapping; parts outside r are
// ignored.
func Subtract(toks []token.Token, r ast.TokenRange, excl ...ast.TokenRange) []token.Token {
	r = clamp(r, len(toks))
	holes := normalize(r, excl)
	out := make([]token.Token, 0, r.Len())
	i := r.Start
	for _, h := range holes {
		for ; i < h.Start; i++ {
			out = append(out, clone(toks[i]))
		}
		i = max(i, h.End)
	}
	for ; i < r.End; i++ {
		out = append(out, clone(toks[i]))
	}
	return out
}

// normalize clips excl to r, sorts and merges it.
func normalize(r ast.TokenRange, excl []ast.TokenRange) []ast.TokenRange {
	holes := make([]ast.TokenRange, 0, len(excl))
	for _, e := range excl {
		e.Start = max(e.Start, r.Start)
		e.End = min(e.End, r.End)
		if !e.Empty() {
			holes = append(holes, e)
		}
	}
	slices.SortFunc(holes, func(a, b ast.TokenRange) int {
		if a.Start != b.Start {
			return int(a.Start) - int(b.Start)
		}
		return int(a.End) - int(b.End)
	})
	merged := holes[:0]
	for _, h := range holes {
		if n := len(merged); n > 0 && h.Start <= merged[n-1].End {
			merged[n-1].End = max(merged[n-1].End, h.End)
			continue
		}
		merged = append(merged, h)
	}
	return merged
}

func clamp(r ast.TokenRange, n int) ast.TokenRange {
	end := ast.RangeOf(0, n).End
	r.End = min(r.End, end)
	if r.Start > r.End {
		r.Start = r.End
	}
	return r
}

func clone(tok token.Token) token.Token {
	tok.Leading = slices.Clone(tok.Leading)
	return tok
}
