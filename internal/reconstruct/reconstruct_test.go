package reconstruct

import (
	"strings"
	"testing"

	"macroemu/internal/ast"
	"macroemu/internal/token"
)

func toks(words ...string) []token.Token {
	out := make([]token.Token, len(words))
	for i, w := range words {
		out[i] = token.Token{Kind: token.Ident, Text: w, Leading: []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}}
	}
	return out
}

func texts(ts []token.Token) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

func rng(s, e uint32) ast.TokenRange { return ast.TokenRange{Start: s, End: e} }

func TestCopy(t *testing.T) {
	src := toks("a", "b", "c", "d")
	got := Copy(src, rng(1, 3))
	if texts(got) != "b c" {
		t.Fatalf("Copy = %q", texts(got))
	}
	got[0].Text = "x"
	got[0].Leading[0].Text = "\t"
	if src[1].Text != "b" || src[1].Leading[0].Text != " " {
		t.Fatalf("Copy aliases the source tokens")
	}
	if got := Copy(src, rng(3, 10)); texts(got) != "d" {
		t.Fatalf("out of range end not clamped: %q", texts(got))
	}
	if got := Copy(src, rng(2, 2)); len(got) != 0 {
		t.Fatalf("empty range copied %d tokens", len(got))
	}
}

func TestSubtract(t *testing.T) {
	src := toks("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
	tests := []struct {
		name string
		r    ast.TokenRange
		excl []ast.TokenRange
		want string
	}{
		{"none", rng(0, 10), nil, "0 1 2 3 4 5 6 7 8 9"},
		{"prefix", rng(0, 10), []ast.TokenRange{rng(0, 3)}, "3 4 5 6 7 8 9"},
		{"middle", rng(2, 8), []ast.TokenRange{rng(4, 6)}, "2 3 6 7"},
		{"unsorted", rng(0, 10), []ast.TokenRange{rng(7, 9), rng(1, 2)}, "0 2 3 4 5 6 9"},
		{"overlapping", rng(0, 10), []ast.TokenRange{rng(2, 5), rng(4, 7), rng(3, 4)}, "0 1 7 8 9"},
		{"adjacent", rng(0, 6), []ast.TokenRange{rng(1, 2), rng(2, 3)}, "0 3 4 5"},
		{"outside r", rng(3, 6), []ast.TokenRange{rng(0, 4), rng(8, 9)}, "4 5"},
		{"everything", rng(0, 10), []ast.TokenRange{rng(0, 10)}, ""},
		{"empty exclusion", rng(0, 3), []ast.TokenRange{rng(1, 1)}, "0 1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(Subtract(src, tt.r, tt.excl...))
			if got != tt.want {
				t.Fatalf("Subtract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubtractDoesNotReorderExclusions(t *testing.T) {
	src := toks("a", "b", "c")
	excl := []ast.TokenRange{rng(2, 3), rng(0, 1)}
	_ = Subtract(src, rng(0, 3), excl...)
	if excl[0] != rng(2, 3) {
		t.Fatalf("caller's exclusion slice was modified: %v", excl)
	}
}
