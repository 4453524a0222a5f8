package token_test

import (
	"testing"

	"macroemu/internal/source"
	"macroemu/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}, Text: text}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.FloatLit, token.StrLit, token.ByteStrLit, token.CStrLit,
		token.RawStrLit, token.RawByteStrLit, token.RawCStrLit, token.CharLit, token.ByteLit,
	}
	for _, k := range lits {
		if !tok(k, "").IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.Lifetime, token.DocComment, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k, "").IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
	if tok(token.Ident, "true").IsLiteral() {
		t.Fatalf("true is an identifier")
	}
}

func TestIsPunct(t *testing.T) {
	for k := token.Plus; k <= token.RBracket; k++ {
		if !tok(k, "").IsPunct() {
			t.Fatalf("%v should be punct", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.IntLit, token.DocComment, token.EOF} {
		if tok(k, "").IsPunct() {
			t.Fatalf("%v must NOT be punct", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Ident:    "Ident",
		token.PathSep:  "PathSep",
		token.Pound:    "Pound",
		token.RBracket: "RBracket",
		token.ShrEq:    "ShrEq",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("unknown kind = %q", got)
	}
}

func TestDelimiters(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.LParen:   token.RParen,
		token.LBrace:   token.RBrace,
		token.LBracket: token.RBracket,
	}
	for open, closeKind := range pairs {
		if !open.IsOpenDelim() || !closeKind.IsCloseDelim() {
			t.Errorf("%v/%v not classified as delimiters", open, closeKind)
		}
		if open.Closer() != closeKind {
			t.Errorf("%v.Closer() = %v", open, open.Closer())
		}
	}
	if token.Comma.Closer() != token.Invalid {
		t.Error("comma has no closer")
	}
}
