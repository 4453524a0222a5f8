package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"macroemu/internal/diag"
	"macroemu/internal/lexer"
	"macroemu/internal/source"
	"macroemu/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func errorMessages(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность видов и текстов токенов
func expectTokens(t *testing.T, input string, kinds []token.Kind, texts []string) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := lx.All()

	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ndiags: %v",
			len(kinds), len(tokens), input, tokensToString(tokens), errorMessages(bag))
	}
	for i, tok := range tokens {
		if tok.Kind != kinds[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, kinds[i], tok.Kind, tok.Text)
		}
		if texts != nil && tok.Text != texts[i] {
			t.Errorf("token %d: expected text %q, got %q", i, texts[i], tok.Text)
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", errorMessages(bag))
	}
}

func TestMacroInvocationTokens(t *testing.T) {
	expectTokens(t, `my_macro!(a + b, "x")`,
		[]token.Kind{
			token.Ident, token.Bang, token.LParen, token.Ident, token.Plus,
			token.Ident, token.Comma, token.StrLit, token.RParen,
		},
		[]string{"my_macro", "!", "(", "a", "+", "b", ",", `"x"`, ")"})
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_", "_"},
		{"__x1", "__x1"},
		{"fn", "fn"},
		{"r#type", "r#type"},
		{"переменная", "переменная"},
		{"bar", "bar"},
		{"crate", "crate"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			expectTokens(t, tc.input, []token.Kind{token.Ident}, []string{tc.text})
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0xFF_u8", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010", token.IntLit},
		{"1u8", token.IntLit},
		{"3.14", token.FloatLit},
		{"2.0f32", token.FloatLit},
		{"1e10", token.FloatLit},
		{"1.5E-3", token.FloatLit},
		{"1.", token.FloatLit},
		{`"hello\n\"world\""`, token.StrLit},
		{"\"multi\nline\"", token.StrLit},
		{`b"bytes"`, token.ByteStrLit},
		{`c"cstr"`, token.CStrLit},
		{`r"raw \ string"`, token.RawStrLit},
		{`r#"has "quotes""#`, token.RawStrLit},
		{`r##"a "# b"##`, token.RawStrLit},
		{`br#"x"#`, token.RawByteStrLit},
		{`cr"x"`, token.RawCStrLit},
		{`'x'`, token.CharLit},
		{`'\n'`, token.CharLit},
		{`'\''`, token.CharLit},
		{`'\u{1F600}'`, token.CharLit},
		{`'é'`, token.CharLit},
		{`b'x'`, token.ByteLit},
		{`b'\x7f'`, token.ByteLit},
		{`'a`, token.Lifetime},
		{`'static`, token.Lifetime},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			expectTokens(t, tc.input, []token.Kind{tc.kind}, []string{tc.input})
		})
	}
}

func TestNumberDotDisambiguation(t *testing.T) {
	expectTokens(t, "1..2",
		[]token.Kind{token.IntLit, token.DotDot, token.IntLit}, []string{"1", "..", "2"})
	expectTokens(t, "1..=9",
		[]token.Kind{token.IntLit, token.DotDotEq, token.IntLit}, nil)
	expectTokens(t, "1.max(2)",
		[]token.Kind{token.IntLit, token.Dot, token.Ident, token.LParen, token.IntLit, token.RParen}, nil)
	expectTokens(t, "x.0",
		[]token.Kind{token.Ident, token.Dot, token.IntLit}, nil)
}

func TestOperatorsGreedy(t *testing.T) {
	expectTokens(t, "a <<= b >>= c ..= d ... :: -> => != == <= >= && || += -= *= /= %= ^= &= |=",
		[]token.Kind{
			token.Ident, token.ShlEq, token.Ident, token.ShrEq, token.Ident, token.DotDotEq,
			token.Ident, token.DotDotDot, token.PathSep, token.RArrow, token.FatArrow,
			token.Ne, token.EqEq, token.Le, token.Ge, token.AndAnd, token.OrOr,
			token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.PercentEq,
			token.CaretEq, token.AmpEq, token.PipeEq,
		}, nil)
	expectTokens(t, "# $ ? ~ @ ; : , . [ ] { } ( )",
		[]token.Kind{
			token.Pound, token.Dollar, token.Question, token.Tilde, token.At, token.Semi,
			token.Colon, token.Comma, token.Dot, token.LBracket, token.RBracket,
			token.LBrace, token.RBrace, token.LParen, token.RParen,
		}, nil)
	// a<-b: это "a < -b"
	expectTokens(t, "a<-b",
		[]token.Kind{token.Ident, token.Lt, token.Minus, token.Ident}, nil)
}

func TestCommentsAreTriviaDocsAreTokens(t *testing.T) {
	src := "// plain\n/* block /* nested */ */\n/// outer doc\n//! inner doc\n/** block doc */\n/*! inner block */\n//// not doc\n/**/ x"
	lx, bag := makeTestLexer(src)
	toks := lx.All()
	if bag.HasErrors() {
		t.Fatalf("diags: %v", errorMessages(bag))
	}
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.DocComment, "/// outer doc"},
		{token.InnerDocComment, "//! inner doc"},
		{token.DocComment, "/** block doc */"},
		{token.InnerDocComment, "/*! inner block */"},
		{token.Ident, "x"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v", tokensToString(toks))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d = %v(%q), want %v(%q)", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}

	lead := toks[0].Leading
	if len(lead) != 4 {
		t.Fatalf("leading trivia of first doc = %d, want 4: %+v", len(lead), lead)
	}
	if lead[0].Kind != token.TriviaLineComment || lead[2].Kind != token.TriviaBlockComment {
		t.Errorf("unexpected trivia kinds: %v, %v", lead[0].Kind, lead[2].Kind)
	}
	last := toks[len(toks)-1].Leading
	var sawEmptyBlock bool
	for _, tr := range last {
		if tr.Kind == token.TriviaBlockComment && tr.Text == "/**/" {
			sawEmptyBlock = true
		}
	}
	if !sawEmptyBlock {
		t.Errorf("/**/ should be a plain block comment, trivia: %+v", last)
	}
}

func TestTokenTextMatchesSpan(t *testing.T) {
	src := "#[derive(Debug, Clone)]\npub struct S<'a> { x: &'a str, y: Vec<u8> }\nfn f() { assert!(x >= 1.5e3, \"msg {}\", r#\"raw\"#); }\n"
	lx, bag := makeTestLexer(src)
	toks := lx.All()
	if bag.HasErrors() {
		t.Fatalf("diags: %v", errorMessages(bag))
	}
	prevEnd := uint32(0)
	for i, tok := range toks {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("token %d: span text %q != Text %q", i, got, tok.Text)
		}
		if tok.Span.Start < prevEnd {
			t.Fatalf("token %d overlaps previous", i)
		}
		prevEnd = tok.Span.End
	}
}

func TestShebang(t *testing.T) {
	expectTokens(t, "#!/usr/bin/env run\nfn main() {}",
		[]token.Kind{token.Ident, token.Ident, token.LParen, token.RParen, token.LBrace, token.RBrace}, nil)
	expectTokens(t, "#![allow(dead_code)]",
		[]token.Kind{
			token.Pound, token.Bang, token.LBracket, token.Ident, token.LParen,
			token.Ident, token.RParen, token.RBracket,
		}, nil)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"never closed`, diag.LexUnterminatedString},
		{`r#"never closed"`, diag.LexUnterminatedString},
		{`r##x"`, diag.LexBadRawString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"0x", diag.LexBadNumber},
		{"''", diag.LexUnterminatedChar},
		{"' x", diag.LexBadLifetime},
		{"§", diag.LexUnknownChar},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.input)
			lx.All()
			if !bag.HasErrors() {
				t.Fatalf("expected error for %q", tc.input)
			}
			if got := bag.Items()[0].Code; got != tc.code {
				t.Fatalf("code = %v, want %v (%v)", got.ID(), tc.code.ID(), errorMessages(bag))
			}
		})
	}
}

func TestNonNFCIdentWarns(t *testing.T) {
	// "e" + combining acute accent
	lx, bag := makeTestLexer("cafe\u0301")
	toks := lx.All()
	if len(toks) != 1 || toks[0].Kind != token.Ident {
		t.Fatalf("tokens = %v", tokensToString(toks))
	}
	if bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected a single warning, got %v", errorMessages(bag))
	}
	if bag.Items()[0].Code != diag.LexIdentNotNFC {
		t.Fatalf("code = %v", bag.Items()[0].Code.ID())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" || len(n.Leading) != 1 {
		t.Fatalf("second token = %q leading %d", n.Text, len(n.Leading))
	}
	for range 2 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", n.Kind)
		}
	}
}
