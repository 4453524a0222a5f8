package emulate

import (
	"strings"

	"macroemu/internal/token"
)

type (
	// Token is one lexical token with its source span and leading trivia.
	Token = token.Token
	// TokenKind classifies a Token.
	TokenKind = token.Kind
)

// Frequently inspected token kinds.
const (
	Ident           = token.Ident
	Lifetime        = token.Lifetime
	IntLit          = token.IntLit
	FloatLit        = token.FloatLit
	StrLit          = token.StrLit
	RawStrLit       = token.RawStrLit
	CharLit         = token.CharLit
	DocComment      = token.DocComment
	InnerDocComment = token.InnerDocComment
	Comma           = token.Comma
	Semi            = token.Semi
	Pound           = token.Pound
	LParen          = token.LParen
	RParen          = token.RParen
	LBrace          = token.LBrace
	RBrace          = token.RBrace
	LBracket        = token.LBracket
	RBracket        = token.RBracket
)

// TokenStream is an immutable sequence of tokens owned by the callback.
// It never shares memory with the parsed file.
type TokenStream struct {
	toks []Token
}

// NewTokenStream copies toks into a stream.
func NewTokenStream(toks []Token) TokenStream {
	out := make([]Token, len(toks))
	copy(out, toks)
	return TokenStream{toks: out}
}

func (s TokenStream) Len() int      { return len(s.toks) }
func (s TokenStream) IsEmpty() bool { return len(s.toks) == 0 }

// At returns the i-th token.
func (s TokenStream) At(i int) Token { return s.toks[i] }

// Tokens returns a copy of the tokens.
func (s TokenStream) Tokens() []Token {
	out := make([]Token, len(s.toks))
	copy(out, s.toks)
	return out
}

// Texts returns the source text of each token.
func (s TokenStream) Texts() []string {
	out := make([]string, len(s.toks))
	for i, t := range s.toks {
		out[i] = t.Text
	}
	return out
}

// String joins token texts with single spaces: `a + b , "x"`.
func (s TokenStream) String() string {
	return strings.Join(s.Texts(), " ")
}

// Source returns the tokens with the whitespace and comments that
// separated them in the file. Trivia before the first token is dropped.
func (s TokenStream) Source() string {
	var sb strings.Builder
	for i, t := range s.toks {
		if i > 0 {
			for _, tr := range t.Leading {
				sb.WriteString(tr.Text)
			}
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Equal compares token kinds and texts, ignoring positions and trivia.
func (s TokenStream) Equal(other TokenStream) bool {
	if len(s.toks) != len(other.toks) {
		return false
	}
	for i := range s.toks {
		if s.toks[i].Kind != other.toks[i].Kind || s.toks[i].Text != other.toks[i].Text {
			return false
		}
	}
	return true
}

// SplitTopLevel splits the stream at sep tokens that are not nested inside
// delimiters: `a, f(b, c), d` split at Comma gives `a`, `f(b, c)`, `d`.
// A trailing separator does not produce an empty last part.
func (s TokenStream) SplitTopLevel(sep TokenKind) []TokenStream {
	if len(s.toks) == 0 {
		return nil
	}
	var (
		parts []TokenStream
		depth int
		start int
	)
	for i, t := range s.toks {
		switch {
		case t.Kind.IsOpenDelim():
			depth++
		case t.Kind.IsCloseDelim():
			depth--
		case t.Kind == sep && depth == 0:
			parts = append(parts, TokenStream{toks: s.toks[start:i:i]})
			start = i + 1
		}
	}
	if start < len(s.toks) {
		parts = append(parts, TokenStream{toks: s.toks[start:]})
	}
	return parts
}
