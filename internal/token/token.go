package token

import (
	"strings"

	"macroemu/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character or string literal.
// Like the compiler, true and false are identifiers, not literals.
func (t Token) IsLiteral() bool {
	return t.Kind >= IntLit && t.Kind <= ByteLit
}

// IsPunct reports whether the token is punctuation (delimiters included).
func (t Token) IsPunct() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// IsIdent reports whether the token is an identifier (keywords included).
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsKeyword reports whether the token is a non-raw keyword identifier.
func (t Token) IsKeyword() bool {
	if t.Kind != Ident {
		return false
	}
	_, ok := LookupKeyword(t.Text)
	return ok
}

// Is reports whether the token is the identifier or keyword text.
func (t Token) Is(text string) bool {
	return t.Kind == Ident && t.Text == text
}

// IsDoc reports whether the token is a doc comment of either style.
func (t Token) IsDoc() bool {
	return t.Kind == DocComment || t.Kind == InnerDocComment
}

// IdentName returns the identifier without the raw prefix (r#type -> type).
func IdentName(text string) string {
	return strings.TrimPrefix(text, "r#")
}
