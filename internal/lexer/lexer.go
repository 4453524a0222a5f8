package lexer

import (
	"macroemu/internal/source"
	"macroemu/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.skipShebang()
	return lx
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold к EOF не приклеиваем
	if lx.cursor.EOF() {
		lx.hold = nil
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '/' && lx.atDocComment():
		tok = lx.scanDocComment()

	case ch == 'r' || ch == 'b' || ch == 'c':
		// r"..", r#"..", r#ident, b'x', b"..", br"..", c"..", cr"..", или просто идентификатор
		tok = lx.scanPrefixed()

	case isIdentStartByte(ch):
		tok = lx.scanIdent()

	case ch >= utf8RuneSelf:
		tok = lx.scanIdent()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanQuoted(lx.cursor.Mark(), token.StrLit)

	case ch == '\'':
		tok = lx.scanCharOrLifetime(lx.cursor.Mark(), false)

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the remaining input. The trailing EOF token is not included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(start Mark, k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

// File returns the source file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}
