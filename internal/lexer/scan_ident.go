package lexer

import (
	"golang.org/x/text/unicode/norm"

	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// scanIdent сканирует идентификатор (ключевые слова тоже Ident).
// Token.Text: ровно исходный срез; не-NFC формы помечаются предупреждением.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	if !lx.eatIdentBody() {
		return lx.scanOperatorOrPunct()
	}
	tok := lx.emit(start, token.Ident)
	if !norm.NFC.IsNormalString(tok.Text) {
		lx.warnLex(diag.LexIdentNotNFC, tok.Span, "identifier "+tok.Text+" is not in NFC form")
	}
	return tok
}

// eatIdentBody consumes [start][continue]* and reports whether anything was eaten.
func (lx *Lexer) eatIdentBody() bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return false
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return false
		}
		lx.bumpRune()
	}
	for {
		r, sz = lx.peekRune()
		if sz == 0 {
			return true
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				return true
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			return true
		}
		lx.bumpRune()
	}
}

// scanPrefixed handles identifiers starting with r, b or c that may be literal prefixes.
func (lx *Lexer) scanPrefixed() token.Token {
	start := lx.cursor.Mark()
	b0, b1, b2 := lx.cursor.Peek(), lx.cursor.PeekAt(1), lx.cursor.PeekAt(2)

	switch b0 {
	case 'r':
		switch {
		case b1 == '"' || (b1 == '#' && (b2 == '"' || b2 == '#')):
			lx.cursor.Bump()
			return lx.scanRaw(start, token.RawStrLit)
		case b1 == '#' && (isIdentStartByte(b2) || b2 >= utf8RuneSelf):
			// r#ident
			lx.cursor.BumpN(2)
			if lx.eatIdentBody() {
				return lx.emit(start, token.Ident)
			}
			lx.cursor.Reset(start)
		}
	case 'b':
		switch {
		case b1 == '\'':
			lx.cursor.Bump()
			return lx.scanCharOrLifetime(start, true)
		case b1 == '"':
			lx.cursor.Bump()
			return lx.scanQuoted(start, token.ByteStrLit)
		case b1 == 'r' && (b2 == '"' || b2 == '#'):
			lx.cursor.BumpN(2)
			return lx.scanRaw(start, token.RawByteStrLit)
		}
	case 'c':
		switch {
		case b1 == '"':
			lx.cursor.Bump()
			return lx.scanQuoted(start, token.CStrLit)
		case b1 == 'r' && (b2 == '"' || b2 == '#'):
			lx.cursor.BumpN(2)
			return lx.scanRaw(start, token.RawCStrLit)
		}
	}
	return lx.scanIdent()
}
