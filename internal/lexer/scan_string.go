package lexer

import (
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// scanQuoted сканирует "..." начиная с открывающей кавычки (префикс уже съеден).
// Переводы строк внутри разрешены; escape-последовательности не валидируются.
func (lx *Lexer) scanQuoted(start Mark, kind token.Kind) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			lx.eatSuffix()
			return lx.emit(start, kind)
		case '\\':
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(start, token.Invalid)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanRaw сканирует #*"..."#* после префикса r/br/cr.
func (lx *Lexer) scanRaw(start Mark, kind token.Kind) token.Token {
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexBadRawString, tok.Span, "expected '\"' in raw string literal")
		return tok
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.eatSuffix()
			return lx.emit(start, kind)
		}
	}
	tok := lx.emit(start, token.Invalid)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated raw string literal")
	return tok
}

// scanCharOrLifetime различает 'x', '\n', 'a (lifetime/label) и b'x'.
// Курсор стоит на кавычке; start указывает на префикс, если он был.
func (lx *Lexer) scanCharOrLifetime(start Mark, isByte bool) token.Token {
	lx.cursor.Bump() // '\''
	kind := token.CharLit
	if isByte {
		kind = token.ByteLit
	}

	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		lx.bumpRune()
		// \u{...} и \x41, дочитываем до закрывающей кавычки
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.closeChar(start, kind)
	}

	r, sz := lx.peekRune()
	if sz == 0 || r == '\n' || r == '\'' {
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexUnterminatedChar, tok.Span, "empty or unterminated character literal")
		return tok
	}
	afterFirst := lx.cursor.Mark()
	lx.bumpRune()
	if lx.cursor.Peek() == '\'' {
		return lx.closeChar(start, kind)
	}

	// не char: пробуем lifetime ('a, 'static, 'r#ident)
	lx.cursor.Reset(afterFirst)
	if isByte {
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated byte literal")
		return tok
	}
	if lx.cursor.Peek() == 'r' && lx.cursor.PeekAt(1) == '#' {
		lx.cursor.BumpN(2)
	}
	if !lx.eatIdentBody() {
		lx.bumpRune()
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexBadLifetime, tok.Span, "expected lifetime name or character literal")
		return tok
	}
	return lx.emit(start, token.Lifetime)
}

func (lx *Lexer) closeChar(start Mark, kind token.Kind) token.Token {
	if !lx.cursor.Eat('\'') {
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
		return tok
	}
	lx.eatSuffix()
	return lx.emit(start, kind)
}
