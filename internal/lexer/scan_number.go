package lexer

import (
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1.0, 1., 1e-3, 2.5E+10 и суффиксы (1u8, 2.0f32).
// "1..2", "1.foo()" и "t.0.1" не съедают точку как дробную часть там, где за ней не цифра.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.BumpN(2)
			n := 0
			for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
				if b != '_' {
					n++
				}
				lx.cursor.Bump()
			}
			if n == 0 {
				tok := lx.emit(start, token.Invalid)
				lx.errLex(diag.LexBadNumber, tok.Span, "missing digits after integer base prefix")
				return tok
			}
			lx.eatSuffix()
			return lx.emit(start, kind)
		}
	}

	lx.eatDecDigits()

	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.eatDecDigits()
			kind = token.FloatLit
		case next == '.' || next == '_' || isIdentStartByte(next) || next >= utf8RuneSelf:
			// диапазон или доступ к полю/методу: точка не наша
		default:
			lx.cursor.Bump()
			return lx.emit(start, token.FloatLit)
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		for lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			lx.eatDecDigits()
			kind = token.FloatLit
		} else {
			// "1else": не экспонента, это суффикс-идентификатор
			lx.cursor.Reset(save)
		}
	}

	lx.eatSuffix()
	return lx.emit(start, kind)
}

func (lx *Lexer) eatDecDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

// eatSuffix consumes a literal suffix such as u8, f32 or usize.
func (lx *Lexer) eatSuffix() {
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b >= utf8RuneSelf {
		lx.eatIdentBody()
	}
}
