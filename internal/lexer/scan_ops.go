package lexer

import (
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '='):
		return lx.emit(start, token.DotDotEq)
	case lx.try3('.', '.', '.'):
		return lx.emit(start, token.DotDotDot)
	case lx.try3('<', '<', '='):
		return lx.emit(start, token.ShlEq)
	case lx.try3('>', '>', '='):
		return lx.emit(start, token.ShrEq)
	}

	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return lx.emit(start, op.kind)
		}
	}

	if k, ok := oneByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(start, k)
	}

	// неизвестный символ: съедаем руну целиком
	lx.bumpRune()
	if lx.cursor.Off == uint32(start) {
		lx.cursor.Bump()
	}
	tok := lx.emit(start, token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+quoteText(tok.Text))
	return tok
}

type op2 struct {
	a, b byte
	kind token.Kind
}

var twoByteOps = [...]op2{
	{'.', '.', token.DotDot},
	{':', ':', token.PathSep},
	{'-', '>', token.RArrow},
	{'=', '>', token.FatArrow},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.Ne},
	{'<', '=', token.Le},
	{'>', '=', token.Ge},
	{'<', '<', token.Shl},
	{'>', '>', token.Shr},
	{'+', '=', token.PlusEq},
	{'-', '=', token.MinusEq},
	{'*', '=', token.StarEq},
	{'/', '=', token.SlashEq},
	{'%', '=', token.PercentEq},
	{'^', '=', token.CaretEq},
	{'&', '=', token.AmpEq},
	{'|', '=', token.PipeEq},
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'^': token.Caret,
	'!': token.Bang,
	'&': token.Amp,
	'|': token.Pipe,
	'=': token.Eq,
	'<': token.Lt,
	'>': token.Gt,
	'@': token.At,
	'.': token.Dot,
	',': token.Comma,
	';': token.Semi,
	':': token.Colon,
	'#': token.Pound,
	'$': token.Dollar,
	'?': token.Question,
	'~': token.Tilde,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

func quoteText(s string) string {
	return "'" + s + "'"
}
