package lexer

import (
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r' и прочие пробелы коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (с вложенностью)
// Doc-комментарии (///, //!, /** */, /*! */) это атрибуты, их сканирует scanDocComment.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(start, token.TriviaSpace)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(start, token.TriviaNewline)
			continue
		}

		if b == '/' && !lx.atDocComment() && lx.scanCommentIntoHold() {
			continue
		}
		break
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}

func (lx *Lexer) pushTrivia(start Mark, kind token.TriviaKind) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// skipShebang treats a leading "#!" line as a comment unless it starts an inner attribute.
func (lx *Lexer) skipShebang() {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '#' || b1 != '!' {
		return
	}
	// "#![" и "#! [" это внутренний атрибут
	for i := uint32(2); ; i++ {
		b := lx.cursor.PeekAt(i)
		if isSpace(b) || b == '\n' {
			continue
		}
		if b == '[' {
			return
		}
		break
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushTrivia(start, token.TriviaLineComment)
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	switch lx.cursor.PeekAt(1) {
	case '/':
		lx.skipLine()
		lx.pushTrivia(start, token.TriviaLineComment)
		return true
	case '*':
		lx.skipBlockComment(start)
		lx.pushTrivia(start, token.TriviaBlockComment)
		return true
	}
	return false
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// skipBlockComment consumes "/* ... */" with nesting; the cursor sits on the opening '/'.
func (lx *Lexer) skipBlockComment(start Mark) {
	lx.cursor.BumpN(2)
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.try2('/', '*'):
			depth++
		case lx.try2('*', '/'):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
}

// atDocComment reports whether the cursor is on ///, //!, /** or /*!.
// "////" и "/***" это обычные комментарии, "/**/" пустой блочный.
func (lx *Lexer) atDocComment() bool {
	if lx.cursor.Peek() != '/' {
		return false
	}
	b1, b2, b3 := lx.cursor.PeekAt(1), lx.cursor.PeekAt(2), lx.cursor.PeekAt(3)
	switch b1 {
	case '/':
		return b2 == '!' || (b2 == '/' && b3 != '/')
	case '*':
		return b2 == '!' || (b2 == '*' && b3 != '*' && b3 != '/')
	}
	return false
}

func (lx *Lexer) scanDocComment() token.Token {
	start := lx.cursor.Mark()
	inner := lx.cursor.PeekAt(2) == '!'
	if lx.cursor.PeekAt(1) == '/' {
		lx.skipLine()
	} else {
		lx.skipBlockComment(start)
	}
	kind := token.DocComment
	if inner {
		kind = token.InnerDocComment
	}
	tok := lx.emit(start, kind)
	// \r перед \n не входит в текст комментария
	for len(tok.Text) > 0 && tok.Text[len(tok.Text)-1] == '\r' {
		tok.Text = tok.Text[:len(tok.Text)-1]
		tok.Span.End--
	}
	return tok
}
