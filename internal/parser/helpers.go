package parser

import (
	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/source"
	"macroemu/internal/token"
)

func (p *Parser) tokAt(i int) token.Token {
	if i >= 0 && i < len(p.toks) {
		return p.toks[i]
	}
	return p.eof
}

func (p *Parser) peek() token.Token {
	return p.tokAt(p.pos)
}

func (p *Parser) peekAt(n int) token.Token {
	return p.tokAt(p.pos + n)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// atKw: текущий токен является словом text (ключевые слова тоже Ident).
func (p *Parser) atKw(text string) bool {
	return p.peek().Is(text)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// skipTree съедает токен, а открывающую скобку вместе со всей группой.
func (p *Parser) skipTree() {
	if p.peek().Kind.IsOpenDelim() {
		p.pos = p.closeAt[p.pos] + 1
		return
	}
	p.advance()
}

func (p *Parser) rangeFrom(start int) ast.TokenRange {
	return ast.RangeOf(start, p.pos)
}

// getDiagnosticSpan: лучший span для диагностики; на EOF указываем сразу за последним токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	if p.pos >= len(p.toks) && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.peek().Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.reportWithNotes(code, sev, sp, msg, nil)
}

func (p *Parser) reportWithNotes(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) bool {
	limited := p.opts.Enough()
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || limited {
		return false // нет reporter или достигли лимита
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
	return true
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "'" + tok.Text + "'"
}

func delimOf(k token.Kind) ast.Delim {
	switch k {
	case token.LParen:
		return ast.DelimParen
	case token.LBracket:
		return ast.DelimBracket
	case token.LBrace:
		return ast.DelimBrace
	}
	return ast.DelimNone
}
