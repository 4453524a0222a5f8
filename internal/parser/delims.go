package parser

import (
	"macroemu/internal/diag"
)

// checkDelimiters matches every (, [ and { with its closer and fills closeAt.
// It reports every imbalance and returns false if there was any.
func (p *Parser) checkDelimiters() bool {
	p.closeAt = make([]int, len(p.toks))
	for i := range p.closeAt {
		p.closeAt[i] = -1
	}

	ok := true
	var stack []int
	for i, tok := range p.toks {
		switch {
		case tok.Kind.IsOpenDelim():
			stack = append(stack, i)

		case tok.Kind.IsCloseDelim():
			if len(stack) == 0 {
				p.report(diag.SynUnexpectedCloser, diag.SevError, tok.Span,
					"unexpected closing delimiter "+describe(tok))
				ok = false
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			opener := p.toks[open]
			if opener.Kind.Closer() != tok.Kind {
				p.reportWithNotes(diag.SynMismatchedDelimiter, diag.SevError, tok.Span,
					"mismatched closing delimiter "+describe(tok),
					[]diag.Note{{Span: opener.Span, Msg: "unclosed delimiter " + describe(opener)}})
				ok = false
				continue
			}
			p.closeAt[open] = i
		}
	}

	for _, open := range stack {
		opener := p.toks[open]
		p.reportWithNotes(diag.SynUnclosedDelimiter, diag.SevError, p.eof.Span,
			"this file contains an unclosed delimiter",
			[]diag.Note{{Span: opener.Span, Msg: "unclosed delimiter " + describe(opener)}})
		ok = false
	}
	return ok
}
