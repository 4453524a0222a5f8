package parser

import (
	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// parseBlock разбирает { #![inner] stmts }; курсор стоит на '{'.
func (p *Parser) parseBlock() *ast.Block {
	open := p.pos
	close := p.closeAt[open]
	p.advance()
	b := &ast.Block{}
	b.InnerAttrs = p.parseInnerAttrs(close)
	b.Stmts = p.parseStmts(close)
	p.pos = close + 1
	b.Toks = ast.RangeOf(open, close+1)
	return b
}

func (p *Parser) parseStmts(end int) []*ast.Stmt {
	var stmts []*ast.Stmt
	for p.pos < end && !p.opts.Enough() {
		start := p.pos
		if p.at(token.Semi) {
			p.advance()
			stmts = append(stmts, &ast.Stmt{Kind: ast.StmtEmpty, Toks: p.rangeFrom(start)})
			continue
		}

		attrs := p.parseOuterAttrs(end)
		if p.pos >= end {
			if len(attrs) > 0 {
				p.err(diag.SynAttrWithoutItem, "expected statement after outer attribute")
			}
			break
		}

		stmt := &ast.Stmt{}
		if kind, _, ok := p.classifyItem(); ok && kind != ast.ItemMacroCall {
			item, ok := p.parseItem(start, attrs, end)
			if !ok {
				p.resyncItem(end)
				continue
			}
			stmt.Kind = ast.StmtItem
			stmt.Item = item
		} else if p.atKw("let") {
			p.advance()
			stmt.Kind = ast.StmtLet
			stmt.Attrs = attrs
			stmt.Exprs = p.parseLet(end)
			if _, ok := p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after let statement"); !ok {
				p.pos = end
			}
		} else {
			stmt.Kind = ast.StmtExpr
			stmt.Attrs = attrs
			stmt.Exprs = p.parseExprStmt(end)
		}
		stmt.Toks = p.rangeFrom(start)
		stmts = append(stmts, stmt)
	}
	return stmts
}

// parseLet сканирует PAT [: TYPE] [= EXPR [else {..}]] до ';'. После '='
// выражение обязательно.
func (p *Parser) parseLet(end int) []*ast.Expr {
	nodes := p.scanNodes(end, func(i int) bool {
		return p.toks[i].Kind == token.Eq || p.stopAtSemi(i)
	})
	if p.pos >= end || !p.at(token.Eq) {
		return nodes
	}
	eq := p.peek()
	p.advance()
	if p.pos >= end || p.at(token.Semi) || p.atKw("else") {
		p.report(diag.SynExpectExpression, diag.SevError, eq.Span,
			"expected expression after '=' in let statement, found "+describe(p.peek()))
	}
	return append(nodes, p.scanNodes(end, p.stopAtSemi)...)
}

// parseExprStmt разбирает оператор-выражение. Блочные выражения в начале
// оператора (if, match, loop, while, for, unsafe {}, {}, m!{}) завершают его
// на закрывающей скобке, если дальше не идут '.', '?' или else.
func (p *Parser) parseExprStmt(end int) []*ast.Expr {
	if p.atBlockLike() {
		nodes := p.parseBlockLike(end)
		if p.pos < end && (p.at(token.Dot) || p.at(token.Question)) {
			nodes = append(nodes, p.scanNodes(end, p.stopAtSemi)...)
		}
		if p.pos < end && p.at(token.Semi) {
			p.advance()
		}
		return nodes
	}

	nodes := p.scanNodes(end, p.stopAtSemi)
	if p.pos < end && p.at(token.Semi) {
		p.advance()
	}
	return nodes
}

func (p *Parser) atBlockLike() bool {
	i := p.pos
	if p.tokAt(i).Kind == token.Lifetime && p.tokAt(i+1).Kind == token.Colon {
		i += 2
	}
	t, next := p.tokAt(i), p.tokAt(i+1)
	switch {
	case t.Kind == token.LBrace:
		return true
	case t.Is("if"), t.Is("match"), t.Is("while"), t.Is("for"), t.Is("loop"):
		return true
	case t.Is("unsafe") || t.Is("const") || t.Is("try"):
		return next.Kind == token.LBrace
	case t.Is("async"):
		return next.Kind == token.LBrace || (next.Is("move") && p.tokAt(i+2).Kind == token.LBrace)
	}
	if j, ok := p.pathEnd(i); ok && i == p.pos {
		return p.tokAt(j).Kind == token.Bang && p.tokAt(j+1).Kind == token.LBrace
	}
	return false
}

// parseBlockLike потребляет одну блочную конструкцию и возвращает найденные узлы.
func (p *Parser) parseBlockLike(end int) []*ast.Expr {
	if p.at(token.Lifetime) {
		p.pos += 2
	}
	var nodes []*ast.Expr
	switch {
	case p.at(token.LBrace):
		return append(nodes, p.parseBlockExpr())

	case p.atKw("if"):
		for {
			p.advance() // if
			nodes = append(nodes, p.scanCondition(end)...)
			if !p.expectBlockStart(end, "if") {
				return nodes
			}
			nodes = append(nodes, p.parseBlockExpr())
			if !p.atKw("else") || p.pos >= end {
				return nodes
			}
			p.advance() // else
			if !p.atKw("if") {
				if !p.expectBlockStart(end, "else") {
					return nodes
				}
				return append(nodes, p.parseBlockExpr())
			}
		}

	case p.atKw("match"):
		p.advance()
		nodes = append(nodes, p.scanNodes(end, p.stopAtBrace)...)
		if !p.expectBlockStart(end, "match") {
			return nodes
		}
		return append(nodes, p.parseGroup())

	case p.atKw("while"):
		p.advance()
		nodes = append(nodes, p.scanCondition(end)...)
		if !p.expectBlockStart(end, "while") {
			return nodes
		}
		return append(nodes, p.parseBlockExpr())

	case p.atKw("for"):
		p.advance()
		nodes = append(nodes, p.scanNodes(end, func(i int) bool { return p.toks[i].Is("in") })...)
		if p.pos < end && p.atKw("in") {
			p.advance()
		}
		nodes = append(nodes, p.scanNodes(end, p.stopAtBrace)...)
		if !p.expectBlockStart(end, "for") {
			return nodes
		}
		return append(nodes, p.parseBlockExpr())

	case p.at(token.Ident) && p.peekAt(1).Kind != token.Bang && p.peekAt(1).Kind != token.PathSep:
		// loop, unsafe, const, try, async [move]
		for !p.at(token.LBrace) {
			p.advance()
		}
		return append(nodes, p.parseBlockExpr())

	default:
		call := p.parseMacroCall()
		return append(nodes, &ast.Expr{Kind: ast.ExprMacroCall, Macro: call, Toks: call.Toks, Delim: call.Delim})
	}
}

// scanCondition сканирует условие if/while. В "if let PAT = EXPR" шаблон может
// содержать '{' (структурный шаблон), поэтому до '=' останавливаемся только на '='.
func (p *Parser) scanCondition(end int) []*ast.Expr {
	var nodes []*ast.Expr
	if p.atKw("let") {
		p.advance()
		nodes = append(nodes, p.scanNodes(end, func(i int) bool { return p.toks[i].Kind == token.Eq })...)
	}
	return append(nodes, p.scanNodes(end, p.stopAtBrace)...)
}

func (p *Parser) expectBlockStart(end int, after string) bool {
	if p.pos < end && p.at(token.LBrace) {
		return true
	}
	p.err(diag.SynExpectBody, "expected '{' after "+after+", found "+describe(p.peek()))
	p.pos = end
	return false
}

func (p *Parser) stopAtBrace(i int) bool {
	return p.toks[i].Kind == token.LBrace
}
