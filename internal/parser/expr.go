package parser

import (
	"macroemu/internal/ast"
	"macroemu/internal/token"
)

type pending uint8

const (
	pendingNone pending = iota
	pendingCond
	pendingMatch
)

// scanNodes проходит токены выражения (или типа, шаблона) до end или до
// токена верхнего уровня, на котором stop вернёт true (он не потребляется).
// Операторы и литералы пропускаются; в результат попадают вызовы макросов,
// блоки и группы. Аргументы макросов и атрибутов внутрь не разбираются.
func (p *Parser) scanNodes(end int, stop func(i int) bool) []*ast.Expr {
	var out []*ast.Expr
	want := pendingNone
	for p.pos < end && !stop(p.pos) {
		tok := p.peek()
		switch {
		case p.atOuterAttr() || p.atInnerAttr():
			// атрибуты полей, параметров и выражений
			p.parseAttr(p.attrStyleHere())

		case p.atMacroCallAt(p.pos):
			call := p.parseMacroCall()
			out = append(out, &ast.Expr{Kind: ast.ExprMacroCall, Macro: call, Toks: call.Toks, Delim: call.Delim})

		case tok.Is("if") || tok.Is("while") || tok.Is("for"):
			want = pendingCond
			p.advance()

		case tok.Is("match"):
			want = pendingMatch
			p.advance()

		case tok.Kind == token.LBrace:
			switch {
			case want == pendingMatch:
				out = append(out, p.parseGroup())
			case want == pendingCond || !p.structLiteralBrace():
				out = append(out, p.parseBlockExpr())
			default:
				out = append(out, p.parseGroup())
			}
			want = pendingNone

		case tok.Kind == token.LParen || tok.Kind == token.LBracket:
			out = append(out, p.parseGroup())

		default:
			p.advance()
		}
	}
	return out
}

func (p *Parser) attrStyleHere() ast.AttrStyle {
	if p.atInnerAttr() {
		return ast.AttrInner
	}
	return ast.AttrOuter
}

// structLiteralBrace: '{' сразу после пути (S {..}, Self {..}), литерал структуры.
func (p *Parser) structLiteralBrace() bool {
	if p.pos == 0 {
		return false
	}
	prev := p.toks[p.pos-1]
	if prev.Kind != token.Ident {
		return false
	}
	return !prev.IsKeyword() || prev.Is("Self")
}

func (p *Parser) parseBlockExpr() *ast.Expr {
	b := p.parseBlock()
	return &ast.Expr{Kind: ast.ExprBlock, Block: b, Toks: b.Toks, Delim: ast.DelimBrace}
}

// parseGroup разбирает (..), [..] или {..} без операторов: только вложенные узлы.
func (p *Parser) parseGroup() *ast.Expr {
	open := p.pos
	close := p.closeAt[open]
	delim := delimOf(p.peek().Kind)
	p.advance()
	children := p.scanNodes(close, func(int) bool { return false })
	p.pos = close + 1
	return &ast.Expr{
		Kind:     ast.ExprGroup,
		Delim:    delim,
		Children: children,
		Toks:     ast.RangeOf(open, close+1),
	}
}
