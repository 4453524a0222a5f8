package parser

import (
	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

func (p *Parser) atOuterAttr() bool {
	return p.at(token.DocComment) ||
		(p.at(token.Pound) && p.peekAt(1).Kind == token.LBracket)
}

func (p *Parser) atInnerAttr() bool {
	return p.at(token.InnerDocComment) ||
		(p.at(token.Pound) && p.peekAt(1).Kind == token.Bang && p.peekAt(2).Kind == token.LBracket)
}

// parseOuterAttrs собирает #[..] и внешние doc-комментарии перед узлом.
// Внутренний атрибут в этой позиции является ошибкой, его пропускаем.
func (p *Parser) parseOuterAttrs(end int) []ast.Attr {
	var attrs []ast.Attr
	for p.pos < end {
		switch {
		case p.atOuterAttr():
			if a, ok := p.parseAttr(ast.AttrOuter); ok {
				attrs = append(attrs, a)
			}
		case p.atInnerAttr():
			p.err(diag.SynInnerAttrPosition, "an inner attribute is not permitted in this context")
			p.parseAttr(ast.AttrInner)
		default:
			return attrs
		}
	}
	return attrs
}

// parseInnerAttrs собирает #![..] и //! в начале файла или тела.
func (p *Parser) parseInnerAttrs(end int) []ast.Attr {
	var attrs []ast.Attr
	for p.pos < end && p.atInnerAttr() {
		if a, ok := p.parseAttr(ast.AttrInner); ok {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

func (p *Parser) parseAttr(style ast.AttrStyle) (ast.Attr, bool) {
	start := p.pos
	if p.peek().IsDoc() {
		p.advance()
		r := p.rangeFrom(start)
		return ast.Attr{
			Kind:  ast.AttrDoc,
			Style: style,
			Path:  ast.Path{Segments: []string{"doc"}, Toks: r},
			Args:  r,
			Toks:  r,
		}, true
	}

	p.advance() // '#'
	if style == ast.AttrInner {
		p.advance() // '!'
	}
	close := p.closeAt[p.pos]
	p.advance() // '['

	attr := ast.Attr{Kind: ast.AttrNormal, Style: style}
	if _, ok := p.pathEnd(p.pos); !ok {
		p.err(diag.SynExpectPath, "expected attribute path, found "+describe(p.peek()))
		p.pos = close + 1
		return attr, false
	}
	attr.Path = p.parsePath()

	switch {
	case p.pos == close:
		attr.Args = ast.RangeOf(p.pos, p.pos)
	case p.peek().Kind.IsOpenDelim() && p.closeAt[p.pos] == close-1:
		attr.Delim = delimOf(p.peek().Kind)
		attr.Args = ast.RangeOf(p.pos+1, close-1)
	case p.at(token.Eq) && p.pos+1 < close:
		attr.Eq = true
		attr.Args = ast.RangeOf(p.pos+1, close)
	default:
		p.err(diag.SynBadAttrInput, "malformed input of attribute '"+attr.Path.String()+"'")
		p.pos = close + 1
		return attr, false
	}
	p.pos = close + 1
	attr.Toks = p.rangeFrom(start)

	if attr.IsDerive() {
		derives, ok := p.parseDeriveList(attr)
		if !ok {
			return attr, false
		}
		attr.Derives = derives
	}
	return attr, true
}

// parseDeriveList разбирает derive(A, path::B, ) в список путей.
func (p *Parser) parseDeriveList(attr ast.Attr) ([]ast.DeriveEntry, bool) {
	if attr.Delim != ast.DelimParen {
		sp := p.toks[attr.Toks.Start].Span
		p.report(diag.SynBadAttrInput, diag.SevError, sp, "malformed derive attribute, expected derive(Trait1, Trait2, ...)")
		return nil, false
	}

	save := p.pos
	defer func() { p.pos = save }()

	end := int(attr.Args.End)
	p.pos = int(attr.Args.Start)
	var out []ast.DeriveEntry
	for p.pos < end {
		if _, ok := p.pathEnd(p.pos); !ok {
			p.err(diag.SynBadAttrInput, "expected path to a derive macro, found "+describe(p.peek()))
			return nil, false
		}
		path := p.parsePath()
		out = append(out, ast.DeriveEntry{Path: path, Toks: path.Toks})
		if p.pos == end {
			break
		}
		if !p.at(token.Comma) {
			p.err(diag.SynBadAttrInput, "expected ',' between derive entries, found "+describe(p.peek()))
			return nil, false
		}
		p.advance()
	}
	return out, true
}
