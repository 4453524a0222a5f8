package parser

import (
	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/token"
)

// parseItems: цикл по items до end (EOF файла или закрывающая скобка тела).
func (p *Parser) parseItems(end int) []*ast.Item {
	var items []*ast.Item
	for p.pos < end && !p.opts.Enough() {
		start := p.pos
		attrs := p.parseOuterAttrs(end)
		if p.pos >= end {
			if len(attrs) > 0 {
				p.err(diag.SynAttrWithoutItem, "expected item after attributes")
			}
			break
		}
		item, ok := p.parseItem(start, attrs, end)
		if !ok {
			p.resyncItem(end)
			continue
		}
		items = append(items, item)
	}
	return items
}

// resyncItem: восстановление после ошибки: крутим деревья токенов до ';'
// (съедаем его) или до начала следующего item.
func (p *Parser) resyncItem(end int) {
	first := true
	for p.pos < end {
		if !first {
			if _, _, ok := p.classifyItem(); ok || p.atOuterAttr() {
				return
			}
		}
		first = false
		if p.at(token.Semi) {
			p.advance()
			return
		}
		p.skipTree()
	}
}

var (
	fnQualifierNext     = []string{"fn", "unsafe", "async", "extern", "safe"}
	unsafeQualifierNext = []string{"fn", "impl", "trait", "extern", "mod", "auto", "use"}
	defaultQualNext     = []string{"fn", "impl", "type", "const", "unsafe", "async", "extern"}
)

func isOneOf(tok token.Token, words []string) bool {
	for _, w := range words {
		if tok.Is(w) {
			return true
		}
	}
	return false
}

// classifyItem смотрит вперёд без потребления и решает, начинается ли здесь item.
// Возвращает вид и индекс ключевого слова (для extern это индекс extern).
func (p *Parser) classifyItem() (ast.ItemKind, int, bool) {
	i := p.pos
	if p.tokAt(i).Is("pub") {
		i++
		if p.tokAt(i).Kind == token.LParen {
			i = p.closeAt[i] + 1
		}
	}

	for {
		t, next := p.tokAt(i), p.tokAt(i+1)
		switch {
		case t.Is("fn"):
			return ast.ItemFn, i, true
		case t.Is("struct"):
			return ast.ItemStruct, i, true
		case t.Is("enum"):
			return ast.ItemEnum, i, true
		case t.Is("union") && next.Kind == token.Ident && !next.IsKeyword():
			return ast.ItemUnion, i, true
		case t.Is("trait"):
			return ast.ItemTrait, i, true
		case t.Is("auto") && next.Is("trait"):
			return ast.ItemTrait, i + 1, true
		case t.Is("impl"):
			return ast.ItemImpl, i, true
		case t.Is("mod"):
			return ast.ItemMod, i, true
		case t.Is("use"):
			return ast.ItemUse, i, true
		case t.Is("type"):
			return ast.ItemTypeAlias, i, true
		case t.Is("static") && next.Kind == token.Ident && !next.Is("move"):
			return ast.ItemStatic, i, true
		case t.Is("const") && isOneOf(next, fnQualifierNext):
			i++
		case t.Is("const") && next.Kind == token.Ident:
			return ast.ItemConst, i, true
		case t.Is("async") && isOneOf(next, fnQualifierNext):
			i++
		case t.Is("unsafe") && isOneOf(next, unsafeQualifierNext):
			i++
		case t.Is("safe") && (next.Is("fn") || next.Is("static")):
			i++
		case t.Is("default") && isOneOf(next, defaultQualNext):
			i++
		case t.Is("extern"):
			if next.Is("crate") {
				return ast.ItemExternCrate, i, true
			}
			j := i + 1
			if k := p.tokAt(j).Kind; k == token.StrLit || k == token.RawStrLit {
				j++
			}
			if p.tokAt(j).Kind == token.LBrace {
				return ast.ItemExternBlock, i, true
			}
			if !isOneOf(p.tokAt(j), fnQualifierNext) {
				return 0, 0, false
			}
			i = j
		case t.Is("macro_rules") && next.Kind == token.Bang && p.tokAt(i+2).Kind == token.Ident:
			return ast.ItemMacroRules, i, true
		case i == p.pos && p.atMacroCallAt(i):
			return ast.ItemMacroCall, i, true
		default:
			return 0, 0, false
		}
	}
}

// parseItem разбирает item, чьи внешние атрибуты уже собраны с позиции start.
func (p *Parser) parseItem(start int, attrs []ast.Attr, end int) (*ast.Item, bool) {
	kind, kw, ok := p.classifyItem()
	if !ok {
		p.err(diag.SynExpectItem, "expected item, found "+describe(p.peek()))
		return nil, false
	}

	it := &ast.Item{Kind: kind, Attrs: attrs}
	switch kind {
	case ast.ItemMacroCall:
		it.Macro = p.parseMacroCall()
		if it.Macro.Delim == ast.DelimBrace {
			if p.pos < end && p.at(token.Semi) {
				p.advance()
			}
		} else if _, ok := p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after macro invocation"); !ok {
			return nil, false
		}

	case ast.ItemMacroRules:
		p.pos = kw + 2
		it.Name = token.IdentName(p.advance().Text)
		if !p.peek().Kind.IsOpenDelim() {
			p.err(diag.SynExpectMacroDelim, "expected '{', '(' or '[' after macro_rules! name")
			return nil, false
		}
		delim := p.peek().Kind
		p.skipTree()
		if delim != token.LBrace {
			if _, ok := p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after macro_rules!"); !ok {
				return nil, false
			}
		}

	case ast.ItemUse, ast.ItemExternCrate:
		p.pos = kw
		if kind == ast.ItemExternCrate {
			it.Name = p.nameAfter(kw + 1)
		}
		for p.pos < end && !p.at(token.Semi) {
			p.skipTree()
		}
		if _, ok := p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after "+kind.String()); !ok {
			return nil, false
		}

	case ast.ItemConst, ast.ItemStatic, ast.ItemTypeAlias:
		p.pos = kw
		it.Name = p.nameAfter(kw)
		if kind == ast.ItemStatic && p.tokAt(kw+1).Is("mut") {
			it.Name = p.nameAfter(kw + 1)
		}
		it.Exprs = p.scanNodes(end, p.stopAtSemi)
		if _, ok := p.expect(token.Semi, diag.SynExpectSemicolon, "expected ';' after "+kind.String()); !ok {
			return nil, false
		}

	case ast.ItemFn:
		p.pos = kw
		if it.Name = p.nameAfter(kw); it.Name == "" {
			return nil, false
		}
		it.Exprs = p.scanNodes(end, p.headerStop())
		switch {
		case p.pos < end && p.at(token.LBrace):
			it.Body = p.parseBlock()
		case p.pos < end && p.at(token.Semi):
			p.advance()
		default:
			p.err(diag.SynExpectBody, "expected function body or ';', found "+describe(p.peek()))
			return nil, false
		}

	case ast.ItemStruct, ast.ItemUnion, ast.ItemEnum:
		p.pos = kw
		if it.Name = p.nameAfter(kw); it.Name == "" {
			return nil, false
		}
		it.Exprs = p.scanNodes(end, p.headerStop())
		switch {
		case p.pos < end && p.at(token.LBrace):
			it.Exprs = append(it.Exprs, p.parseGroup())
		case kind == ast.ItemStruct && p.pos < end && p.at(token.Semi):
			p.advance()
		default:
			p.err(diag.SynExpectBody, "expected '{' or ';' after "+kind.String()+" header, found "+describe(p.peek()))
			return nil, false
		}

	case ast.ItemTrait, ast.ItemImpl, ast.ItemMod, ast.ItemExternBlock:
		p.pos = kw
		if kind == ast.ItemTrait || kind == ast.ItemMod {
			if it.Name = p.nameAfter(kw); it.Name == "" {
				return nil, false
			}
		}
		it.Exprs = p.scanNodes(end, p.headerStop())
		switch {
		case p.pos < end && p.at(token.LBrace):
			p.parseItemBody(it)
		case p.pos < end && p.at(token.Semi) && (kind == ast.ItemMod || kind == ast.ItemTrait):
			// mod m; и trait A = B;
			if kind == ast.ItemTrait {
				it.Kind = ast.ItemTraitAlias
			}
			p.advance()
		default:
			p.err(diag.SynExpectBody, "expected '{' after "+kind.String()+" header, found "+describe(p.peek()))
			return nil, false
		}
	}

	it.Toks = p.rangeFrom(start)
	return it, true
}

// nameAfter returns the identifier following index i, reporting when it is missing.
func (p *Parser) nameAfter(i int) string {
	tok := p.tokAt(i + 1)
	if tok.Kind != token.Ident {
		p.report(diag.SynExpectIdentifier, diag.SevError, tok.Span,
			"expected identifier after '"+p.tokAt(i).Text+"', found "+describe(tok))
		return ""
	}
	return token.IdentName(tok.Text)
}

// parseItemBody разбирает { #![inner] items } для mod, impl, trait и extern.
func (p *Parser) parseItemBody(it *ast.Item) {
	close := p.closeAt[p.pos]
	p.advance()
	it.InnerAttrs = p.parseInnerAttrs(close)
	it.Items = p.parseItems(close)
	p.pos = close + 1
}

// headerStop останавливает сканирование заголовка на '{' или ';' вне угловых скобок.
func (p *Parser) headerStop() func(i int) bool {
	depth := 0
	return func(i int) bool {
		switch p.toks[i].Kind {
		case token.Lt:
			depth++
		case token.Shl:
			depth += 2
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.LBrace, token.Semi:
			return depth <= 0
		}
		return false
	}
}

func (p *Parser) stopAtSemi(i int) bool {
	return p.toks[i].Kind == token.Semi
}
