package parser

import (
	"macroemu/internal/ast"
	"macroemu/internal/token"
)

// pathRoots are keywords that may start a path.
var pathRoots = map[string]bool{
	"self":  true,
	"Self":  true,
	"super": true,
	"crate": true,
}

// canStartPath reports whether tok may be the first segment of a macro or attribute path.
// "if !(x)" and "return !(x)" are not macro calls.
func canStartPath(tok token.Token) bool {
	if tok.Kind != token.Ident {
		return false
	}
	if !tok.IsKeyword() {
		return true
	}
	return pathRoots[tok.Text]
}

// pathEnd returns the index just past the path starting at i: [::] seg (:: seg)*.
func (p *Parser) pathEnd(i int) (int, bool) {
	if p.tokAt(i).Kind == token.PathSep {
		i++
	}
	if !canStartPath(p.tokAt(i)) {
		return i, false
	}
	i++
	for p.tokAt(i).Kind == token.PathSep && p.tokAt(i+1).Kind == token.Ident {
		i += 2
	}
	return i, true
}

// parsePath parses the path at the cursor; the caller has checked pathEnd.
func (p *Parser) parsePath() ast.Path {
	start := p.pos
	var path ast.Path
	if p.at(token.PathSep) {
		path.Global = true
		p.advance()
	}
	for {
		path.Segments = append(path.Segments, token.IdentName(p.advance().Text))
		if !p.at(token.PathSep) || p.peekAt(1).Kind != token.Ident {
			break
		}
		p.advance()
	}
	path.Toks = p.rangeFrom(start)
	return path
}

// atMacroCallAt reports whether a function-like invocation path!(..) starts at i.
func (p *Parser) atMacroCallAt(i int) bool {
	j, ok := p.pathEnd(i)
	return ok && p.tokAt(j).Kind == token.Bang && p.tokAt(j+1).Kind.IsOpenDelim()
}

// parseMacroCall parses path!(..), path![..] or path!{..}.
func (p *Parser) parseMacroCall() *ast.MacroCall {
	start := p.pos
	call := &ast.MacroCall{Path: p.parsePath()}
	p.advance() // '!'
	open := p.pos
	close := p.closeAt[open]
	call.Delim = delimOf(p.peek().Kind)
	call.Args = ast.RangeOf(open+1, close)
	p.pos = close + 1
	call.Toks = p.rangeFrom(start)
	return call
}
