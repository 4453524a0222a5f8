package parser

import (
	"fmt"

	"fortio.org/safecast"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/lexer"
	"macroemu/internal/source"
	"macroemu/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
	// Errors is the number of error diagnostics produced by the parser itself.
	Errors uint
}

// Parser: состояние парсера на один файл.
// Токены лексера собираются в срез заранее: узлы ссылаются на них индексами.
type Parser struct {
	src      *source.File
	toks     []token.Token
	closeAt  []int // индекс парной закрывающей скобки для открывающих, иначе -1
	pos      int
	opts     Options
	lastSpan source.Span
	eof      token.Token
}

// ParseFile: входная точка для разбора одного файла.
// Лексер вычитывается целиком; ошибки лексера идут в тот же Reporter, если
// он был передан лексеру.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	src := lx.File()
	toks := lx.All()
	end, err := safecast.Conv[uint32](len(src.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	fileSpan := source.Span{File: src.ID, Start: 0, End: end}

	p := Parser{
		src:  src,
		toks: toks,
		opts: opts,
		eof:  token.Token{Kind: token.EOF, Span: source.Span{File: src.ID, Start: end, End: end}},
	}
	f := &ast.File{Source: src, Tokens: toks, Span: fileSpan}

	// С несбалансированными скобками дерево строить бессмысленно.
	if p.checkDelimiters() {
		f.Attrs = p.parseInnerAttrs(len(toks))
		f.Items = p.parseItems(len(toks))
	}

	return Result{
		File:   f,
		Bag:    bagOf(opts.Reporter),
		Errors: p.opts.CurrentErrors,
	}
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}
