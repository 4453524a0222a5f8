package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/lexer"
	"macroemu/internal/parser"
	"macroemu/internal/source"
	"macroemu/internal/testkit"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep})
	return res.File, bag
}

// mustParse разбирает src и падает на любой ошибке или нарушении инвариантов дерева.
func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics:\n%s", formatDiags(bag))
	}
	if err := testkit.CheckTreeInvariants(f); err != nil {
		t.Fatalf("tree invariants: %v", err)
	}
	return f
}

func formatDiags(bag *diag.Bag) string {
	var sb strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&sb, "  %s %s %v: %s\n", d.Severity, d.Code.ID(), d.Primary, d.Message)
	}
	return sb.String()
}

func text(f *ast.File, r ast.TokenRange) string {
	parts := make([]string, 0, r.Len())
	for _, tok := range f.Slice(r) {
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}

// macroCalls собирает все вызовы макросов в порядке исходника.
func macroCalls(f *ast.File) []*ast.MacroCall {
	var out []*ast.MacroCall
	var items func([]*ast.Item)
	var exprs func([]*ast.Expr)
	var block func(*ast.Block)
	exprs = func(es []*ast.Expr) {
		for _, e := range es {
			switch e.Kind {
			case ast.ExprMacroCall:
				out = append(out, e.Macro)
			case ast.ExprBlock:
				block(e.Block)
			case ast.ExprGroup:
				exprs(e.Children)
			}
		}
	}
	block = func(b *ast.Block) {
		for _, st := range b.Stmts {
			if st.Item != nil {
				items([]*ast.Item{st.Item})
			}
			exprs(st.Exprs)
		}
	}
	items = func(its []*ast.Item) {
		for _, it := range its {
			if it.Macro != nil {
				out = append(out, it.Macro)
			}
			exprs(it.Exprs)
			if it.Body != nil {
				block(it.Body)
			}
			items(it.Items)
		}
	}
	items(f.Items)
	return out
}

func parseSourceWithLimit(t *testing.T, src string, maxErrors uint) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.rs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), parser.Options{Reporter: rep, MaxErrors: maxErrors})
	return res.File, bag
}
