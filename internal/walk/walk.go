// Package walk traverses a parsed file in source order.
//
// The traversal is pre-order: an item is visited before anything nested
// inside it, and siblings are visited in source order. Macro
// arguments are opaque token ranges, so calls nested inside them are never
// reached. The first error returned by the visitor stops the walk and is
// returned unchanged.
package walk

import (
	"macroemu/internal/ast"
)

// Visitor receives the nodes that can host a macro invocation.
type Visitor interface {
	// Item is called for every declaration, nested ones included.
	Item(f *ast.File, it *ast.Item) error
	// MacroCall is called for every function-like invocation outside macro arguments.
	MacroCall(f *ast.File, call *ast.MacroCall) error
}

// Funcs adapts plain functions to Visitor; nil fields are skipped.
type Funcs struct {
	OnItem      func(f *ast.File, it *ast.Item) error
	OnMacroCall func(f *ast.File, call *ast.MacroCall) error
}

func (v Funcs) Item(f *ast.File, it *ast.Item) error {
	if v.OnItem == nil {
		return nil
	}
	return v.OnItem(f, it)
}

func (v Funcs) MacroCall(f *ast.File, call *ast.MacroCall) error {
	if v.OnMacroCall == nil {
		return nil
	}
	return v.OnMacroCall(f, call)
}

// File walks every item of f.
func File(f *ast.File, v Visitor) error {
	w := walker{f: f, v: v}
	return w.items(f.Items)
}

type walker struct {
	f *ast.File
	v Visitor
}

func (w walker) items(items []*ast.Item) error {
	for _, it := range items {
		if err := w.item(it); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) item(it *ast.Item) error {
	if err := w.v.Item(w.f, it); err != nil {
		return err
	}
	if it.Macro != nil {
		if err := w.v.MacroCall(w.f, it.Macro); err != nil {
			return err
		}
	}
	if err := w.exprs(it.Exprs); err != nil {
		return err
	}
	if it.Body != nil {
		if err := w.block(it.Body); err != nil {
			return err
		}
	}
	return w.items(it.Items)
}

func (w walker) block(b *ast.Block) error {
	for _, st := range b.Stmts {
		switch st.Kind {
		case ast.StmtItem:
			if err := w.item(st.Item); err != nil {
				return err
			}
		case ast.StmtLet, ast.StmtExpr:
			if err := w.exprs(st.Exprs); err != nil {
				return err
			}
		default:
			// пустые операторы ничего не содержат
		}
	}
	return nil
}

func (w walker) exprs(exprs []*ast.Expr) error {
	for _, e := range exprs {
		var err error
		switch e.Kind {
		case ast.ExprMacroCall:
			err = w.v.MacroCall(w.f, e.Macro)
		case ast.ExprBlock:
			err = w.block(e.Block)
		case ast.ExprGroup:
			err = w.exprs(e.Children)
		default:
			// неизвестные узлы инертны
		}
		if err != nil {
			return err
		}
	}
	return nil
}
