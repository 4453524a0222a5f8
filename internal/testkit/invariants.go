package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"macroemu/internal/ast"
)

// CheckTreeInvariants runs a set of structural invariants on a parsed file:
// 1) file.Span is within the content bounds and every token's Text is the exact source slice
// 2) tokens are strictly ordered and non-overlapping
// 3) every node range is non-empty, inside its parent and after its previous sibling
// 4) attribute and macro argument ranges lie inside the node they belong to
func CheckTreeInvariants(f *ast.File) error {
	if f == nil || f.Source == nil {
		return fmt.Errorf("nil file or source")
	}
	lenContent, err := safecast.Conv[uint32](len(f.Source.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.File != f.Source.ID {
		return fmt.Errorf("file span %v does not match source (len %d, id %d)", f.Span, lenContent, f.Source.ID)
	}

	var prevEnd uint32
	for i, tok := range f.Tokens {
		if tok.Span.End > lenContent || tok.Span.Start > tok.Span.End {
			return fmt.Errorf("token %d span %v out of bounds", i, tok.Span)
		}
		if got := string(f.Source.Content[tok.Span.Start:tok.Span.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q differs from source %q", i, tok.Text, got)
		}
		if i > 0 && tok.Span.Start < prevEnd {
			return fmt.Errorf("token %d overlaps previous token", i)
		}
		prevEnd = tok.Span.End
	}

	c := checker{}
	root := f.Range()
	for i := range f.Attrs {
		if err := c.attr(&f.Attrs[i], root); err != nil {
			return err
		}
	}
	return c.items(f.Items, root)
}

type checker struct{}

func within(what string, r, parent ast.TokenRange) error {
	if r.Empty() {
		return fmt.Errorf("%s has empty range %v", what, r)
	}
	if !parent.Contains(r) {
		return fmt.Errorf("%s range %v escapes parent %v", what, r, parent)
	}
	return nil
}

func (c checker) attr(a *ast.Attr, parent ast.TokenRange) error {
	if err := within("attribute "+a.Path.String(), a.Toks, parent); err != nil {
		return err
	}
	if !a.Toks.Contains(a.Args) && !a.Args.Empty() {
		return fmt.Errorf("attribute %s args %v escape %v", a.Path.String(), a.Args, a.Toks)
	}
	for _, d := range a.Derives {
		if !a.Args.Contains(d.Toks) {
			return fmt.Errorf("derive entry %s escapes attribute args", d.Path.String())
		}
	}
	return nil
}

func (c checker) items(items []*ast.Item, parent ast.TokenRange) error {
	var prev uint32 = parent.Start
	for _, it := range items {
		if err := within("item "+it.Kind.String()+" "+it.Name, it.Toks, parent); err != nil {
			return err
		}
		if it.Toks.Start < prev {
			return fmt.Errorf("item %s %s starts before previous sibling ends", it.Kind, it.Name)
		}
		prev = it.Toks.End
		if err := c.item(it); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) item(it *ast.Item) error {
	for i := range it.Attrs {
		if err := c.attr(&it.Attrs[i], it.Toks); err != nil {
			return err
		}
	}
	for i := range it.InnerAttrs {
		if err := c.attr(&it.InnerAttrs[i], it.Toks); err != nil {
			return err
		}
	}
	if it.Macro != nil {
		if err := c.macro(it.Macro, it.Toks); err != nil {
			return err
		}
	}
	if err := c.exprs(it.Exprs, it.Toks); err != nil {
		return err
	}
	if it.Body != nil {
		if err := c.block(it.Body, it.Toks); err != nil {
			return err
		}
	}
	return c.items(it.Items, it.Toks)
}

func (c checker) block(b *ast.Block, parent ast.TokenRange) error {
	if err := within("block", b.Toks, parent); err != nil {
		return err
	}
	prev := b.Toks.Start
	for _, st := range b.Stmts {
		if err := within("statement "+st.Kind.String(), st.Toks, b.Toks); err != nil {
			return err
		}
		if st.Toks.Start < prev {
			return fmt.Errorf("statement %s starts before previous sibling ends", st.Kind)
		}
		prev = st.Toks.End
		if st.Item != nil {
			if err := c.item(st.Item); err != nil {
				return err
			}
		}
		if err := c.exprs(st.Exprs, st.Toks); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) exprs(exprs []*ast.Expr, parent ast.TokenRange) error {
	prev := parent.Start
	for _, e := range exprs {
		if err := within("expression "+e.Kind.String(), e.Toks, parent); err != nil {
			return err
		}
		if e.Toks.Start < prev {
			return fmt.Errorf("expression %s starts before previous sibling ends", e.Kind)
		}
		prev = e.Toks.End
		switch e.Kind {
		case ast.ExprMacroCall:
			if err := c.macro(e.Macro, e.Toks); err != nil {
				return err
			}
		case ast.ExprBlock:
			if err := c.block(e.Block, e.Toks); err != nil {
				return err
			}
		case ast.ExprGroup:
			if err := c.exprs(e.Children, e.Toks); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c checker) macro(m *ast.MacroCall, parent ast.TokenRange) error {
	if err := within("macro call "+m.Path.String(), m.Toks, parent); err != nil {
		return err
	}
	// аргументы строго внутри: путь, '!' и скобки снаружи
	if m.Args.Start <= m.Toks.Start || m.Args.End >= m.Toks.End {
		return fmt.Errorf("macro call %s args %v not strictly inside %v", m.Path.String(), m.Args, m.Toks)
	}
	return nil
}
