package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"macroemu/internal/ast"
	"macroemu/internal/source"
)

// maxInlineWidth ограничивает ширину аргументов, показанных в метке узла.
const maxInlineWidth = 40

type treeNode struct {
	kind     string
	label    string
	span     source.Span
	children []*treeNode
}

// ASTNodeOutput is the JSON form of a syntax tree node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Label    string          `json:"label,omitempty"`
	Span     string          `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeBuilder struct {
	file *ast.File
	fs   *source.FileSet
}

// FormatASTPretty prints the syntax tree of file as an indented outline.
func FormatASTPretty(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	b := treeBuilder{file: file, fs: fs}
	root := b.fileNode()
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", root.label, formatSpan(root.span, fs)); err != nil {
		return err
	}
	writeChildren(w, root.children, "", fs)
	return nil
}

func writeChildren(w io.Writer, children []*treeNode, prefix string, fs *source.FileSet) {
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, child.label, formatSpan(child.span, fs))
		writeChildren(w, child.children, prefix+next, fs)
	}
}

// FormatASTJSON prints the syntax tree of file as JSON.
func FormatASTJSON(w io.Writer, file *ast.File, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	b := treeBuilder{file: file, fs: fs}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSON(b.fileNode(), fs))
}

func toJSON(n *treeNode, fs *source.FileSet) ASTNodeOutput {
	out := ASTNodeOutput{Type: n.kind, Label: n.label, Span: formatSpan(n.span, fs)}
	for _, c := range n.children {
		out.Children = append(out.Children, toJSON(c, fs))
	}
	return out
}

func (b treeBuilder) fileNode() *treeNode {
	header := "File"
	if b.fs != nil && b.file.Source != nil {
		header = b.file.Source.Path
	}
	root := &treeNode{kind: "File", label: header, span: b.file.Span}
	for i := range b.file.Attrs {
		root.children = append(root.children, b.attrNode(&b.file.Attrs[i]))
	}
	for idx, it := range b.file.Items {
		root.children = append(root.children, b.itemNode(it, idx))
	}
	return root
}

func (b treeBuilder) itemNode(it *ast.Item, idx int) *treeNode {
	label := fmt.Sprintf("Item[%d]: %s", idx, it.Kind)
	if it.Name != "" {
		label += " " + it.Name
	}
	node := &treeNode{kind: "Item", label: label, span: b.file.SpanOf(it.Toks)}
	for i := range it.Attrs {
		node.children = append(node.children, b.attrNode(&it.Attrs[i]))
	}
	for i := range it.InnerAttrs {
		node.children = append(node.children, b.attrNode(&it.InnerAttrs[i]))
	}
	if it.Macro != nil {
		node.children = append(node.children, b.macroNode(it.Macro))
	}
	for _, e := range it.Exprs {
		node.children = append(node.children, b.exprNode(e))
	}
	if it.Body != nil {
		node.children = append(node.children, b.blockNode(it.Body))
	}
	for i, child := range it.Items {
		node.children = append(node.children, b.itemNode(child, i))
	}
	return node
}

func (b treeBuilder) attrNode(a *ast.Attr) *treeNode {
	var label string
	switch {
	case a.Kind == ast.AttrDoc:
		label = "Doc"
	case a.IsDerive():
		names := make([]string, len(a.Derives))
		for i, d := range a.Derives {
			names[i] = d.Path.String()
		}
		label = "Derive [" + strings.Join(names, ", ") + "]"
	default:
		label = "Attr " + a.Path.String()
		switch {
		case a.Eq:
			label += " = " + b.inline(a.Args)
		case a.Delim != ast.DelimNone:
			open, closing := delims(a.Delim)
			label += open + b.inline(a.Args) + closing
		}
	}
	if a.Style == ast.AttrInner {
		label = "Inner" + label
	}
	return &treeNode{kind: "Attr", label: label, span: b.file.SpanOf(a.Toks)}
}

func (b treeBuilder) macroNode(m *ast.MacroCall) *treeNode {
	open, closing := delims(m.Delim)
	return &treeNode{
		kind:  "MacroCall",
		label: "MacroCall " + m.Path.String() + "!" + open + b.inline(m.Args) + closing,
		span:  b.file.SpanOf(m.Toks),
	}
}

func (b treeBuilder) exprNode(e *ast.Expr) *treeNode {
	switch e.Kind {
	case ast.ExprMacroCall:
		return b.macroNode(e.Macro)
	case ast.ExprBlock:
		return b.blockNode(e.Block)
	}
	node := &treeNode{kind: "Group", label: "Group " + e.Delim.String(), span: b.file.SpanOf(e.Toks)}
	for _, c := range e.Children {
		node.children = append(node.children, b.exprNode(c))
	}
	return node
}

func (b treeBuilder) blockNode(blk *ast.Block) *treeNode {
	node := &treeNode{kind: "Block", label: "Block", span: b.file.SpanOf(blk.Toks)}
	for i := range blk.InnerAttrs {
		node.children = append(node.children, b.attrNode(&blk.InnerAttrs[i]))
	}
	for idx, st := range blk.Stmts {
		node.children = append(node.children, b.stmtNode(st, idx))
	}
	return node
}

func (b treeBuilder) stmtNode(st *ast.Stmt, idx int) *treeNode {
	node := &treeNode{kind: "Stmt", label: fmt.Sprintf("Stmt[%d]: %s", idx, st.Kind), span: b.file.SpanOf(st.Toks)}
	if st.Kind == ast.StmtItem && st.Item != nil {
		// атрибуты уже принадлежат item
		node.children = append(node.children, b.itemNode(st.Item, 0))
		return node
	}
	for i := range st.Attrs {
		node.children = append(node.children, b.attrNode(&st.Attrs[i]))
	}
	for _, e := range st.Exprs {
		node.children = append(node.children, b.exprNode(e))
	}
	return node
}

// inline renders the tokens of r separated by spaces, truncated for display.
func (b treeBuilder) inline(r ast.TokenRange) string {
	toks := b.file.Slice(r)
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return runewidth.Truncate(strings.Join(parts, " "), maxInlineWidth, "…")
}

func delims(d ast.Delim) (open, closing string) {
	if d == ast.DelimNone {
		return "", ""
	}
	s := d.String()
	return s[:1], s[1:]
}
