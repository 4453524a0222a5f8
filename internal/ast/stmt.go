package ast

type StmtKind uint8

const (
	StmtEmpty StmtKind = iota
	StmtLet
	StmtItem
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtEmpty:
		return "empty"
	case StmtLet:
		return "let"
	case StmtItem:
		return "item"
	case StmtExpr:
		return "expr"
	}
	return "stmt(?)"
}

// Stmt: оператор внутри блока.
type Stmt struct {
	Kind  StmtKind
	Attrs []Attr
	// Item is set for StmtItem.
	Item *Item
	// Exprs are the nodes found in a let or expression statement, in source order.
	Exprs []*Expr
	Toks  TokenRange
}

// Block is a brace-delimited statement list; Toks includes the braces.
type Block struct {
	InnerAttrs []Attr
	Stmts      []*Stmt
	Toks       TokenRange
}
