package ast

type ExprKind uint8

const (
	// ExprMacroCall is path!(..), path![..] or path!{..}.
	ExprMacroCall ExprKind = iota
	// ExprBlock is any block expression: plain, unsafe, async, loop bodies, closures, arms.
	ExprBlock
	// ExprGroup is a parenthesised, bracketed or struct-literal group; Children
	// are the nodes found inside.
	ExprGroup
)

func (k ExprKind) String() string {
	switch k {
	case ExprMacroCall:
		return "macro call"
	case ExprBlock:
		return "block"
	case ExprGroup:
		return "group"
	}
	return "expr(?)"
}

// Expr is a node of interest inside an expression, type or pattern.
// Operators, literals and plain paths are not modelled; they remain tokens.
type Expr struct {
	Kind     ExprKind
	Toks     TokenRange
	Macro    *MacroCall
	Block    *Block
	Delim    Delim
	Children []*Expr
}

// MacroCall is a function-like invocation.
type MacroCall struct {
	Path  Path
	Delim Delim
	// Args covers the tokens inside the invocation delimiters.
	Args TokenRange
	// Toks covers path, '!' and the delimited arguments.
	Toks TokenRange
}
