package invocation

import (
	"macroemu/internal/ast"
	"macroemu/internal/source"
)

// Site is one invocation of the target macro.
//
// Function-like sites use Args only. Attribute-like sites hand over Args
// and Item minus Exclude (the matched attribute). Derive-like sites hand
// over Item minus Exclude (derive attributes and helper attributes).
type Site struct {
	Shape Shape
	// Path is the macro path as written at the site.
	Path ast.Path
	// Node covers the call, the matched attribute or the derive entry.
	Node ast.TokenRange
	// Span is the source location of Node.
	Span source.Span
	// Args covers the call or attribute arguments, delimiters excluded.
	Args ast.TokenRange
	// Item covers the annotated declaration, outer attributes included.
	Item     ast.TokenRange
	ItemKind ast.ItemKind
	ItemName string
	// Exclude lists ranges of Item that are not part of the input,
	// in source order.
	Exclude []ast.TokenRange
}
