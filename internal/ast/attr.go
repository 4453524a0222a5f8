package ast

// AttrStyle distinguishes #[outer] from #![inner].
type AttrStyle uint8

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

// AttrKind distinguishes bracketed attributes from doc comments.
type AttrKind uint8

const (
	AttrNormal AttrKind = iota
	// AttrDoc is a doc comment; Path is "doc" and Toks is the comment token.
	AttrDoc
)

// Delim is the delimiter of a macro call or attribute input.
type Delim uint8

const (
	DelimNone Delim = iota
	DelimParen
	DelimBracket
	DelimBrace
)

func (d Delim) String() string {
	switch d {
	case DelimParen:
		return "()"
	case DelimBracket:
		return "[]"
	case DelimBrace:
		return "{}"
	default:
		return "none"
	}
}

// Attr: атрибут #[path(args)], #[path = value], #[path] или doc-комментарий.
type Attr struct {
	Kind  AttrKind
	Style AttrStyle
	Path  Path
	Delim Delim
	// Eq is set for the #[path = value] form; Args then covers value.
	Eq bool
	// Args covers the tokens inside the delimiters (without them).
	Args TokenRange
	// Toks covers the whole attribute from '#' to ']'.
	Toks TokenRange
	// Derives is filled for #[derive(...)].
	Derives []DeriveEntry
}

// IsDerive reports whether the attribute is a derive list.
func (a *Attr) IsDerive() bool {
	return a.Kind == AttrNormal && a.Path.IsIdent("derive")
}

// DeriveEntry is one path listed in #[derive(...)].
type DeriveEntry struct {
	Path Path
	Toks TokenRange
}
