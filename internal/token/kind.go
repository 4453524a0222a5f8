package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents identifiers, keywords and raw identifiers (r#name).
	Ident
	// Lifetime represents a lifetime or loop label ('a).
	Lifetime

	// IntLit represents an integer literal, suffix included (1u8).
	IntLit
	// FloatLit represents a float literal, suffix included (2.0f32).
	FloatLit
	// StrLit represents "...".
	StrLit
	// ByteStrLit represents b"...".
	ByteStrLit
	// CStrLit represents c"...".
	CStrLit
	// RawStrLit represents r"..." and r#"..."#.
	RawStrLit
	// RawByteStrLit represents br"..." and br#"..."#.
	RawByteStrLit
	// RawCStrLit represents cr"..." and cr#"..."#.
	RawCStrLit
	// CharLit represents 'x'.
	CharLit
	// ByteLit represents b'x'.
	ByteLit

	// DocComment represents an outer doc comment (/// or /** */).
	DocComment
	// InnerDocComment represents an inner doc comment (//! or /*! */).
	InnerDocComment

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Bang       // !
	Amp        // &
	Pipe       // |
	AndAnd     // &&
	OrOr       // ||
	Shl        // <<
	Shr        // >>
	PlusEq     // +=
	MinusEq    // -=
	StarEq     // *=
	SlashEq    // /=
	PercentEq  // %=
	CaretEq    // ^=
	AmpEq      // &=
	PipeEq     // |=
	ShlEq      // <<=
	ShrEq      // >>=
	Eq         // =
	EqEq       // ==
	Ne         // !=
	Gt         // >
	Lt         // <
	Ge         // >=
	Le         // <=
	At         // @
	Dot        // .
	DotDot     // ..
	DotDotDot  // ...
	DotDotEq   // ..=
	Comma      // ,
	Semi       // ;
	Colon      // :
	PathSep    // ::
	RArrow     // ->
	FatArrow   // =>
	Pound      // #
	Dollar     // $
	Question   // ?
	Tilde      // ~
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	kindCount_ // sentinel
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Ident:           "Ident",
	Lifetime:        "Lifetime",
	IntLit:          "IntLit",
	FloatLit:        "FloatLit",
	StrLit:          "StrLit",
	ByteStrLit:      "ByteStrLit",
	CStrLit:         "CStrLit",
	RawStrLit:       "RawStrLit",
	RawByteStrLit:   "RawByteStrLit",
	RawCStrLit:      "RawCStrLit",
	CharLit:         "CharLit",
	ByteLit:         "ByteLit",
	DocComment:      "DocComment",
	InnerDocComment: "InnerDocComment",
	Plus:            "Plus",
	Minus:           "Minus",
	Star:            "Star",
	Slash:           "Slash",
	Percent:         "Percent",
	Caret:           "Caret",
	Bang:            "Bang",
	Amp:             "Amp",
	Pipe:            "Pipe",
	AndAnd:          "AndAnd",
	OrOr:            "OrOr",
	Shl:             "Shl",
	Shr:             "Shr",
	PlusEq:          "PlusEq",
	MinusEq:         "MinusEq",
	StarEq:          "StarEq",
	SlashEq:         "SlashEq",
	PercentEq:       "PercentEq",
	CaretEq:         "CaretEq",
	AmpEq:           "AmpEq",
	PipeEq:          "PipeEq",
	ShlEq:           "ShlEq",
	ShrEq:           "ShrEq",
	Eq:              "Eq",
	EqEq:            "EqEq",
	Ne:              "Ne",
	Gt:              "Gt",
	Lt:              "Lt",
	Ge:              "Ge",
	Le:              "Le",
	At:              "At",
	Dot:             "Dot",
	DotDot:          "DotDot",
	DotDotDot:       "DotDotDot",
	DotDotEq:        "DotDotEq",
	Comma:           "Comma",
	Semi:            "Semi",
	Colon:           "Colon",
	PathSep:         "PathSep",
	RArrow:          "RArrow",
	FatArrow:        "FatArrow",
	Pound:           "Pound",
	Dollar:          "Dollar",
	Question:        "Question",
	Tilde:           "Tilde",
	LParen:          "LParen",
	RParen:          "RParen",
	LBrace:          "LBrace",
	RBrace:          "RBrace",
	LBracket:        "LBracket",
	RBracket:        "RBracket",
}

func (k Kind) String() string {
	if k < kindCount_ && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpenDelim reports whether k opens a delimited group.
func (k Kind) IsOpenDelim() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsCloseDelim reports whether k closes a delimited group.
func (k Kind) IsCloseDelim() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing delimiter for an opening one, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
