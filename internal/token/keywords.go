package token

// KeywordClass splits keywords the way the language reference does.
type KeywordClass uint8

const (
	// KeywordStrict keywords can never be plain identifiers.
	KeywordStrict KeywordClass = iota + 1
	// KeywordReserved keywords are reserved for future use.
	KeywordReserved
	// KeywordWeak keywords are keywords only in specific positions.
	KeywordWeak
)

var keywords = map[string]KeywordClass{
	"as":       KeywordStrict,
	"async":    KeywordStrict,
	"await":    KeywordStrict,
	"break":    KeywordStrict,
	"const":    KeywordStrict,
	"continue": KeywordStrict,
	"crate":    KeywordStrict,
	"dyn":      KeywordStrict,
	"else":     KeywordStrict,
	"enum":     KeywordStrict,
	"extern":   KeywordStrict,
	"false":    KeywordStrict,
	"fn":       KeywordStrict,
	"for":      KeywordStrict,
	"if":       KeywordStrict,
	"impl":     KeywordStrict,
	"in":       KeywordStrict,
	"let":      KeywordStrict,
	"loop":     KeywordStrict,
	"match":    KeywordStrict,
	"mod":      KeywordStrict,
	"move":     KeywordStrict,
	"mut":      KeywordStrict,
	"pub":      KeywordStrict,
	"ref":      KeywordStrict,
	"return":   KeywordStrict,
	"self":     KeywordStrict,
	"Self":     KeywordStrict,
	"static":   KeywordStrict,
	"struct":   KeywordStrict,
	"super":    KeywordStrict,
	"trait":    KeywordStrict,
	"true":     KeywordStrict,
	"type":     KeywordStrict,
	"unsafe":   KeywordStrict,
	"use":      KeywordStrict,
	"where":    KeywordStrict,
	"while":    KeywordStrict,
	"abstract": KeywordReserved,
	"become":   KeywordReserved,
	"box":      KeywordReserved,
	"do":       KeywordReserved,
	"final":    KeywordReserved,
	"gen":      KeywordReserved,
	"macro":    KeywordReserved,
	"override": KeywordReserved,
	"priv":     KeywordReserved,
	"try":      KeywordReserved,
	"typeof":   KeywordReserved,
	"unsized":  KeywordReserved,
	"virtual":  KeywordReserved,
	"yield":    KeywordReserved,
	"union":    KeywordWeak,
	"default":  KeywordWeak,
	"auto":     KeywordWeak,
	"safe":     KeywordWeak,
}

// LookupKeyword returns the keyword class for ident, if it is one.
// Keywords are case-sensitive; raw identifiers (r#fn) are never keywords.
func LookupKeyword(ident string) (KeywordClass, bool) {
	k, ok := keywords[ident]
	return k, ok
}
