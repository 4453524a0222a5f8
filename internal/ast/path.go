package ast

import "strings"

// Path is a syntactic path such as ::std::assert or derive.
// Segments hold identifier names without the raw prefix.
type Path struct {
	Global   bool
	Segments []string
	Toks     TokenRange
}

func (p Path) String() string {
	s := strings.Join(p.Segments, "::")
	if p.Global {
		return "::" + s
	}
	return s
}

// Last returns the final segment or "".
func (p Path) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// IsIdent reports whether the path is the single, non-global segment name.
func (p Path) IsIdent(name string) bool {
	return !p.Global && len(p.Segments) == 1 && p.Segments[0] == name
}
