package invocation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"macroemu/internal/ast"
)

// ErrInvalidMacroName is returned for names that are not a path.
var ErrInvalidMacroName = errors.New("invalid macro name")

// MacroName is a target path. Segments are NFC-normalised and carry no
// raw-identifier prefix.
type MacroName struct {
	Global   bool
	Segments []string
}

// ParseMacroName parses "name", "a::b::name" or "::a::name". A trailing '!'
// is tolerated so "assert!" can be written as it appears in source.
func ParseMacroName(s string) (MacroName, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "!")
	var n MacroName
	if rest, ok := strings.CutPrefix(raw, "::"); ok {
		n.Global = true
		raw = rest
	}
	if raw == "" {
		return MacroName{}, fmt.Errorf("%w: %q", ErrInvalidMacroName, s)
	}
	for _, seg := range strings.Split(raw, "::") {
		seg = strings.TrimSpace(seg)
		name := strings.TrimPrefix(seg, "r#")
		if !isIdent(name) {
			return MacroName{}, fmt.Errorf("%w: %q", ErrInvalidMacroName, s)
		}
		n.Segments = append(n.Segments, norm.NFC.String(name))
	}
	return n, nil
}

// MustParseMacroName panics on an invalid name. Intended for tests and
// constant names.
func MustParseMacroName(s string) MacroName {
	n, err := ParseMacroName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func isIdent(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)):
		default:
			return false
		}
	}
	return true
}

func (n MacroName) String() string {
	s := strings.Join(n.Segments, "::")
	if n.Global {
		return "::" + s
	}
	return s
}

// Last returns the final segment.
func (n MacroName) Last() string {
	if len(n.Segments) == 0 {
		return ""
	}
	return n.Segments[len(n.Segments)-1]
}

// Matches reports whether the invocation path p names this macro.
func (n MacroName) Matches(p ast.Path) bool {
	if len(n.Segments) == 0 || len(p.Segments) < len(n.Segments) {
		return false
	}
	if n.Global && (!p.Global || len(p.Segments) != len(n.Segments)) {
		return false
	}
	off := len(p.Segments) - len(n.Segments)
	for i, seg := range n.Segments {
		if norm.NFC.String(p.Segments[off+i]) != seg {
			return false
		}
	}
	return true
}

// helperSet holds NFC-normalised single-segment helper names.
type helperSet map[string]struct{}

func newHelperSet(names []string) helperSet {
	if len(names) == 0 {
		return nil
	}
	set := make(helperSet, len(names))
	for _, h := range names {
		h = strings.TrimPrefix(strings.TrimSpace(h), "r#")
		if h != "" {
			set[norm.NFC.String(h)] = struct{}{}
		}
	}
	return set
}

func (s helperSet) has(p ast.Path) bool {
	if len(s) == 0 || p.Global || len(p.Segments) != 1 {
		return false
	}
	_, ok := s[norm.NFC.String(p.Segments[0])]
	return ok
}
