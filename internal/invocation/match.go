package invocation

import (
	"macroemu/internal/ast"
)

// MatchFunctionLike reports the site for call when its path matches name.
func MatchFunctionLike(f *ast.File, call *ast.MacroCall, name MacroName) (Site, bool) {
	if call == nil || !name.Matches(call.Path) {
		return Site{}, false
	}
	return Site{
		Shape: FunctionLike,
		Path:  call.Path,
		Node:  call.Toks,
		Span:  f.SpanOf(call.Toks),
		Args:  call.Args,
	}, true
}

// MatchAttributeLike returns one site per outer attribute of it whose path
// matches name, in attribute order. Doc comments never match.
func MatchAttributeLike(f *ast.File, it *ast.Item, name MacroName) []Site {
	var sites []Site
	for i := range it.Attrs {
		a := &it.Attrs[i]
		if a.Kind != ast.AttrNormal || a.Style != ast.AttrOuter || !name.Matches(a.Path) {
			continue
		}
		sites = append(sites, Site{
			Shape:    AttributeLike,
			Path:     a.Path,
			Node:     a.Toks,
			Span:     f.SpanOf(a.Toks),
			Args:     a.Args,
			Item:     it.Toks,
			ItemKind: it.Kind,
			ItemName: it.Name,
			Exclude:  []ast.TokenRange{a.Toks},
		})
	}
	return sites
}

// MatchDeriveLike reports a site when it is a struct, enum or union whose
// derive lists include name. A name listed several times still yields one
// site, located at the first entry.
//
// The input excludes every derive attribute of the declaration and every
// declaration-level attribute named in helpers.
func MatchDeriveLike(f *ast.File, it *ast.Item, name MacroName, helpers []string) (Site, bool) {
	if !it.Kind.IsTypeDecl() {
		return Site{}, false
	}
	var (
		entry *ast.DeriveEntry
		found bool
	)
	for i := range it.Attrs {
		a := &it.Attrs[i]
		if !a.IsDerive() || found {
			continue
		}
		for j := range a.Derives {
			if name.Matches(a.Derives[j].Path) {
				entry, found = &a.Derives[j], true
				break
			}
		}
	}
	if !found {
		return Site{}, false
	}

	hs := newHelperSet(helpers)
	var exclude []ast.TokenRange
	for i := range it.Attrs {
		a := &it.Attrs[i]
		if a.Kind != ast.AttrNormal {
			continue
		}
		if a.IsDerive() || hs.has(a.Path) {
			exclude = append(exclude, a.Toks)
		}
	}
	return Site{
		Shape:    DeriveLike,
		Path:     entry.Path,
		Node:     entry.Toks,
		Span:     f.SpanOf(entry.Toks),
		Item:     it.Toks,
		ItemKind: it.Kind,
		ItemName: it.Name,
		Exclude:  exclude,
	}, true
}
