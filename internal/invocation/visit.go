package invocation

import (
	"fmt"

	"macroemu/internal/ast"
	"macroemu/internal/walk"
)

// Request selects what to look for.
type Request struct {
	Shape Shape
	Name  MacroName
	// Helpers are the helper attribute names of a derive macro.
	Helpers []string
}

// Visit calls fn for every site of req in f, in source order. The first
// error from fn stops the walk and is returned as is.
func Visit(f *ast.File, req Request, fn func(Site) error) error {
	v := walk.Funcs{}
	switch req.Shape {
	case FunctionLike:
		v.OnMacroCall = func(f *ast.File, call *ast.MacroCall) error {
			if site, ok := MatchFunctionLike(f, call, req.Name); ok {
				return fn(site)
			}
			return nil
		}
	case AttributeLike:
		v.OnItem = func(f *ast.File, it *ast.Item) error {
			for _, site := range MatchAttributeLike(f, it, req.Name) {
				if err := fn(site); err != nil {
					return err
				}
			}
			return nil
		}
	case DeriveLike:
		v.OnItem = func(f *ast.File, it *ast.Item) error {
			if site, ok := MatchDeriveLike(f, it, req.Name, req.Helpers); ok {
				return fn(site)
			}
			return nil
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownShape, req.Shape)
	}
	return walk.File(f, v)
}

// Collect returns every site of req in f.
func Collect(f *ast.File, req Request) ([]Site, error) {
	var sites []Site
	err := Visit(f, req, func(s Site) error {
		sites = append(sites, s)
		return nil
	})
	return sites, err
}
