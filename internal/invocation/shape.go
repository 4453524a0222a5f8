package invocation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned for a Request whose Shape is none of the three.
var ErrUnknownShape = errors.New("unknown macro shape")

// Shape is the syntactic form of an invocation.
type Shape uint8

const (
	// FunctionLike is name!(..), name![..] or name!{..}.
	FunctionLike Shape = iota + 1
	// AttributeLike is #[name] or #[name(..)] on a declaration.
	AttributeLike
	// DeriveLike is an entry of #[derive(..)] on a struct, enum or union.
	DeriveLike
)

func (s Shape) String() string {
	switch s {
	case FunctionLike:
		return "function-like"
	case AttributeLike:
		return "attribute-like"
	case DeriveLike:
		return "derive-like"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// ParseShape accepts the names used by the CLI and macroemu.toml.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "function", "function-like", "fn", "bang":
		return FunctionLike, nil
	case "attribute", "attribute-like", "attr":
		return AttributeLike, nil
	case "derive", "derive-like":
		return DeriveLike, nil
	default:
		return 0, fmt.Errorf("unknown macro shape %q (expected function|attribute|derive)", s)
	}
}
