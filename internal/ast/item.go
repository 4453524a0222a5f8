package ast

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemStruct
	ItemEnum
	ItemUnion
	ItemTrait
	ItemTraitAlias
	ItemImpl
	ItemMod
	ItemUse
	ItemConst
	ItemStatic
	ItemTypeAlias
	ItemExternCrate
	ItemExternBlock
	ItemMacroCall
	ItemMacroRules
)

var itemKindNames = [...]string{
	ItemFn:          "fn",
	ItemStruct:      "struct",
	ItemEnum:        "enum",
	ItemUnion:       "union",
	ItemTrait:       "trait",
	ItemTraitAlias:  "trait alias",
	ItemImpl:        "impl",
	ItemMod:         "mod",
	ItemUse:         "use",
	ItemConst:       "const",
	ItemStatic:      "static",
	ItemTypeAlias:   "type",
	ItemExternCrate: "extern crate",
	ItemExternBlock: "extern block",
	ItemMacroCall:   "macro call",
	ItemMacroRules:  "macro_rules",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "item(?)"
}

// IsTypeDecl reports whether the item can carry a derive list.
func (k ItemKind) IsTypeDecl() bool {
	return k == ItemStruct || k == ItemEnum || k == ItemUnion
}

// Item is a declaration. Toks covers its outer attributes too.
type Item struct {
	Kind  ItemKind
	Attrs []Attr
	// Name is empty for impl blocks, use trees, extern blocks and macro calls.
	Name string
	Toks TokenRange

	// InnerAttrs are #![..] attributes at the start of a body.
	InnerAttrs []Attr
	// Exprs are the nodes found outside the body: signatures, field lists,
	// initialisers, discriminants. They are in source order and precede Body/Items.
	Exprs []*Expr
	// Body is the block of a function with a body.
	Body *Block
	// Items are the children of mod, impl, trait and extern blocks.
	Items []*Item
	// Macro is set for ItemMacroCall.
	Macro *MacroCall
}
