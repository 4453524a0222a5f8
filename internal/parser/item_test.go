package parser_test

import (
	"testing"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
)

func TestTopLevelItems(t *testing.T) {
	src := `#![allow(dead_code)]
//! crate docs
extern crate plain_old_data;
use {
    std::mem::size_of,
    plain_old_data::Pod
};
pub(crate) mod inner;
mod m { fn f() {} }
pub struct Unit;
struct Tuple(u8, pub String);
#[repr(C, packed)]
struct State { x: u32, y: u32, z: u8 }
enum E { A = 1, B(u8), C { x: u8 } }
union U { a: u32, b: f32 }
trait T: Clone { const N: usize; fn m(&self) -> u8 { 0 } }
trait Alias = Clone + Send;
unsafe impl<T> Send for Wrapper<T> where T: Send {}
impl<const N: usize> Arr<{ N + 1 }> { pub const fn len(&self) -> usize { N } }
const _: () = ();
static mut COUNTER: u32 = 0;
type Bytes<'a> = &'a [u8];
extern "C" { fn abs(x: i32) -> i32; }
pub async unsafe fn run() {}
macro_rules! twice { ($e:expr) => { $e; $e }; }
`
	f := mustParse(t, src)
	if len(f.Attrs) != 2 {
		t.Fatalf("inner attrs = %d, want 2", len(f.Attrs))
	}
	if f.Attrs[1].Kind != ast.AttrDoc || f.Attrs[1].Style != ast.AttrInner {
		t.Fatalf("second inner attr should be an inner doc comment: %+v", f.Attrs[1])
	}

	want := []struct {
		kind ast.ItemKind
		name string
	}{
		{ast.ItemExternCrate, "plain_old_data"},
		{ast.ItemUse, ""},
		{ast.ItemMod, "inner"},
		{ast.ItemMod, "m"},
		{ast.ItemStruct, "Unit"},
		{ast.ItemStruct, "Tuple"},
		{ast.ItemStruct, "State"},
		{ast.ItemEnum, "E"},
		{ast.ItemUnion, "U"},
		{ast.ItemTrait, "T"},
		{ast.ItemTraitAlias, "Alias"},
		{ast.ItemImpl, ""},
		{ast.ItemImpl, ""},
		{ast.ItemConst, "_"},
		{ast.ItemStatic, "COUNTER"},
		{ast.ItemTypeAlias, "Bytes"},
		{ast.ItemExternBlock, ""},
		{ast.ItemFn, "run"},
		{ast.ItemMacroRules, "twice"},
	}
	if len(f.Items) != len(want) {
		for _, it := range f.Items {
			t.Logf("%v %q", it.Kind, it.Name)
		}
		t.Fatalf("items = %d, want %d", len(f.Items), len(want))
	}
	for i, w := range want {
		if f.Items[i].Kind != w.kind || f.Items[i].Name != w.name {
			t.Errorf("item %d = %v %q, want %v %q", i, f.Items[i].Kind, f.Items[i].Name, w.kind, w.name)
		}
	}

	state := f.Items[6]
	if len(state.Attrs) != 1 || state.Attrs[0].Path.String() != "repr" {
		t.Fatalf("State attrs = %+v", state.Attrs)
	}
	if got := text(f, state.Attrs[0].Args); got != "C , packed" {
		t.Fatalf("repr args = %q", got)
	}
	if got := text(f, state.Toks); got != "# [ repr ( C , packed ) ] struct State { x : u32 , y : u32 , z : u8 }" {
		t.Fatalf("State tokens = %q", got)
	}

	if n := len(f.Items[9].Items); n != 2 {
		t.Fatalf("trait T children = %d, want 2", n)
	}
	if n := len(f.Items[16].Items); n != 1 {
		t.Fatalf("extern block children = %d, want 1", n)
	}
}

func TestDeriveList(t *testing.T) {
	f := mustParse(t, "#[derive(Debug, Pod, ::bytemuck::Zeroable, Clone,)]\nstruct S;")
	attr := f.Items[0].Attrs[0]
	if !attr.IsDerive() {
		t.Fatalf("expected derive attribute")
	}
	var got []string
	for _, d := range attr.Derives {
		got = append(got, d.Path.String())
	}
	want := []string{"Debug", "Pod", "::bytemuck::Zeroable", "Clone"}
	if len(got) != len(want) {
		t.Fatalf("derives = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("derives = %v, want %v", got, want)
		}
	}
}

func TestAttributeForms(t *testing.T) {
	f := mustParse(t, `#[reference_counted]
#[derive(Default)]
#[doc = "text"]
/// outer doc
#[my_attr(a, b)]
#[other::path[1]]
#[braced { x }]
struct SharedState { values: Vec<String> }`)
	attrs := f.Items[0].Attrs
	if len(attrs) != 7 {
		t.Fatalf("attrs = %d, want 7", len(attrs))
	}
	cases := []struct {
		path  string
		delim ast.Delim
		eq    bool
		args  string
	}{
		{"reference_counted", ast.DelimNone, false, ""},
		{"derive", ast.DelimParen, false, "Default"},
		{"doc", ast.DelimNone, true, `"text"`},
		{"doc", ast.DelimNone, false, "/// outer doc"},
		{"my_attr", ast.DelimParen, false, "a , b"},
		{"other::path", ast.DelimBracket, false, "1"},
		{"braced", ast.DelimBrace, false, "x"},
	}
	for i, tc := range cases {
		a := attrs[i]
		if a.Path.String() != tc.path || a.Delim != tc.delim || a.Eq != tc.eq {
			t.Errorf("attr %d = %s %v eq=%v", i, a.Path.String(), a.Delim, a.Eq)
		}
		if got := text(f, a.Args); got != tc.args {
			t.Errorf("attr %d args = %q, want %q", i, got, tc.args)
		}
	}
}

func TestItemMacroCalls(t *testing.T) {
	f := mustParse(t, `lazy_static! { static ref X: u8 = 1; }
foo::bar!(1, 2);
::root![x];
`)
	calls := macroCalls(f)
	if len(calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(calls))
	}
	want := []struct {
		path  string
		delim ast.Delim
		args  string
	}{
		{"lazy_static", ast.DelimBrace, "static ref X : u8 = 1 ;"},
		{"foo::bar", ast.DelimParen, "1 , 2"},
		{"::root", ast.DelimBracket, "x"},
	}
	for i, w := range want {
		if calls[i].Path.String() != w.path || calls[i].Delim != w.delim {
			t.Errorf("call %d = %s %v", i, calls[i].Path.String(), calls[i].Delim)
		}
		if got := text(f, calls[i].Args); got != w.args {
			t.Errorf("call %d args = %q, want %q", i, got, w.args)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed", "fn main() { foo!(a, b; }", diag.SynMismatchedDelimiter},
		{"unclosed at eof", "fn main() {", diag.SynUnclosedDelimiter},
		{"stray closer", "fn main() {} }", diag.SynUnexpectedCloser},
		{"not an item", "let x = 1;", diag.SynExpectItem},
		{"attr without item", "fn f() {}\n#[test]", diag.SynAttrWithoutItem},
		{"bad derive", "#[derive(Debug + Clone)] struct S;", diag.SynBadAttrInput},
		{"derive without list", "#[derive = \"x\"] struct S;", diag.SynBadAttrInput},
		{"attr path", "#[1] struct S;", diag.SynExpectPath},
		{"missing semicolon", "foo!(x)\nfn f() {}", diag.SynExpectSemicolon},
		{"missing name", "fn () {}", diag.SynExpectIdentifier},
		{"missing body", "struct S (u8) fn", diag.SynExpectBody},
		{"inner attr late", "fn f() {}\n#![allow(x)]\nfn g() {}", diag.SynInnerAttrPosition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := parseSource(t, tc.src)
			if !bag.HasErrors() {
				t.Fatalf("expected errors for %q", tc.src)
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tc.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %s, got:\n%s", tc.code.ID(), formatDiags(bag))
			}
		})
	}
}

func TestUnbalancedDelimitersSkipTree(t *testing.T) {
	f, bag := parseSource(t, "fn a() { m!(1) }\nfn b() { (]")
	if !bag.HasErrors() {
		t.Fatalf("expected delimiter errors")
	}
	if len(f.Items) != 0 {
		t.Fatalf("no items should be built for unbalanced input, got %d", len(f.Items))
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 {
		t.Fatalf("mismatched delimiter should point at the opener: %+v", d)
	}
}

func TestMaxErrors(t *testing.T) {
	src := "let a = 1;\nlet b = 2;\nlet c = 3;\n"
	_, bag := parseSourceWithLimit(t, src, 1)
	if bag.Len() != 1 {
		t.Fatalf("bag.Len() = %d, want 1", bag.Len())
	}
}
