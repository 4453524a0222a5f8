package parser_test

import (
	"testing"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
)

func callPaths(f *ast.File) []string {
	var out []string
	for _, c := range macroCalls(f) {
		out = append(out, c.Path.String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMacroCallsInSourceOrder(t *testing.T) {
	src := `fn main() {
    a!(1);
    let x = b![2, c!(3)];
    if d!(4) { e!(5) } else if f!(6) { } else { g!{7} }
    match h!(8) {
        Some(v) if i!(v) => j!(v),
        _ => { k!(); }
    }
    let s = S { field: l!(9), ..Default::default() };
    let closure = |q| m!(q);
    while let Some(x) = n!() { o!(x); }
    for p in q!() { r!(p) }
    loop { s!(); break; }
    unsafe { t!() };
    'outer: loop { u!(); }
    v! { w }
    x!(y).z();
}
`
	f := mustParse(t, src)
	want := []string{"a", "b", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "q", "r", "s", "t", "u", "v", "x"}
	if got := callPaths(f); !equalStrings(got, want) {
		t.Fatalf("calls = %v\nwant     %v", got, want)
	}
}

func TestMacroArgsAreNotParsed(t *testing.T) {
	f := mustParse(t, "fn f() { outer!(inner!(1), { nested!() }); }")
	calls := macroCalls(f)
	if len(calls) != 1 || calls[0].Path.String() != "outer" {
		t.Fatalf("only the outer call must be visible, got %v", callPaths(f))
	}
}

func TestStatementsSplit(t *testing.T) {
	src := `fn f() {
    let a = if x { 1 } else { 2 };
    if y { z(); }
    match w { _ => {} }
    #[derive(HelloWorld)]
    struct MyStruct;
    { inner(); }
    m! { tokens }
    struct After;
    call()
}`
	f := mustParse(t, src)
	body := f.Items[0].Body
	kinds := []ast.StmtKind{
		ast.StmtLet, ast.StmtExpr, ast.StmtExpr, ast.StmtItem, ast.StmtExpr,
		ast.StmtExpr, ast.StmtItem, ast.StmtExpr,
	}
	if len(body.Stmts) != len(kinds) {
		for _, st := range body.Stmts {
			t.Logf("%v: %s", st.Kind, text(f, st.Toks))
		}
		t.Fatalf("stmts = %d, want %d", len(body.Stmts), len(kinds))
	}
	for i, k := range kinds {
		if body.Stmts[i].Kind != k {
			t.Errorf("stmt %d = %v, want %v (%s)", i, body.Stmts[i].Kind, k, text(f, body.Stmts[i].Toks))
		}
	}
	item := body.Stmts[3].Item
	if item.Kind != ast.ItemStruct || item.Name != "MyStruct" || len(item.Attrs) != 1 {
		t.Fatalf("item in fn body = %v %q attrs=%d", item.Kind, item.Name, len(item.Attrs))
	}
	if got := text(f, item.Toks); got != "# [ derive ( HelloWorld ) ] struct MyStruct ;" {
		t.Fatalf("item tokens = %q", got)
	}
	if body.Stmts[6].Item.Name != "After" {
		t.Fatalf("brace macro statement must end at its closing brace")
	}
}

func TestIfLetStructPattern(t *testing.T) {
	f := mustParse(t, "fn f() { if let Point { x, .. } = p { a!(x) } }")
	if got := callPaths(f); !equalStrings(got, []string{"a"}) {
		t.Fatalf("calls = %v", got)
	}
}

func TestMacrosInTypesAndSignatures(t *testing.T) {
	src := `struct S { a: [u8; len!()], b: ty!(u8) }
fn f(x: param_ty!()) -> ret_ty!() where T: Tr<assoc!()> { body!() }
const C: usize = size!() + 1;
static STATE: Mutex<SharedState> = Mutex::new(SharedState {
    values: Vec::new(),
    reference_count: init!(),
});
enum E { A = disc!() }
`
	f := mustParse(t, src)
	want := []string{"len", "ty", "param_ty", "ret_ty", "assoc", "body", "size", "init", "disc"}
	if got := callPaths(f); !equalStrings(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestKeywordBangIsNotMacro(t *testing.T) {
	f := mustParse(t, "fn f() -> bool { if !(a) { return !(b); } self::m!(); crate::n!{} true }")
	want := []string{"self::m", "crate::n"}
	if got := callPaths(f); !equalStrings(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestOriginalExampleFixtures(t *testing.T) {
	src := `#![feature(proc_macro, proc_macro_non_items)]

extern crate custom_assert;

use custom_assert::custom_assert;

#[test]
fn assert_no_message() {
    custom_assert!(2 + 2 == 4);
}

#[test]
fn pod_struct() {
    let state = State {
        x: u32::from_be(0x12345678),
        y: u32::from_be(0x9abcdef0),
        z: 0x55
    };
    let bytes = [0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x55];
    assert_eq!(<[u8; size_of::<State>()]>::from(state), bytes);
    assert_eq!(state, State::from(bytes));
}
`
	f := mustParse(t, src)
	want := []string{"custom_assert", "assert_eq", "assert_eq"}
	if got := callPaths(f); !equalStrings(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if got := text(f, macroCalls(f)[0].Args); got != "2 + 2 == 4" {
		t.Fatalf("custom_assert args = %q", got)
	}
}

func TestLetRequiresInitializerAfterEq(t *testing.T) {
	bad := []string{
		"fn f() { let x = ; }",
		"fn f() { let x: u8 = }",
		"fn f() { let Some(x) = else { return }; }",
	}
	for _, src := range bad {
		_, bag := parseSource(t, src)
		if !bag.HasErrors() {
			t.Errorf("%q: expected an error", src)
			continue
		}
		if code := bag.Items()[0].Code; code != diag.SynExpectExpression {
			t.Errorf("%q: first code = %s, want %s\n%s", src, code.ID(), diag.SynExpectExpression.ID(), formatDiags(bag))
		}
	}

	good := []string{
		"fn f() { let x; }",
		"fn f() { let x: Vec<u8> = m!(1); }",
		"fn f() { let Some(x) = y else { return }; }",
		"fn f() { let ok = a == b; }",
	}
	for _, src := range good {
		mustParse(t, src)
	}
}
