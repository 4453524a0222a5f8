package invocation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/invocation"
	"macroemu/internal/lexer"
	"macroemu/internal/parser"
	"macroemu/internal/reconstruct"
	"macroemu/internal/source"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fixture.rs", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return res.File
}

func join(f *ast.File, r ast.TokenRange, excl ...ast.TokenRange) string {
	var parts []string
	for _, tok := range reconstruct.Subtract(f.Tokens, r, excl...) {
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}

func TestParseMacroName(t *testing.T) {
	tests := []struct {
		in     string
		global bool
		segs   []string
	}{
		{"assert", false, []string{"assert"}},
		{"custom_assert::assert", false, []string{"custom_assert", "assert"}},
		{"::std::vec", true, []string{"std", "vec"}},
		{" r#try ", false, []string{"try"}},
		{"println!", false, []string{"println"}},
		{"café", false, []string{"café"}},
	}
	for _, tt := range tests {
		n, err := invocation.ParseMacroName(tt.in)
		if err != nil {
			t.Errorf("ParseMacroName(%q): %v", tt.in, err)
			continue
		}
		if n.Global != tt.global || !cmp.Equal(n.Segments, tt.segs) {
			t.Errorf("ParseMacroName(%q) = %+v", tt.in, n)
		}
	}
	for _, bad := range []string{"", "::", "a::", "a::::b", "1abc", "a-b", "_", "a b"} {
		if _, err := invocation.ParseMacroName(bad); !errors.Is(err, invocation.ErrInvalidMacroName) {
			t.Errorf("ParseMacroName(%q) err = %v, want ErrInvalidMacroName", bad, err)
		}
	}
}

func TestMacroNameMatches(t *testing.T) {
	path := func(global bool, segs ...string) ast.Path { return ast.Path{Global: global, Segments: segs} }
	tests := []struct {
		name string
		p    ast.Path
		want bool
	}{
		{"assert", path(false, "assert"), true},
		{"assert", path(false, "custom_assert", "assert"), true},
		{"assert", path(true, "core", "assert"), true},
		{"assert", path(false, "assert_eq"), false},
		{"custom_assert::assert", path(false, "assert"), false},
		{"custom_assert::assert", path(false, "x", "custom_assert", "assert"), true},
		{"::core::assert", path(false, "core", "assert"), false},
		{"::core::assert", path(true, "core", "assert"), true},
		{"::core::assert", path(true, "x", "core", "assert"), false},
		{"café", path(false, "café"), true},
	}
	for _, tt := range tests {
		n := invocation.MustParseMacroName(tt.name)
		if got := n.Matches(tt.p); got != tt.want {
			t.Errorf("%q.Matches(%s) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestParseShape(t *testing.T) {
	for in, want := range map[string]invocation.Shape{
		"function": invocation.FunctionLike, "attr": invocation.AttributeLike, "Derive": invocation.DeriveLike,
	} {
		if got, err := invocation.ParseShape(in); err != nil || got != want {
			t.Errorf("ParseShape(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := invocation.ParseShape("proc"); err == nil {
		t.Errorf("expected error")
	}
}

func TestFunctionLikeSitesInSourceOrder(t *testing.T) {
	f := parse(t, `
macro_rules! local { () => { assert!(inside_rules) } }
const C: u32 = { assert!(c); 1 };
fn main() {
    assert!(1 + 1 == 2);
    let v = vec![assert!(nested_in_args)];
    if assert!(cond) { custom_assert::assert!(x, "msg {}", y) }
    other!(assert!(hidden));
    assert_eq!(a, b);
    assert(plain_call);
}
mod m { fn f() { assert! { brace } } }
`)
	req := invocation.Request{Shape: invocation.FunctionLike, Name: invocation.MustParseMacroName("assert")}
	var got []string
	for _, s := range collect(t, f, req) {
		got = append(got, s.Path.String()+"("+join(f, s.Args)+")")
	}
	want := []string{
		"assert(c)",
		"assert(1 + 1 == 2)",
		"assert(cond)",
		`custom_assert::assert(x , "msg {}" , y)`,
		"assert(brace)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sites mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeLikeSites(t *testing.T) {
	f := parse(t, `
/// docs
#[reference_counted]
#[derive(Clone)]
#[repr(C)]
struct A { x: u32 }

#[rc::reference_counted(weak, 2)]
#[reference_counted = "x"]
fn b() {}

impl A {
    #[reference_counted(inner)]
    fn c(&self) {}
}
`)
	req := invocation.Request{Shape: invocation.AttributeLike, Name: invocation.MustParseMacroName("reference_counted")}
	sites := collect(t, f, req)
	type row struct{ Args, Item string }
	var got []row
	for _, s := range sites {
		got = append(got, row{join(f, s.Args), join(f, s.Item, s.Exclude...)})
	}
	want := []row{
		{"", "/// docs # [ derive ( Clone ) ] # [ repr ( C ) ] struct A { x : u32 }"},
		{"weak , 2", `# [ reference_counted = "x" ] fn b ( ) { }`},
		{`"x"`, "# [ rc :: reference_counted ( weak , 2 ) ] fn b ( ) { }"},
		{"inner", "fn c ( & self ) { }"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sites mismatch (-want +got):\n%s", diff)
	}
	if sites[0].ItemKind != ast.ItemStruct || sites[0].ItemName != "A" {
		t.Errorf("item = %v %q", sites[0].ItemKind, sites[0].ItemName)
	}
}

func TestDeriveLikeSites(t *testing.T) {
	f := parse(t, `
#[derive(Debug, Pod, Clone)]
#[repr(C)]
#[pod(skip)]
struct S { a: u8 }

#[derive(Pod)]
#[derive(Pod, plain_old_data::Pod)]
enum E { A = 1, B }

#[derive(Pod)]
fn not_a_type() {}

#[derive(Debug)]
union U { a: u8 }

fn body() {
    #[derive(Pod)] struct Local;
}
`)
	req := invocation.Request{
		Shape:   invocation.DeriveLike,
		Name:    invocation.MustParseMacroName("Pod"),
		Helpers: []string{"pod"},
	}
	var got []string
	for _, s := range collect(t, f, req) {
		got = append(got, s.ItemName+": "+join(f, s.Item, s.Exclude...))
	}
	want := []string{
		"S: # [ repr ( C ) ] struct S { a : u8 }",
		"E: enum E { A = 1 , B }",
		"Local: struct Local ;",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sites mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitStopsOnFirstError(t *testing.T) {
	f := parse(t, "fn f() { m!(1); m!(2); m!(3); }")
	stop := errors.New("stop")
	var seen []string
	err := invocation.Visit(f, invocation.Request{Shape: invocation.FunctionLike, Name: invocation.MustParseMacroName("m")},
		func(s invocation.Site) error {
			seen = append(seen, join(f, s.Args))
			if len(seen) == 2 {
				return stop
			}
			return nil
		})
	if err != stop {
		t.Fatalf("err = %v, want the callback's error unchanged", err)
	}
	if diff := cmp.Diff([]string{"1", "2"}, seen); diff != "" {
		t.Fatalf("visited (-want +got):\n%s", diff)
	}
}

func TestSiteSpanPointsAtInvocation(t *testing.T) {
	f := parse(t, "fn f() {\n    let x = m!(a);\n}\n")
	sites := collect(t, f, invocation.Request{Shape: invocation.FunctionLike, Name: invocation.MustParseMacroName("m")})
	if len(sites) != 1 {
		t.Fatalf("got %d sites", len(sites))
	}
	got := string(f.Source.Content[sites[0].Span.Start:sites[0].Span.End])
	if got != "m!(a)" {
		t.Fatalf("span text = %q", got)
	}
}

func collect(t *testing.T, f *ast.File, req invocation.Request) []invocation.Site {
	t.Helper()
	sites, err := invocation.Collect(f, req)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return sites
}

func TestUnknownShapeIsAnError(t *testing.T) {
	f := parse(t, "fn f() { m!(1); }")
	for _, shape := range []invocation.Shape{0, invocation.DeriveLike + 1} {
		sites, err := invocation.Collect(f, invocation.Request{Shape: shape, Name: invocation.MustParseMacroName("m")})
		if !errors.Is(err, invocation.ErrUnknownShape) {
			t.Fatalf("shape %d: err = %v, want ErrUnknownShape", shape, err)
		}
		if len(sites) != 0 {
			t.Fatalf("shape %d: got %d sites", shape, len(sites))
		}
	}
}
