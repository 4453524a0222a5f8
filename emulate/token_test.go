package emulate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func argsOf(t *testing.T, src string) TokenStream {
	t.Helper()
	var in TokenStream
	err := FunctionLike(mustParse(t, src), "m", func(ts TokenStream) error {
		in = ts
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return in
}

func TestSplitTopLevel(t *testing.T) {
	in := argsOf(t, `fn f() { m!(a, f(b, c), [d, e], { g, h },); }`)
	var got []string
	for _, part := range in.SplitTopLevel(Comma) {
		got = append(got, part.String())
	}
	want := []string{"a", "f ( b , c )", "[ d , e ]", "{ g , h }"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if parts := (TokenStream{}).SplitTopLevel(Comma); parts != nil {
		t.Fatalf("empty stream split into %d parts", len(parts))
	}
}

func TestSourceKeepsSpacingAndComments(t *testing.T) {
	in := argsOf(t, "fn f() { m!(  a  +\n  b /* why */, // tail\n \"x\"); }")
	if got, want := in.Source(), "a  +\n  b /* why */, // tail\n \"x\""; got != want {
		t.Fatalf("Source() = %q, want %q", got, want)
	}
	if in.String() != `a + b , "x"` {
		t.Fatalf("String() = %q", in.String())
	}
}

func TestTokenStreamAccessors(t *testing.T) {
	in := argsOf(t, `fn f() { m!(x = 1); }`)
	if in.Len() != 3 || in.IsEmpty() || in.At(1).Text != "=" {
		t.Fatalf("stream = %v", in.Texts())
	}
	same := NewTokenStream(in.Tokens())
	if !same.Equal(in) {
		t.Fatalf("copy not equal")
	}
	if in.Equal(argsOf(t, `fn f() { m!(x = 2); }`)) {
		t.Fatalf("different streams compare equal")
	}
	if !argsOf(t, `fn f() { m!(); }`).IsEmpty() {
		t.Fatalf("empty call args not empty")
	}
}
