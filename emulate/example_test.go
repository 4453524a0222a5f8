package emulate_test

import (
	"errors"
	"fmt"
	"strings"

	"macroemu/emulate"
)

// expandAssert mirrors a custom_assert! implementation: the first argument
// is the condition, the rest is an optional panic message.
func expandAssert(in emulate.TokenStream) (string, error) {
	parts := in.SplitTopLevel(emulate.Comma)
	if len(parts) == 0 {
		return "", errors.New("custom_assert! needs a condition")
	}
	msg := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		msg = append(msg, p.String())
	}
	return fmt.Sprintf("if !(%s) { panic!(%s); }", parts[0], strings.Join(msg, ", ")), nil
}

func ExampleFunctionLike() {
	f, err := emulate.Parse("tests.rs", []byte(`
fn assert_no_message() {
    custom_assert!(2 + 2 == 4);
    custom_assert!(x, "x was {}", x);
}
`))
	if err != nil {
		panic(err)
	}
	err = emulate.FunctionLike(f, "custom_assert", func(in emulate.TokenStream) error {
		out, err := expandAssert(in)
		fmt.Println(out)
		return err
	})
	fmt.Println(err)
	// Output:
	// if !(2 + 2 == 4) { panic!(); }
	// if !(x) { panic!("x was {}", x); }
	// <nil>
}

func ExampleDeriveLike() {
	f, err := emulate.Parse("pod.rs", []byte(`
#[derive(Debug, Pod)]
#[pod(align = 4)]
struct State { x: u32 }
`))
	if err != nil {
		panic(err)
	}
	_ = emulate.DeriveLike(f, "Pod", []string{"pod"}, func(in emulate.TokenStream) error { //nolint:errcheck
		fmt.Println(in.Source())
		return nil
	})
	// Output:
	// struct State { x: u32 }
}

func ExampleParseError() {
	_, err := emulate.Parse("broken.rs", []byte("fn f() { (]"))
	fmt.Println(emulate.IsParseError(err))
	// Output:
	// true
}
