// Package emulate runs procedural macro implementations at test time so
// coverage tools can see them.
//
// A macro's logic normally only runs inside the compiler. To measure its
// coverage, a test parses a fixture file that uses the macro, lets this
// package find every invocation, and receives the exact input tokens the
// compiler would pass for each one:
//
//	func TestAssertCoverage(t *testing.T) {
//		err := emulate.FunctionLikeFile("testdata/tests.rs", "assert", func(in emulate.TokenStream) error {
//			_, err := expandAssert(in)
//			return err
//		})
//		if err != nil {
//			t.Fatal(err)
//		}
//	}
//
// Three invocation shapes are supported:
//
//   - function-like name!(..): the callback gets the tokens between the delimiters
//   - attribute-like #[name(..)]: the callback gets the attribute arguments and the
//     annotated declaration without that attribute
//   - derive-like #[derive(Name)]: the callback gets the type declaration without
//     its derive attributes and without the listed helper attributes
//
// Matching is syntactic: "assert" matches assert! and custom_assert::assert!,
// while "::custom_assert::assert" only matches that exact rooted path.
// Sites are visited in source order. A malformed fixture yields a
// *ParseError before any callback runs; a callback error stops the run and
// comes back wrapped in a *CallbackError.
package emulate
