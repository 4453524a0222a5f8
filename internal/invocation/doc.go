// Package invocation finds the places a file invokes a given macro.
//
// Matching is syntactic. A target name such as "assert" matches any path
// ending in that segment (assert!, custom_assert::assert!), while a target
// written with a leading "::" only matches that exact, globally rooted path.
// Each match is a Site describing which token ranges form the macro input;
// the tokens themselves are copied later by package reconstruct.
package invocation
