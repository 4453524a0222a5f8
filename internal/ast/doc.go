// Package ast holds the owned syntax tree of a fixture file.
//
// Nodes own their children and never point back to a parent. Every node
// records the half-open range of significant tokens it was parsed from
// (TokenRange, an index range into File.Tokens), so the exact macro input of
// any node can be copied out of File.Tokens without re-lexing.
//
// Only the shapes that can host a macro invocation are modelled in detail:
// items and their attributes, statements, blocks and macro calls. Everything
// else (types, patterns, operators) stays as plain token ranges.
package ast
