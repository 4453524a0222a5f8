// Package token defines lexical token kinds and trivia for Rust-syntax fixtures.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Keywords are lexed as Ident; LookupKeyword classifies them. Macro input
//     sees keywords as identifiers, the same way the compiler hands them over.
//   - Doc comments (///, //!, /** */, /*! */) are tokens, not trivia: the
//     language treats them as attributes and they are part of macro input.
//   - Plain comments and whitespace are leading Trivia and never appear in
//     the significant token stream.
package token
