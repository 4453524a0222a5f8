// Package diag defines the diagnostic model shared by the lexer and parser.
//
// # Purpose
//
//   - Provide deterministic data structures that capture problems found while
//     turning a fixture file into a syntax tree.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; the public emulate package turns error diagnostics into a
// ParseError.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (LEX1002).
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing at the problem.
//   - Notes – optional secondary spans, e.g. "delimiter opened here".
//
// # Emitting diagnostics
//
// Phases report through a Reporter. BagReporter collects into a Bag, which
// supports sorting, deduplication and error checks. ReportBuilder chains notes
// before a single Emit.
package diag
