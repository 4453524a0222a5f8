// Package trace records what the emulator does while it runs.
//
// Tracing is meant for diagnosing slow or stuck scans over large fixture
// trees: every CLI command opens a driver span, every fixture file opens a
// file span, and the passes inside a file (lex, parse, match, reconstruct)
// open pass spans. At the debug level each reported invocation site gets its
// own span around the user callback.
//
// # Usage
//
//	macroemu scan --trace=- --trace-level=detail --macro my_macro tests/fixtures
//
// # Tracers
//
//   - Nop: disabled tracing, zero cost
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fan-out to several tracers
//
// # Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
