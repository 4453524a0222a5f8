// Package driver runs the emulator over fixture files for the CLI:
// tokenizing, parsing, and scanning for invocation sites, one file or a
// whole directory at a time.
package driver

import (
	"fortio.org/safecast"

	"macroemu/internal/diag"
	"macroemu/internal/observ"
	"macroemu/internal/pipeline"
	"macroemu/internal/source"
)

// Options configure a driver run. The zero value is usable.
type Options struct {
	// MaxDiagnostics caps diagnostics per file; 0 means unlimited.
	MaxDiagnostics int
	// Jobs limits parallel file processing; 0 means GOMAXPROCS.
	Jobs       int
	Progress   pipeline.ProgressSink
	Timer      *observ.Timer
	Cache      *SiteCache
	Extensions []string
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}

// countingReporter forwards to a bag and counts errors, so a full bag
// cannot hide a failed parse.
type countingReporter struct {
	inner  diag.Reporter
	errors int
}

// newReporter drops repeated diagnostics before they reach bag; every
// error, repeated or not, is still counted.
func newReporter(bag *diag.Bag) *countingReporter {
	return &countingReporter{inner: diag.NewDedupReporter(diag.BagReporter{Bag: bag})}
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev.Fatal() {
		r.errors++
	}
	r.inner.Report(code, sev, primary, msg, notes)
}

func loadError(bag *diag.Bag, path string, err error) {
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load " + path + ": " + err.Error(),
	})
}
