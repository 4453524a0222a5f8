package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"macroemu/internal/diag"
	"macroemu/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/test.rs", []byte("fn main() {\n    let x = \"unterminated\n}"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: id, Start: 24, End: 37}, "unterminated string literal").
		WithNote(source.Span{File: id, Start: 0, End: 2}, "in this function"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "LEX1002",
			Message:  "unterminated string literal",
			Location: &LocationJSON{File: "test.rs", StartByte: 24, EndByte: 37, StartLine: 2, StartCol: 13, EndLine: 2, EndCol: 26},
			Notes: []NoteJSON{{
				Message:  "in this function",
				Location: LocationJSON{File: "test.rs", StartByte: 0, EndByte: 2, StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 3},
			}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONWithoutPositionsAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rs", []byte("x!("))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnclosedDelimiter, source.Span{File: id, Start: 2, End: 3}, "unclosed").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "ignored"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	loc := out.Diagnostics[0].Location
	if loc == nil || loc.StartLine != 0 || loc.StartCol != 0 {
		t.Errorf("positions leaked: %+v", loc)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes included without IncludeNotes")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.rs", []byte("abcdef"))
	bag := diag.NewBag(0)
	for i := range uint32(5) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: i, End: i + 1}, "bad"))
	}
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 3})
	if out.Count != 3 || len(out.Diagnostics) != 3 {
		t.Errorf("count = %d, len = %d; want 3", out.Count, len(out.Diagnostics))
	}
}

func TestJSONLoadErrorHasNoLocation(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "failed"})
	out := BuildDiagnosticsOutput(bag, nil, JSONOpts{IncludePositions: true})
	if out.Diagnostics[0].Location != nil {
		t.Errorf("load error has a location: %+v", out.Diagnostics[0].Location)
	}
}
