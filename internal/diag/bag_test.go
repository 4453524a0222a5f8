package diag

import (
	"testing"

	"macroemu/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(NewError(SynUnexpectedToken, sp(uint32(i), uint32(i+1)), "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortAndErrors(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, LexBadNumber, sp(10, 12), "w"))
	b.Add(NewError(SynUnclosedDelimiter, sp(3, 4), "e1"))
	b.Add(NewError(LexUnknownChar, sp(3, 4), "e0"))
	b.Sort()

	got := []Code{}
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{LexUnknownChar, SynUnclosedDelimiter, LexBadNumber}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
	if n := len(b.Errors()); n != 2 {
		t.Fatalf("Errors() = %d, want 2", n)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportError(r, SynUnexpectedCloser, sp(1, 2), "unexpected ')'").Emit()
	}
	ReportError(r, SynUnexpectedCloser, sp(5, 6), "unexpected ')'").
		WithNote(sp(0, 1), "opened here").
		Emit()
	if bag.Len() != 2 {
		t.Fatalf("bag.Len() = %d, want 2", bag.Len())
	}
	if notes := bag.Items()[1].Notes; len(notes) != 1 || notes[0].Msg != "opened here" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnterminatedString, "LEX1002"},
		{SynMismatchedDelimiter, "SYN2004"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("%d.ID() = %q, want %q", tc.code, got, tc.want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title")
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev   Severity
		name  string
		fatal bool
	}{
		{SevInfo, "INFO", false},
		{SevWarning, "WARNING", false},
		{SevError, "ERROR", true},
		{Severity(9), "UNKNOWN", true},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.name {
			t.Errorf("String(%d) = %q, want %q", tt.sev, got, tt.name)
		}
		if got := tt.sev.Fatal(); got != tt.fatal {
			t.Errorf("Fatal(%d) = %v, want %v", tt.sev, got, tt.fatal)
		}
	}
}
