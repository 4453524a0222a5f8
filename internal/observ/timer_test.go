package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	tm.Track("parse", func() string { return "" })
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected report: %+v", r)
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// 12 tokens", "parse", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer reported phases")
	}
}
