package format

import (
	"strings"
	"testing"
)

func TestParseSimpleLoop(t *testing.T) {
	src := "q0\na,q0 -> q0\nq0\n"
	a, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.NumStates != 1 || a.NumSymbols != 1 {
		t.Fatalf("expected 1 state and 1 symbol, got %d/%d", a.NumStates, a.NumSymbols)
	}
	if len(a.Init) != 1 || a.Init[0] != 0 {
		t.Fatalf("expected initial state 0, got %v", a.Init)
	}
	if !a.IsAccepting(0) {
		t.Fatalf("expected state 0 accepting")
	}
	if got := a.Delta(0, 0); len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected self-loop on symbol 0, got %v", got)
	}
}

func TestParseMultiInitAndComments(t *testing.T) {
	src := "# comment line\nq0,q1\na,q0 -> q1\nb,q1 -> q1\nq1\n"
	a, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(a.Init) != 2 {
		t.Fatalf("expected two initial states, got %v", a.Init)
	}
}

func TestParseMalformedTransitionReportsLine(t *testing.T) {
	src := "q0\na,q0 q1\n"
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatalf("expected an error for a transition line missing '->'")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 2 {
		t.Fatalf("expected error on line 2, got %d", perr.Line)
	}
}

func TestWriteThenParseRoundTrips(t *testing.T) {
	src := "q0\na,q0 -> q0\na,q0 -> q1\nb,q1 -> q1\nq1\n"
	a, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Write(a)
	b, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse of Write output: %v\n%s", err, out)
	}
	if b.NumStates != a.NumStates || b.NumSymbols != a.NumSymbols {
		t.Fatalf("round trip changed shape: %d/%d vs %d/%d", b.NumStates, b.NumSymbols, a.NumStates, a.NumSymbols)
	}
	for q := 0; q < a.NumStates; q++ {
		if a.IsAccepting(q) != b.IsAccepting(q) {
			t.Fatalf("round trip changed acceptance of state %d", q)
		}
	}
}

func TestWriteFallsBackToSyntheticNames(t *testing.T) {
	src := "q0\na,q0 -> q0\nq0\n"
	a, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a.StateNames = nil
	a.SymbolNames = nil
	out := string(Write(a))
	if !strings.Contains(out, "q0") || !strings.Contains(out, "a0") {
		t.Fatalf("expected synthetic q0/a0 names in output, got:\n%s", out)
	}
}
