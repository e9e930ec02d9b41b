package waiting

import (
	"testing"

	"nbacomplement/internal/automaton"
)

func buildAutomaton() *automaton.Automaton {
	// a-word machine: q0 --a--> {q0,q1}, q0 --b--> {q0}, q1 --a/b--> {q1}.
	a := automaton.New(2, 2)
	a.AddTransition(0, 0, 0)
	a.AddTransition(0, 0, 1)
	a.AddTransition(0, 1, 0)
	a.AddTransition(1, 0, 1)
	a.AddTransition(1, 1, 1)
	a.SetInit([]int{0})
	a.SetAccept(1, true)
	return a
}

func TestBuildReachesBothMacrostates(t *testing.T) {
	a := buildAutomaton()
	interner := automaton.NewInterner()
	p := Build(a, interner)
	if len(p.Order) != 2 {
		t.Fatalf("expected 2 reachable macrostates ({0} and {0,1}), got %d", len(p.Order))
	}
	if p.Order[0].Len() != 1 || p.Order[0].Elems()[0] != 0 {
		t.Fatalf("initial macrostate should be {0}, got %v", p.Order[0].Elems())
	}
}

func TestCycleClosing(t *testing.T) {
	a := buildAutomaton()
	interner := automaton.NewInterner()
	p := Build(a, interner)
	closing := p.CycleClosing(nil)
	if len(closing) == 0 {
		t.Fatalf("expected at least one cycle-closing macrostate")
	}
}
