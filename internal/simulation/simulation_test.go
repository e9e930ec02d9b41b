package simulation

import (
	"testing"

	"nbacomplement/internal/automaton"
)

func twoStateLoop() *automaton.Automaton {
	// q0 --a--> {q0,q1}, q1 --a--> {q1}; q1 accepting.
	a := automaton.New(2, 1)
	a.AddTransition(0, 0, 0)
	a.AddTransition(0, 0, 1)
	a.AddTransition(1, 0, 1)
	a.SetInit([]int{0})
	a.SetAccept(1, true)
	return a
}

func TestDirectSimulationReflexive(t *testing.T) {
	a := twoStateLoop()
	rel := ComputeDirect(a)
	for q := 0; q < a.NumStates; q++ {
		if !rel[q][q] {
			t.Fatalf("state %d does not simulate itself", q)
		}
	}
}

func TestDirectSimulationAcceptanceConstraint(t *testing.T) {
	a := twoStateLoop()
	rel := ComputeDirect(a)
	// q0 is non-accepting, q1 is accepting: q0 cannot simulate q1.
	if rel[0][1] {
		t.Fatalf("non-accepting state 0 should not simulate accepting state 1")
	}
}

func TestBackRelationExcludesSelf(t *testing.T) {
	a := twoStateLoop()
	rel := ComputeDirect(a)
	br := Build(rel)
	// q1 simulates q1 only trivially (p==q excluded), so Simulators(1)
	// should not include 1 itself, but may include others simulating it.
	for _, p := range br.Simulators(1) {
		if p == 1 {
			t.Fatalf("Simulators should exclude self")
		}
	}
}
