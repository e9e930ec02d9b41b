package kv

import (
	"testing"

	"nbacomplement/internal/automaton"
)

// loopAutomaton: q0 --a--> {q0,q1}, q1 --a--> {q1}; q1 accepting.
func loopAutomaton() *automaton.Automaton {
	a := automaton.New(2, 1)
	a.AddTransition(0, 0, 0)
	a.AddTransition(0, 0, 1)
	a.AddTransition(1, 0, 1)
	a.SetAccept(1, true)
	a.SetInit([]int{0})
	return a
}

func TestInitialStatesBoundedBy2Q(t *testing.T) {
	a := loopAutomaton()
	interner := automaton.NewInterner()
	b := NewBuilder(a, interner, Options{ReachMax: 4 * a.NumStates})
	inits := b.InitialStates()
	if len(inits) == 0 {
		t.Fatalf("expected at least one initial state")
	}
	for _, st := range inits {
		if st.O.Len() != 0 {
			t.Fatalf("initial O must be empty, got %v", st.O.Elems())
		}
		if st.R.MaxRank() > 2*a.NumStates {
			t.Fatalf("rank %d exceeds 2|Q| = %d", st.R.MaxRank(), 2*a.NumStates)
		}
	}
}

func TestSuccessorEmptyWhenStuck(t *testing.T) {
	a := automaton.New(1, 1) // no transitions at all
	a.SetInit([]int{0})
	interner := automaton.NewInterner()
	b := NewBuilder(a, interner, Options{})
	inits := b.InitialStates()
	if len(inits) == 0 {
		t.Fatalf("expected at least one initial state")
	}
	if out := b.Successor(inits[0], 0); out != nil {
		t.Fatalf("a state with no outgoing transitions should have no successors, got %v", out)
	}
}

func TestExploreTerminates(t *testing.T) {
	a := loopAutomaton()
	interner := automaton.NewInterner()
	b := NewBuilder(a, interner, Options{ReachMax: 4 * a.NumStates})
	res := b.Explore()
	if len(res.States) == 0 {
		t.Fatalf("expected at least one explored state")
	}
	if len(res.States) != len(res.Index) {
		t.Fatalf("states and index out of sync: %d vs %d", len(res.States), len(res.Index))
	}
	for _, st := range res.States {
		if _, ok := res.Trans[st.Key()]; !ok {
			t.Fatalf("missing transition row for explored state %s", st.Key())
		}
	}
}

func TestAcceptingHoldsOnlyWhenOEmpty(t *testing.T) {
	interner := automaton.NewInterner()
	s := interner.Intern([]int{0})
	st := &State{S: s, O: interner.Intern(nil)}
	if !st.Accepting() {
		t.Fatalf("empty O should be accepting")
	}
	st2 := &State{S: s, O: interner.Intern([]int{0})}
	if st2.Accepting() {
		t.Fatalf("non-empty O should not be accepting")
	}
}
