package automaton

import "testing"

// ------------------------------------------------------------------- helpers

func small(t *testing.T) *Automaton {
	// q0 --a--> {q0,q1}, q0 --b--> {q0}, q1 --a--> {q1}, q1 --b--> {q1}
	a := New(2, 2)
	a.AddTransition(0, 0, 0)
	a.AddTransition(0, 0, 1)
	a.AddTransition(0, 1, 0)
	a.AddTransition(1, 0, 1)
	a.AddTransition(1, 1, 1)
	a.SetInit([]int{0})
	a.SetAccept(1, true)
	return a
}

func TestDeltaDedup(t *testing.T) {
	a := small(t)
	a.AddTransition(0, 0, 1) // duplicate
	got := a.Delta(0, 0)
	want := []int{0, 1}
	if len(got) != len(want) {
		t.Fatalf("delta(0,a) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delta(0,a) = %v, want %v", got, want)
		}
	}
}

func TestDeltaSet(t *testing.T) {
	a := small(t)
	got := a.DeltaSet([]int{0, 1}, 0)
	want := []int{0, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("deltaSet = %v, want %v", got, want)
	}
}

func TestAcceptingSubset(t *testing.T) {
	a := small(t)
	got := a.AcceptingSubset([]int{0, 1})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("acceptingSubset = %v, want [1]", got)
	}
}
