package analysis

import (
	"testing"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/graph"
	"nbacomplement/internal/simulation"
)

func detAccepting() *automaton.Automaton {
	a := automaton.New(1, 1)
	a.AddTransition(0, 0, 0)
	a.SetAccept(0, true)
	a.SetInit([]int{0})
	return a
}

func TestIsSemideterministic(t *testing.T) {
	a := detAccepting()
	if !IsSemideterministic(a) {
		t.Fatalf("single deterministic accepting loop should be semideterministic")
	}
}

func TestIsAcceptingSelfLoop(t *testing.T) {
	a := detAccepting()
	if !IsAcceptingSelfLoop(a, []int{0}, 0) {
		t.Fatalf("expected accepting self-loop on {0}")
	}
}

func TestIsSingletonNonAcceptingSelfLoop(t *testing.T) {
	a := automaton.New(1, 1)
	a.AddTransition(0, 0, 0)
	sym, ok := IsSingletonNonAcceptingSelfLoop(a, []int{0})
	if !ok || sym != 0 {
		t.Fatalf("expected singleton non-accepting self loop on symbol 0")
	}
}

func TestClassifySCCAndElevator(t *testing.T) {
	// SCC {0} is deterministic accepting (D); SCC {1} is deterministic
	// non-accepting (BOTH); one edge {1} -> {0}.
	a := automaton.New(2, 1)
	a.AddTransition(0, 0, 0)
	a.AddTransition(1, 0, 0)
	a.SetAccept(0, true)
	sccs := graph.ComputeSCC(graph.AutomatonGraph{A: a})
	classes := make([]SCCClass, len(sccs.Components))
	succ := make([][]int, len(sccs.Components))
	for i, members := range sccs.Components {
		classes[i] = ClassifySCC(a, members)
		seen := map[int]bool{}
		for _, q := range members {
			for _, q2 := range a.Successors(q) {
				j := sccs.ComponentOf[q2]
				if j != i && !seen[j] {
					seen[j] = true
					succ[i] = append(succ[i], j)
				}
			}
		}
	}
	elev := Classify(sccs.Components, sccs.Order, classes, succ)
	r0, ok0 := elev.MaxRankOf(0)
	if !ok0 {
		t.Fatalf("state 0 should be classified")
	}
	if r0%2 != 0 {
		t.Fatalf("D-classified state should get an even rank, got %d", r0)
	}
}

func TestOddRankClasses(t *testing.T) {
	if got := OddRankClasses(nil, []int{0, 1, 2}); got != 3 {
		t.Fatalf("with nil relation every state is its own class, got %d", got)
	}
	n := 2
	rel := make(simulation.Relation, n)
	for i := range rel {
		rel[i] = make([]bool, n)
	}
	rel[0][1] = true
	rel[1][0] = true
	br := simulation.Build(rel)
	if got := OddRankClasses(br, []int{0, 1}); got != 1 {
		t.Fatalf("mutually simulating states should collapse to 1 class, got %d", got)
	}
}
