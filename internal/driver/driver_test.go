package driver

import (
	"testing"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/options"
)

// scenario1: single accepting state looping on 'a'. L(A) = a^omega.
// Over Sigma={a} the complement's language is empty, so the complement
// must have no accepting run.
func scenario1() *automaton.Automaton {
	a := automaton.New(1, 1)
	a.AddTransition(0, 0, 0)
	a.SetAccept(0, true)
	a.SetInit([]int{0})
	return a
}

// scenario2: q0 --a--> {q0,q1}, q0 --b--> q0, q1 --a,b--> q1, q1
// accepting. L(A) = "eventually see a"; complement's language is b^omega.
func scenario2() *automaton.Automaton {
	a := automaton.New(2, 2)
	a.AddTransition(0, 0, 0)
	a.AddTransition(0, 0, 1)
	a.AddTransition(0, 1, 0)
	a.AddTransition(1, 0, 1)
	a.AddTransition(1, 1, 1)
	a.SetAccept(1, true)
	a.SetInit([]int{0})
	return a
}

func TestValidateRejectsEmptyAutomaton(t *testing.T) {
	a := automaton.New(0, 0)
	if err := Validate(a); err == nil {
		t.Fatalf("expected an error for a zero-state automaton")
	}
}

func TestValidateRejectsMissingInit(t *testing.T) {
	a := automaton.New(1, 1)
	if err := Validate(a); err == nil {
		t.Fatalf("expected an error for an automaton with no initial state")
	}
}

func TestComplementKVProducesAutomaton(t *testing.T) {
	a := scenario1()
	opts := options.Default()
	opts.Mode = options.ModeKV

	out, stats, err := Complement(a, opts)
	if err != nil {
		t.Fatalf("Complement: %v", err)
	}
	if out.NumStates == 0 {
		t.Fatalf("expected a non-empty complement automaton")
	}
	if stats.States != out.NumStates {
		t.Fatalf("stats.States = %d, want %d", stats.States, out.NumStates)
	}
}

func TestComplementSingleAcceptingSelfLoopHasNoAcceptingRun(t *testing.T) {
	a := scenario1()
	opts := options.Default()
	opts.Mode = options.ModeKV

	out, _, err := Complement(a, opts)
	if err != nil {
		t.Fatalf("Complement: %v", err)
	}
	for q := 0; q < out.NumStates; q++ {
		if !out.IsAccepting(q) {
			continue
		}
		if reachesCycleThroughSelf(out, q) {
			t.Fatalf("accepting state %d lies on a cycle: complement of a^omega should accept nothing", q)
		}
	}
}

func TestComplementSchewe(t *testing.T) {
	a := scenario2()
	opts := options.Default()
	opts.Mode = options.ModeSchewe

	out, _, err := Complement(a, opts)
	if err != nil {
		t.Fatalf("Complement: %v", err)
	}
	if out.NumStates == 0 {
		t.Fatalf("expected a non-empty complement automaton")
	}
}

func TestComplementScheweReducedWithAllOptimisationsEnabled(t *testing.T) {
	a := scenario2()
	opts := options.Default()
	opts.Mode = options.ModeScheweReduced
	opts.SuccEmptyCheck = true
	opts.ElevatorRank = true
	opts.SemidetOpt = true
	opts.Eta4 = true

	out, stats, err := Complement(a, opts)
	if err != nil {
		t.Fatalf("Complement: %v", err)
	}
	if out.NumStates == 0 {
		t.Fatalf("expected a non-empty complement automaton")
	}
	if stats.Transitions < 0 {
		t.Fatalf("negative transition count")
	}
}

func TestComplementUnknownModeIsUnsupported(t *testing.T) {
	a := scenario1()
	opts := options.Default()
	opts.Mode = options.Mode("bogus")

	if _, _, err := Complement(a, opts); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

// reachesCycleThroughSelf is a small BFS/DFS helper used only to check
// scenario 1's expectation: q must not lie on any reachable cycle.
func reachesCycleThroughSelf(a *automaton.Automaton, q int) bool {
	visited := make(map[int]bool)
	var stack []int
	for sym := 0; sym < a.NumSymbols; sym++ {
		stack = append(stack, a.Delta(q, sym)...)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == q {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for sym := 0; sym < a.NumSymbols; sym++ {
			stack = append(stack, a.Delta(cur, sym)...)
		}
	}
	return false
}
