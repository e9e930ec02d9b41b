package analysis

import "nbacomplement/internal/automaton"

// IsAcceptingSelfLoop classifies a waiting macrostate S as carrying an
// accepting self-loop on symbol a: delta(S,a) == S, and from every
// accepting q in S some a-labelled path returns to q within S. Such an edge already witnesses acceptance and is excluded
// from rank-bound propagation and tight-part entry.
func IsAcceptingSelfLoop(a *automaton.Automaton, states []int, sym int) bool {
	next := a.DeltaSet(states, sym)
	if !sameSet(states, next) {
		return false
	}
	accepting := a.AcceptingSubset(states)
	if len(accepting) == 0 {
		return false
	}
	for _, q := range accepting {
		if !returnsToSelf(a, states, q, sym) {
			return false
		}
	}
	return true
}

// returnsToSelf checks that q has an a-labelled path back to itself
// while staying within states, via BFS over the induced subgraph.
func returnsToSelf(a *automaton.Automaton, states []int, q, sym int) bool {
	inSet := make(map[int]bool, len(states))
	for _, s := range states {
		inSet[s] = true
	}
	visited := map[int]bool{q: true}
	queue := []int{q}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, q2 := range a.Delta(cur, sym) {
			if q2 == q {
				return true
			}
			if inSet[q2] && !visited[q2] {
				visited[q2] = true
				queue = append(queue, q2)
			}
		}
	}
	return false
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsSingletonNonAcceptingSelfLoop classifies the degenerate case of a
// singleton macrostate {q} with q non-accepting and delta(q, sym) == {q}
// for some symbol sym, which is replaced by a dedicated accepting sink
// instead of entering the tight part. It returns the lowest such symbol.
func IsSingletonNonAcceptingSelfLoop(a *automaton.Automaton, states []int) (sym int, ok bool) {
	if len(states) != 1 || a.IsAccepting(states[0]) {
		return 0, false
	}
	q := states[0]
	for s := 0; s < a.NumSymbols; s++ {
		succ := a.Delta(q, s)
		if len(succ) == 1 && succ[0] == q {
			return s, true
		}
	}
	return 0, false
}
