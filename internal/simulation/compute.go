package simulation

import "nbacomplement/internal/automaton"

// ComputeDirect computes the direct simulation preorder: p simulates q
// iff (q accepting implies p accepting) and for every symbol a and every
// q' in delta(q,a) there is some p' in delta(p,a) with p' simulating q',
// coinductively. This is the standard greatest-fixpoint characterisation,
// computed here by repeatedly shrinking an all-true relation until stable.
func ComputeDirect(a *automaton.Automaton) Relation {
	n := a.NumStates
	rel := allTrue(n)
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if a.IsAccepting(q) && !a.IsAccepting(p) {
				rel[p][q] = false
			}
		}
	}
	for {
		changed := false
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				if !rel[p][q] {
					continue
				}
				if !stepRefines(a, rel, p, q) {
					rel[p][q] = false
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return rel
}

// ComputeOddRank derives the relation used for odd-rank pruning of rank
// enumeration: it starts from the direct simulation and repeats the same
// successor-refinement step until stable. Because direct is already a
// fixpoint of that step, the result equals direct; no condition beyond
// direct simulation is applied. It stands in for the externally-supplied
// relation the rest of the package treats as a fixed interface.
func ComputeOddRank(a *automaton.Automaton, direct Relation) Relation {
	n := a.NumStates
	rel := make(Relation, n)
	for i := range rel {
		rel[i] = append([]bool(nil), direct[i]...)
	}
	for {
		changed := false
		for p := 0; p < n; p++ {
			for q := 0; q < n; q++ {
				if !rel[p][q] {
					continue
				}
				if !stepRefines(a, rel, p, q) {
					rel[p][q] = false
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return rel
}

func stepRefines(a *automaton.Automaton, rel Relation, p, q int) bool {
	for sym := 0; sym < a.NumSymbols; sym++ {
		for _, q2 := range a.Delta(q, sym) {
			ok := false
			for _, p2 := range a.Delta(p, sym) {
				if rel[p2][q2] {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
	}
	return true
}

func allTrue(n int) Relation {
	rel := make(Relation, n)
	for i := range rel {
		rel[i] = make([]bool, n)
		for j := range rel[i] {
			rel[i][j] = true
		}
	}
	return rel
}
