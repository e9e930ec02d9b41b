// Package simulation adapts a precomputed binary simulation relation on
// automaton states into the back-reference structure the rank enumerator
// prunes with. This is an external collaborator: the core only ever
// consumes a Relation / *BackRelation, never recomputes one.
package simulation

// Relation is a binary "x simulates y" preorder over dense state indices:
// Relation[x][y] is true iff x simulates y (x >= y), so rank(x) >= rank(y)
// is a sound constraint whenever Relation[x][y] holds.
type Relation [][]bool

// NumStates is the dimension of the (square) relation.
func (r Relation) NumStates() int { return len(r) }

// BackRelation is a read-only, per-state index over a Relation: for each
// state q it holds the sorted list of states that simulate q (impose a
// lower bound on rank(q)) and the sorted list of states q simulates
// (impose an upper bound on rank(q)). Building it once turns every prune
// check in the rank enumerator into a slice scan instead of a row scan
// of the full n x n relation.
type BackRelation struct {
	simulators [][]int // simulators[q]: p such that p simulates q
	simulatees [][]int // simulatees[q]: p such that q simulates p
}

// Build derives a BackRelation from rel. rel must be square.
func Build(rel Relation) *BackRelation {
	n := len(rel)
	br := &BackRelation{
		simulators: make([][]int, n),
		simulatees: make([][]int, n),
	}
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			if rel[p][q] {
				br.simulators[q] = append(br.simulators[q], p)
				br.simulatees[p] = append(br.simulatees[p], q)
			}
		}
	}
	return br
}

// Simulators returns the states known to simulate q, i.e. every p in the
// result requires rank(p) >= rank(q).
func (br *BackRelation) Simulators(q int) []int { return br.simulators[q] }

// Simulatees returns the states q is known to simulate, i.e. every p in
// the result requires rank(q) >= rank(p).
func (br *BackRelation) Simulatees(q int) []int { return br.simulatees[q] }

// LowerBound returns, given a partial rank assignment (state -> value,
// only entries already decided are present), the tightest lower bound on
// rank(q): q simulates every state in Simulatees(q), so rank(q) must be
// at least the largest already-assigned rank among them.
func (br *BackRelation) LowerBound(q int, assigned map[int]int) (int, bool) {
	best, ok := 0, false
	for _, p := range br.simulatees[q] {
		if v, has := assigned[p]; has {
			if !ok || v > best {
				best = v
				ok = true
			}
		}
	}
	return best, ok
}

// UpperBound is the dual of LowerBound: every state in Simulators(q)
// simulates q, so rank(q) must be at most the smallest already-assigned
// rank among them.
func (br *BackRelation) UpperBound(q int, assigned map[int]int) (int, bool) {
	best, ok := 0, false
	for _, p := range br.simulators[q] {
		if v, has := assigned[p]; has {
			if !ok || v < best {
				best = v
				ok = true
			}
		}
	}
	return best, ok
}
