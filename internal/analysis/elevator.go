package analysis

import "nbacomplement/internal/automaton"

// SCCClass classifies one SCC for elevator analysis.
type SCCClass int

const (
	ClassD SCCClass = iota // deterministic, contains an accepting state
	ClassND                // nondeterministic, no accepting state
	ClassBoth               // deterministic, no accepting state
	ClassBad                // everything else: nondeterministic and accepting
)

// ClassifySCC determines the class of one SCC's member states. Determinism
// is checked against successors within the same SCC only — edges leaving
// the component are a different component's concern.
func ClassifySCC(a *automaton.Automaton, members []int) SCCClass {
	inSCC := make(map[int]bool, len(members))
	for _, q := range members {
		inSCC[q] = true
	}
	det := true
	hasAccept := false
	for _, q := range members {
		if a.IsAccepting(q) {
			hasAccept = true
		}
		for sym := 0; sym < a.NumSymbols; sym++ {
			count := 0
			for _, q2 := range a.Delta(q, sym) {
				if inSCC[q2] {
					count++
				}
			}
			if count > 1 {
				det = false
			}
		}
	}
	switch {
	case det && hasAccept:
		return ClassD
	case !det && !hasAccept:
		return ClassND
	case det && !hasAccept:
		return ClassBoth
	default:
		return ClassBad
	}
}

// Elevator is the outcome of elevator-SCC analysis: a partition of
// states into ranked, BAD-free groups, plus the assigned rank per group.
type Elevator struct {
	GroupOf map[int]int // state -> group id, absent if the state's SCC is BAD
	Rank    map[int]int // group id -> assigned rank
}

// MaxRankOf returns the elevator rank of state q and whether q belongs to
// a classified (non-BAD) group at all.
func (e *Elevator) MaxRankOf(q int) (int, bool) {
	g, ok := e.GroupOf[q]
	if !ok {
		return 0, false
	}
	r, ok := e.Rank[g]
	return r, ok
}

// BoundFor returns, for a set of states all belonging to the same
// elevator partition, the max rank over them — used by the driver to
// refine rankBound(S) for waiting macrostates fully covered by the
// elevator classification.
func (e *Elevator) BoundFor(states []int) (int, bool) {
	max := -1
	for _, q := range states {
		r, ok := e.MaxRankOf(q)
		if !ok {
			return 0, false
		}
		if r > max {
			max = r
		}
	}
	if max < 0 {
		return 0, false
	}
	return max, true
}

// Classify runs the full elevator analysis: per-SCC classification,
// BAD-propagation backward over predecessors in the condensation graph,
// merging of adjacent non-BAD components per the D/ND adjacency rule,
// and bottom-up rank assignment (even for D-partitions, odd for
// ND-partitions, strictly increasing from the sink end).
//
// order must list SCC ids source-first (as produced by graph.ComputeSCC);
// classes[i] is the class of components[i]; succ[i] lists the ids of
// components with at least one edge from components[i].
func Classify(components [][]int, order []int, classes []SCCClass, succ [][]int) *Elevator {
	n := len(components)
	bad := make([]bool, n)
	for i, c := range classes {
		if c == ClassBad {
			bad[i] = true
		}
	}
	// BAD propagates backward: process sink-to-source (reverse of
	// order, which is source-first) so every successor has already
	// been resolved when we look at it.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if bad[id] {
			continue
		}
		for _, s := range succ[id] {
			if bad[s] {
				bad[id] = true
				break
			}
		}
	}

	// Union-find merge of adjacent non-BAD components per the
	// ND/BOTH/D adjacency rules. Two adjacent components merge when
	// their classes combine to a single class under the documented
	// table; BOTH participates in either merge, matching its name.
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	merge := func(a, b int) { parent[find(a)] = find(b) }

	mergedClass := make([]SCCClass, n)
	copy(mergedClass, classes)

	for i := 0; i < n; i++ {
		if bad[i] {
			continue
		}
		for _, j := range succ[i] {
			if bad[j] || j == i {
				continue
			}
			ci, cj := mergedClass[find(i)], mergedClass[find(j)]
			switch {
			case ci == ClassND && cj == ClassND:
				merge(i, j)
				mergedClass[find(i)] = ClassND
			case (ci == ClassBoth && cj == ClassND) || (ci == ClassND && cj == ClassBoth):
				merge(i, j)
				mergedClass[find(i)] = ClassND
			case ci == ClassD && cj == ClassD:
				merge(i, j)
				mergedClass[find(i)] = ClassD
			case (ci == ClassBoth && cj == ClassD) || (ci == ClassD && cj == ClassBoth):
				merge(i, j)
				mergedClass[find(i)] = ClassD
			}
		}
	}

	// Collect final groups and assign bottom-up, strictly increasing
	// ranks: even for D groups, odd for ND groups. Iterate sink-first
	// (reverse of source-first order) and bump the running counter each
	// time the parity needed doesn't match, matching "even rank to
	// D-partitions, odd to ND-partitions, strictly increasing".
	groupID := make(map[int]int)
	for i := 0; i < n; i++ {
		groupID[i] = find(i)
	}
	groupOf := make(map[int]int)
	for compID, members := range components {
		if bad[compID] {
			continue
		}
		g := groupID[compID]
		for _, q := range members {
			groupOf[q] = g
		}
	}

	rankOf := make(map[int]int)
	next := 0
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if bad[id] {
			continue
		}
		g := groupID[id]
		if _, done := rankOf[g]; done {
			continue
		}
		cls := mergedClass[g]
		if cls == ClassBoth {
			cls = ClassD
		}
		want := next
		if cls == ClassD && want%2 != 0 {
			want++
		}
		if cls == ClassND && want%2 == 0 {
			want++
		}
		rankOf[g] = want
		next = want + 1
	}

	return &Elevator{GroupOf: groupOf, Rank: rankOf}
}
