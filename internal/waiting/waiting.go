// Package waiting builds the non-tight prefix of the complement
// automaton: the ordinary reachable-powerset subset construction that
// feeds cycle-closing macrostates into the tight part.
package waiting

import (
	"nbacomplement/internal/automaton"
	"nbacomplement/internal/graph"
)

// Part is the waiting part: every macrostate is a plain subset of Q
// (tight = false in rank-based macrostate terms), reached from I by
// ordinary subset-construction transitions.
type Part struct {
	Interner *automaton.Interner
	Order    []*automaton.Set            // discovery order; Order[0] is I
	indexOf  map[string]int              // set key -> index into Order
	Trans    map[string][]*automaton.Set // set key -> per-symbol successor (nil entry = no transition)
}

// Build explores delta(S,a) breadth-first from I, a subset-construction
// BFS over macrostates rather than raw NFA-state subsets.
func Build(a *automaton.Automaton, interner *automaton.Interner) *Part {
	init := interner.Intern(a.Init)
	order := []*automaton.Set{init}
	indexOf := map[string]int{init.Key(): 0}
	trans := make(map[string][]*automaton.Set)

	for i := 0; i < len(order); i++ {
		cur := order[i]
		row := make([]*automaton.Set, a.NumSymbols)
		for sym := 0; sym < a.NumSymbols; sym++ {
			next := a.DeltaSet(cur.Elems(), sym)
			if len(next) == 0 {
				continue
			}
			s := interner.Intern(next)
			row[sym] = s
			if _, seen := indexOf[s.Key()]; !seen {
				indexOf[s.Key()] = len(order)
				order = append(order, s)
			}
		}
		trans[cur.Key()] = row
	}

	return &Part{Interner: interner, Order: order, indexOf: indexOf, Trans: trans}
}

// NumNodes / Successors implement graph.AdjGraph over macrostate
// indices, so the waiting part's own cycle structure can reuse
// graph.ComputeSCC.
func (p *Part) NumNodes() int { return len(p.Order) }

func (p *Part) Successors(idx int) []int {
	row := p.Trans[p.Order[idx].Key()]
	out := make([]int, 0, len(row))
	seen := map[int]bool{}
	for _, s := range row {
		if s == nil {
			continue
		}
		j := p.indexOf[s.Key()]
		if !seen[j] {
			seen[j] = true
			out = append(out, j)
		}
	}
	return out
}

// IndexOf returns the discovery index of a macrostate key.
func (p *Part) IndexOf(key string) (int, bool) {
	i, ok := p.indexOf[key]
	return i, ok
}

// Macrostates implements analysis.WaitingGraph: every reachable
// macrostate key.
func (p *Part) Macrostates() []string {
	out := make([]string, len(p.Order))
	for i, s := range p.Order {
		out[i] = s.Key()
	}
	return out
}

// WaitingSuccessors implements analysis.WaitingGraph: successor keys for
// a macrostate, excluding symbols skip classifies as an accepting
// self-loop.
func (p *Part) WaitingSuccessors(key string, skip func(states []int, sym int) bool) []string {
	row := p.Trans[key]
	var cur *automaton.Set
	if i, ok := p.indexOf[key]; ok {
		cur = p.Order[i]
	}
	out := make([]string, 0, len(row))
	for sym, s := range row {
		if s == nil {
			continue
		}
		if skip != nil && cur != nil && skip(cur.Elems(), sym) {
			continue
		}
		out = append(out, s.Key())
	}
	return out
}

// filteredGraph is the waiting part's macrostate graph with edges skip
// classifies as accepting self-loops removed, so cycle-closing detection
// ignores accepting self-loops.
type filteredGraph struct {
	p    *Part
	skip func(states []int, sym int) bool
}

func (f filteredGraph) NumNodes() int { return f.p.NumNodes() }

func (f filteredGraph) Successors(idx int) []int {
	key := f.p.Order[idx].Key()
	keys := f.p.WaitingSuccessors(key, f.skip)
	out := make([]int, 0, len(keys))
	for _, k := range keys {
		if j, ok := f.p.indexOf[k]; ok {
			out = append(out, j)
		}
	}
	return out
}

// CycleClosing returns the set of macrostate keys lying on a cycle of
// the waiting part's own transition graph, ignoring edges skip marks as
// accepting self-loops.
func (p *Part) CycleClosing(skip func(states []int, sym int) bool) map[string]bool {
	g := filteredGraph{p: p, skip: skip}
	sccs := graph.ComputeSCC(g)
	out := make(map[string]bool)
	for idx := range p.Order {
		if sccs.HasCycle(g, idx) {
			out[p.Order[idx].Key()] = true
		}
	}
	return out
}
