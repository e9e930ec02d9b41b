// Package graph is the external graph-utility collaborator: SCC
// decomposition and subset-construction reachability bounds, consumed by
// internal/analysis, internal/waiting and the constructions, but
// otherwise independent of rank semantics.
package graph

import (
	"container/list"

	"nbacomplement/internal/automaton"
)

// AdjGraph is the minimal adjacency view ComputeSCC needs. Both the
// input automaton (states 0..n-1, edges ignoring symbol) and a waiting
// part's macrostate graph (macrostates indexed 0..len(order)-1) satisfy
// it, so the same SCC code serves both the input automaton's component
// decomposition and cycle-closing-macrostate detection over the waiting
// part's macrostate graph.
type AdjGraph interface {
	NumNodes() int
	Successors(node int) []int
}

// AutomatonGraph adapts *automaton.Automaton to AdjGraph, ignoring which
// symbol labels an edge.
type AutomatonGraph struct{ A *automaton.Automaton }

func (g AutomatonGraph) NumNodes() int            { return g.A.NumStates }
func (g AutomatonGraph) Successors(q int) []int   { return g.A.Successors(q) }

// SCCs is the result of decomposing a graph into strongly connected
// components.
type SCCs struct {
	Components  [][]int // component id -> member nodes
	ComponentOf []int   // node -> component id
	Order       []int   // component ids, source-SCC first (topological)
}

type dfsFrame struct {
	node  int
	succs []int
	idx   int
}

// ComputeSCC runs Kosaraju's algorithm: a postorder DFS on the forward
// graph followed by a DFS on the reverse graph in decreasing finish-time
// order. The explicit-stack DFS follows the same shape as an
// epsilonClosure traversal over an NFA subset graph.
func ComputeSCC(g AdjGraph) *SCCs {
	n := g.NumNodes()
	visited := make([]bool, n)
	order := make([]int, 0, n)

	for s := 0; s < n; s++ {
		if visited[s] {
			continue
		}
		visited[s] = true
		stack := list.New()
		stack.PushBack(&dfsFrame{node: s, succs: g.Successors(s)})
		for stack.Len() > 0 {
			top := stack.Back().Value.(*dfsFrame)
			if top.idx < len(top.succs) {
				nxt := top.succs[top.idx]
				top.idx++
				if !visited[nxt] {
					visited[nxt] = true
					stack.PushBack(&dfsFrame{node: nxt, succs: g.Successors(nxt)})
				}
				continue
			}
			order = append(order, top.node)
			stack.Remove(stack.Back())
		}
	}

	rev := make([][]int, n)
	for q := 0; q < n; q++ {
		for _, q2 := range g.Successors(q) {
			rev[q2] = append(rev[q2], q)
		}
	}

	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	var components [][]int
	var topo []int
	for i := len(order) - 1; i >= 0; i-- {
		s := order[i]
		if comp[s] != -1 {
			continue
		}
		id := len(components)
		var members []int
		stack := []int{s}
		comp[s] = id
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, cur)
			for _, p := range rev[cur] {
				if comp[p] == -1 {
					comp[p] = id
					stack = append(stack, p)
				}
			}
		}
		components = append(components, members)
		topo = append(topo, id)
	}

	return &SCCs{Components: components, ComponentOf: comp, Order: topo}
}

// HasCycle reports whether the SCC containing q has an internal edge,
// i.e. q lies on some cycle reachable within its own component (either
// a self-loop or a component with more than one member).
func (s *SCCs) HasCycle(g AdjGraph, q int) bool {
	id := s.ComponentOf[q]
	if len(s.Components[id]) > 1 {
		return true
	}
	for _, q2 := range g.Successors(q) {
		if q2 == q {
			return true
		}
	}
	return false
}
