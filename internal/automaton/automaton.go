// Package automaton holds the immutable view of an input Büchi automaton
// that the complementation core reads from. States are dense integers
// 0..n-1 and symbols are dense integers 0..k-1; a human-facing alias table
// is kept only for formatting, never consulted by the core.
package automaton

import "sort"

// Automaton is a nondeterministic Büchi automaton A = (Q, Sigma, Delta, I, F).
// Q is implicit as {0, ..., NumStates-1}; Sigma is implicit as
// {0, ..., NumSymbols-1}. Delta is total over (state, symbol) pairs that
// actually occur; a missing entry means the empty successor set.
type Automaton struct {
	NumStates  int
	NumSymbols int
	Init       []int
	Accept     []bool // len == NumStates
	trans      [][][]int // trans[state][symbol] -> sorted successor states

	StateNames  []string // len == NumStates, for formatting only
	SymbolNames []string // len == NumSymbols, for formatting only
}

// New builds an automaton with n states and k symbols, all transitions
// empty. Callers fill it in with AddTransition / SetAccept / SetInit.
func New(n, k int) *Automaton {
	trans := make([][][]int, n)
	for i := range trans {
		trans[i] = make([][]int, k)
	}
	return &Automaton{
		NumStates:  n,
		NumSymbols: k,
		Accept:     make([]bool, n),
		trans:      trans,
	}
}

// AddTransition adds dst to delta(src, sym), keeping the successor list
// sorted and deduplicated.
func (a *Automaton) AddTransition(src, sym, dst int) {
	list := a.trans[src][sym]
	i := sort.SearchInts(list, dst)
	if i < len(list) && list[i] == dst {
		return
	}
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = dst
	a.trans[src][sym] = list
}

// SetAccept marks q as accepting.
func (a *Automaton) SetAccept(q int, accept bool) { a.Accept[q] = accept }

// SetInit replaces the initial-state set, sorted and deduplicated.
func (a *Automaton) SetInit(states []int) {
	a.Init = uniqueSorted(states)
}

// Delta returns the (sorted, shared) successor slice of q on sym. Callers
// must not mutate the result.
func (a *Automaton) Delta(q, sym int) []int {
	return a.trans[q][sym]
}

// DeltaSet extends Delta to a set of states: union of Delta(q, sym) over
// q in qs, sorted and deduplicated.
func (a *Automaton) DeltaSet(qs []int, sym int) []int {
	seen := make(map[int]struct{})
	for _, q := range qs {
		for _, q2 := range a.trans[q][sym] {
			seen[q2] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for q := range seen {
		out = append(out, q)
	}
	sort.Ints(out)
	return out
}

// Successors returns the union of delta(q, a) over every symbol a,
// sorted and deduplicated. Used by graph utilities that reason about
// reachability/SCC structure independent of which symbol is read.
func (a *Automaton) Successors(q int) []int {
	seen := make(map[int]struct{})
	for sym := 0; sym < a.NumSymbols; sym++ {
		for _, q2 := range a.trans[q][sym] {
			seen[q2] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for q2 := range seen {
		out = append(out, q2)
	}
	sort.Ints(out)
	return out
}

// IsAccepting reports whether q is in F.
func (a *Automaton) IsAccepting(q int) bool { return a.Accept[q] }

// AcceptingSubset returns the accepting states within qs, sorted.
func (a *Automaton) AcceptingSubset(qs []int) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		if a.Accept[q] {
			out = append(out, q)
		}
	}
	return out
}

func uniqueSorted(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	j := 0
	for i, v := range out {
		if i == 0 || out[i-1] != v {
			out[j] = v
			j++
		}
	}
	return out[:j]
}
