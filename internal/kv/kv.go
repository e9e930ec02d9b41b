// Package kv implements the Kupferman-Vardi complementation construction:
// a DFS exploration of <S,O,r> macrostates over rank functions bounded by
// 2|Q|, with no tight/waiting split.
package kv

import (
	"container/list"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/rankfn"
	"nbacomplement/internal/simulation"
)

// State is a KV macrostate <S,O,r>.
type State struct {
	S *automaton.Set
	O *automaton.Set
	R *rankfn.Rank
}

// Accepting holds iff O is empty.
func (s *State) Accepting() bool { return s.O.Len() == 0 }

// Key is a canonical identity for DFS deduplication.
func (s *State) Key() string {
	return s.S.Key() + "#" + s.O.Key() + "#" + s.R.Key()
}

// Options parameterises KV exploration with the pruning inputs shared
// with the tight-part builder.
type Options struct {
	DirRel, OddRel *simulation.BackRelation
	ReachCons      map[int]int
	ReachMax       int
}

// Builder generates KV initial states and successors by direct
// enumeration (no caching, no waiting/tight split: this is the
// unoptimised baseline against which the rank-based reductions are
// measured).
type Builder struct {
	A        *automaton.Automaton
	Interner *automaton.Interner
	Opts     Options
}

func NewBuilder(a *automaton.Automaton, interner *automaton.Interner, opts Options) *Builder {
	return &Builder{A: a, Interner: interner, Opts: opts}
}

// InitialStates enumerates every <I,∅,r> with r ranging over all ranks
// (tight or not) bounded by 2|Q|, accepting states taking even values only.
func (b *Builder) InitialStates() []*State {
	init := b.Interner.Intern(b.A.Init)
	ceiling := 2 * b.A.NumStates
	elems := init.Elems()
	constraints := make([]rankfn.Constraint, len(elems))
	for i, q := range elems {
		constraints[i] = rankfn.BuildConstraint(q, ceiling, b.A.IsAccepting(q))
	}
	enum := rankfn.FromConstraint(constraints)
	empty := b.Interner.Intern(nil)
	var out []*State
	for {
		r, ok := enum.Next()
		if !ok {
			break
		}
		out = append(out, &State{S: init, O: empty, R: r})
	}
	return out
}

// Successor computes every admissible KV successor of cur on sym.
func (b *Builder) Successor(cur *State, sym int) []*State {
	sPrimeElems := b.A.DeltaSet(cur.S.Elems(), sym)
	if len(sPrimeElems) == 0 {
		return nil
	}
	sPrime := b.Interner.Intern(sPrimeElems)

	ceilings := make(map[int]int, sPrime.Len())
	for _, q := range sPrime.Elems() {
		best := -1
		for _, p := range cur.S.Elems() {
			ps := b.A.Delta(p, sym)
			if !contains(ps, q) {
				continue
			}
			rv, _ := cur.R.Value(p)
			if best < 0 || rv < best {
				best = rv
			}
		}
		if b.A.IsAccepting(q) && best >= 0 && best%2 == 1 {
			best--
		}
		ceilings[q] = best
	}

	constraints := make([]rankfn.Constraint, sPrime.Len())
	for i, q := range sPrime.Elems() {
		constraints[i] = rankfn.BuildConstraint(q, ceilings[q], b.A.IsAccepting(q))
	}
	enum := rankfn.NewEnumerator(constraints,
		rankfn.DirectSimPrune(b.Opts.DirRel),
		rankfn.DirectSimPrune(b.Opts.OddRel),
		rankfn.ReachBoundPrune(b.Opts.ReachCons, b.Opts.ReachMax),
	)

	var out []*State
	for {
		r, ok := enum.Next()
		if !ok {
			break
		}
		oPrime := b.nextO(cur, sPrime, r, sym)
		out = append(out, &State{S: sPrime, O: oPrime, R: r})
	}
	return out
}

// nextO computes O': S' when O was empty, otherwise delta(O,a), with
// odd-ranked states under r' removed either way.
func (b *Builder) nextO(cur *State, sPrime *automaton.Set, r *rankfn.Rank, sym int) *automaton.Set {
	var base []int
	if cur.O.Len() == 0 {
		base = sPrime.Elems()
	} else {
		base = b.A.DeltaSet(cur.O.Elems(), sym)
	}
	odd := make(map[int]bool, len(r.OddStates()))
	for _, q := range r.OddStates() {
		odd[q] = true
	}
	out := make([]int, 0, len(base))
	for _, q := range base {
		if !odd[q] {
			out = append(out, q)
		}
	}
	return b.Interner.Intern(out)
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Explore runs a DFS from every initial state, deduplicating on Key,
// recording every transition. The result automaton is itself nondeterministic: every
// admissible successor rank on a symbol becomes a separate outgoing
// transition, since dropping all but one would discard witnesses the
// complement needs for acceptance. It returns the discovered states in
// first-visit order and a transition table keyed by (state key, symbol)
// -> successor keys.
type Result struct {
	States []*State
	Index  map[string]int
	Trans  map[string][][]string // state key -> per-symbol successor key list
}

func (b *Builder) Explore() *Result {
	res := &Result{Index: make(map[string]int), Trans: make(map[string][][]string)}
	stack := list.New()
	for _, s := range b.InitialStates() {
		if _, seen := res.Index[s.Key()]; !seen {
			res.Index[s.Key()] = len(res.States)
			res.States = append(res.States, s)
			stack.PushBack(s)
		}
	}
	for stack.Len() > 0 {
		back := stack.Back()
		cur := back.Value.(*State)
		stack.Remove(back)

		row := make([][]string, b.A.NumSymbols)
		for sym := 0; sym < b.A.NumSymbols; sym++ {
			succs := b.Successor(cur, sym)
			keys := make([]string, 0, len(succs))
			for _, s := range succs {
				keys = append(keys, s.Key())
				if _, seen := res.Index[s.Key()]; !seen {
					res.Index[s.Key()] = len(res.States)
					res.States = append(res.States, s)
					stack.PushBack(s)
				}
			}
			row[sym] = keys
		}
		res.Trans[cur.Key()] = row
	}
	return res
}
