// Package tight builds the rank-annotated core of the Schewe
// construction: tight Schewe macrostates entered from the waiting part's
// cycle-closing macrostates, explored by successor generation under the
// rank cache.
package tight

import (
	"nbacomplement/internal/automaton"
	"nbacomplement/internal/cache"
	"nbacomplement/internal/rankfn"
	"nbacomplement/internal/simulation"
)

// State is a Schewe macrostate <S,O,r,i,tight=true>.
type State struct {
	S *automaton.Set
	O *automaton.Set
	R *rankfn.Rank
	I int
}

// Accepting holds iff O is empty.
func (s *State) Accepting() bool { return s.O.Len() == 0 }

// Key is a canonical identity for deduplication during DFS exploration.
func (s *State) Key() string {
	return s.S.Key() + "#" + s.O.Key() + "#" + s.R.Key() + "#" + itoa(s.I)
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// RejectFunc implements the tight-successor rejection rule for a state q
// in S that maps to the empty set on the symbol read. Baseline and
// reduced are genuinely different algorithms here, not one a bugfix of
// the other.
type RejectFunc func(rankQ int, pendingO bool, reachConsQ int) bool

// BaselineReject is the unoptimised variant: reject if q still carries a
// nonzero rank (an unmet witness obligation), or q is in the pending
// O-set with rank 0 (its even-rank witness can never arrive since q has
// no successor at all).
func BaselineReject(rankQ int, pendingO bool, _ int) bool {
	return rankQ != 0 || pendingO
}

// ReducedReject is the reduced variant: everything BaselineReject
// catches, plus rank-0 states whose static reach-consumption bound is
// still positive.
func ReducedReject(rankQ int, pendingO bool, reachConsQ int) bool {
	return BaselineReject(rankQ, pendingO, reachConsQ) || reachConsQ > 0
}

// Options parameterises tight-successor generation with the pruning
// inputs shared with rank-function enumeration and the top-level
// complementation options.
type Options struct {
	DirRel, OddRel *simulation.BackRelation
	ReachCons      map[int]int
	ReachMaxFor    func(states []int) int
	RankBoundFor   func(states []int) int
	Reject         RejectFunc
	CutPoint       bool
	Eta4           bool
	Cache          *cache.Cache

	// ROMinState and ROMinRank gate Successor's cache-miss enumerator:
	// below either threshold, the plain TightFromConstraint enumeration
	// plus a manual successor-validity/exact-max-rank filter runs
	// instead of the pruned TightSuccFromConstraint path. Zero values
	// mean "always use the optimised enumerator".
	ROMinState int
	ROMinRank  int
}

// Builder generates tight-part initial states and successors.
type Builder struct {
	A        *automaton.Automaton
	Interner *automaton.Interner
	Opts     Options
}

// NewBuilder constructs a Builder. Reject must be non-nil. ReachMaxFor
// may be nil, in which case the reach bound uses the entry ceiling
// (InitialStates) or the parent's max rank (Successor); RankBoundFor is
// not consulted. Cache may be nil to disable caching entirely.
func NewBuilder(a *automaton.Automaton, interner *automaton.Interner, opts Options) *Builder {
	return &Builder{A: a, Interner: interner, Opts: opts}
}

// InitialStates enumerates every tight initial state <S,∅,r,0,true> for
// entry macrostate s under ceiling: one per
// admissible tight rank over S.
func (b *Builder) InitialStates(s *automaton.Set, ceiling int) []*State {
	elems := s.Elems()
	constraints := make([]rankfn.Constraint, len(elems))
	for i, q := range elems {
		constraints[i] = rankfn.BuildConstraint(q, ceiling, b.A.IsAccepting(q))
	}
	reachMax := ceiling
	if b.Opts.ReachMaxFor != nil {
		reachMax = b.Opts.ReachMaxFor(elems)
	}
	enum := rankfn.TightFromConstraint(constraints, b.Opts.DirRel, b.Opts.OddRel, b.Opts.ReachCons, reachMax, b.Opts.CutPoint)
	empty := b.Interner.Intern(nil)
	var out []*State
	for {
		r, ok := enum.Next()
		if !ok {
			break
		}
		out = append(out, &State{S: s, O: empty, R: r, I: 0})
	}
	return out
}

// Successor computes every admissible tight successor of cur on sym
//, consulting the rank cache first when
// eligible.
func (b *Builder) Successor(cur *State, sym int) []*State {
	sElems := cur.S.Elems()

	ceilings := make(map[int]int)
	succOf := make(map[int][]int, len(sElems))
	for _, p := range sElems {
		ps := b.A.Delta(p, sym)
		succOf[p] = ps
		rv, _ := cur.R.Value(p)
		if len(ps) == 0 {
			pendingO := cur.O.Contains(p)
			reachConsP := b.Opts.ReachCons[p]
			if b.Opts.Reject(rv, pendingO, reachConsP) {
				return nil
			}
			continue
		}
		for _, q := range ps {
			if c, has := ceilings[q]; !has || rv < c {
				ceilings[q] = rv
			}
		}
	}
	if len(ceilings) == 0 {
		return nil
	}

	// Decrement ceilings to even on accepting states (step 2).
	for q, c := range ceilings {
		if b.A.IsAccepting(q) && c%2 == 1 {
			ceilings[q] = c - 1
		}
	}

	sPrimeElems := make([]int, 0, len(ceilings))
	for q := range ceilings {
		sPrimeElems = append(sPrimeElems, q)
	}
	sPrime := b.Interner.Intern(sPrimeElems)

	if b.Opts.Eta4 && len(b.A.AcceptingSubset(sPrime.Elems())) == 0 {
		return nil
	}

	parentMaxRank := cur.R.MaxRank()
	reachMax := parentMaxRank
	if b.Opts.ReachMaxFor != nil {
		reachMax = b.Opts.ReachMaxFor(sPrime.Elems())
	}

	key := cache.Key{SetKey: sPrime.Key(), Symbol: sym, MaxRank: parentMaxRank}
	var ranks []*rankfn.Rank
	cacheEligible := b.Opts.Cache != nil && b.Opts.Cache.Eligible(sPrime.Len(), parentMaxRank)
	if cacheEligible {
		if hit, ok := b.Opts.Cache.Lookup(key, cur.R, ceilings); ok {
			ranks = hit
		}
	}
	if ranks == nil {
		constraints := make([]rankfn.Constraint, len(sPrimeElems))
		for i, q := range sPrime.Elems() {
			constraints[i] = rankfn.BuildConstraint(q, ceilings[q], b.A.IsAccepting(q))
		}
		if sPrime.Len() >= b.Opts.ROMinState && parentMaxRank >= b.Opts.ROMinRank {
			enum := rankfn.TightSuccFromConstraint(constraints, b.Opts.DirRel, b.Opts.OddRel, b.Opts.ReachCons, reachMax, b.Opts.CutPoint, cur.R, succOf, parentMaxRank)
			for {
				r, ok := enum.Next()
				if !ok {
					break
				}
				ranks = append(ranks, r)
			}
		} else {
			// Below the reduced-optimisation thresholds: enumerate
			// without succ-validity/exact-max-rank pruning baked in,
			// then filter the same way by hand.
			enum := rankfn.TightFromConstraint(constraints, b.Opts.DirRel, b.Opts.OddRel, b.Opts.ReachCons, reachMax, b.Opts.CutPoint)
			for {
				r, ok := enum.Next()
				if !ok {
					break
				}
				if r.MaxRank() != parentMaxRank || !r.IsSuccValid(cur.R, succOf) {
					continue
				}
				ranks = append(ranks, r)
			}
		}
		if cacheEligible {
			b.Opts.Cache.Store(key, cur.R, ranks)
		}
	}

	out := make([]*State, 0, len(ranks))
	for _, r := range ranks {
		oPrime, iPrime := b.nextO(cur, sPrime, r, sym)
		out = append(out, &State{S: sPrime, O: oPrime, R: r, I: iPrime})
	}
	return out
}

// nextO computes (O', i'), branching on the cutPoint option: with
// cutPoint the breakpoint index i advances through inverse-rank sets;
// without it, O evolves by the odd-rank complement directly and i stays
// 0.
func (b *Builder) nextO(cur *State, sPrime *automaton.Set, r *rankfn.Rank, sym int) (*automaton.Set, int) {
	max := r.MaxRank()
	if b.Opts.CutPoint {
		if cur.O.Len() == 0 {
			iPrime := 0
			if max >= 0 {
				iPrime = (cur.I + 2) % (max + 1)
			}
			return b.Interner.Intern(r.InverseRank(iPrime)), iPrime
		}
		oNext := b.A.DeltaSet(cur.O.Elems(), sym)
		inv := r.InverseRank(cur.I)
		return b.Interner.Intern(intersect(oNext, inv)), cur.I
	}

	odd := make(map[int]bool)
	for _, q := range r.OddStates() {
		odd[q] = true
	}
	var base []int
	if cur.O.Len() == 0 {
		base = sPrime.Elems()
	} else {
		base = b.A.DeltaSet(cur.O.Elems(), sym)
	}
	out := make([]int, 0, len(base))
	for _, q := range base {
		if !odd[q] {
			out = append(out, q)
		}
	}
	return b.Interner.Intern(out), 0
}

func intersect(a, b []int) []int {
	set := make(map[int]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	out := make([]int, 0)
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}
