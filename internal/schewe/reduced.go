package schewe

import (
	"nbacomplement/internal/analysis"
	"nbacomplement/internal/automaton"
	"nbacomplement/internal/cache"
	"nbacomplement/internal/graph"
	"nbacomplement/internal/options"
	"nbacomplement/internal/simulation"
	"nbacomplement/internal/tight"
	"nbacomplement/internal/waiting"
)

// skipGraph adapts a waiting.Part plus a fixed skip predicate to
// analysis.WaitingGraph, since WaitingSuccessors takes the predicate as
// an argument while the interface's Successors does not.
type skipGraph struct {
	p    *waiting.Part
	skip func(states []int, sym int) bool
}

func (g skipGraph) Macrostates() []string          { return g.p.Macrostates() }
func (g skipGraph) Successors(key string) []string { return g.p.WaitingSuccessors(key, g.skip) }

// BuildReduced runs the optimised rank-based construction: rank-bound
// propagation (optionally refined by elevator classification),
// reachability ceilings, a rank cache, singleton non-accepting self-loop
// sinks, and optional delayed tight entry scored over
// opts.Weight/opts.Version.
func BuildReduced(a *automaton.Automaton, interner *automaton.Interner, dirRel, oddRel *simulation.BackRelation, opts options.Options) *Result {
	wp := waiting.Build(a, interner)
	skip := func(states []int, sym int) bool { return analysis.IsAcceptingSelfLoop(a, states, sym) }
	cycleClosing := wp.CycleClosing(skip)

	semidet := opts.SemidetOpt && analysis.IsSemideterministic(a)

	minReachPerState := make(map[int]int, a.NumStates)
	for q := 0; q < a.NumStates; q++ {
		minReachPerState[q] = graph.MinReach(a, q)
	}

	initialBound := make(map[string]int, len(wp.Order))
	for _, s := range wp.Order {
		elems := s.Elems()
		maxReach := graph.MaxReach(a, elems, graph.SkipSelfLoop(skip2(skip)))
		initialBound[s.Key()] = analysis.RankBound(oddRel, elems, maxReach, minReachPerState, semidet)
	}
	rankBound := analysis.PropagateRankBound(skipGraph{p: wp, skip: skip}, initialBound)

	if opts.ElevatorRank {
		sccs := graph.ComputeSCC(graph.AutomatonGraph{A: a})
		classes := make([]analysis.SCCClass, len(sccs.Components))
		for i, members := range sccs.Components {
			classes[i] = analysis.ClassifySCC(a, members)
		}
		succ := componentSuccessors(a, sccs)
		elev := analysis.Classify(sccs.Components, sccs.Order, classes, succ)
		for _, s := range wp.Order {
			if b, ok := elev.BoundFor(s.Elems()); ok && b < rankBound[s.Key()] {
				rankBound[s.Key()] = b
			}
		}
	}

	sinkSym := make(map[string]int)
	for _, s := range wp.Order {
		if sym, ok := analysis.IsSingletonNonAcceptingSelfLoop(a, s.Elems()); ok {
			sinkSym[s.Key()] = sym
		}
	}

	var permitted func(waitingKey string, sym int) bool
	if opts.Delay {
		weight := opts.Weight
		if weight == 0 {
			weight = 0.5
		}
		allowed := make(map[string]map[int]bool, len(wp.Order))
		for _, s := range wp.Order {
			allowed[s.Key()] = permittedEntrySymbols(a, s, rankBound[s.Key()], weight, opts.Version)
		}
		permitted = func(waitingKey string, sym int) bool { return allowed[waitingKey][sym] }
	}

	var rc *cache.Cache
	if opts.SuccEmptyCheck {
		maxState, maxRank := opts.CacheMaxState, opts.CacheMaxRank
		if maxState == 0 {
			maxState = 8
		}
		if maxRank == 0 {
			maxRank = 16
		}
		rc = cache.New(maxState, maxRank)
	}

	spec := entrySpec{
		cycleClosing: cycleClosing,
		permitted:    permitted,
		sinkSym:      sinkSym,
		ceilingFor: func(s *automaton.Set) int {
			if b, ok := rankBound[s.Key()]; ok {
				return b
			}
			return 2*s.Len() - 1
		},
		tightOpts: tight.Options{
			DirRel:    dirRel,
			OddRel:    oddRel,
			ReachCons: minReachPerState,
			ReachMaxFor: func(states []int) int {
				return graph.MaxReach(a, states, graph.SkipSelfLoop(skip2(skip)))
			},
			Reject:     tight.ReducedReject,
			CutPoint:   opts.CutPoint,
			Eta4:       opts.Eta4,
			Cache:      rc,
			ROMinState: opts.ROMinState,
			ROMinRank:  opts.ROMinRank,
		},
	}
	return buildCore(a, interner, spec)
}

// componentSuccessors projects the automaton's state-level edges onto
// SCC ids, giving analysis.Classify the condensation adjacency it needs.
func componentSuccessors(a *automaton.Automaton, sccs *graph.SCCs) [][]int {
	out := make([][]int, len(sccs.Components))
	seen := make([]map[int]bool, len(sccs.Components))
	for i := range seen {
		seen[i] = make(map[int]bool)
	}
	for q := 0; q < a.NumStates; q++ {
		from := sccs.ComponentOf[q]
		for _, q2 := range a.Successors(q) {
			to := sccs.ComponentOf[q2]
			if to == from || seen[from][to] {
				continue
			}
			seen[from][to] = true
			out[from] = append(out[from], to)
		}
	}
	return out
}

// skip2 adapts a waiting-part self-loop skip predicate (states, sym) to
// graph.SkipSelfLoop's (current, sym, next) shape: the self-loop
// condition only ever depends on the current frontier and symbol.
func skip2(skip func(states []int, sym int) bool) func(current []int, sym int, next []int) bool {
	return func(current []int, sym int, _ []int) bool { return skip(current, sym) }
}
