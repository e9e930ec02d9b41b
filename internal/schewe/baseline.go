package schewe

import (
	"nbacomplement/internal/analysis"
	"nbacomplement/internal/automaton"
	"nbacomplement/internal/simulation"
	"nbacomplement/internal/tight"
	"nbacomplement/internal/waiting"
)

// BuildBaseline runs the unoptimised rank-based construction:
// cycle-closing entry (ignoring accepting self-loops per the waiting
// part's own definition), tight successors under the baseline reject
// condition, no rank cache, no reachability ceilings, no elevator
// refinement, no delayed entry.
func BuildBaseline(a *automaton.Automaton, interner *automaton.Interner, dirRel, oddRel *simulation.BackRelation) *Result {
	wp := waiting.Build(a, interner)
	skip := func(states []int, sym int) bool { return analysis.IsAcceptingSelfLoop(a, states, sym) }
	cycleClosing := wp.CycleClosing(skip)

	spec := entrySpec{
		cycleClosing: cycleClosing,
		ceilingFor: func(s *automaton.Set) int {
			// Ranks are bounded by 2|Q|; a tight rank over S needs at
			// most 2|S|-1 to admit every odd value up to |S| pairs,
			// which is tighter but always sufficient since S <= Q.
			n := s.Len()
			if n == 0 {
				return -1
			}
			return 2*n - 1
		},
		tightOpts: tight.Options{
			DirRel:   dirRel,
			OddRel:   oddRel,
			Reject:   tight.BaselineReject,
			CutPoint: false,
		},
	}
	return buildCore(a, interner, spec)
}
