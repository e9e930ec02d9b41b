// Package driver orchestrates the KV, Schewe and Schewe-reduced
// complementation variants: simulation computation, waiting/tight-part
// construction, and final automaton assembly.
package driver

import (
	"time"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/graph"
	"nbacomplement/internal/kv"
	"nbacomplement/internal/options"
	"nbacomplement/internal/schewe"
	"nbacomplement/internal/simulation"
)

// Stats is the user-visible summary printed on success: counts of
// generated states and transitions, and elapsed time.
type Stats struct {
	States      int
	Transitions int
	Elapsed     time.Duration
}

// keyedState is the minimal shape both kv.State and schewe.Macrostate
// satisfy, letting assemble build the output automaton without knowing
// which variant produced it.
type keyedState interface {
	Key() string
	Accepting() bool
}

// Validate rejects structurally unsupported input before construction
// begins.
func Validate(a *automaton.Automaton) error {
	if a.NumStates == 0 {
		return unsupported("automaton has no states")
	}
	if a.NumSymbols == 0 {
		return unsupported("automaton has no alphabet symbols")
	}
	if len(a.Init) == 0 {
		return unsupported("automaton has no initial state")
	}
	for _, q := range a.Init {
		if q < 0 || q >= a.NumStates {
			invariantViolation("initial state index out of range")
		}
	}
	return nil
}

// Complement runs the full construction sequence: build simulations,
// dispatch to the selected variant, and assemble its macrostate graph
// into an output automaton over the same alphabet.
func Complement(a *automaton.Automaton, opts options.Options) (*automaton.Automaton, Stats, error) {
	start := time.Now()
	if err := Validate(a); err != nil {
		return nil, Stats{}, err
	}

	direct := simulation.ComputeDirect(a)
	odd := simulation.ComputeOddRank(a, direct)
	dirRel := simulation.Build(direct)
	oddRel := simulation.Build(odd)
	interner := automaton.NewInterner()

	var keys []string
	var accept []bool
	var index map[string]int
	var trans map[string][][]string
	var initKeys []string

	switch opts.Mode {
	case options.ModeKV, "":
		reachCons := minReachMap(a)
		b := kv.NewBuilder(a, interner, kv.Options{
			DirRel:    dirRel,
			OddRel:    oddRel,
			ReachCons: reachCons,
			ReachMax:  2 * a.NumStates,
		})
		inits := b.InitialStates()
		res := b.Explore()
		keys, accept, index, trans = flattenKV(res)
		for _, s := range inits {
			initKeys = append(initKeys, s.Key())
		}

	case options.ModeSchewe:
		res := schewe.BuildBaseline(a, interner, dirRel, oddRel)
		keys, accept, index, trans = flattenSchewe(res)
		initKeys = res.InitKey

	case options.ModeScheweReduced:
		res := schewe.BuildReduced(a, interner, dirRel, oddRel, opts)
		keys, accept, index, trans = flattenSchewe(res)
		initKeys = res.InitKey

	default:
		return nil, Stats{}, unsupported("unknown mode " + string(opts.Mode))
	}

	out := assemble(a, keys, accept, index, trans, initKeys)
	if out.NumStates == 0 {
		invariantViolation("construction produced zero states")
	}

	numTrans := 0
	for _, row := range trans {
		for _, succs := range row {
			numTrans += len(succs)
		}
	}

	return out, Stats{States: len(keys), Transitions: numTrans, Elapsed: time.Since(start)}, nil
}

func flattenKV(res *kv.Result) (keys []string, accept []bool, index map[string]int, trans map[string][][]string) {
	states := make([]keyedState, len(res.States))
	for i, s := range res.States {
		states[i] = s
	}
	keys, accept = flatten(states)
	return keys, accept, res.Index, res.Trans
}

func flattenSchewe(res *schewe.Result) (keys []string, accept []bool, index map[string]int, trans map[string][][]string) {
	states := make([]keyedState, len(res.States))
	for i, s := range res.States {
		states[i] = s
	}
	keys, accept = flatten(states)
	return keys, accept, res.Index, res.Trans
}

func flatten(states []keyedState) (keys []string, accept []bool) {
	keys = make([]string, len(states))
	accept = make([]bool, len(states))
	for i, s := range states {
		keys[i] = s.Key()
		accept[i] = s.Accepting()
	}
	return keys, accept
}

// assemble builds the final *automaton.Automaton from an explored
// macrostate graph, renumbering macrostate keys to dense indices in
// discovery order.
func assemble(a *automaton.Automaton, keys []string, accept []bool, index map[string]int, trans map[string][][]string, initKeys []string) *automaton.Automaton {
	out := automaton.New(len(keys), a.NumSymbols)
	for i, acc := range accept {
		out.SetAccept(i, acc)
	}
	for key, row := range trans {
		srcIdx, ok := index[key]
		if !ok {
			continue
		}
		for sym, succs := range row {
			for _, succKey := range succs {
				if dstIdx, ok := index[succKey]; ok {
					out.AddTransition(srcIdx, sym, dstIdx)
				}
			}
		}
	}
	var init []int
	for _, k := range initKeys {
		if idx, ok := index[k]; ok {
			init = append(init, idx)
		}
	}
	out.SetInit(init)
	return out
}

func minReachMap(a *automaton.Automaton) map[int]int {
	out := make(map[int]int, a.NumStates)
	for q := 0; q < a.NumStates; q++ {
		out[q] = graph.MinReach(a, q)
	}
	return out
}
