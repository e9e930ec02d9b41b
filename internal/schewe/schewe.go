// Package schewe implements the rank-based complementation construction
// in both its unoptimised form (baseline, in baseline.go) and its
// reduced form (reduced.go): a two-part waiting/tight construction
// sharing the core exploration engine in this file.
package schewe

import (
	"container/list"
	"strconv"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/tight"
	"nbacomplement/internal/waiting"
)

// Macrostate is the shared acceptance/identity interface used instead of
// a boolean "tight" flag masquerading as a type discriminator:
// WaitingState and TightMacro are the two tagged variants.
type Macrostate interface {
	Key() string
	Accepting() bool
}

// WaitingState is a non-tight Schewe macrostate: O = ∅, r empty, i = 0
// implicitly.
type WaitingState struct {
	S *automaton.Set
}

func (w *WaitingState) Key() string     { return "W#" + w.S.Key() }
func (w *WaitingState) Accepting() bool { return false }

// TightMacro adapts a *tight.State to the Macrostate interface, tagging
// its key so it can never collide with a WaitingState's key.
type TightMacro struct {
	*tight.State
}

func (t *TightMacro) Key() string { return "T#" + t.State.Key() }

// SinkState is the dedicated accepting sink installed in place of a
// singleton non-accepting self-loop macrostate: it
// accepts exactly the omega-words that loop forever on Sym, so its only
// transition is a self-loop on Sym.
type SinkState struct {
	Sym int
}

func (s *SinkState) Key() string     { return "SINK#" + strconv.Itoa(s.Sym) }
func (s *SinkState) Accepting() bool { return true }

// Result is the explored macrostate graph, ready for driver assembly.
type Result struct {
	States  []Macrostate
	Index   map[string]int
	Trans   map[string][][]string // state key -> per-symbol successor key list
	InitKey []string
}

// predEdge is one waiting-part predecessor edge: srcKey --sym--> (the
// target macrostate this map entry is keyed by).
type predEdge struct {
	srcKey string
	sym    int
}

// predecessors inverts a waiting part's transition table: for each
// target macrostate key, the list of predecessor edges reaching it
// ("connect from every waiting predecessor of S on the same symbol").
func predecessors(p *waiting.Part) map[string][]predEdge {
	out := make(map[string][]predEdge)
	for _, src := range p.Order {
		row := p.Trans[src.Key()]
		for sym, dst := range row {
			if dst == nil {
				continue
			}
			out[dst.Key()] = append(out[dst.Key()], predEdge{srcKey: src.Key(), sym: sym})
		}
	}
	return out
}

// entrySpec configures which cycle-closing macrostates admit tight-part
// entry on which symbols, and what (if anything) to do instead for
// singleton non-accepting self-loops. Baseline and reduced each build
// one of these and hand it to buildCore.
type entrySpec struct {
	cycleClosing map[string]bool
	permitted    func(waitingKey string, sym int) bool // nil = all symbols permitted
	sinkSym      map[string]int                        // waiting key -> self-loop symbol replaced by a sink
	ceilingFor   func(s *automaton.Set) int
	tightOpts    tight.Options
}

// buildCore runs the shared waiting+tight exploration: build the
// waiting part, install sinks, enter the tight part at every permitted
// cycle-closing symbol, DFS-explore tight successors, and union
// everything into one Result.
func buildCore(a *automaton.Automaton, interner *automaton.Interner, spec entrySpec) *Result {
	wp := waiting.Build(a, interner)
	preds := predecessors(wp)
	tb := tight.NewBuilder(a, interner, spec.tightOpts)

	res := &Result{Index: make(map[string]int), Trans: make(map[string][][]string)}
	addState := func(m Macrostate) {
		if _, seen := res.Index[m.Key()]; !seen {
			res.Index[m.Key()] = len(res.States)
			res.States = append(res.States, m)
		}
	}

	// Waiting states and their ordinary subset-construction transitions,
	// with sink substitution on the flagged self-loop symbol.
	for _, s := range wp.Order {
		w := &WaitingState{S: s}
		addState(w)
	}
	for _, sym := range allSinkSymbols(spec.sinkSym) {
		addState(&SinkState{Sym: sym})
	}

	tightStack := list.New()
	seenTight := make(map[string]bool)
	pushTight := func(st *tight.State) {
		tm := &TightMacro{State: st}
		if seenTight[tm.Key()] {
			return
		}
		seenTight[tm.Key()] = true
		addState(tm)
		tightStack.PushBack(tm)
	}

	for _, s := range wp.Order {
		row := wp.Trans[s.Key()]
		outRow := make([][]string, a.NumSymbols)
		sinkSym, hasSink := spec.sinkSym[s.Key()]

		for sym := 0; sym < a.NumSymbols; sym++ {
			var keys []string
			if hasSink && sym == sinkSym {
				keys = append(keys, (&SinkState{Sym: sym}).Key())
			} else if dst := row[sym]; dst != nil {
				keys = append(keys, (&WaitingState{S: dst}).Key())
			}
			outRow[sym] = keys
		}
		res.Trans[(&WaitingState{S: s}).Key()] = outRow
	}
	for _, sym := range allSinkSymbols(spec.sinkSym) {
		sinkKey := (&SinkState{Sym: sym}).Key()
		res.Trans[sinkKey] = selfLoopRow(a.NumSymbols, sym, sinkKey)
	}

	// Tight-part entry: for every cycle-closing waiting macrostate,
	// every predecessor edge on a permitted symbol branches to every
	// admissible TIGHT_INIT macrostate over the cycle-closing macrostate's
	// ceiling.
	for s := range spec.cycleClosing {
		sset := wp.Order[mustIndex(wp, s)]
		ceiling := spec.ceilingFor(sset)
		inits := tb.InitialStates(sset, ceiling)
		for _, edge := range preds[s] {
			if spec.permitted != nil && !spec.permitted(s, edge.sym) {
				continue
			}
			if sinkSym, hasSink := spec.sinkSym[s]; hasSink && edge.sym == sinkSym {
				continue
			}
			src := wp.Order[mustIndex(wp, edge.srcKey)]
			row := res.Trans[(&WaitingState{S: src}).Key()]
			sym := edge.sym
			for _, init := range inits {
				pushTight(init)
				row[sym] = append(row[sym], (&TightMacro{State: init}).Key())
			}
		}
	}

	for tightStack.Len() > 0 {
		back := tightStack.Back()
		cur := back.Value.(*TightMacro)
		tightStack.Remove(back)

		row := make([][]string, a.NumSymbols)
		for sym := 0; sym < a.NumSymbols; sym++ {
			succs := tb.Successor(cur.State, sym)
			keys := make([]string, 0, len(succs))
			for _, st := range succs {
				pushTight(st)
				keys = append(keys, (&TightMacro{State: st}).Key())
			}
			row[sym] = keys
		}
		res.Trans[cur.Key()] = row
	}

	// wp.Order[0] is always I itself (waiting.Build's entry point); the
	// rest of wp.Order are merely reachable waiting macrostates, not
	// automaton initial states.
	if len(wp.Order) > 0 {
		res.InitKey = []string{(&WaitingState{S: wp.Order[0]}).Key()}
	}

	return res
}

func mustIndex(p *waiting.Part, key string) int {
	i, _ := p.IndexOf(key)
	return i
}

func allSinkSymbols(sinkSym map[string]int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, sym := range sinkSym {
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	return out
}

func selfLoopRow(numSymbols, selfSym int, selfKey string) [][]string {
	row := make([][]string, numSymbols)
	row[selfSym] = []string{selfKey}
	return row
}
