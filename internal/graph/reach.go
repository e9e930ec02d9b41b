package graph

import (
	"sort"
	"strconv"
	"strings"

	"nbacomplement/internal/automaton"
)

// ExploreCap bounds the subset-construction BFS used by MinReach/MaxReach.
// Reachability analysis is one of the two dominant cost centers in the
// whole construction; past the cap a bound is reported as "no useful
// information" (MinReach: 1, MaxReach: automaton size) rather than
// computed exhaustively, trading precision in the pruning for termination.
const ExploreCap = 4096

func setKey(s []int) string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// MinReach is the smallest size of any nonempty subset-construction
// macrostate reachable from {q} by a word of length >= 1.
// States that quickly collapse onto a small reachable set feed a small
// reachCons contribution and therefore a loose rank ceiling; states that
// only ever reach large sets feed a tight one.
func MinReach(a *automaton.Automaton, q int) int {
	min := -1
	seen := map[string]bool{setKey([]int{q}): true}
	queue := [][]int{{q}}
	explored := 0
	for len(queue) > 0 && explored < ExploreCap {
		cur := queue[0]
		queue = queue[1:]
		explored++
		for sym := 0; sym < a.NumSymbols; sym++ {
			next := a.DeltaSet(cur, sym)
			if len(next) == 0 {
				continue
			}
			if min == -1 || len(next) < min {
				min = len(next)
			}
			k := setKey(next)
			if !seen[k] {
				seen[k] = true
				queue = append(queue, next)
			}
		}
	}
	if min == -1 || len(queue) > 0 {
		return 1
	}
	return min
}

// SkipSelfLoop decides, for a candidate transition out of the current
// subset-construction frontier on symbol sym, whether it should be
// ignored while computing MaxReach — used to implement "ignoring
// self-loops marked as accepting self-loops".
type SkipSelfLoop func(current []int, sym int, next []int) bool

// MaxReach is the largest size of any subset-construction macrostate
// reachable from start, optionally ignoring transitions skip flags as
// self-loops that already witness acceptance.
func MaxReach(a *automaton.Automaton, start []int, skip SkipSelfLoop) int {
	startSorted := append([]int(nil), start...)
	sort.Ints(startSorted)
	max := len(startSorted)
	seen := map[string]bool{setKey(startSorted): true}
	queue := [][]int{startSorted}
	explored := 0
	for len(queue) > 0 && explored < ExploreCap {
		cur := queue[0]
		queue = queue[1:]
		explored++
		for sym := 0; sym < a.NumSymbols; sym++ {
			next := a.DeltaSet(cur, sym)
			if len(next) == 0 {
				continue
			}
			if skip != nil && skip(cur, sym, next) {
				continue
			}
			if len(next) > max {
				max = len(next)
			}
			k := setKey(next)
			if !seen[k] {
				seen[k] = true
				queue = append(queue, next)
			}
		}
	}
	if len(queue) > 0 {
		return a.NumStates
	}
	return max
}
