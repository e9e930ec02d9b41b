package schewe

import (
	"testing"

	"nbacomplement/internal/automaton"
	"nbacomplement/internal/options"
)

func TestScoreWithinUnitRange(t *testing.T) {
	l := delayLabel{size: 2, rankBound: 3, nonAcc: 1}
	for _, v := range []options.Version{options.Version1, options.Version2} {
		got := score(l, 4, 0.5, v)
		if got < 0 || got > 1 {
			t.Fatalf("score(%v, version %v) = %v, want within [0,1]", l, v, got)
		}
	}
}

func TestPermittedEntrySymbolsAlwaysIncludesAtLeastOne(t *testing.T) {
	a := automaton.New(2, 3)
	interner := automaton.NewInterner()
	s := interner.Intern([]int{0})

	allowed := permittedEntrySymbols(a, s, 1, 0.1, options.Version1)
	if len(allowed) < 1 {
		t.Fatalf("expected at least one permitted entry symbol, got %d", len(allowed))
	}
	for sym := range allowed {
		if sym < 0 || sym >= a.NumSymbols {
			t.Fatalf("permitted symbol %d out of range [0,%d)", sym, a.NumSymbols)
		}
	}
}

func TestPermittedEntrySymbolsNeverExceedsAlphabet(t *testing.T) {
	a := automaton.New(3, 2)
	a.SetAccept(0, true)
	interner := automaton.NewInterner()
	s := interner.Intern([]int{0, 1, 2})

	allowed := permittedEntrySymbols(a, s, 5, 1.0, options.Version2)
	if len(allowed) > a.NumSymbols {
		t.Fatalf("got %d permitted symbols, alphabet only has %d", len(allowed), a.NumSymbols)
	}
}
