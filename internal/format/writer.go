package format

import (
	"bytes"
	"fmt"

	"nbacomplement/internal/automaton"
)

// Write serialises a into the textual format Parse reads back.
// Falls back to synthetic "qN"/"aN" names when a state or symbol has no
// recorded name, so output produced from a driver-built automaton
// (which never assigns StateNames/SymbolNames) is still well-formed.
func Write(a *automaton.Automaton) []byte {
	var buf bytes.Buffer

	stateName := func(q int) string {
		if q < len(a.StateNames) && a.StateNames[q] != "" {
			return a.StateNames[q]
		}
		return fmt.Sprintf("q%d", q)
	}
	symName := func(sym int) string {
		if sym < len(a.SymbolNames) && a.SymbolNames[sym] != "" {
			return a.SymbolNames[sym]
		}
		return fmt.Sprintf("a%d", sym)
	}

	for i, q := range a.Init {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(stateName(q))
	}
	buf.WriteByte('\n')

	for q := 0; q < a.NumStates; q++ {
		for sym := 0; sym < a.NumSymbols; sym++ {
			for _, dst := range a.Delta(q, sym) {
				fmt.Fprintf(&buf, "%s,%s -> %s\n", symName(sym), stateName(q), stateName(dst))
			}
		}
	}

	for q := 0; q < a.NumStates; q++ {
		if a.IsAccepting(q) {
			buf.WriteString(stateName(q))
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}
