package format

import (
	"fmt"

	"nbacomplement/internal/automaton"
)

// ParseError carries the source line of a malformed-input failure.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// line is one newline-delimited group of tokens, stripped of the
// newline itself.
type line struct {
	tokens []Token
	number int
}

func splitLines(toks []Token) []line {
	var lines []line
	var cur []Token
	num := 1
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, line{tokens: cur, number: num})
			cur = nil
		}
	}
	for _, t := range toks {
		if t.Type == TokenNewline {
			flush()
			num++
			continue
		}
		if t.Type == TokenEOF {
			break
		}
		cur = append(cur, t)
	}
	flush()
	return lines
}

func lexAll(input []byte) ([]Token, error) {
	lx, err := NewLexer(input)
	if err != nil {
		return nil, err
	}
	var out []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.Type == TokenEOF {
			break
		}
	}
	return out, nil
}

// nameTable assigns dense integer ids to identifiers in first-seen
// order, renaming source names to compact internal indices.
type nameTable struct {
	index map[string]int
	names []string
}

func newNameTable() *nameTable { return &nameTable{index: make(map[string]int)} }

func (t *nameTable) id(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.names)
	t.index[name] = i
	t.names = append(t.names, name)
	return i
}

// Parse reads the line-oriented textual automaton format into a
// *automaton.Automaton. The first non-empty line lists the (comma-separated)
// initial states;
// lines containing "->" are transitions of the form "SYMBOL,SOURCE ->
// DEST"; every remaining line names one accepting state.
func Parse(input []byte) (*automaton.Automaton, error) {
	toks, err := lexAll(input)
	if err != nil {
		return nil, err
	}
	lines := splitLines(toks)
	if len(lines) == 0 {
		return nil, &ParseError{Line: 1, Msg: "empty input: expected an initial-state line"}
	}

	states := newNameTable()
	symbols := newNameTable()

	type rawTrans struct {
		sym, src, dst string
		line          int
	}
	var initNames []string
	var transitions []rawTrans
	var acceptNames []string

	for i, ln := range lines {
		if i == 0 {
			for _, name := range identList(ln.tokens) {
				initNames = append(initNames, name)
			}
			if len(initNames) == 0 {
				return nil, &ParseError{Line: ln.number, Msg: "expected the initial-state line"}
			}
			continue
		}
		if hasArrow(ln.tokens) {
			sym, src, dst, perr := parseTransition(ln)
			if perr != nil {
				return nil, perr
			}
			transitions = append(transitions, rawTrans{sym: sym, src: src, dst: dst, line: ln.number})
			continue
		}
		names := identList(ln.tokens)
		if len(names) != 1 {
			return nil, &ParseError{Line: ln.number, Msg: "expected exactly one accepting-state identifier per line"}
		}
		acceptNames = append(acceptNames, names[0])
	}

	for _, n := range initNames {
		states.id(n)
	}
	for _, t := range transitions {
		states.id(t.src)
		states.id(t.dst)
		symbols.id(t.sym)
	}
	for _, n := range acceptNames {
		states.id(n)
	}

	a := automaton.New(len(states.names), len(symbols.names))
	a.StateNames = states.names
	a.SymbolNames = symbols.names

	initIdx := make([]int, 0, len(initNames))
	for _, n := range initNames {
		initIdx = append(initIdx, states.id(n))
	}
	a.SetInit(initIdx)

	for _, t := range transitions {
		a.AddTransition(states.id(t.src), symbols.id(t.sym), states.id(t.dst))
	}
	for _, n := range acceptNames {
		a.SetAccept(states.id(n), true)
	}

	return a, nil
}

func identList(toks []Token) []string {
	var out []string
	for _, t := range toks {
		switch t.Type {
		case TokenIdent:
			out = append(out, t.Literal)
		case TokenComma:
			// separator only
		}
	}
	return out
}

func hasArrow(toks []Token) bool {
	for _, t := range toks {
		if t.Type == TokenArrow {
			return true
		}
	}
	return false
}

// parseTransition expects exactly SYMBOL , SOURCE -> DEST.
func parseTransition(ln line) (sym, src, dst string, err error) {
	toks := ln.tokens
	if len(toks) != 5 ||
		toks[0].Type != TokenIdent ||
		toks[1].Type != TokenComma ||
		toks[2].Type != TokenIdent ||
		toks[3].Type != TokenArrow ||
		toks[4].Type != TokenIdent {
		return "", "", "", &ParseError{Line: ln.number, Msg: "expected \"SYMBOL,SOURCE -> DEST\""}
	}
	return toks[0].Literal, toks[2].Literal, toks[4].Literal, nil
}
