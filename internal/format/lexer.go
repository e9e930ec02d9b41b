// Package format implements the textual Büchi-automaton input/output
// format: a line-oriented notation with an initial-state line,
// "SYMBOL,SOURCE -> DEST" transition lines, and trailing accepting-state
// lines.
package format

import (
	"fmt"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Lexer wraps a lexmachine scanner over the automaton input format, with
// a token set built for this format's grammar.
type Lexer struct {
	scanner *lexmachine.Scanner
}

// NewLexer compiles the token rules and starts scanning input.
func NewLexer(input []byte) (*Lexer, error) {
	lex := lexmachine.NewLexer()
	lex.Add([]byte(`[ \t\r]+`), skip)
	lex.Add([]byte(`#[^\n]*`), skip)
	lex.Add([]byte(`\n`), tokAction(TokenNewline))
	lex.Add([]byte(`->`), tokAction(TokenArrow))
	lex.Add([]byte(`,`), tokAction(TokenComma))
	lex.Add([]byte(`[^ \t\r\n,#]+`), tokAction(TokenIdent))

	if err := lex.Compile(); err != nil {
		return nil, fmt.Errorf("compiling automaton-format lexer: %w", err)
	}
	scanner, err := lex.Scanner(input)
	if err != nil {
		return nil, fmt.Errorf("scanning automaton input: %w", err)
	}
	return &Lexer{scanner: scanner}, nil
}

// Next returns the next token, a TokenEOF token at end of input, or an
// error carrying the offending line.
func (l *Lexer) Next() (Token, error) {
	tok, err, eof := l.scanner.Next()
	if eof {
		return Token{Type: TokenEOF}, nil
	}
	if err != nil {
		return Token{}, fmt.Errorf("lexing automaton input: %w", err)
	}
	return tok.(Token), nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(t TokenType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{Type: t, Literal: string(m.Bytes), Line: m.StartLine, Column: m.StartColumn}, nil
	}
}
