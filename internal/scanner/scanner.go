// Package scanner splits source text into whitespace-delimited words and
// classifies each one with a composed automaton.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"lexforge/internal/automaton"
)

const (
	// Unmatched is the class of words no pattern accepts.
	Unmatched = "error!"
	// Unclaimed is the class of accepted words whose state belongs to no
	// pattern.
	Unclaimed = "?"
)

// Form feed and vertical tab are raw bytes; the others are lexmachine escapes.
const (
	separators = "[ \\t\\n\\r\f\v]+"
	wordChars  = "[^ \\t\\n\\r\f\v]+"
)

type Token struct {
	Lexeme string
	Class  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("<%s, %s>", t.Lexeme, t.Class)
}

// Scanner classifies words. It holds no per-scan state and may be shared.
type Scanner struct {
	rec    automaton.Recognizer
	lexer  *lexmachine.Lexer
	logger *slog.Logger
}

// New prepares a scanner backed by rec. A nil logger means slog.Default().
func New(rec automaton.Recognizer, logger *slog.Logger) (*Scanner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	lx := lexmachine.NewLexer()
	lx.Add([]byte(separators), skip)
	lx.Add([]byte(wordChars), word)
	if err := lx.Compile(); err != nil {
		return nil, fmt.Errorf("compile word lexer: %w", err)
	}
	return &Scanner{rec: rec, lexer: lx, logger: logger}, nil
}

// Scan classifies every word of src in order.
func (s *Scanner) Scan(src []byte) ([]Token, error) {
	sc, err := s.lexer.Scanner(src)
	if err != nil {
		return nil, err
	}
	var toks []Token
	unmatched := 0
	for tok, err, eof := sc.Next(); !eof; tok, err, eof = sc.Next() {
		if err != nil {
			return nil, err
		}
		t := tok.(Token)
		t.Class = s.classify(t.Lexeme)
		if t.Class == Unmatched {
			unmatched++
			s.logger.Warn("unmatched word", "lexeme", t.Lexeme, "line", t.Line, "column", t.Column)
		}
		toks = append(toks, t)
	}
	s.logger.Debug("scan finished", "tokens", len(toks), "unmatched", unmatched)
	return toks, nil
}

func (s *Scanner) classify(lexeme string) string {
	id, ok := s.rec.Evaluate(lexeme)
	switch {
	case !ok:
		return Unmatched
	case id == "":
		return Unclaimed
	default:
		return string(id)
	}
}

// WriteTokens writes one "<lexeme, class>" line per token.
func WriteTokens(w io.Writer, toks []Token) error {
	bw := bufio.NewWriter(w)
	for _, t := range toks {
		fmt.Fprintln(bw, t)
	}
	return bw.Flush()
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func word(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	return Token{
		Lexeme: string(m.Bytes),
		Line:   m.StartLine,
		Column: m.StartColumn,
	}, nil
}
