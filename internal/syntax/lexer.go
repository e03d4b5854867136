package syntax

import (
	"unicode/utf8"
)

type tokenType int

const (
	tEOF    tokenType = iota
	tSymbol           // literal rune
	tLParen           // (
	tRParen           // )
	tStar             // *
	tPlus             // +
	tQMark            // ?
	tUnion            // |
	tConcat           // inserted between adjacent operands
	tEnd              // end marker, only ever produced by the parser itself
)

func (t tokenType) String() string {
	switch t {
	case tEOF:
		return "EOF"
	case tSymbol:
		return "symbol"
	case tLParen:
		return "("
	case tRParen:
		return ")"
	case tStar:
		return "*"
	case tPlus:
		return "+"
	case tQMark:
		return "?"
	case tUnion:
		return "|"
	case tConcat:
		return "."
	case tEnd:
		return "#"
	}
	return "unknown"
}

type token struct {
	typ tokenType
	ch  rune // for tSymbol
	off int  // byte offset in the pattern, -1 for synthetic tokens
}

type lexer struct {
	input string
	pos   int
}

func newLexer(s string) *lexer { return &lexer{input: s} }

func (l *lexer) next() (token, error) {
	if l.pos >= len(l.input) {
		return token{typ: tEOF, off: l.pos}, nil
	}
	off := l.pos
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	switch r {
	case '(':
		return token{typ: tLParen, off: off}, nil
	case ')':
		return token{typ: tRParen, off: off}, nil
	case '*':
		return token{typ: tStar, off: off}, nil
	case '+':
		return token{typ: tPlus, off: off}, nil
	case '?':
		return token{typ: tQMark, off: off}, nil
	case '|':
		return token{typ: tUnion, off: off}, nil
	case '#':
		return token{}, malformed(l.input, off, "'#' is reserved for the end marker, escape it as \\#")
	case '\\':
		if l.pos >= len(l.input) {
			// trailing backslash stands for itself
			return token{typ: tSymbol, ch: r, off: off}, nil
		}
		r2, s2 := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += s2
		return token{typ: tSymbol, ch: r2, off: off}, nil
	default:
		return token{typ: tSymbol, ch: r, off: off}, nil
	}
}

// tokenize wraps the pattern as "(" pattern ")" "#" and returns its tokens
// without the trailing EOF.
func tokenize(pattern string) ([]token, error) {
	toks := []token{{typ: tLParen, off: -1}}
	l := newLexer(pattern)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.typ == tEOF {
			break
		}
		toks = append(toks, tok)
	}
	return append(toks, token{typ: tRParen, off: -1}, token{typ: tEnd, off: -1}), nil
}
