// Package persist reads and writes automata in a line-oriented text format:
//
//	3            number of states
//	S0           start state
//	S2           accepting states, comma separated
//	a,b          alphabet, comma separated
//	S0,a,S1      one state,symbol,next triple per line
//	S1,b,S2
package persist

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"lexforge/internal/automaton"
)

// ErrStateCount is returned when a file names more states than it declares.
var ErrStateCount = errors.New("more states than declared")

// ErrSymbol is returned for alphabet entries that are not a single rune, and
// by Write for runes the format cannot hold.
var ErrSymbol = errors.New("invalid symbol")

type Document struct {
	Count       int           `parser:"@Label EOL"`
	Start       string        `parser:"@Label EOL"`
	Accepting   []string      `parser:"(@Label (',' @Label)*)? EOL"`
	Alphabet    []string      `parser:"(@Label (',' @Label)*)? EOL*"`
	Transitions []*Transition `parser:"@@*"`
}

type Transition struct {
	Pos lexer.Position

	From   string `parser:"@Label ','"`
	Symbol string `parser:"@Label ','"`
	To     string `parser:"@Label EOL*"`
}

var formatLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Label", Pattern: `[^,\s]+`},
})

var parser = participle.MustBuild[Document](
	participle.Lexer(formatLexer),
	participle.Elide("Whitespace"),
)

// Parse reads the raw document without building an automaton.
func Parse(filename string, r io.Reader) (*Document, error) {
	return parser.Parse(filename, r)
}

// Read loads the automaton stored in r. name becomes the automaton name and
// its only pattern, mapped to every accepting state.
func Read(name string, r io.Reader) (*automaton.DFA, error) {
	doc, err := Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("read automaton %q: %w", name, err)
	}

	b := automaton.NewBuilder(name)
	for _, s := range doc.Alphabet {
		c, err := symbol(s)
		if err != nil {
			return nil, fmt.Errorf("read automaton %q: alphabet: %w", name, err)
		}
		b.AddSymbol(c)
	}

	start := b.Ensure(doc.Start)
	for _, label := range doc.Accepting {
		if err := b.SetAccepting(b.Ensure(label)); err != nil {
			return nil, fmt.Errorf("read automaton %q: %w", name, err)
		}
	}
	for _, tr := range doc.Transitions {
		c, err := symbol(tr.Symbol)
		if err != nil {
			return nil, fmt.Errorf("read automaton %q: %s: %w", name, tr.Pos, err)
		}
		if err := b.AddTransition(b.Ensure(tr.From), c, b.Ensure(tr.To)); err != nil {
			return nil, fmt.Errorf("read automaton %q: %s: %w", name, tr.Pos, err)
		}
	}
	if err := b.SetStart(start); err != nil {
		return nil, fmt.Errorf("read automaton %q: %w", name, err)
	}

	d, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("read automaton %q: %w", name, err)
	}
	if d.Len() > doc.Count {
		return nil, fmt.Errorf("read automaton %q: %w: declared %d, found %d",
			name, ErrStateCount, doc.Count, d.Len())
	}
	return d, nil
}

func symbol(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: %q", ErrSymbol, s)
	}
	return r, nil
}
