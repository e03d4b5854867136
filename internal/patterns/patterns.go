// Package patterns reads pattern-definition files, one "name: regex" per
// line:
//
//	id: [a-zA-Z]([a-zA-Z] | [0-9])*
//	num: [1-9]([0-9])* | 0
//
// Whitespace inside a regex is dropped and bracket groups are expanded into
// alternations. Definitions keep file order.
package patterns

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var ErrDuplicateName = errors.New("duplicate pattern name")

// Definition is one named pattern, with its bracket groups expanded.
type Definition struct {
	Name string
	Expr string
	Line int
}

type file struct {
	Entries []*entry `parser:"EOL* (@@ EOL*)*"`
}

type entry struct {
	Pos lexer.Position

	Name string `parser:"@Word ':'"`
	Body string `parser:"@(Word | Punct | ':')+"`
}

var defsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Word", Pattern: `[A-Za-z0-9_][A-Za-z0-9_\-]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Punct", Pattern: `[^\sA-Za-z0-9_:]`},
})

var parser = participle.MustBuild[file](
	participle.Lexer(defsLexer),
	participle.Elide("Whitespace"),
)

// Parse reads definitions from r. filename only labels error positions.
func Parse(filename string, r io.Reader) ([]Definition, error) {
	f, err := parser.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	defs := make([]Definition, 0, len(f.Entries))
	seen := make(map[string]int, len(f.Entries))
	for _, e := range f.Entries {
		if line, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("%s: %w: %q (first defined on line %d)", e.Pos, ErrDuplicateName, e.Name, line)
		}
		seen[e.Name] = e.Pos.Line

		expr, err := ExpandClasses(e.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: pattern %q: %w", e.Pos, e.Name, err)
		}
		defs = append(defs, Definition{Name: e.Name, Expr: expr, Line: e.Pos.Line})
	}
	return defs, nil
}

// ParseFile reads the definitions file at path.
func ParseFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}
