package persist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"lexforge/internal/automaton"
)

// Write stores d in the text format read by Read. States appear in index
// order, the alphabet sorted, transitions by state then symbol.
func Write(w io.Writer, d *automaton.DFA) error {
	alphabet := d.Alphabet()
	syms := make([]string, len(alphabet))
	for i, r := range alphabet {
		if r == ',' || unicode.IsSpace(r) {
			return fmt.Errorf("write automaton %q: %w: %q", d.Name(), ErrSymbol, r)
		}
		syms[i] = string(r)
	}
	var accepting []string
	for _, s := range d.Accepting() {
		accepting = append(accepting, d.Label(s))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, d.Len())
	fmt.Fprintln(bw, d.Label(d.Start()))
	fmt.Fprintln(bw, strings.Join(accepting, ","))
	fmt.Fprintln(bw, strings.Join(syms, ","))
	for _, tr := range d.Transitions() {
		fmt.Fprintf(bw, "%s,%c,%s\n", d.Label(tr.From), tr.Symbol, d.Label(tr.To))
	}
	return bw.Flush()
}
