package automaton

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteTable renders the transition table of d: one row per state, one
// column per symbol, '-' for a missing transition. The start state is
// prefixed with '>' and accepting states with '*'; the last column names the
// pattern an accepting state reports.
func WriteTable(w io.Writer, d *DFA) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"state"}
	for _, r := range d.alphabet {
		header = append(header, string(r))
	}
	header = append(header, "pattern")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for s := range d.labels {
		st := State(s)
		mark := ""
		if st == d.start {
			mark += ">"
		}
		if d.accepting[s] {
			mark += "*"
		}
		row := []string{mark + d.labels[s]}
		for _, r := range d.alphabet {
			if to, ok := d.trans[s][r]; ok {
				row = append(row, d.labels[to])
			} else {
				row = append(row, "-")
			}
		}
		id, ok := d.Match(st)
		switch {
		case !ok:
			row = append(row, "")
		case id == "":
			row = append(row, "?")
		default:
			row = append(row, string(id))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
