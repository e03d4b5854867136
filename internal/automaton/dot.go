package automaton

import (
	"fmt"
	"io"
	"strconv"
)

// ExportDOT prints a Graphviz rendering of a *DFA or *NFA to w.
func ExportDOT(w io.Writer, g interface{}) {
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "    rankdir=LR;")

	switch t := g.(type) {

	//------------------------------------------------------------------ DFA
	case *DFA:
		for s := range t.labels {
			fmt.Fprintf(w, "    q%d [shape=%s, label=%s];\n", s, shape(t.accepting[s]), strconv.Quote(t.labels[s]))
		}
		for _, tr := range t.Transitions() {
			fmt.Fprintf(w, "    q%d -> q%d [label=%s];\n", tr.From, tr.To, strconv.Quote(string(tr.Symbol)))
		}
		if t.valid(t.start) {
			fmt.Fprintf(w, "    _start [shape=point]; _start -> q%d;\n", t.start)
		}

	//------------------------------------------------------------------ NFA
	case *NFA:
		for s := range t.labels {
			fmt.Fprintf(w, "    n%d [shape=%s, label=%s];\n", s, shape(t.accepting[s]), strconv.Quote(t.labels[s]))
		}
		for s := range t.labels {
			for _, r := range t.alphabet {
				for _, to := range t.trans[s][r] {
					fmt.Fprintf(w, "    n%d -> n%d [label=%s];\n", s, to, strconv.Quote(string(r)))
				}
			}
			for _, to := range t.eps[s] {
				fmt.Fprintf(w, "    n%d -> n%d [label=\"ε\"];\n", s, to)
			}
		}
		if t.valid(t.start) {
			fmt.Fprintf(w, "    _start [shape=point]; _start -> n%d;\n", t.start)
		}

	default:
		fmt.Fprintln(w, "    /* unknown graph type */")
	}

	fmt.Fprintln(w, "}")
}

func shape(accepting bool) string {
	if accepting {
		return "doublecircle"
	}
	return "circle"
}
