package automaton

import "fmt"

// UnionStart is the label of the fresh start state added by Union.
const UnionStart = "S"

// Union joins automata under a fresh start state with one epsilon edge to
// each input's start. States of input i are relabelled "<i>_<label>", which
// keeps labels unique even when inputs share them. Every input pattern is
// carried into the acceptance map in input order; that order is the
// tie-break when one word is accepted by several inputs.
func Union(name string, automata ...*DFA) (*NFA, error) {
	if len(automata) == 0 {
		return nil, ErrEmptyUnion
	}
	n := newNFA(name)
	start := n.addState(UnionStart, false)
	n.start = start

	for i, d := range automata {
		offset := State(n.Len())
		for s := range d.labels {
			n.addState(fmt.Sprintf("%d_%s", i, d.labels[s]), d.accepting[s])
		}
		for _, tr := range d.Transitions() {
			n.addTransition(offset+tr.From, tr.Symbol, offset+tr.To)
		}
		n.addSymbols(d.alphabet...)
		n.addEpsilon(start, offset+d.start)
		for _, p := range d.patterns {
			renamed := make([]State, len(p.States))
			for j, s := range p.States {
				renamed[j] = offset + s
			}
			n.patterns = addPattern(n.patterns, p.ID, renamed)
		}
	}
	n.finish()
	return n, nil
}
