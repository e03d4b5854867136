package automaton

import "slices"

// DFA is a deterministic automaton with a partial transition function and an
// ordered acceptance map.
type DFA struct {
	name      string
	labels    []string
	alphabet  []rune
	trans     []map[rune]State
	start     State
	accepting []bool
	patterns  []Pattern
}

func newDFA(name string, alphabet []rune) *DFA {
	return &DFA{name: name, alphabet: sortedRunes(alphabet), start: Dead}
}

func (d *DFA) addState(label string, accepting bool) State {
	d.labels = append(d.labels, label)
	d.trans = append(d.trans, make(map[rune]State))
	d.accepting = append(d.accepting, accepting)
	return State(len(d.labels) - 1)
}

func (d *DFA) valid(s State) bool { return s >= 0 && int(s) < len(d.labels) }

// Name returns the name the automaton was built with.
func (d *DFA) Name() string { return d.name }

// Len returns the number of states.
func (d *DFA) Len() int { return len(d.labels) }

// Label returns the printable name of s.
func (d *DFA) Label(s State) string { return d.labels[s] }

// Alphabet returns a sorted copy of the alphabet.
func (d *DFA) Alphabet() []rune { return slices.Clone(d.alphabet) }

// Start returns the start state.
func (d *DFA) Start() State { return d.start }

// IsAccepting reports whether s is an accepting state.
func (d *DFA) IsAccepting(s State) bool { return d.valid(s) && d.accepting[s] }

// Accepting returns the accepting states in index order.
func (d *DFA) Accepting() []State {
	var out []State
	for s, ok := range d.accepting {
		if ok {
			out = append(out, State(s))
		}
	}
	return out
}

// Next returns the destination of (s, r), if any.
func (d *DFA) Next(s State, r rune) (State, bool) {
	if !d.valid(s) {
		return Dead, false
	}
	t, ok := d.trans[s][r]
	return t, ok
}

// Transitions lists every edge ordered by source state, then symbol.
func (d *DFA) Transitions() []Transition {
	var out []Transition
	for s, row := range d.trans {
		for _, r := range d.alphabet {
			if t, ok := row[r]; ok {
				out = append(out, Transition{From: State(s), Symbol: r, To: t})
			}
		}
	}
	return out
}

// Patterns returns a copy of the acceptance map in lookup order.
func (d *DFA) Patterns() []Pattern { return clonePatterns(d.patterns) }

// Reset returns the cursor at the start state.
func (d *DFA) Reset() State { return d.start }

// Step advances cursor s over r. Missing transitions lead to Dead.
func (d *DFA) Step(s State, r rune) State {
	t, ok := d.Next(s, r)
	if !ok {
		return Dead
	}
	return t
}

// Accepts reports whether cursor s is accepting.
func (d *DFA) Accepts(s State) bool { return d.IsAccepting(s) }

// Match resolves the pattern of cursor s. The first pattern, in acceptance
// map order, that contains s wins.
func (d *DFA) Match(s State) (PatternID, bool) {
	if !d.Accepts(s) {
		return "", false
	}
	for _, p := range d.patterns {
		if _, ok := slices.BinarySearch(p.States, s); ok {
			return p.ID, true
		}
	}
	return "", true
}

// Evaluate replays word from the start state.
func (d *DFA) Evaluate(word string) (PatternID, bool) {
	s := d.Reset()
	for _, r := range word {
		s = d.Step(s, r)
		if s == Dead {
			return "", false
		}
	}
	return d.Match(s)
}

