package automaton

import "slices"

// NFA is a non-deterministic automaton with epsilon edges. Epsilon closures
// are computed once when the automaton is finished.
type NFA struct {
	name      string
	labels    []string
	alphabet  []rune
	trans     []map[rune]StateSet
	eps       []StateSet
	closure   []StateSet
	start     State
	accepting []bool
	patterns  []Pattern
}

func newNFA(name string) *NFA {
	return &NFA{name: name, start: Dead}
}

func (n *NFA) addState(label string, accepting bool) State {
	n.labels = append(n.labels, label)
	n.trans = append(n.trans, make(map[rune]StateSet))
	n.eps = append(n.eps, nil)
	n.accepting = append(n.accepting, accepting)
	return State(len(n.labels) - 1)
}

func (n *NFA) addSymbols(rs ...rune) {
	n.alphabet = sortedRunes(append(n.alphabet, rs...))
}

func (n *NFA) addTransition(from State, r rune, to State) {
	n.trans[from][r] = merge(n.trans[from][r], StateSet{to})
}

func (n *NFA) addEpsilon(from, to State) {
	n.eps[from] = merge(n.eps[from], StateSet{to})
}

// finish precomputes the epsilon closure of every state.
func (n *NFA) finish() {
	n.closure = make([]StateSet, len(n.labels))
	seen := make([]bool, len(n.labels))
	for s := range n.labels {
		clear(seen)
		seen[s] = true
		stack := []State{State(s)}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, t := range n.eps[cur] {
				if !seen[t] {
					seen[t] = true
					stack = append(stack, t)
				}
			}
		}
		n.closure[s] = collect(seen)
	}
}

// collect turns a membership mask into a sorted set.
func collect(mask []bool) StateSet {
	var out StateSet
	for s, ok := range mask {
		if ok {
			out = append(out, State(s))
		}
	}
	return out
}

func (n *NFA) valid(s State) bool { return s >= 0 && int(s) < len(n.labels) }

// Name returns the name the automaton was built with.
func (n *NFA) Name() string { return n.name }

// Len returns the number of states.
func (n *NFA) Len() int { return len(n.labels) }

// Label returns the printable name of s.
func (n *NFA) Label(s State) string { return n.labels[s] }

// Alphabet returns a sorted copy of the alphabet.
func (n *NFA) Alphabet() []rune { return slices.Clone(n.alphabet) }

// Start returns the start state.
func (n *NFA) Start() State { return n.start }

// IsAccepting reports whether s is an accepting state.
func (n *NFA) IsAccepting(s State) bool { return n.valid(s) && n.accepting[s] }

// Next returns the symbol destinations of (s, r), without closure.
func (n *NFA) Next(s State, r rune) StateSet {
	if !n.valid(s) {
		return nil
	}
	return slices.Clone(n.trans[s][r])
}

// Epsilon returns the direct epsilon successors of s.
func (n *NFA) Epsilon(s State) StateSet {
	if !n.valid(s) {
		return nil
	}
	return slices.Clone(n.eps[s])
}

// Closure returns every state reachable from s through epsilon edges, s
// included.
func (n *NFA) Closure(s State) StateSet {
	if !n.valid(s) {
		return nil
	}
	return slices.Clone(n.closure[s])
}

// Patterns returns a copy of the acceptance map in lookup order.
func (n *NFA) Patterns() []Pattern { return clonePatterns(n.patterns) }

// Reset returns the cursor at the closure of the start state.
func (n *NFA) Reset() StateSet {
	if !n.valid(n.start) {
		return nil
	}
	return n.Closure(n.start)
}

// Step moves every branch of cur over r and closes the result under epsilon
// edges. The result may be empty; an empty cursor stays empty. Members that
// are not states of n are ignored.
func (n *NFA) Step(cur StateSet, r rune) StateSet {
	if len(cur) == 0 {
		return nil
	}
	mask := make([]bool, len(n.labels))
	hit := false
	for _, s := range cur {
		if !n.valid(s) {
			continue
		}
		for _, t := range n.trans[s][r] {
			for _, c := range n.closure[t] {
				mask[c] = true
				hit = true
			}
		}
	}
	if !hit {
		return nil
	}
	return collect(mask)
}

// Accepts reports whether any branch of cur is accepting.
func (n *NFA) Accepts(cur StateSet) bool {
	for _, s := range cur {
		if n.valid(s) && n.accepting[s] {
			return true
		}
	}
	return false
}

// Match resolves the pattern of cur: the first pattern, in acceptance map
// order, sharing a state with cur wins.
func (n *NFA) Match(cur StateSet) (PatternID, bool) {
	if !n.Accepts(cur) {
		return "", false
	}
	for _, p := range n.patterns {
		if intersects(p.States, []State(cur)) {
			return p.ID, true
		}
	}
	return "", true
}

// Evaluate replays word from the start closure.
func (n *NFA) Evaluate(word string) (PatternID, bool) {
	cur := n.Reset()
	for _, r := range word {
		cur = n.Step(cur, r)
		if len(cur) == 0 {
			return "", false
		}
	}
	return n.Match(cur)
}
