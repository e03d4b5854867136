package automaton

import "fmt"

// labelIndex resolves state labels for both builders.
type labelIndex struct {
	index    map[string]State
	patterns []Pattern
}

func (li *labelIndex) lookup(label string) (State, bool) {
	s, ok := li.index[label]
	return s, ok
}

// Builder assembles a DFA state by state. Transitions are checked as they
// are added, so a Builder never produces a non-deterministic automaton.
type Builder struct {
	labelIndex
	d *DFA
}

// NewBuilder starts an empty DFA called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		labelIndex: labelIndex{index: make(map[string]State)},
		d:          newDFA(name, nil),
	}
}

// AddSymbol extends the alphabet.
func (b *Builder) AddSymbol(rs ...rune) {
	b.d.alphabet = sortedRunes(append(b.d.alphabet, rs...))
}

// AddState adds a state named label.
func (b *Builder) AddState(label string, accepting bool) (State, error) {
	if _, ok := b.index[label]; ok {
		return Dead, fmt.Errorf("%w: %q", ErrDuplicateState, label)
	}
	s := b.d.addState(label, accepting)
	b.index[label] = s
	return s, nil
}

// Ensure returns the state named label, adding a non-accepting one if it
// does not exist yet.
func (b *Builder) Ensure(label string) State {
	if s, ok := b.index[label]; ok {
		return s
	}
	s := b.d.addState(label, false)
	b.index[label] = s
	return s
}

// Lookup returns the state named label.
func (b *Builder) Lookup(label string) (State, bool) { return b.lookup(label) }

// SetAccepting marks s as accepting.
func (b *Builder) SetAccepting(s State) error {
	if !b.d.valid(s) {
		return fmt.Errorf("%w: %d", ErrUnknownState, s)
	}
	b.d.accepting[s] = true
	return nil
}

// AddTransition records from --r--> to. Re-adding the same edge is a no-op;
// a second destination for (from, r) fails with ErrNondeterministic. r joins
// the alphabet if it is not already a member.
func (b *Builder) AddTransition(from State, r rune, to State) error {
	if !b.d.valid(from) || !b.d.valid(to) {
		return fmt.Errorf("%w: %d --%q--> %d", ErrUnknownState, from, r, to)
	}
	if prev, ok := b.d.trans[from][r]; ok && prev != to {
		return fmt.Errorf("%w: (%s, %q) -> %s and %s", ErrNondeterministic,
			b.d.labels[from], r, b.d.labels[prev], b.d.labels[to])
	}
	b.d.trans[from][r] = to
	b.AddSymbol(r)
	return nil
}

// SetStart makes s the start state.
func (b *Builder) SetStart(s State) error {
	if !b.d.valid(s) {
		return fmt.Errorf("%w: %d", ErrUnknownState, s)
	}
	b.d.start = s
	return nil
}

// MapPattern attributes states to pattern id. Patterns are looked up in the
// order they are first mapped.
func (b *Builder) MapPattern(id PatternID, states ...State) error {
	for _, s := range states {
		if !b.d.valid(s) {
			return fmt.Errorf("%w: %d", ErrUnknownState, s)
		}
	}
	b.patterns = addPattern(b.patterns, id, states)
	return nil
}

// Build returns the finished DFA. Without any MapPattern call the automaton
// maps its own name to all of its accepting states. The Builder must not be
// used afterwards.
func (b *Builder) Build() (*DFA, error) {
	if !b.d.valid(b.d.start) {
		return nil, fmt.Errorf("automaton %q: %w", b.d.name, ErrNoStart)
	}
	d := b.d
	d.patterns = b.patterns
	if len(d.patterns) == 0 {
		d.patterns = []Pattern{{ID: PatternID(d.name), States: d.Accepting()}}
	}
	b.d = nil
	return d, nil
}

// NFABuilder assembles an NFA with epsilon edges.
type NFABuilder struct {
	labelIndex
	n *NFA
}

// NewNFABuilder starts an empty NFA called name.
func NewNFABuilder(name string) *NFABuilder {
	return &NFABuilder{
		labelIndex: labelIndex{index: make(map[string]State)},
		n:          newNFA(name),
	}
}

// AddSymbol extends the alphabet.
func (b *NFABuilder) AddSymbol(rs ...rune) { b.n.addSymbols(rs...) }

// AddState adds a state named label.
func (b *NFABuilder) AddState(label string, accepting bool) (State, error) {
	if _, ok := b.index[label]; ok {
		return Dead, fmt.Errorf("%w: %q", ErrDuplicateState, label)
	}
	s := b.n.addState(label, accepting)
	b.index[label] = s
	return s, nil
}

// Lookup returns the state named label.
func (b *NFABuilder) Lookup(label string) (State, bool) { return b.lookup(label) }

// AddTransition adds to to the destinations of (from, r).
func (b *NFABuilder) AddTransition(from State, r rune, to State) error {
	if !b.n.valid(from) || !b.n.valid(to) {
		return fmt.Errorf("%w: %d --%q--> %d", ErrUnknownState, from, r, to)
	}
	b.n.addTransition(from, r, to)
	b.n.addSymbols(r)
	return nil
}

// AddEpsilon adds an edge that consumes no input.
func (b *NFABuilder) AddEpsilon(from, to State) error {
	if !b.n.valid(from) || !b.n.valid(to) {
		return fmt.Errorf("%w: %d --ε--> %d", ErrUnknownState, from, to)
	}
	b.n.addEpsilon(from, to)
	return nil
}

// SetStart makes s the start state.
func (b *NFABuilder) SetStart(s State) error {
	if !b.n.valid(s) {
		return fmt.Errorf("%w: %d", ErrUnknownState, s)
	}
	b.n.start = s
	return nil
}

// MapPattern attributes states to pattern id, in first-mapped order.
func (b *NFABuilder) MapPattern(id PatternID, states ...State) error {
	for _, s := range states {
		if !b.n.valid(s) {
			return fmt.Errorf("%w: %d", ErrUnknownState, s)
		}
	}
	b.patterns = addPattern(b.patterns, id, states)
	return nil
}

// Build computes the epsilon closures and returns the NFA. Without any
// MapPattern call the automaton maps its own name to its accepting states.
func (b *NFABuilder) Build() (*NFA, error) {
	n := b.n
	if !n.valid(n.start) {
		return nil, fmt.Errorf("automaton %q: %w", n.name, ErrNoStart)
	}
	n.patterns = b.patterns
	if len(n.patterns) == 0 {
		var acc []State
		for s, ok := range n.accepting {
			if ok {
				acc = append(acc, State(s))
			}
		}
		n.patterns = []Pattern{{ID: PatternID(n.name), States: acc}}
	}
	n.finish()
	b.n = nil
	return n, nil
}
