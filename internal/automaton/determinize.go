package automaton

import "fmt"

// Determinize runs the subset construction over n. Each reachable set of NFA
// states becomes one DFA state labelled S0, S1, ... in discovery order. A
// state accepts when its set meets an accepting NFA state, and belongs to
// pattern p when its set meets p's states; patterns keep n's order. Empty
// destination sets are not recorded.
func Determinize(n *NFA) *DFA {
	d := newDFA(n.name, n.alphabet)
	sets := newArena[State]()
	intern := func(set StateSet) State {
		id, fresh := sets.intern(set)
		if fresh {
			d.addState(fmt.Sprintf("S%d", id), n.Accepts(set))
		}
		return State(id)
	}

	d.start = intern(n.Reset())
	for cur := 0; cur < sets.len(); cur++ {
		members := sets.set(cur)
		for _, a := range d.alphabet {
			dest := n.Step(members, a)
			if len(dest) == 0 {
				continue
			}
			d.trans[cur][a] = intern(dest)
		}
	}

	for _, p := range n.patterns {
		var states []State
		for id := 0; id < sets.len(); id++ {
			if intersects(sets.set(id), p.States) {
				states = append(states, State(id))
			}
		}
		d.patterns = append(d.patterns, Pattern{ID: p.ID, States: states})
	}
	return d
}
