package automaton

import (
	"fmt"

	"lexforge/internal/syntax"
)

// Compile parses pattern and builds its DFA directly from the syntax tree.
func Compile(name, pattern string) (*DFA, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return FromTree(name, tree), nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(name, pattern string) *DFA {
	d, err := Compile(name, pattern)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTree runs the followpos construction: every DFA state is a set of
// positions, the start state is firstpos(root), and a state accepts when it
// holds the end-marker position. States are labelled S0, S1, ... in the
// order they are discovered.
func FromTree(name string, t *syntax.Tree) *DFA {
	d := newDFA(name, t.Alphabet())
	sets := newArena[syntax.Position]()
	intern := func(set syntax.PosSet) State {
		id, fresh := sets.intern(set)
		if fresh {
			d.addState(fmt.Sprintf("S%d", id), set.Contains(t.End))
		}
		return State(id)
	}

	d.start = intern(t.Root.Firstpos())
	for cur := 0; cur < sets.len(); cur++ {
		members := sets.set(cur)
		for _, a := range d.alphabet {
			var dest []syntax.Position
			for _, p := range members {
				if p != t.End && t.Symbol(p) == a {
					dest = merge(dest, t.Followpos(p))
				}
			}
			if len(dest) == 0 {
				continue
			}
			d.trans[cur][a] = intern(dest)
		}
	}
	d.patterns = []Pattern{{ID: PatternID(name), States: d.Accepting()}}
	return d
}
