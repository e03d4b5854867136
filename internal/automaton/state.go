// Package automaton holds the finite automata used by the scanner: DFAs
// built directly from syntax trees, epsilon NFAs built by Union, and the
// subset construction that turns the latter back into a DFA.
//
// Automata are immutable once built. Evaluation threads an explicit cursor
// (a State for a DFA, a StateSet for an NFA) through Reset and Step, so a
// single automaton can be evaluated from several goroutines at once.
package automaton

import (
	"errors"
	"slices"
)

// State indexes a state of one automaton.
type State int

// Dead is the DFA cursor after a missing transition. It never accepts and
// every step from it stays Dead.
const Dead State = -1

// PatternID names one source pattern of a composed automaton.
type PatternID string

// Pattern maps a PatternID to the states that accept on its behalf.
type Pattern struct {
	ID     PatternID
	States []State
}

// Transition is one deterministic edge.
type Transition struct {
	From   State
	Symbol rune
	To     State
}

// Recognizer classifies whole words.
type Recognizer interface {
	// Evaluate reports whether word is accepted and, if so, which pattern
	// claims it. The PatternID may be empty when an accepting state belongs
	// to no pattern.
	Evaluate(word string) (PatternID, bool)
}

var (
	ErrEmptyUnion       = errors.New("union needs at least one automaton")
	ErrNondeterministic = errors.New("transition already leads to a different state")
	ErrUnknownState     = errors.New("unknown state")
	ErrDuplicateState   = errors.New("duplicate state label")
	ErrNoStart          = errors.New("start state not set")
)

// StateSet is a sorted set of states; it is the NFA evaluation cursor. An
// empty set is the stuck cursor.
type StateSet []State

// Contains reports whether s is a member.
func (ss StateSet) Contains(s State) bool {
	_, ok := slices.BinarySearch(ss, s)
	return ok
}

// intersects reports whether two sorted sets share a member.
func intersects[T ~int](a, b []T) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			return true
		}
	}
	return false
}

// merge returns the sorted union of two sorted sets.
func merge[T ~int](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// addPattern appends states to the pattern named id, creating it at the end
// of the list if needed, and keeps the state list sorted and unique.
func addPattern(patterns []Pattern, id PatternID, states []State) []Pattern {
	sorted := slices.Clone(states)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for i := range patterns {
		if patterns[i].ID == id {
			patterns[i].States = merge(patterns[i].States, sorted)
			return patterns
		}
	}
	return append(patterns, Pattern{ID: id, States: sorted})
}

func clonePatterns(patterns []Pattern) []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = Pattern{ID: p.ID, States: slices.Clone(p.States)}
	}
	return out
}

// sortedRunes returns a sorted, duplicate-free copy of rs.
func sortedRunes(rs []rune) []rune {
	out := slices.Clone(rs)
	slices.Sort(out)
	return slices.Compact(out)
}
