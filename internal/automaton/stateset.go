package automaton

import "strconv"

// arena interns sorted sets. Each distinct set gets the next index, so the
// index order is the discovery order and the arena doubles as the BFS queue
// of the subset constructions.
type arena[T ~int] struct {
	index map[string]int
	sets  [][]T
}

func newArena[T ~int]() *arena[T] {
	return &arena[T]{index: make(map[string]int)}
}

// intern returns the index of set, adding it if unseen. set must be sorted
// and free of duplicates; the arena keeps it.
func (a *arena[T]) intern(set []T) (int, bool) {
	k := setKey(set)
	if id, ok := a.index[k]; ok {
		return id, false
	}
	id := len(a.sets)
	a.index[k] = id
	a.sets = append(a.sets, set)
	return id, true
}

func (a *arena[T]) set(id int) []T { return a.sets[id] }

func (a *arena[T]) len() int { return len(a.sets) }

func setKey[T ~int](set []T) string {
	buf := make([]byte, 0, 4*len(set))
	for i, v := range set {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return string(buf)
}
