package syntax

import (
	"slices"
	"strings"
)

// EndMarker is the symbol carried by the synthetic leaf appended to every
// pattern. The end leaf is identified by Tree.End, never by its symbol.
const EndMarker = '#'

// Position identifies one leaf of an augmented syntax tree. Positions start
// at 1 and are assigned left to right.
type Position int

// PosSet is a sorted set of positions. Values handed out by Node and Tree
// are shared and must not be modified.
type PosSet []Position

// Contains reports whether p is in the set.
func (s PosSet) Contains(p Position) bool {
	_, ok := slices.BinarySearch(s, p)
	return ok
}

func union(a, b PosSet) PosSet {
	out := make(PosSet, 0, len(a)+len(b))
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

// Kind tags the variant of a Node.
type Kind int

const (
	Leaf Kind = iota
	Concat
	Alternation
	Star
	Plus
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Concat:
		return "cat"
	case Alternation:
		return "alt"
	case Star:
		return "star"
	case Plus:
		return "plus"
	}
	return "unknown"
}

// Node is one vertex of the syntax tree. Star and Plus keep their operand in
// Left.
type Node struct {
	Kind     Kind
	Left     *Node
	Right    *Node
	Symbol   rune
	Pos      Position
	Optional bool

	nullable bool
	first    PosSet
	last     PosSet
}

func (n *Node) Nullable() bool  { return n.nullable }
func (n *Node) Firstpos() PosSet { return n.first }
func (n *Node) Lastpos() PosSet  { return n.last }

// String renders the subtree in prefix form, e.g. cat(a,star(alt(a,b))).
// Optional nodes carry a trailing '?'.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case Leaf:
		b.WriteRune(n.Symbol)
	case Concat, Alternation:
		b.WriteString(n.Kind.String())
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteByte(',')
		n.Right.write(b)
		b.WriteByte(')')
	case Star, Plus:
		b.WriteString(n.Kind.String())
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteByte(')')
	default:
		panic("syntax: unknown node kind")
	}
	if n.Optional {
		b.WriteByte('?')
	}
}

// annotate fills nullable, firstpos and lastpos bottom-up.
func annotate(n *Node) {
	switch n.Kind {
	case Leaf:
		n.nullable = n.Optional
		n.first = PosSet{n.Pos}
		n.last = n.first
	case Concat:
		annotate(n.Left)
		annotate(n.Right)
		l, r := n.Left, n.Right
		n.nullable = (l.nullable && r.nullable) || n.Optional
		n.first = l.first
		if l.nullable {
			n.first = union(l.first, r.first)
		}
		n.last = r.last
		if r.nullable {
			n.last = union(l.last, r.last)
		}
	case Alternation:
		annotate(n.Left)
		annotate(n.Right)
		n.nullable = n.Left.nullable || n.Right.nullable || n.Optional
		n.first = union(n.Left.first, n.Right.first)
		n.last = union(n.Left.last, n.Right.last)
	case Star:
		annotate(n.Left)
		n.nullable = true
		n.first = n.Left.first
		n.last = n.Left.last
	case Plus:
		annotate(n.Left)
		n.nullable = n.Left.nullable || n.Optional
		n.first = n.Left.first
		n.last = n.Left.last
	default:
		panic("syntax: unknown node kind")
	}
}

// followpos adds the rules contributed by n and its subtree to table.
// Existing entries are only ever extended.
func followpos(n *Node, table map[Position]PosSet) {
	switch n.Kind {
	case Leaf:
	case Concat:
		followpos(n.Left, table)
		followpos(n.Right, table)
		for _, p := range n.Left.last {
			table[p] = union(table[p], n.Right.first)
		}
	case Alternation:
		followpos(n.Left, table)
		followpos(n.Right, table)
	case Star, Plus:
		followpos(n.Left, table)
		for _, p := range n.Left.last {
			table[p] = union(table[p], n.Left.first)
		}
	default:
		panic("syntax: unknown node kind")
	}
}

// Tree is an annotated, augmented syntax tree. It is immutable after Parse.
type Tree struct {
	Pattern string
	Root    *Node
	// End is the position of the end-marker leaf.
	End Position

	symbols []rune // symbols[p-1] is the symbol at position p
	follow  map[Position]PosSet
}

func newTree(pattern string, root *Node) *Tree {
	t := &Tree{Pattern: pattern, Root: root}
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == Leaf {
			t.symbols = append(t.symbols, n.Symbol)
			t.End = n.Pos
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	annotate(root)
	t.follow = t.ComputeFollowpos()
	return t
}

// Positions returns the number of leaves, end marker included.
func (t *Tree) Positions() int { return len(t.symbols) }

// Symbol returns the symbol carried by position p.
func (t *Tree) Symbol(p Position) rune { return t.symbols[p-1] }

// Followpos returns followpos(p); nil when nothing can follow p.
func (t *Tree) Followpos(p Position) PosSet { return t.follow[p] }

// FollowposTable returns a copy of the followpos table computed at parse time.
func (t *Tree) FollowposTable() map[Position]PosSet {
	out := make(map[Position]PosSet, len(t.follow))
	for p, s := range t.follow {
		out[p] = slices.Clone(s)
	}
	return out
}

// ComputeFollowpos derives the followpos table from the annotated tree.
func (t *Tree) ComputeFollowpos() map[Position]PosSet {
	table := make(map[Position]PosSet)
	followpos(t.Root, table)
	return table
}

// Alphabet returns the sorted distinct symbols of every leaf except the end
// marker.
func (t *Tree) Alphabet() []rune {
	var out []rune
	for i, r := range t.symbols {
		if Position(i+1) == t.End {
			continue
		}
		out = append(out, r)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (t *Tree) String() string { return t.Root.String() }
