package patterns

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadClass = errors.New("bad bracket group")

// operators are the runes that must be escaped to stand for themselves.
const operators = `|*+?()\#[]`

// ExpandClasses rewrites every bracket group of expr as a parenthesised
// alternation, so "[a-c]" becomes "(a|b|c)". Members keep their first
// occurrence order and are escaped when they are operators. Outside groups,
// `\x` is copied untouched; inside them it makes x a plain member.
func ExpandClasses(expr string) (string, error) {
	rs := []rune(expr)
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '\\':
			b.WriteRune('\\')
			if i+1 < len(rs) {
				i++
				b.WriteRune(rs[i])
			}
		case '[':
			members, next, err := readClass(rs, i)
			if err != nil {
				return "", err
			}
			writeAlternation(&b, members)
			i = next
		default:
			b.WriteRune(rs[i])
		}
	}
	return b.String(), nil
}

// readClass parses the group opening at rs[open] and returns its members and
// the index of the closing bracket.
func readClass(rs []rune, open int) ([]rune, int, error) {
	var members []rune
	seen := make(map[rune]bool)
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			members = append(members, r)
		}
	}

	i := open + 1
	for i < len(rs) && rs[i] != ']' {
		lo := rs[i]
		if lo == '\\' {
			if i+1 >= len(rs) {
				break
			}
			i++
			lo = rs[i]
		}
		i++
		if i+1 < len(rs) && rs[i] == '-' && rs[i+1] != ']' {
			hi := rs[i+1]
			if hi < lo {
				return nil, 0, fmt.Errorf("%w: reversed range %c-%c at offset %d", ErrBadClass, lo, hi, open)
			}
			for r := lo; r <= hi; r++ {
				add(r)
			}
			i += 2
			continue
		}
		add(lo)
	}
	if i >= len(rs) || rs[i] != ']' {
		return nil, 0, fmt.Errorf("%w: unterminated group at offset %d", ErrBadClass, open)
	}
	if len(members) == 0 {
		return nil, 0, fmt.Errorf("%w: empty group at offset %d", ErrBadClass, open)
	}
	return members, i, nil
}

func writeAlternation(b *strings.Builder, members []rune) {
	b.WriteByte('(')
	for i, r := range members {
		if i > 0 {
			b.WriteByte('|')
		}
		if strings.ContainsRune(operators, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte(')')
}
