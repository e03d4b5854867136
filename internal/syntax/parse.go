// Package syntax turns a regular expression into an augmented syntax tree
// annotated with nullable, firstpos, lastpos and followpos.
//
// Supported operators are alternation '|', Kleene star '*', one-or-more '+',
// optional '?' and grouping parentheses. Any other rune is a literal symbol;
// a backslash makes the following rune literal. '#' is reserved for the end
// marker appended to every pattern.
package syntax

import "fmt"

// Parse builds the tree for "(" pattern ")#".
func Parse(pattern string) (*Tree, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	postfix, err := toPostfix(pattern, insertConcat(toks))
	if err != nil {
		return nil, err
	}
	root, err := build(pattern, postfix)
	if err != nil {
		return nil, err
	}
	return newTree(pattern, root), nil
}

// MustParse is like Parse but panics on a malformed pattern.
func MustParse(pattern string) *Tree {
	t, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// insertConcat makes concatenation explicit: a concat token goes between a
// and b unless a opens a group or alternative, or b closes one or is a
// postfix operator.
func insertConcat(toks []token) []token {
	out := make([]token, 0, 2*len(toks))
	for i, a := range toks {
		out = append(out, a)
		if i+1 == len(toks) {
			break
		}
		b := toks[i+1]
		if a.typ == tLParen || a.typ == tUnion {
			continue
		}
		switch b.typ {
		case tUnion, tRParen, tStar, tPlus, tQMark, tConcat:
			continue
		}
		out = append(out, token{typ: tConcat, off: -1})
	}
	return out
}

func precedence(t tokenType) int {
	switch t {
	case tStar, tPlus, tQMark:
		return 3
	case tConcat:
		return 2
	case tUnion:
		return 1
	default:
		return 0
	}
}

// toPostfix is a shunting-yard pass; all operators are left-associative.
func toPostfix(pattern string, toks []token) ([]token, error) {
	out := make([]token, 0, len(toks))
	var stack []token
	for _, tok := range toks {
		switch tok.typ {
		case tSymbol, tEnd:
			out = append(out, tok)
		case tLParen:
			stack = append(stack, tok)
		case tRParen:
			for len(stack) > 0 && stack[len(stack)-1].typ != tLParen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, malformed(pattern, tok.off, "unbalanced ')'")
			}
			stack = stack[:len(stack)-1]
		default:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.typ == tLParen || precedence(top.typ) < precedence(tok.typ) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.typ == tLParen {
			return nil, malformed(pattern, top.off, "unbalanced '('")
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return out, nil
}

// build evaluates the postfix stream on an operand stack, numbering leaves
// from 1 in the order they appear.
func build(pattern string, postfix []token) (*Node, error) {
	var stack []*Node
	pos := Position(1)
	pop := func(tok token) (*Node, error) {
		if len(stack) == 0 {
			return nil, malformed(pattern, tok.off, fmt.Sprintf("operator '%s' is missing an operand", tok.typ))
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}
	for _, tok := range postfix {
		switch tok.typ {
		case tSymbol:
			stack = append(stack, &Node{Kind: Leaf, Symbol: tok.ch, Pos: pos})
			pos++
		case tEnd:
			stack = append(stack, &Node{Kind: Leaf, Symbol: EndMarker, Pos: pos})
			pos++
		case tStar, tPlus:
			child, err := pop(tok)
			if err != nil {
				return nil, err
			}
			kind := Star
			if tok.typ == tPlus {
				kind = Plus
			}
			stack = append(stack, &Node{Kind: kind, Left: child})
		case tQMark:
			child, err := pop(tok)
			if err != nil {
				return nil, err
			}
			child.Optional = true
			stack = append(stack, child)
		case tConcat, tUnion:
			right, err := pop(tok)
			if err != nil {
				return nil, err
			}
			left, err := pop(tok)
			if err != nil {
				return nil, err
			}
			kind := Concat
			if tok.typ == tUnion {
				kind = Alternation
			}
			stack = append(stack, &Node{Kind: kind, Left: left, Right: right})
		default:
			return nil, malformed(pattern, tok.off, fmt.Sprintf("unexpected token '%s'", tok.typ))
		}
	}
	if len(stack) != 1 {
		return nil, malformed(pattern, -1, fmt.Sprintf("expression reduces to %d operands", len(stack)))
	}
	return stack[0], nil
}
