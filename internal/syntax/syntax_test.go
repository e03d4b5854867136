package syntax

import (
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, pat string) *Tree {
	t.Helper()
	tree, err := Parse(pat)
	if err != nil {
		t.Fatalf("parse %q: %v", pat, err)
	}
	return tree
}

func TestLexerTokens(t *testing.T) {
	l := newLexer(`a\*|(b)+?`)
	want := []tokenType{tSymbol, tSymbol, tUnion, tLParen, tSymbol, tRParen, tPlus, tQMark, tEOF}
	for i, typ := range want {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("tok %d: %v", i, err)
		}
		if tok.typ != typ {
			t.Fatalf("tok %d want %v got %v", i, typ, tok.typ)
		}
	}
}

func TestLexerEscapedSymbol(t *testing.T) {
	l := newLexer(`\*`)
	tok, err := l.next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.typ != tSymbol || tok.ch != '*' {
		t.Fatalf("want literal '*', got %v %q", tok.typ, tok.ch)
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "cat(a,#)"},
		{"ab", "cat(cat(a,b),#)"},
		{"a|bc*", "cat(alt(a,cat(b,star(c))),#)"},
		{"a(a|b)*", "cat(cat(a,star(alt(a,b))),#)"},
		{"a?(a|b)+", "cat(cat(a?,plus(alt(a,b))),#)"},
		{"(ab)?c", "cat(cat(cat(a,b)?,c),#)"},
		{"a|b|c", "cat(alt(alt(a,b),c),#)"},
		{`\#x`, "cat(cat(#,x),#)"},
	}
	for _, tt := range tests {
		got := mustParse(t, tt.pattern).String()
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.pattern, got, tt.want)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, pat := range []string{"", "(a", "a)", "*a", "a|", "|a", "a||b", "()", "(|)", "a#b", "+"} {
		_, err := Parse(pat)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", pat)
			continue
		}
		if !errors.Is(err, ErrMalformedExpression) {
			t.Errorf("Parse(%q) error %v does not wrap ErrMalformedExpression", pat, err)
		}
		var serr *Error
		if !errors.As(err, &serr) || serr.Pattern != pat {
			t.Errorf("Parse(%q) error %#v lacks pattern", pat, err)
		}
	}
}

func TestPositionsAreSequential(t *testing.T) {
	tree := mustParse(t, "(a|b)*abb")
	if tree.Positions() != 6 || tree.End != 6 {
		t.Fatalf("positions=%d end=%d, want 6 and 6", tree.Positions(), tree.End)
	}
	want := []rune{'a', 'b', 'a', 'b', 'b', EndMarker}
	for i, r := range want {
		if got := tree.Symbol(Position(i + 1)); got != r {
			t.Errorf("symbol(%d) = %q, want %q", i+1, got, r)
		}
	}
	if got := string(tree.Alphabet()); got != "ab" {
		t.Errorf("alphabet = %q, want \"ab\"", got)
	}
}

// (a|b)*abb# is the classic worked example; its followpos table is known.
func TestFollowposTextbook(t *testing.T) {
	tree := mustParse(t, "(a|b)*abb")
	want := map[Position]PosSet{
		1: {1, 2, 3},
		2: {1, 2, 3},
		3: {4},
		4: {5},
		5: {6},
	}
	if got := tree.FollowposTable(); !reflect.DeepEqual(got, want) {
		t.Fatalf("followpos = %v, want %v", got, want)
	}
	if got := tree.Root.Firstpos(); !reflect.DeepEqual(got, PosSet{1, 2, 3}) {
		t.Errorf("firstpos(root) = %v", got)
	}
	if got := tree.Root.Lastpos(); !reflect.DeepEqual(got, PosSet{6}) {
		t.Errorf("lastpos(root) = %v", got)
	}
}

func TestNullableRules(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"a", false},
		{"a?", true},
		{"a*", true},
		{"a+", false},
		{"a+?", true},
		{"a|b*", true},
		{"a|b", false},
		{"(ab)?", true},
		{"a*b*", true},
		{"a*b", false},
		{"(a*)+", true},
		{"(a?b?)+", true},
		{"(ab?)+", false},
	}
	for _, tt := range tests {
		// Root is cat(expr, #); the expression is its left child.
		expr := mustParse(t, tt.pattern).Root.Left
		if expr.Nullable() != tt.want {
			t.Errorf("nullable(%q) = %v, want %v", tt.pattern, expr.Nullable(), tt.want)
		}
	}
}

func TestFirstLastposOptional(t *testing.T) {
	// a?(a|b)+ : positions a1 a2 b3 #4
	tree := mustParse(t, "a?(a|b)+")
	expr := tree.Root.Left
	if got := expr.Firstpos(); !reflect.DeepEqual(got, PosSet{1, 2, 3}) {
		t.Errorf("firstpos = %v", got)
	}
	if got := expr.Lastpos(); !reflect.DeepEqual(got, PosSet{2, 3}) {
		t.Errorf("lastpos = %v", got)
	}
	if got := tree.Followpos(1); !reflect.DeepEqual(got, PosSet{2, 3}) {
		t.Errorf("followpos(1) = %v", got)
	}
	if got := tree.Followpos(2); !reflect.DeepEqual(got, PosSet{2, 3, 4}) {
		t.Errorf("followpos(2) = %v", got)
	}
}

func TestFollowposIdempotent(t *testing.T) {
	for _, pat := range []string{"a", "(a|b)*abb", "a?(a|b)+", "((ab)*|c+)?d", "x(y(z|w)*)+"} {
		tree := mustParse(t, pat)
		first := tree.ComputeFollowpos()
		second := tree.ComputeFollowpos()
		if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(first, tree.FollowposTable()) {
			t.Errorf("followpos of %q is not stable", pat)
		}
	}
}

func TestPosSetUnion(t *testing.T) {
	got := union(PosSet{1, 3, 5}, PosSet{2, 3, 6})
	if !reflect.DeepEqual(got, PosSet{1, 2, 3, 5, 6}) {
		t.Fatalf("union = %v", got)
	}
	if !got.Contains(5) || got.Contains(4) {
		t.Fatalf("Contains misbehaves on %v", got)
	}
}

func FuzzParse(f *testing.F) {
	f.Add("a(a|b)*")
	f.Add("a?(a|b)+")
	f.Add("((")
	f.Add(`\#|#`)
	f.Add("")

	f.Fuzz(func(t *testing.T, pattern string) {
		tree, err := Parse(pattern)
		if err != nil {
			if !errors.Is(err, ErrMalformedExpression) {
				t.Fatalf("unexpected error type: %v", err)
			}
			return
		}
		if tree.Positions() == 0 || tree.End != Position(tree.Positions()) {
			t.Fatalf("end marker is not the last position in %q", pattern)
		}
	})
}
