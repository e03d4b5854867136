package scanner

import (
	"bytes"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"lexforge/internal/automaton"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newScanner(t *testing.T) *Scanner {
	t.Helper()
	n, err := automaton.Union("final",
		automaton.MustCompile("id", "(a|b|c)(a|b|c|0|1)*"),
		automaton.MustCompile("num", "(1)(0|1)*|0"),
	)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(automaton.Determinize(n), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func classes(toks []Token) []string {
	var out []string
	for _, t := range toks {
		out = append(out, t.Lexeme+":"+t.Class)
	}
	return out
}

func TestScanClassifies(t *testing.T) {
	s := newScanner(t)
	toks, err := s.Scan([]byte("abc 10\n  0 01\tc1\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"abc:id", "10:num", "0:num", "01:" + Unmatched, "c1:id"}
	if got := classes(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanPositions(t *testing.T) {
	s := newScanner(t)
	toks, err := s.Scan([]byte("ab   cd\nef"))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 {
		t.Fatalf("want 3 tokens, got %v", toks)
	}
	if toks[0].Line != toks[1].Line || toks[2].Line != toks[0].Line+1 {
		t.Fatalf("lines %d %d %d", toks[0].Line, toks[1].Line, toks[2].Line)
	}
	if toks[1].Column-toks[0].Column != 5 {
		t.Fatalf("columns %d %d", toks[0].Column, toks[1].Column)
	}
}

func TestScanControlSeparators(t *testing.T) {
	s := newScanner(t)
	toks, err := s.Scan([]byte("a\fb\vc 1"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a:id", "b:id", "c:id", "1:num"}
	if got := classes(toks); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScanEmpty(t *testing.T) {
	s := newScanner(t)
	toks, err := s.Scan([]byte(" \n\t "))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 0 {
		t.Fatalf("want no tokens, got %v", toks)
	}
}

func TestScanLogsUnmatched(t *testing.T) {
	var logs bytes.Buffer
	n, _ := automaton.Union("final", automaton.MustCompile("a", "a"))
	s, err := New(automaton.Determinize(n), slog.New(slog.NewTextHandler(&logs, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Scan([]byte("a zz")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "lexeme=zz") {
		t.Fatalf("warning not logged: %s", logs.String())
	}
}

func TestWriteTokens(t *testing.T) {
	var buf bytes.Buffer
	toks := []Token{{Lexeme: "abc", Class: "id"}, {Lexeme: "$", Class: Unmatched}}
	if err := WriteTokens(&buf, toks); err != nil {
		t.Fatal(err)
	}
	want := "<abc, id>\n<$, error!>\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
