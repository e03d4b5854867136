package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"

	"lexforge/internal/analyzer"
	"lexforge/internal/automaton"
	"lexforge/internal/patterns"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("regexviz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pattern := fs.String("re", "", "single pattern, compiled directly to a DFA")
	defsFile := fs.String("patterns", "", "definitions file, composed into one automaton")
	nfaFlag := fs.Bool("nfa", false, "with -patterns: export the union NFA instead of the determinized DFA")
	tableFlag := fs.Bool("table", false, "print the transition table instead of DOT (DFA only)")
	outFile := fs.String("o", "-", "output file, - for stdout")
	pngFlag := fs.Bool("png", false, "render PNG via dot -Tpng")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if (*pattern == "") == (*defsFile == "") {
		fmt.Fprintln(stderr, "usage: regexviz (-re <pattern> | -patterns <file> [-nfa]) [-table] [-o file] [-png]")
		fs.PrintDefaults()
		return 2
	}

	var graph interface{}
	switch {
	case *pattern != "":
		d, err := automaton.Compile("re", *pattern)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		graph = d
	default:
		defs, err := patterns.ParseFile(*defsFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		dfas, final, err := analyzer.Compile(defs, nil)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		graph = final
		if *nfaFlag {
			n, err := automaton.Union(analyzer.FinalName, dfas...)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			graph = n
		}
	}

	var buf bytes.Buffer
	if *tableFlag {
		d, ok := graph.(*automaton.DFA)
		if !ok {
			fmt.Fprintln(stderr, "-table needs a DFA")
			return 2
		}
		if err := automaton.WriteTable(&buf, d); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		automaton.ExportDOT(&buf, graph)
	}

	if *pngFlag {
		if *outFile == "-" {
			fmt.Fprintln(stderr, "-png needs -o")
			return 2
		}
		cmd := exec.Command("dot", "-Tpng", "-o", *outFile)
		cmd.Stdin = bytes.NewReader(buf.Bytes())
		cmd.Stderr = stderr
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(stderr, "dot failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "PNG written to %s\n", *outFile)
		return 0
	}

	if *outFile == "-" {
		_, _ = io.Copy(stdout, &buf)
		return 0
	}
	if err := os.WriteFile(*outFile, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(stderr, "cannot write %s: %v\n", *outFile, err)
		return 1
	}
	fmt.Fprintf(stdout, "written to %s\n", *outFile)
	return 0
}
