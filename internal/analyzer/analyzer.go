// Package analyzer runs the whole pipeline: pattern definitions are compiled
// into one automaton each, joined by Union, determinized, and used to
// classify the words of a source file.
package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"lexforge/internal/automaton"
	"lexforge/internal/config"
	"lexforge/internal/patterns"
	"lexforge/internal/persist"
	"lexforge/internal/scanner"
)

// FinalName names the composed automaton.
const FinalName = "final"

// ErrReservedName is returned for a pattern named FinalName.
var ErrReservedName = errors.New("pattern name is reserved")

// Result holds everything a run produced.
type Result struct {
	Definitions []patterns.Definition
	Automata    []*automaton.DFA
	Final       *automaton.DFA
	Tokens      []scanner.Token
}

// Compile builds one DFA per definition and the determinized union of all of
// them, in definition order.
func Compile(defs []patterns.Definition, logger *slog.Logger) ([]*automaton.DFA, *automaton.DFA, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dfas := make([]*automaton.DFA, 0, len(defs))
	for _, def := range defs {
		if def.Name == FinalName {
			return nil, nil, fmt.Errorf("pattern %q (line %d): %w", def.Name, def.Line, ErrReservedName)
		}
		d, err := automaton.Compile(def.Name, def.Expr)
		if err != nil {
			return nil, nil, fmt.Errorf("pattern %q (line %d): %w", def.Name, def.Line, err)
		}
		logger.Debug("compiled pattern", "name", def.Name, "states", d.Len(), "symbols", len(d.Alphabet()))
		dfas = append(dfas, d)
	}

	n, err := automaton.Union(FinalName, dfas...)
	if err != nil {
		return nil, nil, err
	}
	final := automaton.Determinize(n)
	logger.Info("composed automaton", "patterns", len(dfas), "nfa_states", n.Len(), "states", final.Len())
	return dfas, final, nil
}

// Run executes the pipeline described by cfg.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	defs, err := patterns.ParseFile(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded patterns", "file", cfg.Patterns, "count", len(defs))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dfas, final, err := Compile(defs, logger)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store := persist.Store{AutomataDir: cfg.AutomataDir(), TablesDir: cfg.TablesDir()}
	for _, d := range append(slices.Clip(dfas), final) {
		if err := store.Save(d); err != nil {
			return nil, fmt.Errorf("save automaton %q: %w", d.Name(), err)
		}
	}
	logger.Info("saved automata", "dir", store.AutomataDir, "tables", store.TablesDir)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(cfg.Source)
	if err != nil {
		return nil, err
	}
	sc, err := scanner.New(final, logger)
	if err != nil {
		return nil, err
	}
	toks, err := sc.Scan(src)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", cfg.Source, err)
	}

	var buf bytes.Buffer
	if err := scanner.WriteTokens(&buf, toks); err != nil {
		return nil, err
	}
	out := cfg.TokensPath()
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	logger.Info("wrote tokens", "file", out, "count", len(toks))

	return &Result{Definitions: defs, Automata: dfas, Final: final, Tokens: toks}, nil
}
