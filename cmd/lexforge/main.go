package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"lexforge/internal/analyzer"
	"lexforge/internal/config"
	"lexforge/internal/scanner"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lexforge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML config file")
	patternsPath := fs.String("patterns", "", "pattern definitions file")
	sourcePath := fs.String("source", "", "source text to tokenize")
	outDir := fs.String("out", "", "output directory for automata and tables")
	tokensPath := fs.String("tokens", "", "token listing file (default <out>/tokens.txt)")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: lexforge [flags]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	cfg := config.FromEnv()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath, cfg); err != nil {
			fmt.Fprintf(stderr, "failed to load config: %v\n", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "patterns":
			cfg.Patterns = *patternsPath
		case "source":
			cfg.Source = *sourcePath
		case "out":
			cfg.OutDir = *outDir
		case "tokens":
			cfg.Tokens = *tokensPath
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	logger.Info("starting lexforge",
		"version", Version,
		"patterns", cfg.Patterns,
		"source", cfg.Source,
		"out_dir", cfg.OutDir,
	)

	res, err := analyzer.Run(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "lexforge: %v\n", err)
		return 1
	}
	unmatched := 0
	for _, t := range res.Tokens {
		if t.Class == scanner.Unmatched {
			unmatched++
		}
	}
	fmt.Fprintf(stdout, "%d patterns, %d states in %s, %d tokens (%d unmatched) written to %s\n",
		len(res.Automata), res.Final.Len(), res.Final.Name(), len(res.Tokens), unmatched, cfg.TokensPath())
	return 0
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
