package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

// Config configures one analyzer run.
type Config struct {
	// Patterns is the pattern-definitions file.
	Patterns string `yaml:"patterns"`

	// Source is the text to tokenize.
	Source string `yaml:"source"`

	// OutDir receives the automata/ and tables/ directories.
	OutDir string `yaml:"out_dir"`

	// Tokens is the token listing; empty means <OutDir>/tokens.txt.
	Tokens string `yaml:"tokens"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Patterns: "patterns.txt",
		Source:   "source.txt",
		OutDir:   "out",
		LogLevel: "info",
	}
}

// FromEnv returns Default overridden by the LEXFORGE_* variables that are
// set.
func FromEnv() Config {
	d := Default()
	return Config{
		Patterns: getEnv("LEXFORGE_PATTERNS", d.Patterns),
		Source:   getEnv("LEXFORGE_SOURCE", d.Source),
		OutDir:   getEnv("LEXFORGE_OUT_DIR", d.OutDir),
		Tokens:   getEnv("LEXFORGE_TOKENS", d.Tokens),
		LogLevel: getEnv("LEXFORGE_LOG_LEVEL", d.LogLevel),
	}
}

// Load reads the YAML file at path over base; keys missing from the file
// keep base's values.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	cfg := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every required setting is present.
func (c Config) Validate() error {
	switch {
	case c.Patterns == "":
		return fmt.Errorf("%w: patterns file not set", ErrInvalid)
	case c.Source == "":
		return fmt.Errorf("%w: source file not set", ErrInvalid)
	case c.OutDir == "":
		return fmt.Errorf("%w: output directory not set", ErrInvalid)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

func (c Config) AutomataDir() string { return filepath.Join(c.OutDir, "automata") }

func (c Config) TablesDir() string { return filepath.Join(c.OutDir, "tables") }

func (c Config) TokensPath() string {
	if c.Tokens != "" {
		return c.Tokens
	}
	return filepath.Join(c.OutDir, "tokens.txt")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
