package persist

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"lexforge/internal/automaton"
)

// Store keeps automata under AutomataDir and their rendered tables under
// TablesDir.
type Store struct {
	AutomataDir string
	TablesDir   string
}

func (s Store) AutomatonPath(name string) string {
	return filepath.Join(s.AutomataDir, name+".txt")
}

func (s Store) TablePath(name string) string {
	return filepath.Join(s.TablesDir, name+"_table.txt")
}

func (s Store) DOTPath(name string) string {
	return filepath.Join(s.TablesDir, name+".dot")
}

// Save writes d as <name>.txt, <name>_table.txt and <name>.dot, creating the
// directories if needed.
func (s Store) Save(d *automaton.DFA) error {
	for _, dir := range []string{s.AutomataDir, s.TablesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return err
	}
	if err := os.WriteFile(s.AutomatonPath(d.Name()), buf.Bytes(), 0o644); err != nil {
		return err
	}

	buf.Reset()
	if err := automaton.WriteTable(&buf, d); err != nil {
		return fmt.Errorf("table %q: %w", d.Name(), err)
	}
	if err := os.WriteFile(s.TablePath(d.Name()), buf.Bytes(), 0o644); err != nil {
		return err
	}

	buf.Reset()
	automaton.ExportDOT(&buf, d)
	return os.WriteFile(s.DOTPath(d.Name()), buf.Bytes(), 0o644)
}

// Load reads <name>.txt back.
func (s Store) Load(name string) (*automaton.DFA, error) {
	f, err := os.Open(s.AutomatonPath(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(name, f)
}
