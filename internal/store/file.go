package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rogersnm/opbatch/internal/markdown"
)

// Load reads a batch markdown file into a new session. Any block that fails
// to parse fails the load, so a save never silently drops operations.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	res := markdown.Parse(string(data))
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	s := New()
	s.ImportOperations(res.Operations)
	s.log.Debug().Str("path", path).Int("count", s.Len()).Msg("Batch loaded")
	return s, nil
}

// Save writes the store's operations to path as batch markdown stamped with at.
func Save(path string, st Store, at time.Time) error {
	text, err := markdown.Format(st.Operations(), at)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
