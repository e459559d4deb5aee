// Package playlog stores the listening history as a single JSON document,
// read wholly into memory and rewritten wholly on each update. The wire
// format matches the logs produced by the predecessor scripts, so existing
// history files keep working.
package playlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"spotlog/internal/core/domain"
	"spotlog/internal/core/ports"
)

// Store reads and writes one account's play log file.
type Store struct {
	path string
}

// compile-time interface assertion
var _ ports.PlayLogStore = (*Store)(nil)

// NewStore constructs a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole log. A missing file surfaces as fs.ErrNotExist so
// callers can decide to start a fresh log.
func (s *Store) Load() (domain.PlayLog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.PlayLog{}, fmt.Errorf("playlog: read %s: %w", s.path, err)
	}

	var doc logDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.PlayLog{}, fmt.Errorf("playlog: parse %s: %w", s.path, err)
	}

	plog, err := mapLogToDomain(doc)
	if err != nil {
		return domain.PlayLog{}, fmt.Errorf("playlog: parse %s: %w", s.path, err)
	}
	return plog, nil
}

// Save rewrites the whole log. The document is written to a temporary file
// and renamed into place, so a crash mid-write never corrupts the log.
func (s *Store) Save(plog domain.PlayLog) error {
	raw, err := json.Marshal(mapLogToDocument(plog))
	if err != nil {
		return fmt.Errorf("playlog: encode: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("playlog: create %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("playlog: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("playlog: replace %s: %w", s.path, err)
	}
	return nil
}
