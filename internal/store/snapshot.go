// Package store persists the daily time log: a JSON snapshot for the log
// itself and a SQLite ledger of completed sessions.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/notetime/internal/timelog"
)

// Snapshot reads and writes the daily time log as a single JSON document:
// top-level keys are ISO dates, values map note paths to millisecond
// totals. Every save replaces the whole document; the last writer wins.
type Snapshot struct {
	path string
}

// NewSnapshot returns a snapshot store backed by the file at path.
func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

// Path returns the backing file path.
func (s *Snapshot) Path() string { return s.path }

// Load reads the log from disk. A missing file or an undecodable document
// yields an empty log with no error; tracking starts over rather than
// failing startup. Other read errors are returned.
func (s *Snapshot) Load() (timelog.Log, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return timelog.New(), nil
		}
		return nil, fmt.Errorf("opening time log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var log timelog.Log
	if err := json.NewDecoder(f).Decode(&log); err != nil {
		return timelog.New(), nil
	}
	if log == nil {
		log = timelog.New()
	}
	return log, nil
}

// Save writes the full log, replacing any previous snapshot. The document
// lands via a temp file and rename so readers never see a partial write.
func (s *Snapshot) Save(log timelog.Log) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding time log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing time log: %w", err)
	}
	return os.Rename(tmp, s.path)
}
