package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/notetime/internal/tracker"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger is the SQLite-backed record of completed focus sessions. It is
// supplemental to the JSON snapshot: totals always come from the time
// log, the ledger only answers "which sessions produced them".
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens or creates the ledger database at the given path.
func OpenLedger(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append stores one completed session.
func (l *Ledger) Append(s tracker.Session) error {
	_, err := l.db.Exec(`INSERT OR REPLACE INTO sessions
		(id, note, date_key, started_at, ended_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Note, s.Date,
		s.Start.UTC().Format(time.RFC3339),
		s.End.UTC().Format(time.RFC3339),
		s.Ms,
	)
	return err
}

// ListRecent returns the most recently ended sessions, newest first.
func (l *Ledger) ListRecent(limit int) ([]tracker.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(`SELECT id, note, date_key, started_at, ended_at, duration_ms
		FROM sessions ORDER BY ended_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

// ListByDate returns all sessions folded under the given date key,
// newest first.
func (l *Ledger) ListByDate(dateKey string) ([]tracker.Session, error) {
	rows, err := l.db.Query(`SELECT id, note, date_key, started_at, ended_at, duration_ms
		FROM sessions WHERE date_key = ? ORDER BY ended_at DESC, id`, dateKey)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

// Count returns the number of recorded sessions.
func (l *Ledger) Count() (int, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}

func scanSessions(rows *sql.Rows) ([]tracker.Session, error) {
	defer func() { _ = rows.Close() }()

	var sessions []tracker.Session
	for rows.Next() {
		var s tracker.Session
		var startStr, endStr string
		if err := rows.Scan(&s.ID, &s.Note, &s.Date, &startStr, &endStr, &s.Ms); err != nil {
			return nil, err
		}
		if startStr != "" {
			s.Start, _ = time.Parse(time.RFC3339, startStr)
		}
		if endStr != "" {
			s.End, _ = time.Parse(time.RFC3339, endStr)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
