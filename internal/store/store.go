package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the append-only history log: one SQLite file holding session and
// answer events. It is written when a session ends and read by the history
// command; learner state is never restored from it.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

const schema = `
CREATE TABLE IF NOT EXISTS session_events (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence           INTEGER NOT NULL UNIQUE,
	session_id         TEXT    NOT NULL,
	action             TEXT    NOT NULL,
	questions_answered INTEGER NOT NULL DEFAULT 0,
	correct_answers    INTEGER NOT NULL DEFAULT 0,
	skipped            INTEGER NOT NULL DEFAULT 0,
	duration_secs      INTEGER NOT NULL DEFAULT 0,
	created_at         TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS answer_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence    INTEGER NOT NULL UNIQUE,
	session_id  TEXT    NOT NULL,
	question_id INTEGER NOT NULL,
	concept     TEXT    NOT NULL,
	difficulty  INTEGER NOT NULL,
	answer      TEXT    NOT NULL,
	correct     BOOLEAN NOT NULL,
	mastery     REAL    NOT NULL,
	answered_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events(session_id);
`

// Open creates a Store backed by the SQLite database at dsn.
// It applies recommended pragmas and creates the tables if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the history database path:
// $XDG_DATA_HOME/adaptutor/history.db, falling back to
// ~/.local/share/adaptutor/history.db.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "adaptutor", "history.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
