// Package history keeps a log of launched demos in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"democat/internal/launcher"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Launch is one recorded launch
type Launch struct {
	ID         string
	Label      string
	TargetID   string
	Transition string
	StartedAt  time.Time
	Duration   time.Duration
	ExitCode   int
	Error      string
}

// Succeeded reports whether the demo exited cleanly
func (l Launch) Succeeded() bool {
	return l.ExitCode == 0 && l.Error == ""
}

// Store persists launches
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database path
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "democat", "history.db")
}

// Open opens (creating if needed) the history database at path
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS launches (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		target_id TEXT NOT NULL,
		transition TEXT NOT NULL DEFAULT 'none',
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		exit_code INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_launches_started_at ON launches(started_at);
	CREATE INDEX IF NOT EXISTS idx_launches_label ON launches(label);
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a finished launch
func (s *Store) Record(ctx context.Context, r launcher.Result) error {
	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO launches (id, label, target_id, transition, started_at, duration_ms, exit_code, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		r.Label,
		r.Target.ID,
		string(r.Transition),
		r.StartedAt.UnixMilli(),
		r.Duration.Milliseconds(),
		r.ExitCode,
		errText,
	)
	return err
}

// Recent returns up to limit launches, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Launch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, target_id, transition, started_at, duration_ms, exit_code, error
		FROM launches
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var launches []Launch
	for rows.Next() {
		var l Launch
		var startedMs, durationMs int64
		if err := rows.Scan(&l.ID, &l.Label, &l.TargetID, &l.Transition, &startedMs, &durationMs, &l.ExitCode, &l.Error); err != nil {
			return nil, err
		}
		l.StartedAt = time.UnixMilli(startedMs)
		l.Duration = time.Duration(durationMs) * time.Millisecond
		launches = append(launches, l)
	}
	return launches, rows.Err()
}

// Last returns the most recent launch of label
func (s *Store) Last(ctx context.Context, label string) (Launch, bool, error) {
	var l Launch
	var startedMs, durationMs int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, target_id, transition, started_at, duration_ms, exit_code, error
		FROM launches
		WHERE label = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1`, label).Scan(&l.ID, &l.Label, &l.TargetID, &l.Transition, &startedMs, &durationMs, &l.ExitCode, &l.Error)
	if err == sql.ErrNoRows {
		return Launch{}, false, nil
	}
	if err != nil {
		return Launch{}, false, err
	}
	l.StartedAt = time.UnixMilli(startedMs)
	l.Duration = time.Duration(durationMs) * time.Millisecond
	return l, true, nil
}

// Counts returns how many times each label has been launched
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, COUNT(*) FROM launches GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	return counts, rows.Err()
}
