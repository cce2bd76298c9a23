// Package analytics records conversion runs in a local SQLite database
// so repeated use of the tool can be summarized later. Recording is
// best-effort; callers treat failures as non-fatal.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tsawler/pagecraft/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS conversions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	source TEXT NOT NULL,
	columns INTEGER NOT NULL,
	strategy TEXT NOT NULL,
	headings INTEGER NOT NULL,
	paragraphs INTEGER NOT NULL,
	images INTEGER NOT NULL,
	tables INTEGER NOT NULL,
	total INTEGER NOT NULL,
	warnings INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_conversions_session ON conversions(session_id);
`

// Record describes one completed conversion.
type Record struct {
	Source   string
	Columns  int
	Strategy string
	Stats    model.Stats
	Warnings int
	Duration time.Duration
}

// Summary aggregates all recorded conversions.
type Summary struct {
	Conversions int
	Blocks      int
	Images      int
	Tables      int
}

// Store wraps the SQLite database holding conversion records. Each
// Store carries a session ID shared by every record it writes.
type Store struct {
	db        *sql.DB
	sessionID string
}

// DefaultPath returns the per-user database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".pagecraft", "analytics.db"), nil
}

// Open opens (or creates) the analytics database at the given path and
// initializes the schema. An empty path uses DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening analytics database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing analytics schema: %w", err)
	}

	return &Store{
		db:        db,
		sessionID: uuid.NewString(),
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionID returns the session identifier shared by this Store's
// records.
func (s *Store) SessionID() string {
	return s.sessionID
}

// RecordConversion writes one conversion record.
func (s *Store) RecordConversion(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (
			session_id, source, columns, strategy,
			headings, paragraphs, images, tables, total,
			warnings, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.sessionID, r.Source, r.Columns, r.Strategy,
		r.Stats.Headings, r.Stats.Paragraphs, r.Stats.Images,
		r.Stats.Tables, r.Stats.Total,
		r.Warnings, r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Summarize aggregates every recorded conversion.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total), 0),
		       COALESCE(SUM(images), 0),
		       COALESCE(SUM(tables), 0)
		FROM conversions`)
	if err := row.Scan(&sum.Conversions, &sum.Blocks, &sum.Images, &sum.Tables); err != nil {
		return Summary{}, fmt.Errorf("summarizing conversions: %w", err)
	}
	return sum, nil
}
