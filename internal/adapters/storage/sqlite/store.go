// Package sqlite persists business records in a single-file database,
// one JSON document per row. It is the default backend for local mode.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// ErrNotFound reports a missing record for GetByID.
var ErrNotFound = errors.New("record not found")

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	kind       TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	id         TEXT NOT NULL,
	doc        TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (kind, user_id, id)
);
CREATE INDEX IF NOT EXISTS idx_entities_user ON entities (kind, user_id, created_at);
`

// Store is an EntityStore over one sqlite file.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory and the schema if needed. WAL keeps
// concurrent reads from blocking on writes; the busy timeout covers the
// single-writer window.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) List(ctx context.Context, kind domain.EntityKind, userID domain.UserID, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM entities WHERE kind = ? AND user_id = ? ORDER BY created_at LIMIT ?`,
		string(kind), string(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", kind, err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", kind, err)
		}
		var rec domain.Record
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", kind, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, kind domain.EntityKind, id string, userID domain.UserID) (domain.Record, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM entities WHERE kind = ? AND user_id = ? AND id = ?`,
		string(kind), string(userID), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s %s: %w", kind, id, err)
	}

	var rec domain.Record
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("decoding %s document: %w", kind, err)
	}
	return rec, nil
}

func (s *Store) Insert(ctx context.Context, kind domain.EntityKind, userID domain.UserID, rec domain.Record) (domain.Record, error) {
	stored := rec.Clone()
	if stored.GetString("id") == "" {
		stored["id"] = uuid.NewString()
	}

	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encoding %s document: %w", kind, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entities (kind, user_id, id, doc, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(kind), string(userID), stored.GetString("id"), string(doc),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("inserting %s: %w", kind, err)
	}
	return stored, nil
}

var _ domain.EntityStore = (*Store)(nil)
