package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"listboard/internal/logging"
	"listboard/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "listboard.sqlite"

var (
	// ErrNotFound is returned for ids that are not (or no longer) stored.
	ErrNotFound = errors.New("not found")

	// ErrStaleOrder rejects a bulk reorder whose items do not match the stored list
	// exactly or whose orders are not 0..n-1. Nothing is written.
	ErrStaleOrder = errors.New("stale or non-dense order")
)

// Store is the sqlite-backed item store for one data directory. Notes and todos live
// in separate tables of the same database file.
type Store struct {
	Dir string

	db  *sql.DB
	log logging.Logger
}

// Open opens (creating if needed) the database under dir and applies migrations.
func Open(ctx context.Context, dir string, log logging.Logger) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store dir is empty")
	}
	if log == nil {
		log = logging.Discard()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{Dir: dir, log: log}
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", s.Path(), err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", s.Path(), err)
	}
	s.db = db
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	return filepath.Join(s.Dir, dbFileName)
}

// dsn sets pragmas on every pooled connection. WAL gives one writer + many readers so the
// TUI and CLI invocations can share a data dir; busy_timeout avoids "database is locked".
func (s *Store) dsn() string {
	q := url.Values{}
	for _, p := range []string{
		"journal_mode(WAL)",
		"synchronous(NORMAL)",
		"foreign_keys(ON)",
		"busy_timeout(5000)",
	} {
		q.Add("_pragma", p)
	}
	return "file:" + filepath.ToSlash(s.Path()) + "?" + q.Encode()
}

// Notes is the notes list.
func (s *Store) Notes() *Table[model.Note] {
	return &Table[model.Note]{s: s, name: "notes", kind: "note"}
}

// Todos is the todo list.
func (s *Store) Todos() *Table[model.Todo] {
	return &Table[model.Todo]{s: s, name: "todos", kind: "todo"}
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ord INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_ord ON notes(ord);`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ord INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_ord ON todos(ord);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_kind TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_kind, entity_id);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '1');`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
