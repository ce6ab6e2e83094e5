// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of dispatched searches: the title,
// the request URL, the outcome and how many records were returned.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/moviefinder/pkg/types"
)

const (
	defaultPath  = "moviefinder.db"
	defaultLimit = 20

	// timeLayout is fixed-width so that stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store manages the history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the history database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			request_url TEXT NOT NULL,
			status TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			searched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_searched_at ON searches(searched_at)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_status ON searches(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts entry. A missing ID is filled with a new UUID and a zero
// SearchedAt with the current time.
func (s *Store) Record(ctx context.Context, entry types.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.SearchedAt.IsZero() {
		entry.SearchedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, title, request_url, status, count, error, searched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Title, entry.RequestURL, string(entry.Status), entry.Count,
		nullIfEmpty(entry.Error), entry.SearchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording search %q: %w", entry.Title, err)
	}
	return nil
}

// QueryOptions filters history listings.
type QueryOptions struct {
	// Title matches entries whose title contains this text (case-insensitive).
	Title string

	// Status keeps only entries with this outcome.
	Status types.SearchStatus

	// Limit caps the number of entries. Zero uses the default (20); a
	// negative value returns everything.
	Limit int
}

// Recent returns entries newest first.
func (s *Store) Recent(ctx context.Context, opts QueryOptions) ([]types.HistoryEntry, error) {
	var (
		qb    strings.Builder
		args  []any
		where []string
	)
	qb.WriteString(`SELECT id, title, request_url, status, count, COALESCE(error, ''), searched_at FROM searches`)

	if opts.Title != "" {
		where = append(where, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Title)+"%")
	}
	if opts.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, string(opts.Status))
	}
	if len(where) > 0 {
		qb.WriteString(" WHERE ")
		qb.WriteString(strings.Join(where, " AND "))
	}
	qb.WriteString(" ORDER BY searched_at DESC, rowid DESC")

	limit := opts.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var (
			e          types.HistoryEntry
			status     string
			searchedAt string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.RequestURL, &status, &e.Count, &e.Error, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Status = types.SearchStatus(status)
		if t, err := time.Parse(timeLayout, searchedAt); err == nil {
			e.SearchedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
