// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog reads the external show catalog. The engine only consumes
// show identifiers, titles and status; the catalog is maintained elsewhere
// and treated as read-only here.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// Store is a read-only handle on the show catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens the catalog database at path. The schema is created if absent
// so that fixtures and first runs work against an empty catalog.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS shows (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup returns the show for showID, with found=false when the catalog has
// no such production.
func (s *Store) Lookup(ctx context.Context, showID string) (types.Show, bool, error) {
	var show types.Show
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, status FROM shows WHERE id = ?`, showID,
	).Scan(&show.ID, &show.Title, &show.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Show{}, false, nil
	}
	if err != nil {
		return types.Show{}, false, fmt.Errorf("querying show %s: %w", showID, err)
	}
	return show, true, nil
}

// Active returns the IDs of productions currently listed as open.
func (s *Store) Active(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM shows WHERE status = ? ORDER BY id`, types.ShowStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("querying active shows: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning show id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Titles returns every catalogued show title.
func (s *Store) Titles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title FROM shows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying show titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning show title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// Put inserts or replaces a show. Used by fixtures and the catalog import
// tooling, never by the pipeline.
func (s *Store) Put(ctx context.Context, show types.Show) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO shows (id, title, status) VALUES (?, ?, ?)`,
		show.ID, show.Title, show.Status)
	if err != nil {
		return fmt.Errorf("storing show %s: %w", show.ID, err)
	}
	return nil
}
