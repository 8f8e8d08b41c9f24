// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus persists the review corpus: published records, the
// reversible quarantine, and the audit log of merge and repair decisions.
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "reviews.db"
)

// Store manages the corpus SQLite database at corpusDir/index/reviews.db.
type Store struct {
	db        *sql.DB
	corpusDir string
}

// NewStore opens or creates the corpus database, creating the schema if it
// does not exist.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CorpusDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dbDir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	s := &Store{db: db, corpusDir: cfg.CorpusDir}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reviews (
			show_id TEXT NOT NULL,
			outlet_id TEXT NOT NULL,
			critic_key TEXT NOT NULL,
			record TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (show_id, outlet_id, critic_key)
		)`,
		`CREATE TABLE IF NOT EXISTS quarantine (
			show_id TEXT NOT NULL,
			outlet_id TEXT NOT NULL,
			critic_key TEXT NOT NULL,
			record TEXT NOT NULL,
			reason TEXT NOT NULL,
			quarantined_at TEXT NOT NULL,
			PRIMARY KEY (show_id, outlet_id, critic_key)
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			at TEXT NOT NULL,
			action TEXT NOT NULL,
			detail TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_show ON reviews(show_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_run ON audit_log(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace atomically swaps the published corpus for records. The previous
// contents are removed inside the same transaction so a failed write never
// leaves a half-written corpus.
func (s *Store) Replace(ctx context.Context, records []*types.ReviewRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning corpus replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("clearing corpus: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %s/%s: %w", rec.ShowID, rec.OutletID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reviews (show_id, outlet_id, critic_key, record, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.ShowID, rec.OutletID, rec.CriticName, string(data), now); err != nil {
			return fmt.Errorf("storing record %s/%s/%s: %w", rec.ShowID, rec.OutletID, rec.CriticName, err)
		}
	}
	return tx.Commit()
}

// All returns every published record ordered by identity key.
func (s *Store) All(ctx context.Context) ([]*types.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM reviews ORDER BY show_id, outlet_id, critic_key`)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ForShow returns the published records for one production.
func (s *Store) ForShow(ctx context.Context, showID string) ([]*types.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM reviews WHERE show_id = ? ORDER BY outlet_id, critic_key`, showID)
	if err != nil {
		return nil, fmt.Errorf("querying corpus for %s: %w", showID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*types.ReviewRecord, error) {
	var records []*types.ReviewRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		var rec types.ReviewRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
