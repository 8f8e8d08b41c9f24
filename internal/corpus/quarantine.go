// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// Quarantined is one record held out of the active corpus pending review.
type Quarantined struct {
	Record        *types.ReviewRecord
	Reason        string
	QuarantinedAt time.Time
}

// Quarantine moves a record from the published corpus into the quarantine
// table. The move is reversible via Restore; nothing is deleted.
func (s *Store) Quarantine(ctx context.Context, key types.IdentityKey, reason string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning quarantine: %w", err)
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT record FROM reviews WHERE show_id = ? AND outlet_id = ? AND critic_key = ?`,
		key.ShowID, key.OutletID, key.CriticKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no published record for %s/%s/%s", key.ShowID, key.OutletID, key.CriticKey)
	}
	if err != nil {
		return fmt.Errorf("reading record for quarantine: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO quarantine (show_id, outlet_id, critic_key, record, reason, quarantined_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		key.ShowID, key.OutletID, key.CriticKey, data, reason, now); err != nil {
		return fmt.Errorf("writing quarantine row: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reviews WHERE show_id = ? AND outlet_id = ? AND critic_key = ?`,
		key.ShowID, key.OutletID, key.CriticKey); err != nil {
		return fmt.Errorf("removing quarantined record: %w", err)
	}
	return tx.Commit()
}

// Restore moves a quarantined record back into the published corpus.
func (s *Store) Restore(ctx context.Context, key types.IdentityKey) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning restore: %w", err)
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT record FROM quarantine WHERE show_id = ? AND outlet_id = ? AND critic_key = ?`,
		key.ShowID, key.OutletID, key.CriticKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no quarantined record for %s/%s/%s", key.ShowID, key.OutletID, key.CriticKey)
	}
	if err != nil {
		return fmt.Errorf("reading quarantined record: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO reviews (show_id, outlet_id, critic_key, record, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key.ShowID, key.OutletID, key.CriticKey, data, now); err != nil {
		return fmt.Errorf("restoring record: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM quarantine WHERE show_id = ? AND outlet_id = ? AND critic_key = ?`,
		key.ShowID, key.OutletID, key.CriticKey); err != nil {
		return fmt.Errorf("clearing quarantine row: %w", err)
	}
	return tx.Commit()
}

// QuarantineList returns every quarantined record ordered by identity key.
func (s *Store) QuarantineList(ctx context.Context) ([]Quarantined, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record, reason, quarantined_at FROM quarantine ORDER BY show_id, outlet_id, critic_key`)
	if err != nil {
		return nil, fmt.Errorf("querying quarantine: %w", err)
	}
	defer rows.Close()

	var out []Quarantined
	for rows.Next() {
		var data, reason, at string
		if err := rows.Scan(&data, &reason, &at); err != nil {
			return nil, fmt.Errorf("scanning quarantine row: %w", err)
		}
		var rec types.ReviewRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decoding quarantined record: %w", err)
		}
		when, _ := time.Parse(time.RFC3339, at)
		out = append(out, Quarantined{Record: &rec, Reason: reason, QuarantinedAt: when})
	}
	return out, rows.Err()
}
