// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// Audit actions recorded against the corpus.
const (
	ActionDiscard    = "discard"
	ActionRepair     = "repair"
	ActionFatal      = "fatal"
	ActionQuarantine = "quarantine"
	ActionRestore    = "restore"
)

// AuditEntry is one durable line in the corpus audit log.
type AuditEntry struct {
	ID     string
	RunID  string
	At     time.Time
	Action string
	Detail string
}

// AppendAudit writes one audit entry. Every merge, repair, exclusion and
// quarantine decision lands here so any run can be reconstructed.
func (s *Store) AppendAudit(ctx context.Context, runID, action, detail string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, run_id, at, action, detail) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), runID, time.Now().UTC().Format(time.RFC3339Nano), action, detail)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// RecordRun persists the report's decisions into the audit log.
func (s *Store) RecordRun(ctx context.Context, report *types.RunReport) error {
	for _, d := range report.Discards {
		detail := fmt.Sprintf("%s/%s/%s: %s (quality delta %.1f)",
			d.Identity.ShowID, d.Identity.OutletID, d.Identity.CriticKey, d.Reason, d.ScoreDelta)
		if err := s.AppendAudit(ctx, report.RunID, ActionDiscard, detail); err != nil {
			return err
		}
	}
	for _, r := range report.Repairs {
		detail := fmt.Sprintf("%s/%s/%s: score %d→%d (%s→%s): %s",
			r.Identity.ShowID, r.Identity.OutletID, r.Identity.CriticKey,
			r.OldScore, r.NewScore, r.OldBucket, r.NewBucket, r.Reason)
		if err := s.AppendAudit(ctx, report.RunID, ActionRepair, detail); err != nil {
			return err
		}
	}
	for _, f := range report.Fatals {
		detail := fmt.Sprintf("%s/%s/%s: %s",
			f.Identity.ShowID, f.Identity.OutletID, f.Identity.CriticKey, f.Reason)
		if err := s.AppendAudit(ctx, report.RunID, ActionFatal, detail); err != nil {
			return err
		}
	}
	return nil
}

// AuditForRun returns the audit entries for one run in insertion order.
func (s *Store) AuditForRun(ctx context.Context, runID string) ([]AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, at, action, detail FROM audit_log WHERE run_id = ? ORDER BY at, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var at string
		if err := rows.Scan(&e.ID, &e.RunID, &at, &e.Action, &e.Detail); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
