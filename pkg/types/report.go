// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// UnresolvedKind distinguishes the normalizer that could not interpret a value.
type UnresolvedKind string

const (
	UnresolvedOutlet UnresolvedKind = "outlet"
	UnresolvedCritic UnresolvedKind = "critic"
	UnresolvedRating UnresolvedKind = "rating"
)

// Unresolved records a raw value no normalizer could interpret. The record is
// retained with nil canonical fields; the entry feeds the alias-table backlog.
type Unresolved struct {
	Kind   UnresolvedKind `json:"kind" yaml:"kind"`
	ShowID string         `json:"show_id" yaml:"show_id"`
	Raw    string         `json:"raw" yaml:"raw"`
	Source string         `json:"source,omitempty" yaml:"source,omitempty"`
}

// Discard describes one duplicate removed by the merger.
type Discard struct {
	// Identity is the discarded record's identity key.
	Identity IdentityKey `json:"identity" yaml:"identity"`

	// Reason explains why the record was folded into the survivor
	// (e.g. "same outlet+critic", "same normalized URL").
	Reason string `json:"reason" yaml:"reason"`

	// ScoreDelta is the discarded record's quality score minus the survivor's.
	// Always <= 0 given the survivor is the highest-quality candidate.
	ScoreDelta float64 `json:"score_delta" yaml:"score_delta"`
}

// Repair records a deterministic score override applied by the validator.
type Repair struct {
	Identity  IdentityKey `json:"identity" yaml:"identity"`
	OldScore  int         `json:"old_score" yaml:"old_score"`
	NewScore  int         `json:"new_score" yaml:"new_score"`
	OldBucket Bucket      `json:"old_bucket" yaml:"old_bucket"`
	NewBucket Bucket      `json:"new_bucket" yaml:"new_bucket"`
	Reason    string      `json:"reason" yaml:"reason"`
}

// Fatal records a record excluded from the published corpus.
type Fatal struct {
	Identity IdentityKey `json:"identity" yaml:"identity"`
	Reason   string      `json:"reason" yaml:"reason"`
}

// Inconsistency is a report-only finding from the consistency validator.
type Inconsistency struct {
	Identity IdentityKey `json:"identity" yaml:"identity"`
	Detail   string      `json:"detail" yaml:"detail"`
}

// RunReport accumulates every side-channel output of a pipeline run. Nothing
// is discarded from the corpus without a corresponding entry here.
type RunReport struct {
	// RunID uniquely identifies this pipeline run in the audit log.
	RunID string `json:"run_id" yaml:"run_id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Input and Published count records entering and leaving the pipeline.
	Input     int `json:"input" yaml:"input"`
	Published int `json:"published" yaml:"published"`

	// Unresolved lists values no normalizer could interpret.
	Unresolved []Unresolved `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`

	// Discards lists every duplicate removed by the merger.
	Discards []Discard `json:"discards,omitempty" yaml:"discards,omitempty"`

	// Repairs lists validator score overrides.
	Repairs []Repair `json:"repairs,omitempty" yaml:"repairs,omitempty"`

	// Fatals lists records excluded from the published corpus.
	Fatals []Fatal `json:"fatals,omitempty" yaml:"fatals,omitempty"`

	// Inconsistencies lists report-only validator findings.
	Inconsistencies []Inconsistency `json:"inconsistencies,omitempty" yaml:"inconsistencies,omitempty"`

	// Attention lists identity keys of retained records that still need a
	// human: no canonical score and no authoritative external score.
	Attention []IdentityKey `json:"attention,omitempty" yaml:"attention,omitempty"`

	// TierCounts and BucketCounts summarize the published distribution.
	TierCounts   map[ContentTier]int `json:"tier_counts" yaml:"tier_counts"`
	BucketCounts map[Bucket]int      `json:"bucket_counts" yaml:"bucket_counts"`
}

// HasFatals reports whether any record was excluded from publication.
func (r *RunReport) HasFatals() bool {
	return len(r.Fatals) > 0
}
