// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the broadwayscore pipeline.
package types

import "time"

// Bucket is the five-way sentiment classification derived from a canonical score.
type Bucket string

const (
	BucketRave     Bucket = "Rave"
	BucketPositive Bucket = "Positive"
	BucketMixed    Bucket = "Mixed"
	BucketNegative Bucket = "Negative"
	BucketPan      Bucket = "Pan"
)

// ContentTier classifies how much trustworthy review text a record carries.
type ContentTier string

const (
	TierComplete  ContentTier = "complete"
	TierTruncated ContentTier = "truncated"
	TierExcerpt   ContentTier = "excerpt"
	TierStub      ContentTier = "stub"
	TierInvalid   ContentTier = "invalid"
)

// Flag marks a structural defect detected on a record. Flags are advisory:
// they are accumulated, reported, and acted on by explicit quarantine
// operations, never silently dropped.
type Flag string

const (
	FlagWrongShow       Flag = "wrong-show"
	FlagWrongProduction Flag = "wrong-production"
	FlagMultiShow       Flag = "multi-show-review"
	FlagTruncated       Flag = "truncated-by-paywall"
	FlagNavigationJunk  Flag = "navigation-junk"
)

// Thumb is an external up/down signal attached by an aggregator source.
type Thumb string

const (
	ThumbNone Thumb = ""
	ThumbUp   Thumb = "up"
	ThumbDown Thumb = "down"
)

// Confidence grades an external scorer result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// UnknownCritic is the sentinel critic name for unattributable reviews.
const UnknownCritic = "unknown"

// Excerpt is a partial quote of a review, tagged with the source that
// supplied it.
type Excerpt struct {
	// Text is the quoted fragment.
	Text string `json:"text" yaml:"text"`

	// Source identifies the collection pass that contributed the quote
	// (e.g. "didyoulikeit", "showscore", "archive").
	Source string `json:"source" yaml:"source"`
}

// ExternalScore is a validation score returned by the external scoring
// service for a record's text.
type ExternalScore struct {
	// Score is the 0-100 value returned by the scorer.
	Score int `json:"score" yaml:"score"`

	// Confidence grades how much the scorer trusted its own read. A "low"
	// confidence score is informative but does not make a record publishable.
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// ReviewRecord is one critic's review of one production. It is created from a
// raw source record, annotated in place by the normalization stages, and
// merged with duplicates before publication.
type ReviewRecord struct {
	// ShowID is the opaque production identifier, stable across the corpus.
	ShowID string `json:"show_id" yaml:"show_id"`

	// OutletID is the canonical outlet slug. Many raw spellings map to one ID.
	OutletID string `json:"outlet_id" yaml:"outlet_id"`

	// OutletDisplayName is the human-readable name derived from OutletID.
	OutletDisplayName string `json:"outlet_display_name" yaml:"outlet_display_name"`

	// CriticName is the canonical critic name, or UnknownCritic when the
	// review could not be attributed.
	CriticName string `json:"critic_name" yaml:"critic_name"`

	// URL is the source URL of the review, empty when unknown. Used as a
	// secondary dedup key after normalization.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// PublishDate is the review's publication date, zero when unknown.
	PublishDate time.Time `json:"publish_date,omitempty" yaml:"publish_date,omitempty"`

	// OriginalRatingText is the verbatim rating as it appeared at the source
	// (e.g. "4/5", "B+", "Rave"), empty when the source carried none.
	OriginalRatingText string `json:"original_rating_text,omitempty" yaml:"original_rating_text,omitempty"`

	// CanonicalScore is the normalized 0-100 score, nil until determined.
	// Once set from a real rating or text-derived sentiment it is never
	// reset to a generic midpoint.
	CanonicalScore *int `json:"canonical_score,omitempty" yaml:"canonical_score,omitempty"`

	// Bucket is derived from CanonicalScore via the fixed thresholds.
	// Disagreement between the two is a defect, not a valid state.
	Bucket Bucket `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// ContentTier classifies the completeness of the available text.
	ContentTier ContentTier `json:"content_tier,omitempty" yaml:"content_tier,omitempty"`

	// TextBody is the authoritative review text; at most one survives a merge.
	TextBody string `json:"text_body,omitempty" yaml:"text_body,omitempty"`

	// Excerpts are partial quotes tagged by provenance.
	Excerpts []Excerpt `json:"excerpts,omitempty" yaml:"excerpts,omitempty"`

	// ExternalThumb is an aggregator up/down signal, if any source carried one.
	ExternalThumb Thumb `json:"external_thumb,omitempty" yaml:"external_thumb,omitempty"`

	// External holds the external scorer's validation result, if requested.
	External *ExternalScore `json:"external_score,omitempty" yaml:"external_score,omitempty"`

	// Provenance lists, in order, the sources that contributed to this
	// record's current field values. Audit only, not user-facing.
	Provenance []string `json:"provenance,omitempty" yaml:"provenance,omitempty"`

	// Flags holds the structural defects detected on this record.
	Flags []Flag `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// HasFlag reports whether the record carries the given structural flag.
func (r *ReviewRecord) HasFlag(f Flag) bool {
	for _, have := range r.Flags {
		if have == f {
			return true
		}
	}
	return false
}

// AddFlag appends f unless the record already carries it.
func (r *ReviewRecord) AddFlag(f Flag) {
	if !r.HasFlag(f) {
		r.Flags = append(r.Flags, f)
	}
}

// AddProvenance appends source unless it is already recorded.
func (r *ReviewRecord) AddProvenance(source string) {
	if source == "" {
		return
	}
	for _, have := range r.Provenance {
		if have == source {
			return
		}
	}
	r.Provenance = append(r.Provenance, source)
}

// IdentityKey is the tuple uniquely identifying one real-world review within
// the corpus. At most one ReviewRecord may exist per key after merge.
type IdentityKey struct {
	ShowID    string
	OutletID  string
	CriticKey string
}

// RawRecord is one review as reported by a single collection source before
// any normalization. Missing fields are empty, never placeholder strings.
type RawRecord struct {
	ShowID             string    `json:"show_id" yaml:"show_id"`
	Outlet             string    `json:"outlet,omitempty" yaml:"outlet,omitempty"`
	CriticName         string    `json:"critic_name,omitempty" yaml:"critic_name,omitempty"`
	URL                string    `json:"url,omitempty" yaml:"url,omitempty"`
	PublishDate        time.Time `json:"publish_date,omitempty" yaml:"publish_date,omitempty"`
	OriginalRatingText string    `json:"original_rating_text,omitempty" yaml:"original_rating_text,omitempty"`
	TextBody           string    `json:"text_body,omitempty" yaml:"text_body,omitempty"`
	Excerpts           []Excerpt `json:"excerpts,omitempty" yaml:"excerpts,omitempty"`
	ExternalThumb      Thumb     `json:"external_thumb,omitempty" yaml:"external_thumb,omitempty"`

	// Source identifies the collection pass this record came from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Show is a production looked up from the external show catalog.
type Show struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Status string `json:"status" yaml:"status"`
}

// ShowStatusOpen marks a production currently running.
const ShowStatusOpen = "open"
