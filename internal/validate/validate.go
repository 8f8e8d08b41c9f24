// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate cross-checks merged records for internal contradictions.
// Findings are reported, not repaired, with one deterministic exception for
// trusted external thumb signals.
package validate

import (
	"fmt"
	"strings"

	"github.com/thomaspryor/broadwayscore/internal/score"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// repairMargin is the bucket distance at which an external thumb overrides
// the numeric score. One-bucket disagreement is reported only; a wider gap
// means the numeric source was likely misparsed, and the categorical
// aggregator signal wins.
const repairMargin = 2

// Output holds the validator's findings for one corpus pass.
type Output struct {
	// Published are records that passed validation, survivors of repair
	// included. Fatal records are excluded.
	Published []*types.ReviewRecord

	Inconsistencies []types.Inconsistency
	Repairs         []types.Repair
	Fatals          []types.Fatal
}

// Validate scans merged records and splits them into publishable and fatal,
// applying the thumb repair rule where it fires. One bad record never stops
// the rest of the corpus.
func Validate(records []*types.ReviewRecord) Output {
	var out Output
	seen := make(map[types.IdentityKey]bool)

	for _, rec := range records {
		key := identityOf(rec)

		if reason := fatalReason(rec, key, seen); reason != "" {
			out.Fatals = append(out.Fatals, types.Fatal{Identity: key, Reason: reason})
			continue
		}
		seen[key] = true

		if d := tierFlagMismatch(rec); d != "" {
			out.Inconsistencies = append(out.Inconsistencies, types.Inconsistency{Identity: key, Detail: d})
		}

		if rec.CanonicalScore != nil {
			if want := score.BucketFor(*rec.CanonicalScore); rec.Bucket != want {
				out.Inconsistencies = append(out.Inconsistencies, types.Inconsistency{
					Identity: key,
					Detail:   fmt.Sprintf("bucket %q disagrees with score %d (threshold bucket %q)", rec.Bucket, *rec.CanonicalScore, want),
				})
			}
			if repair, ok := thumbRepair(rec, key); ok {
				out.Repairs = append(out.Repairs, repair)
			} else if d := thumbDisagreement(rec); d != "" {
				out.Inconsistencies = append(out.Inconsistencies, types.Inconsistency{Identity: key, Detail: d})
			}
		}

		out.Published = append(out.Published, rec)
	}
	return out
}

func identityOf(rec *types.ReviewRecord) types.IdentityKey {
	return types.IdentityKey{
		ShowID:    rec.ShowID,
		OutletID:  rec.OutletID,
		CriticKey: strings.ToLower(rec.CriticName),
	}
}

// fatalReason returns a non-empty reason when the record must be excluded
// from the published corpus.
func fatalReason(rec *types.ReviewRecord, key types.IdentityKey, seen map[types.IdentityKey]bool) string {
	switch {
	case rec.ShowID == "":
		return "missing show identifier"
	case rec.OutletID == "":
		return "missing outlet identifier"
	case seen[key]:
		return "duplicate identity key survived deduplication"
	case rec.CanonicalScore != nil && (*rec.CanonicalScore < 0 || *rec.CanonicalScore > 100):
		return fmt.Sprintf("score %d outside [0,100]", *rec.CanonicalScore)
	}
	return ""
}

// tierFlagMismatch checks the tier/flag combinations the classifier can
// legitimately produce. Flags asserting the text is not this show's review
// only cohere with the invalid tier, and the invalid tier never appears
// without such a flag.
func tierFlagMismatch(rec *types.ReviewRecord) string {
	wrongText := false
	for _, f := range rec.Flags {
		switch f {
		case types.FlagWrongShow, types.FlagWrongProduction, types.FlagMultiShow, types.FlagNavigationJunk:
			wrongText = true
			if rec.ContentTier != types.TierInvalid {
				return fmt.Sprintf("flag %q on tier %q, expected %q", f, rec.ContentTier, types.TierInvalid)
			}
		}
	}
	if rec.ContentTier == types.TierInvalid && !wrongText {
		return "invalid tier with no structural flag explaining it"
	}
	return ""
}

// thumbBucket maps an external thumb to the bucket it asserts.
func thumbBucket(t types.Thumb) (types.Bucket, bool) {
	switch t {
	case types.ThumbUp:
		return types.BucketPositive, true
	case types.ThumbDown:
		return types.BucketNegative, true
	}
	return "", false
}

// thumbRepair applies the deterministic repair rule: a trusted thumb that
// contradicts the score's bucket by at least repairMargin forces the score
// to the representative value of the bucket nearest the thumb.
func thumbRepair(rec *types.ReviewRecord, key types.IdentityKey) (types.Repair, bool) {
	asserted, ok := thumbBucket(rec.ExternalThumb)
	if !ok || rec.CanonicalScore == nil {
		return types.Repair{}, false
	}
	current := rec.Bucket
	if score.BucketDistance(current, asserted) < repairMargin {
		return types.Repair{}, false
	}

	old := *rec.CanonicalScore
	forced := score.Representative(asserted)
	rec.CanonicalScore = &forced
	repaired := types.Repair{
		Identity:  key,
		OldScore:  old,
		NewScore:  forced,
		OldBucket: current,
		NewBucket: asserted,
		Reason:    fmt.Sprintf("external thumb %q contradicts bucket %q by %d buckets", rec.ExternalThumb, current, score.BucketDistance(current, asserted)),
	}
	rec.Bucket = asserted
	return repaired, true
}

// thumbCompatible reports whether the bucket already sits on the thumb's
// side of the scale: up covers Rave and Positive, down covers Negative and
// Pan.
func thumbCompatible(t types.Thumb, b types.Bucket) bool {
	switch t {
	case types.ThumbUp:
		return b == types.BucketRave || b == types.BucketPositive
	case types.ThumbDown:
		return b == types.BucketNegative || b == types.BucketPan
	}
	return true
}

// thumbDisagreement reports a narrow thumb disagreement, which is flagged
// but never repaired.
func thumbDisagreement(rec *types.ReviewRecord) string {
	asserted, ok := thumbBucket(rec.ExternalThumb)
	if !ok || rec.CanonicalScore == nil {
		return ""
	}
	if thumbCompatible(rec.ExternalThumb, rec.Bucket) {
		return ""
	}
	if score.BucketDistance(rec.Bucket, asserted) < repairMargin {
		return fmt.Sprintf("external thumb %q disagrees with bucket %q", rec.ExternalThumb, rec.Bucket)
	}
	return ""
}
