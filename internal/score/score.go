// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score converts native rating formats (stars, letter grades,
// fractions, sentiment words, raw numbers) into the canonical 0-100 scale
// and derives the sentiment bucket.
package score

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

var (
	letterRe   = regexp.MustCompile(`^([A-Fa-f])\s*([+-])?$`)
	fractionRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)(?:\s+stars?)?$`)
	starsRe    = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(?:stars?|out\s+of\s+(\d+))\b.*$`)
	numberRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)%?$`)

	// Metadata labels that look like ratings but carry none. A historical
	// source emitted "Sentiment: positive" placeholders that must never be
	// scored as if a critic had supplied them.
	placeholderRe = regexp.MustCompile(`(?i)^(sentiment|tone|verdict)\s*:`)
)

// sentimentWords maps standalone sentiment words to their bucket.
var sentimentWords = map[string]types.Bucket{
	"rave":      types.BucketRave,
	"positive":  types.BucketPositive,
	"favorable": types.BucketPositive,
	"mixed":     types.BucketMixed,
	"lukewarm":  types.BucketMixed,
	"negative":  types.BucketNegative,
	"pan":       types.BucketPan,
}

// Normalize parses originalRatingText into a canonical score in [0,100].
// It returns (0, false) for empty, placeholder, and unparseable input, and
// for numbers that land outside the scale after conversion; out-of-range
// values are rejected, never clamped. Output depends only on the input and
// the fixed tables, so re-running a backfill is safe.
func Normalize(originalRatingText string) (int, bool) {
	s := strings.TrimSpace(originalRatingText)
	if s == "" || placeholderRe.MatchString(s) {
		return 0, false
	}

	if m := letterRe.FindStringSubmatch(s); m != nil {
		grade := strings.ToUpper(m[1]) + m[2]
		if v, ok := letterGrades[grade]; ok {
			return v, true
		}
		return 0, false
	}

	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		return fromFraction(num, den)
	}

	if m := starsRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den := 5.0
		if m[2] != "" {
			den, _ = strconv.ParseFloat(m[2], 64)
		}
		return fromFraction(num, den)
	}

	if m := numberRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		switch {
		case strings.HasSuffix(s, "%"):
			return inRange(int(math.Round(n)))
		case n <= 10:
			return inRange(int(math.Round(n / 10 * 100)))
		case n <= 100:
			return inRange(int(math.Round(n)))
		default:
			return 0, false
		}
	}

	if bucket, ok := sentimentWords[strings.ToLower(s)]; ok {
		return Representative(bucket), true
	}

	return 0, false
}

// fromFraction converts num/den to the 0-100 scale, rejecting zero
// denominators and results outside the scale.
func fromFraction(num, den float64) (int, bool) {
	if den == 0 {
		return 0, false
	}
	return inRange(int(math.Round(num / den * 100)))
}

func inRange(v int) (int, bool) {
	if v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

// Annotate sets CanonicalScore and Bucket on rec from its
// OriginalRatingText. Already-scored records keep their score and only have
// the bucket re-derived, preserving the no-silent-reset invariant.
func Annotate(rec *types.ReviewRecord) error {
	if rec.CanonicalScore == nil {
		if v, ok := Normalize(rec.OriginalRatingText); ok {
			rec.CanonicalScore = &v
		}
	}
	if rec.CanonicalScore != nil {
		if *rec.CanonicalScore < 0 || *rec.CanonicalScore > 100 {
			return fmt.Errorf("canonical score %d outside [0,100]", *rec.CanonicalScore)
		}
		rec.Bucket = BucketFor(*rec.CanonicalScore)
	}
	return nil
}
