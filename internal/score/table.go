// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "github.com/thomaspryor/broadwayscore/pkg/types"

// letterGrades is the single authoritative letter-grade table. Every caller
// that needs a grade-to-score mapping goes through Normalize; no second
// table may exist anywhere in the codebase.
var letterGrades = map[string]int{
	"A+": 98,
	"A":  95,
	"A-": 91,
	"B+": 87,
	"B":  83,
	"B-": 78,
	"C+": 72,
	"C":  66,
	"C-": 60,
	"D+": 55,
	"D":  50,
	"D-": 45,
	"F":  30,
}

// Bucket thresholds. Non-overlapping, fixed for a run; changing them is a
// corpus-wide backfill, not a per-review decision.
const (
	raveMin     = 85
	positiveMin = 70
	mixedMin    = 55
	negativeMin = 35
)

// representative maps each bucket to the score used when only a categorical
// signal (sentiment word, external thumb) is available.
var representative = map[types.Bucket]int{
	types.BucketRave:     92,
	types.BucketPositive: 80,
	types.BucketMixed:    62,
	types.BucketNegative: 45,
	types.BucketPan:      25,
}

// BucketFor derives the sentiment bucket for a canonical score.
func BucketFor(score int) types.Bucket {
	switch {
	case score >= raveMin:
		return types.BucketRave
	case score >= positiveMin:
		return types.BucketPositive
	case score >= mixedMin:
		return types.BucketMixed
	case score >= negativeMin:
		return types.BucketNegative
	default:
		return types.BucketPan
	}
}

// Representative returns the fixed representative score for a bucket.
func Representative(b types.Bucket) int {
	return representative[b]
}

// bucketOrder positions buckets on the sentiment axis, Pan lowest.
var bucketOrder = map[types.Bucket]int{
	types.BucketPan:      0,
	types.BucketNegative: 1,
	types.BucketMixed:    2,
	types.BucketPositive: 3,
	types.BucketRave:     4,
}

// BucketDistance returns how many bucket positions apart two buckets sit.
func BucketDistance(a, b types.Bucket) int {
	d := bucketOrder[a] - bucketOrder[b]
	if d < 0 {
		d = -d
	}
	return d
}
