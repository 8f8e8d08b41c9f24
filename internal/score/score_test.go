// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		// Letter grades come from the single authoritative table.
		{"letter grade B+", "B+", 87, true},
		{"letter grade lowercase", "b+", 87, true},
		{"letter grade A", "A", 95, true},
		{"letter grade F", "F", 30, true},
		{"letter grade with space", "A -", 91, true},
		{"letter E is not a grade", "E+", 0, false},

		// Fractions.
		{"half-star fraction", "3.5/5", 70, true},
		{"four of five", "4/5", 80, true},
		{"fraction with stars suffix", "3.5/5 stars", 70, true},
		{"out of ten fraction", "7/10", 70, true},
		{"out of four", "3/4", 75, true},
		{"zero denominator", "3/0", 0, false},
		{"over-unity fraction", "6/5", 0, false},

		// Star phrasing.
		{"n stars", "4 stars", 80, true},
		{"single star", "1 star", 20, true},
		{"n out of five", "3 out of 5", 60, true},

		// Plain numbers.
		{"small number is out of ten", "8", 80, true},
		{"decimal out of ten", "7.5", 75, true},
		{"large number is percent", "80", 80, true},
		{"boundary ten", "10", 100, true},
		{"explicit percent", "85%", 85, true},
		{"out of range rejected not clamped", "150", 0, false},

		// Sentiment words.
		{"rave word", "Rave", 92, true},
		{"positive word", "positive", 80, true},
		{"mixed word", "Mixed", 62, true},
		{"pan word", "PAN", 25, true},

		// Placeholders and garbage.
		{"sentiment placeholder", "Sentiment: positive", 0, false},
		{"tone placeholder", "Tone: mixed", 0, false},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
		{"prose is unparseable", "a triumph of stagecraft", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeStable(t *testing.T) {
	// Repeated calls and equivalent notations agree; safe for backfills.
	for i := 0; i < 3; i++ {
		if got, _ := Normalize("B+"); got != 87 {
			t.Fatalf("Normalize(\"B+\") call %d = %d, want 87", i, got)
		}
	}
	a, _ := Normalize("4/5")
	b, _ := Normalize("80")
	if a != b {
		t.Errorf("equivalent ratings disagree: 4/5 → %d, 80 → %d", a, b)
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		score int
		want  types.Bucket
	}{
		{100, types.BucketRave},
		{85, types.BucketRave},
		{84, types.BucketPositive},
		{70, types.BucketPositive},
		{69, types.BucketMixed},
		{55, types.BucketMixed},
		{54, types.BucketNegative},
		{35, types.BucketNegative},
		{34, types.BucketPan},
		{0, types.BucketPan},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.score); got != tt.want {
			t.Errorf("BucketFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRepresentativeLandsInOwnBucket(t *testing.T) {
	for _, b := range []types.Bucket{
		types.BucketRave, types.BucketPositive, types.BucketMixed,
		types.BucketNegative, types.BucketPan,
	} {
		if got := BucketFor(Representative(b)); got != b {
			t.Errorf("Representative(%q) = %d lands in bucket %q", b, Representative(b), got)
		}
	}
}

func TestLetterGradesAllBucketable(t *testing.T) {
	for grade, v := range letterGrades {
		if v < 0 || v > 100 {
			t.Errorf("grade %q maps to %d outside [0,100]", grade, v)
		}
	}
}

func TestAnnotate(t *testing.T) {
	t.Run("sets score and bucket from rating text", func(t *testing.T) {
		rec := &types.ReviewRecord{OriginalRatingText: "3.5/5"}
		if err := Annotate(rec); err != nil {
			t.Fatal(err)
		}
		if rec.CanonicalScore == nil || *rec.CanonicalScore != 70 {
			t.Fatalf("CanonicalScore = %v, want 70", rec.CanonicalScore)
		}
		if rec.Bucket != types.BucketPositive {
			t.Errorf("Bucket = %q, want Positive", rec.Bucket)
		}
	})

	t.Run("never resets an existing score", func(t *testing.T) {
		existing := 91
		rec := &types.ReviewRecord{CanonicalScore: &existing, OriginalRatingText: "2/5"}
		if err := Annotate(rec); err != nil {
			t.Fatal(err)
		}
		if *rec.CanonicalScore != 91 {
			t.Errorf("existing score overwritten: %d", *rec.CanonicalScore)
		}
		if rec.Bucket != types.BucketRave {
			t.Errorf("Bucket = %q, want Rave", rec.Bucket)
		}
	})

	t.Run("unparseable leaves score nil", func(t *testing.T) {
		rec := &types.ReviewRecord{OriginalRatingText: "Sentiment: positive"}
		if err := Annotate(rec); err != nil {
			t.Fatal(err)
		}
		if rec.CanonicalScore != nil {
			t.Errorf("placeholder scored: %d", *rec.CanonicalScore)
		}
		if rec.Bucket != "" {
			t.Errorf("bucket assigned without a score: %q", rec.Bucket)
		}
	})

	t.Run("out of range is an error", func(t *testing.T) {
		bad := 180
		rec := &types.ReviewRecord{CanonicalScore: &bad}
		if err := Annotate(rec); err == nil {
			t.Error("expected error for out-of-range score")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		rec := &types.ReviewRecord{OriginalRatingText: "B+"}
		if err := Annotate(rec); err != nil {
			t.Fatal(err)
		}
		first := *rec.CanonicalScore
		if err := Annotate(rec); err != nil {
			t.Fatal(err)
		}
		if *rec.CanonicalScore != first || rec.Bucket != BucketFor(first) {
			t.Errorf("second annotate changed the record: score %d bucket %q", *rec.CanonicalScore, rec.Bucket)
		}
	})
}
