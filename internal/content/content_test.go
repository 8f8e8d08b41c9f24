// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"strings"
	"testing"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

const showTitle = "Hadestown"

// reviewText builds plausible review prose mentioning the show, n words long.
func reviewText(n int) string {
	base := strings.Fields("Hadestown remains a marvel of staging and song with a cast that finds new shading in every number the band swells and the turntable spins and the whole evening lands with real force")
	words := make([]string, 0, n)
	for len(words) < n {
		words = append(words, base[len(words)%len(base)])
	}
	return strings.Join(words, " ")
}

func newTestClassifier() *Classifier {
	return NewClassifier(types.ContentConfig{MinCompleteWords: 120, MinSubstantiveRatio: 0.5})
}

func TestClassifyTiers(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name      string
		body      string
		excerpts  []types.Excerpt
		wantTier  types.ContentTier
		wantFlags []types.Flag
	}{
		{
			name:     "long clean body is complete",
			body:     reviewText(200),
			wantTier: types.TierComplete,
		},
		{
			name:      "paywall marker forces truncated regardless of length",
			body:      reviewText(300) + " Subscribe to continue reading this review.",
			wantTier:  types.TierTruncated,
			wantFlags: []types.Flag{types.FlagTruncated},
		},
		{
			name:      "short body with late paywall marker is truncated not complete",
			body:      reviewText(40) + " Subscribe to continue reading",
			wantTier:  types.TierTruncated,
			wantFlags: []types.Flag{types.FlagTruncated},
		},
		{
			name:     "short clean body is truncated",
			body:     reviewText(50),
			wantTier: types.TierTruncated,
		},
		{
			name:     "excerpts only",
			body:     "",
			excerpts: []types.Excerpt{{Text: "A marvel.", Source: "aggregator"}},
			wantTier: types.TierExcerpt,
		},
		{
			name:     "no text at all is a stub",
			body:     "",
			wantTier: types.TierStub,
		},
		{
			name: "navigation junk is invalid",
			body: strings.Repeat("Privacy Policy Terms of Use Related Articles Advertisement ", 10) +
				"Hadestown was reviewed.",
			wantTier:  types.TierInvalid,
			wantFlags: []types.Flag{types.FlagNavigationJunk},
		},
		{
			name:      "movie review of something else is wrong show",
			body:      strings.Repeat("The film is a box office wonder and the movie dazzles with cinematography worth the ticket price alone. ", 12),
			wantTier:  types.TierInvalid,
			wantFlags: []types.Flag{types.FlagWrongShow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &types.ReviewRecord{TextBody: tt.body, Excerpts: tt.excerpts}
			c.Classify(rec, showTitle, nil)
			if rec.ContentTier != tt.wantTier {
				t.Errorf("tier = %q, want %q", rec.ContentTier, tt.wantTier)
			}
			for _, f := range tt.wantFlags {
				if !rec.HasFlag(f) {
					t.Errorf("missing flag %q (have %v)", f, rec.Flags)
				}
			}
		})
	}
}

func TestClassifyTitleMatching(t *testing.T) {
	c := newTestClassifier()

	t.Run("year suffix stripped before matching", func(t *testing.T) {
		rec := &types.ReviewRecord{TextBody: reviewText(150)}
		c.Classify(rec, "Hadestown (2019)", nil)
		if rec.ContentTier != types.TierComplete {
			t.Errorf("tier = %q, want complete", rec.ContentTier)
		}
	})

	t.Run("hyphens treated as spaces", func(t *testing.T) {
		body := strings.Repeat("Moulin Rouge the musical is pure spectacle and the cast sells every second of it with brio to spare. ", 15)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Moulin-Rouge", nil)
		if rec.ContentTier != types.TierComplete {
			t.Errorf("tier = %q, want complete", rec.ContentTier)
		}
	})

	t.Run("absent title without movie vocabulary is not wrong show", func(t *testing.T) {
		body := strings.Repeat("A thrilling evening of theatre with superb performances across the board and direction that never flags. ", 15)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Hadestown", nil)
		if rec.HasFlag(types.FlagWrongShow) {
			t.Error("wrong-show flagged on mere title absence")
		}
		if rec.ContentTier != types.TierComplete {
			t.Errorf("tier = %q, want complete", rec.ContentTier)
		}
	})
}

func TestClassifyNeverDeletes(t *testing.T) {
	c := newTestClassifier()
	body := strings.Repeat("Privacy Policy Terms of Use Related Articles ", 20)
	rec := &types.ReviewRecord{TextBody: body, Excerpts: []types.Excerpt{{Text: "quote", Source: "agg"}}}
	c.Classify(rec, showTitle, nil)
	if rec.TextBody == "" {
		t.Error("classifier removed text")
	}
	if len(rec.Excerpts) != 1 {
		t.Error("classifier removed excerpts")
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := newTestClassifier()
	rec := &types.ReviewRecord{TextBody: reviewText(30) + " Subscribe to continue reading"}
	c.Classify(rec, showTitle, nil)
	tier, flags := rec.ContentTier, len(rec.Flags)
	c.Classify(rec, showTitle, nil)
	if rec.ContentTier != tier || len(rec.Flags) != flags {
		t.Errorf("second classify changed record: tier %q flags %v", rec.ContentTier, rec.Flags)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "A fine show, 4/5.", "A fine show, 4/5."},
		{"tags stripped", "<p>A fine <em>show</em>.</p>", "A fine show."},
		{"script dropped", "<p>Great.</p><script>var x=1;</script>", "Great."},
		{"stray angle brackets survive", "I loved it <3 and rating > average", "I loved it <3 and rating > average"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyWrongProduction(t *testing.T) {
	c := newTestClassifier()

	t.Run("different parenthesized year is wrong production", func(t *testing.T) {
		body := strings.Repeat("Cats (1998) at the Winter Garden was a sleeker animal and this staging never recaptures that charge for a single number. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Cats (2019)", nil)
		if rec.ContentTier != types.TierInvalid || !rec.HasFlag(types.FlagWrongProduction) {
			t.Errorf("tier = %q flags = %v, want invalid with wrong-production", rec.ContentTier, rec.Flags)
		}
	})

	t.Run("revival phrasing with different year is wrong production", func(t *testing.T) {
		body := strings.Repeat("The 1982 production of Cats felt endless then and the memory of it colors every minute spent watching this company work. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Cats (2019)", nil)
		if !rec.HasFlag(types.FlagWrongProduction) {
			t.Errorf("wrong-production not flagged, flags = %v", rec.Flags)
		}
	})

	t.Run("matching year is not flagged", func(t *testing.T) {
		body := strings.Repeat("Cats (2019) is a stripped down rethink and the dancers carry the evening with stamina the material barely deserves from them. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Cats (2019)", nil)
		if rec.HasFlag(types.FlagWrongProduction) {
			t.Errorf("matching year flagged wrong-production, flags = %v", rec.Flags)
		}
		if rec.ContentTier != types.TierComplete {
			t.Errorf("tier = %q, want complete", rec.ContentTier)
		}
	})

	t.Run("catalog title without year never flags", func(t *testing.T) {
		body := strings.Repeat("Hadestown 2016 at New York Theatre Workshop already had the bones and the Broadway transfer only deepens what was there. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Hadestown", nil)
		if rec.HasFlag(types.FlagWrongProduction) {
			t.Errorf("unversioned catalog title flagged wrong-production, flags = %v", rec.Flags)
		}
	})
}

func TestClassifyMultiShow(t *testing.T) {
	c := newTestClassifier()
	otherTitles := []string{"Wicked", "The Lion King", "Hadestown"}

	t.Run("roundup naming several productions is multi show", func(t *testing.T) {
		body := strings.Repeat("Hadestown leads the season while Wicked holds steady and The Lion King keeps selling out week after relentless week. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Hadestown", otherTitles)
		if rec.ContentTier != types.TierInvalid || !rec.HasFlag(types.FlagMultiShow) {
			t.Errorf("tier = %q flags = %v, want invalid with multi-show", rec.ContentTier, rec.Flags)
		}
	})

	t.Run("one passing comparison is not multi show", func(t *testing.T) {
		body := strings.Repeat("Hadestown has a confidence that Wicked never quite musters and the band deserves much of the credit for the difference. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Hadestown", otherTitles)
		if rec.HasFlag(types.FlagMultiShow) {
			t.Errorf("single comparison flagged multi-show, flags = %v", rec.Flags)
		}
		if rec.ContentTier != types.TierComplete {
			t.Errorf("tier = %q, want complete", rec.ContentTier)
		}
	})

	t.Run("target absent is not multi show", func(t *testing.T) {
		body := strings.Repeat("Wicked holds steady and The Lion King keeps selling out while newer arrivals struggle to find any audience at all. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Hadestown", otherTitles)
		if rec.HasFlag(types.FlagMultiShow) {
			t.Errorf("multi-show flagged without the target present, flags = %v", rec.Flags)
		}
	})

	t.Run("no catalog titles supplied never flags", func(t *testing.T) {
		body := strings.Repeat("Hadestown leads the season while Wicked holds steady and The Lion King keeps selling out week after relentless week. ", 12)
		rec := &types.ReviewRecord{TextBody: body}
		c.Classify(rec, "Hadestown", nil)
		if rec.HasFlag(types.FlagMultiShow) {
			t.Errorf("multi-show flagged with no catalog titles, flags = %v", rec.Flags)
		}
	})
}
