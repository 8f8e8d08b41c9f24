// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content classifies the completeness and trustworthiness of review
// text. It only annotates; quarantine and deletion are separate, explicit
// operations gated on the classification.
package content

import (
	"regexp"
	"strings"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

const (
	defaultMinCompleteWords    = 120
	defaultMinSubstantiveRatio = 0.5
)

// truncationMarkers are paywall and bot-block phrases whose presence forces
// the truncated tier regardless of how much text precedes them.
var truncationMarkers = []string{
	"subscribe to continue",
	"subscribe to read",
	"sign in to read",
	"sign in to continue",
	"log in to continue",
	"register to continue",
	"create a free account",
	"already a subscriber",
	"this article is for subscribers",
	"to continue reading",
}

// boilerplateTokens mark navigation chrome scraped in place of, or alongside,
// review text.
var boilerplateTokens = []string{
	"privacy policy",
	"terms of use",
	"terms of service",
	"cookie policy",
	"related articles",
	"most popular",
	"sign up for our newsletter",
	"advertisement",
	"skip to content",
	"all rights reserved",
}

// movieVocab signals that a text reviews a film rather than a stage
// production. Only consulted when the show title is absent.
var movieVocab = []string{
	"box office",
	"the film",
	"this film",
	"the movie",
	"this movie",
	"screenplay",
	"cinematography",
	"director's cut",
	"streaming on",
	"in theaters",
}

var (
	yearSuffixRe   = regexp.MustCompile(`[\s-]*\(?(19|20)\d{2}\)?$`)
	trailingYearRe = regexp.MustCompile(`((?:19|20)\d{2})\)?$`)
)

// Classifier assigns content tiers and structural flags. Thresholds come
// from configuration so the corpus owner can tighten them without a code
// change.
type Classifier struct {
	minCompleteWords    int
	minSubstantiveRatio float64
}

// NewClassifier builds a Classifier from cfg, applying defaults for unset
// thresholds.
func NewClassifier(cfg types.ContentConfig) *Classifier {
	c := &Classifier{
		minCompleteWords:    cfg.MinCompleteWords,
		minSubstantiveRatio: cfg.MinSubstantiveRatio,
	}
	if c.minCompleteWords <= 0 {
		c.minCompleteWords = defaultMinCompleteWords
	}
	if c.minSubstantiveRatio <= 0 {
		c.minSubstantiveRatio = defaultMinSubstantiveRatio
	}
	return c
}

// Classify assigns rec's ContentTier and structural flags given the show
// title from the catalog and the titles of the other catalogued productions.
// It never removes text or existing flags.
func (c *Classifier) Classify(rec *types.ReviewRecord, showTitle string, otherTitles []string) {
	body := StripHTML(rec.TextBody)
	if body != rec.TextBody && body != "" {
		rec.TextBody = body
	}

	lower := strings.ToLower(body)
	words := len(strings.Fields(body))

	switch {
	case body == "" && len(rec.Excerpts) == 0:
		rec.ContentTier = types.TierStub
		return
	case body == "":
		rec.ContentTier = types.TierExcerpt
		return
	}

	if !c.substantive(lower, words) {
		rec.ContentTier = types.TierInvalid
		rec.AddFlag(types.FlagNavigationJunk)
		return
	}

	if showTitle != "" {
		switch {
		case !mentionsShow(lower, showTitle) && looksLikeMovieReview(lower):
			rec.ContentTier = types.TierInvalid
			rec.AddFlag(types.FlagWrongShow)
			return
		case wrongProductionYear(lower, showTitle):
			rec.ContentTier = types.TierInvalid
			rec.AddFlag(types.FlagWrongProduction)
			return
		case coversMultipleShows(lower, showTitle, otherTitles):
			rec.ContentTier = types.TierInvalid
			rec.AddFlag(types.FlagMultiShow)
			return
		}
	}

	if hasTruncationMarker(lower) {
		rec.ContentTier = types.TierTruncated
		rec.AddFlag(types.FlagTruncated)
		return
	}

	if words >= c.minCompleteWords {
		rec.ContentTier = types.TierComplete
		return
	}
	rec.ContentTier = types.TierTruncated
}

// substantive reports whether enough of the text is review prose rather
// than navigation boilerplate.
func (c *Classifier) substantive(lower string, words int) bool {
	if words == 0 {
		return false
	}
	boilerplateWords := 0
	for _, token := range boilerplateTokens {
		boilerplateWords += strings.Count(lower, token) * len(strings.Fields(token))
	}
	substantive := words - boilerplateWords
	return float64(substantive)/float64(words) >= c.minSubstantiveRatio
}

// mentionsShow reports whether the show title appears in the text. The
// title is matched with its trailing year suffix stripped and hyphens
// treated as spaces, since scraped titles carry both variants.
func mentionsShow(lower, showTitle string) bool {
	title := normalizeTitle(showTitle)
	if title == "" {
		return true
	}
	return strings.Contains(normalizeText(lower), title)
}

func normalizeTitle(showTitle string) string {
	title := strings.ToLower(strings.TrimSpace(showTitle))
	title = yearSuffixRe.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, "-", " ")
	return strings.Join(strings.Fields(title), " ")
}

func normalizeText(lower string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(lower, "-", " ")), " ")
}

// wrongProductionYear reports whether the text ties the show title to a
// production year other than the catalog's. Only meaningful when the
// catalog title itself carries a year suffix.
func wrongProductionYear(lower, showTitle string) bool {
	m := trailingYearRe.FindStringSubmatch(strings.TrimSpace(showTitle))
	if m == nil {
		return false
	}
	want := m[1]
	base := normalizeTitle(showTitle)
	if base == "" {
		return false
	}
	text := normalizeText(lower)
	quoted := regexp.QuoteMeta(base)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(quoted + `\s*\(?((?:19|20)\d{2})(?:\)|\b)`),
		regexp.MustCompile(`((?:19|20)\d{2})\s+(?:revival|production)\s+of\s+(?:the\s+)?` + quoted),
	}
	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if match[1] != want {
				return true
			}
		}
	}
	return false
}

// coversMultipleShows reports whether the text reads as a roundup naming the
// target production alongside at least two other catalogued shows.
func coversMultipleShows(lower, showTitle string, otherTitles []string) bool {
	if !mentionsShow(lower, showTitle) {
		return false
	}
	target := normalizeTitle(showTitle)
	others := make(map[string]bool)
	for _, title := range otherTitles {
		base := normalizeTitle(title)
		if base == "" || base == target || others[base] {
			continue
		}
		if mentionsShow(lower, title) {
			others[base] = true
		}
	}
	return len(others) >= 2
}

func looksLikeMovieReview(lower string) bool {
	hits := 0
	for _, term := range movieVocab {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return hits >= 2
}

func hasTruncationMarker(lower string) bool {
	for _, marker := range truncationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
