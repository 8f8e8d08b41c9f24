// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity canonicalizes outlet and critic identity across the
// spelling and slug variants produced by independent collection passes.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// Tables holds the alias lookups a Normalizer consults. Loaded once at
// startup and treated as immutable for the duration of a run; tests
// substitute fixture tables.
type Tables struct {
	// OutletAliases maps a slugified raw outlet string to its canonical
	// outlet ID. Covers historical slugs, typos, renames and mergers.
	OutletAliases map[string]string

	// CriticAliases maps a normalized critic key to the canonical key for
	// the same person. Explicit entries only; fuzzy matching would risk
	// merging distinct people.
	CriticAliases map[string]string

	// DisplayOverrides maps an outlet ID to its display name where the
	// mechanical slug-to-title derivation gets it wrong.
	DisplayOverrides map[string]string
}

// Normalizer resolves raw outlet and critic strings against a Tables.
// All methods are pure and idempotent.
type Normalizer struct {
	tables    Tables
	canonical map[string]bool
	titler    cases.Caser
}

// NewNormalizer returns a Normalizer over the given tables.
func NewNormalizer(tables Tables) *Normalizer {
	// Canonical IDs resolve to themselves without an explicit alias entry.
	canonical := make(map[string]bool)
	for _, id := range tables.OutletAliases {
		canonical[id] = true
	}
	for id := range tables.DisplayOverrides {
		canonical[id] = true
	}
	return &Normalizer{tables: tables, canonical: canonical, titler: cases.Title(language.Und)}
}

// OutletResult is the outcome of resolving one raw outlet string.
type OutletResult struct {
	OutletID    string
	DisplayName string

	// Resolved is false when the raw string matched no alias and the ID is
	// a fallback slug of the input, to be surfaced for table maintenance.
	Resolved bool
}

// NormalizeOutlet maps a raw outlet string to its canonical outlet ID and
// display name. Unknown outlets fall back to a slug of the input rather
// than erroring.
func (n *Normalizer) NormalizeOutlet(raw string) OutletResult {
	slug := Slugify(raw)
	if slug == "" {
		return OutletResult{}
	}
	if canonical, ok := n.tables.OutletAliases[slug]; ok {
		return OutletResult{
			OutletID:    canonical,
			DisplayName: n.DisplayName(canonical),
			Resolved:    true,
		}
	}
	return OutletResult{
		OutletID:    slug,
		DisplayName: n.DisplayName(slug),
		Resolved:    n.canonical[slug],
	}
}

// NormalizeCritic maps a raw critic string to the canonical critic key used
// in identity comparison. Empty or whitespace input yields the unknown
// sentinel.
func (n *Normalizer) NormalizeCritic(raw string) string {
	key := CriticKey(raw)
	if key == "" {
		return types.UnknownCritic
	}
	if canonical, ok := n.tables.CriticAliases[key]; ok {
		return canonical
	}
	return key
}

// DisplayName derives the human-readable outlet name from an outlet ID.
func (n *Normalizer) DisplayName(outletID string) string {
	if name, ok := n.tables.DisplayOverrides[outletID]; ok {
		return name
	}
	return n.titler.String(strings.ReplaceAll(outletID, "-", " "))
}

// Slugify lowercases, strips a leading article, and collapses every run of
// non-alphanumeric characters to a single hyphen. Applying it to its own
// output is a no-op.
func Slugify(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, article) {
			s = s[len(article):]
			break
		}
	}

	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteRune('-')
				hyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CriticKey normalizes a critic name for identity comparison: lowercased,
// diacritic-insensitive in the common Latin-1 range, single-spaced.
func CriticKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == types.UnknownCritic {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(foldLatin(r))
		case unicode.IsSpace(r) || r == '-' || r == '.' || r == '\'':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// foldLatin maps accented Latin-1 letters to their base letter so that
// byline variants like "Jesse Green" / "Jessé Green" compare equal.
func foldLatin(r rune) rune {
	switch {
	case r >= 'à' && r <= 'å':
		return 'a'
	case r == 'ç':
		return 'c'
	case r >= 'è' && r <= 'ë':
		return 'e'
	case r >= 'ì' && r <= 'ï':
		return 'i'
	case r == 'ñ':
		return 'n'
	case r >= 'ò' && r <= 'ö':
		return 'o'
	case r >= 'ù' && r <= 'ü':
		return 'u'
	case r == 'ý' || r == 'ÿ':
		return 'y'
	}
	return r
}
