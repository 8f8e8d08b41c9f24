// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge groups duplicate review records and folds each group into a
// single survivor, reporting every discard. Merging an already-merged corpus
// is a no-op.
package merge

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// QualityFunc scores a record's information richness. The highest-scoring
// candidate in a group becomes the survivor; ties go to the
// first-encountered record so repeated runs stay deterministic.
type QualityFunc func(rec *types.ReviewRecord) float64

// Quality weights. Authoritative full text dominates; everything else is a
// tie-breaker between otherwise comparable candidates.
const (
	weightText     = 40.0
	weightTextLen  = 10.0 // scaled by body length, capped
	weightCritic   = 15.0
	weightOutlet   = 10.0
	weightScore    = 15.0
	weightExternal = 10.0
	weightURL      = 10.0

	textLenCap = 2000 // body runes beyond this add no quality
)

// DefaultQuality is the standard information-richness score.
func DefaultQuality(rec *types.ReviewRecord) float64 {
	var q float64
	if rec.TextBody != "" {
		q += weightText
		n := utf8.RuneCountInString(rec.TextBody)
		if n > textLenCap {
			n = textLenCap
		}
		q += weightTextLen * float64(n) / textLenCap
	}
	if rec.CriticName != "" && rec.CriticName != types.UnknownCritic {
		q += weightCritic
	}
	if rec.OutletID != "" {
		q += weightOutlet
	}
	if rec.CanonicalScore != nil {
		q += weightScore
	}
	if rec.External != nil {
		q += weightExternal
	}
	if rec.URL != "" {
		q += weightURL
	}
	return q
}

// Result holds the surviving records and the audit trail of what was folded
// into them.
type Result struct {
	Records  []*types.ReviewRecord
	Discards []types.Discard
}

// Merge deduplicates records. Grouping is by identity key first; within a
// show, records sharing a normalized URL are then pulled into the same group
// even when identity-derived fields differ, since the URL is stronger
// evidence of the same real-world review. quality may be nil to use
// DefaultQuality.
func Merge(records []*types.ReviewRecord, quality QualityFunc) Result {
	if quality == nil {
		quality = DefaultQuality
	}

	type group struct {
		members []*types.ReviewRecord
		reasons []string // reason the member joined, "" for the first
		into    *group   // set when this group was unioned into another
	}

	// find follows union links to the surviving group.
	find := func(g *group) *group {
		for g.into != nil {
			g = g.into
		}
		return g
	}

	var groups []*group
	byIdentity := make(map[types.IdentityKey]*group)
	byURL := make(map[string]*group) // showID + "\n" + normalized URL

	for _, rec := range records {
		key := types.IdentityKey{
			ShowID:    rec.ShowID,
			OutletID:  rec.OutletID,
			CriticKey: strings.ToLower(rec.CriticName),
		}
		urlKey := ""
		if u := NormalizeURL(rec.URL); u != "" {
			urlKey = rec.ShowID + "\n" + u
		}

		var idGroup, urlGroup *group
		if g, ok := byIdentity[key]; ok {
			idGroup = find(g)
		}
		if urlKey != "" {
			if g, ok := byURL[urlKey]; ok {
				urlGroup = find(g)
			}
		}

		switch {
		case idGroup != nil:
			idGroup.members = append(idGroup.members, rec)
			idGroup.reasons = append(idGroup.reasons, "same outlet+critic")
			// A shared URL can bridge two previously separate groups.
			if urlGroup != nil && urlGroup != idGroup {
				idGroup.members = append(idGroup.members, urlGroup.members...)
				for range urlGroup.members {
					idGroup.reasons = append(idGroup.reasons, "same normalized URL")
				}
				urlGroup.into = idGroup
			}
			if urlKey != "" {
				byURL[urlKey] = idGroup
			}
		case urlGroup != nil:
			urlGroup.members = append(urlGroup.members, rec)
			urlGroup.reasons = append(urlGroup.reasons, "same normalized URL")
			byIdentity[key] = urlGroup
		default:
			g := &group{members: []*types.ReviewRecord{rec}, reasons: []string{""}}
			groups = append(groups, g)
			byIdentity[key] = g
			if urlKey != "" {
				byURL[urlKey] = g
			}
		}
	}

	var out Result
	for _, g := range groups {
		if g.into != nil {
			continue
		}
		survivorIdx := 0
		best := quality(g.members[0])
		for i := 1; i < len(g.members); i++ {
			if q := quality(g.members[i]); q > best {
				best, survivorIdx = q, i
			}
		}

		survivor := g.members[survivorIdx]
		for i, dup := range g.members {
			if i == survivorIdx {
				continue
			}
			reason := g.reasons[i]
			if reason == "" {
				// The first-encountered record lost the survivor election;
				// report it under the reason its replacement joined with.
				reason = g.reasons[survivorIdx]
			}
			absorb(survivor, dup)
			out.Discards = append(out.Discards, types.Discard{
				Identity: types.IdentityKey{
					ShowID:    dup.ShowID,
					OutletID:  dup.OutletID,
					CriticKey: strings.ToLower(dup.CriticName),
				},
				Reason:     reason,
				ScoreDelta: quality(dup) - best,
			})
		}
		out.Records = append(out.Records, survivor)
	}
	return out
}

// absorb fills the survivor's absent fields from dup and prefers the longer
// text body. Present survivor data is never overwritten by shorter or equal
// alternatives.
func absorb(survivor, dup *types.ReviewRecord) {
	if survivor.CriticName == "" || survivor.CriticName == types.UnknownCritic {
		if dup.CriticName != "" && dup.CriticName != types.UnknownCritic {
			survivor.CriticName = dup.CriticName
		}
	}
	if survivor.URL == "" {
		survivor.URL = dup.URL
	}
	if survivor.PublishDate.IsZero() {
		survivor.PublishDate = dup.PublishDate
	}
	if survivor.OriginalRatingText == "" {
		survivor.OriginalRatingText = dup.OriginalRatingText
	}
	if survivor.CanonicalScore == nil && dup.CanonicalScore != nil {
		survivor.CanonicalScore = dup.CanonicalScore
		survivor.Bucket = dup.Bucket
	}
	if len(dup.TextBody) > len(survivor.TextBody) {
		survivor.TextBody = dup.TextBody
		survivor.ContentTier = dup.ContentTier
	}
	survivor.Excerpts = append(survivor.Excerpts, missingExcerpts(survivor.Excerpts, dup.Excerpts)...)
	if survivor.ExternalThumb == types.ThumbNone {
		survivor.ExternalThumb = dup.ExternalThumb
	}
	if survivor.External == nil {
		survivor.External = dup.External
	}
	for _, f := range dup.Flags {
		survivor.AddFlag(f)
	}
	for _, p := range dup.Provenance {
		survivor.AddProvenance(p)
	}
}

func missingExcerpts(have, candidates []types.Excerpt) []types.Excerpt {
	var add []types.Excerpt
	for _, c := range candidates {
		found := false
		for _, h := range have {
			if h.Text == c.Text {
				found = true
				break
			}
		}
		if !found {
			add = append(add, c)
		}
	}
	return add
}

// NormalizeURL reduces a URL to its dedup form: lowercased host without
// "www.", path without a trailing slash, scheme, query and fragment
// dropped. Unparseable input normalizes to "".
func NormalizeURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" && u.Path == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.TrimSuffix(u.Path, "/")
	if host == "" {
		return path
	}
	return fmt.Sprintf("%s%s", host, path)
}
