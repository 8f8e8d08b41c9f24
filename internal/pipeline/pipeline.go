// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the normalization stages over a corpus of review
// records: identity, score, content, external scoring, merge, validation.
// Every stage is a pure per-record annotation except the merge, which needs
// the whole corpus normalized before any decision; re-running the pipeline
// on its own output is a no-op.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thomaspryor/broadwayscore/internal/content"
	"github.com/thomaspryor/broadwayscore/internal/identity"
	"github.com/thomaspryor/broadwayscore/internal/merge"
	"github.com/thomaspryor/broadwayscore/internal/score"
	"github.com/thomaspryor/broadwayscore/internal/scorer"
	"github.com/thomaspryor/broadwayscore/internal/validate"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// Catalog is the read-only show lookup the pipeline consults for titles and
// production status. Titles lists every catalogued title so the classifier
// can spot roundup reviews naming several productions.
type Catalog interface {
	Lookup(ctx context.Context, showID string) (types.Show, bool, error)
	Titles(ctx context.Context) ([]string, error)
}

// Pipeline holds the stage collaborators for one run. The lookup tables
// inside the normalizer and classifier are immutable for the run.
type Pipeline struct {
	Normalizer *identity.Normalizer
	Classifier *content.Classifier
	Catalog    Catalog

	// Scorer is the optional external scoring service. Nil disables the
	// external scoring pass.
	Scorer scorer.Scorer

	// Quality overrides the merge quality function. Nil uses the default.
	Quality merge.QualityFunc

	// ActiveOnly restricts the run to productions the catalog lists as open.
	ActiveOnly bool
}

// Output is the published corpus plus every side-channel report.
type Output struct {
	Published []*types.ReviewRecord
	Report    *types.RunReport
}

// FromRaw creates a ReviewRecord from one source record, attaching canonical
// outlet and critic identity. Unresolved outlet strings are reported via the
// returned flag for alias-table maintenance; the record is still produced
// with the fallback slug.
func (p *Pipeline) FromRaw(raw types.RawRecord) (*types.ReviewRecord, bool) {
	outlet := p.Normalizer.NormalizeOutlet(raw.Outlet)
	rec := &types.ReviewRecord{
		ShowID:             raw.ShowID,
		OutletID:           outlet.OutletID,
		OutletDisplayName:  outlet.DisplayName,
		CriticName:         p.Normalizer.NormalizeCritic(raw.CriticName),
		URL:                raw.URL,
		PublishDate:        raw.PublishDate,
		OriginalRatingText: raw.OriginalRatingText,
		TextBody:           raw.TextBody,
		Excerpts:           raw.Excerpts,
		ExternalThumb:      raw.ExternalThumb,
	}
	rec.AddProvenance(raw.Source)
	return rec, outlet.Resolved || raw.Outlet == ""
}

// Ingest converts raw source records into ReviewRecords, returning the
// unresolved-outlet and unresolved-critic findings alongside.
func (p *Pipeline) Ingest(raws []types.RawRecord) ([]*types.ReviewRecord, []types.Unresolved) {
	records := make([]*types.ReviewRecord, 0, len(raws))
	var unresolved []types.Unresolved
	for _, raw := range raws {
		rec, resolved := p.FromRaw(raw)
		if !resolved {
			unresolved = append(unresolved, types.Unresolved{
				Kind:   types.UnresolvedOutlet,
				ShowID: raw.ShowID,
				Raw:    raw.Outlet,
				Source: raw.Source,
			})
		}
		// A byline was present but carried nothing usable as a critic key.
		if raw.CriticName != "" && rec.CriticName == types.UnknownCritic &&
			!strings.EqualFold(strings.TrimSpace(raw.CriticName), types.UnknownCritic) {
			unresolved = append(unresolved, types.Unresolved{
				Kind:   types.UnresolvedCritic,
				ShowID: raw.ShowID,
				Raw:    raw.CriticName,
				Source: raw.Source,
			})
		}
		records = append(records, rec)
	}
	return records, unresolved
}

// RunRaw ingests raw source records and runs the full pipeline over them.
func (p *Pipeline) RunRaw(ctx context.Context, raws []types.RawRecord, w io.Writer) (Output, error) {
	records, unresolved := p.Ingest(raws)
	out, err := p.Run(ctx, records, w)
	if err != nil {
		return Output{}, err
	}
	out.Report.Unresolved = append(unresolved, out.Report.Unresolved...)
	return out, nil
}

// Run executes the record-level stages, the merge, and the validator over
// records, writing progress to w. One bad record never aborts the batch.
func (p *Pipeline) Run(ctx context.Context, records []*types.ReviewRecord, w io.Writer) (Output, error) {
	report := &types.RunReport{
		RunID:        uuid.NewString(),
		StartedAt:    time.Now().UTC(),
		Input:        len(records),
		TierCounts:   make(map[types.ContentTier]int),
		BucketCounts: make(map[types.Bucket]int),
	}

	var titles []string
	if p.Catalog != nil {
		var err error
		if titles, err = p.Catalog.Titles(ctx); err != nil {
			return Output{}, fmt.Errorf("catalog titles: %w", err)
		}
	}

	shows := make(map[string]types.Show)
	kept := make([]*types.ReviewRecord, 0, len(records))

	for _, rec := range records {
		show, found, err := p.lookupShow(ctx, rec.ShowID, shows)
		if err != nil {
			return Output{}, fmt.Errorf("catalog lookup for %s: %w", rec.ShowID, err)
		}
		if p.ActiveOnly && (!found || show.Status != types.ShowStatusOpen) {
			continue
		}

		if err := score.Annotate(rec); err != nil {
			// Out-of-range scores are caught again by the validator; keep
			// the record so it lands in the error report, not in a crash.
			fmt.Fprintf(w, "warning: %s/%s: %v\n", rec.ShowID, rec.OutletID, err)
		}
		if rec.CanonicalScore == nil && rec.OriginalRatingText != "" {
			report.Unresolved = append(report.Unresolved, types.Unresolved{
				Kind:   types.UnresolvedRating,
				ShowID: rec.ShowID,
				Raw:    rec.OriginalRatingText,
			})
		}

		p.Classifier.Classify(rec, show.Title, titles)
		p.scoreExternally(ctx, rec, show.Title, w)
		kept = append(kept, rec)
	}

	merged := merge.Merge(kept, p.Quality)
	report.Discards = merged.Discards

	validated := validate.Validate(merged.Records)
	report.Repairs = validated.Repairs
	report.Fatals = validated.Fatals
	report.Inconsistencies = validated.Inconsistencies

	for _, rec := range validated.Published {
		report.TierCounts[rec.ContentTier]++
		if rec.Bucket != "" {
			report.BucketCounts[rec.Bucket]++
		}
		if rec.CanonicalScore == nil && !hasAuthoritativeExternal(rec) {
			report.Attention = append(report.Attention, types.IdentityKey{
				ShowID:    rec.ShowID,
				OutletID:  rec.OutletID,
				CriticKey: rec.CriticName,
			})
		}
	}
	report.Published = len(validated.Published)

	fmt.Fprintf(w, "published %d of %d records (%d duplicates folded, %d fatal)\n",
		report.Published, report.Input, len(report.Discards), len(report.Fatals))

	return Output{Published: validated.Published, Report: report}, nil
}

func (p *Pipeline) lookupShow(ctx context.Context, showID string, cache map[string]types.Show) (types.Show, bool, error) {
	if show, ok := cache[showID]; ok {
		return show, show.ID != "", nil
	}
	if p.Catalog == nil {
		cache[showID] = types.Show{}
		return types.Show{}, false, nil
	}
	show, found, err := p.Catalog.Lookup(ctx, showID)
	if err != nil {
		return types.Show{}, false, err
	}
	if !found {
		show = types.Show{}
	}
	cache[showID] = show
	return show, found, nil
}

// scoreExternally asks the external scorer to validate a record's text.
// Skipped when no scorer is configured, the record has no text, or a prior
// run already attached a result. Scorer failures are warnings; the record
// stays in the corpus without a validation score.
func (p *Pipeline) scoreExternally(ctx context.Context, rec *types.ReviewRecord, showTitle string, w io.Writer) {
	if p.Scorer == nil || rec.External != nil || rec.TextBody == "" {
		return
	}
	if rec.ContentTier == types.TierInvalid {
		return
	}
	result, err := p.Scorer.Score(ctx, scorer.Request{
		Text:       rec.TextBody,
		OutletName: rec.OutletDisplayName,
		CriticName: rec.CriticName,
		ShowTitle:  showTitle,
	})
	if err != nil {
		fmt.Fprintf(w, "warning: external scorer failed for %s/%s: %v\n", rec.ShowID, rec.OutletID, err)
		return
	}
	rec.External = &types.ExternalScore{Score: result.Score, Confidence: result.Confidence}
}

func hasAuthoritativeExternal(rec *types.ReviewRecord) bool {
	return rec.External != nil && rec.External.Confidence != types.ConfidenceLow
}
