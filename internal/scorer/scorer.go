// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scorer calls the external review scoring service. The engine
// treats the service as opaque: it records the returned score and
// confidence, and validates nothing beyond their shape.
package scorer

import (
	"context"
	"fmt"

	"github.com/thomaspryor/broadwayscore/pkg/types"
)

// Request carries the review context sent to the scoring service.
type Request struct {
	Text       string `json:"text"`
	OutletName string `json:"outlet_name"`
	CriticName string `json:"critic_name"`
	ShowTitle  string `json:"show_title"`
}

// Result is the scoring service's verdict for one review.
type Result struct {
	Score      int              `json:"score"`
	Confidence types.Confidence `json:"confidence"`
}

// Scorer scores review text. Implementations: the HTTP client and test mocks.
type Scorer interface {
	Score(ctx context.Context, req Request) (Result, error)
}

// Validate checks the shape of a scorer result. A malformed result is a
// scorer defect, reported as unresolved rather than stored.
func (r Result) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("scorer returned score %d outside [0,100]", r.Score)
	}
	switch r.Confidence {
	case types.ConfidenceHigh, types.ConfidenceMedium, types.ConfidenceLow:
		return nil
	default:
		return fmt.Errorf("scorer returned unknown confidence %q", r.Confidence)
	}
}

// Authoritative reports whether the result is strong enough to satisfy the
// "has a valid score" requirement for publication. Low confidence is
// informative only.
func (r Result) Authoritative() bool {
	return r.Confidence == types.ConfidenceHigh || r.Confidence == types.ConfidenceMedium
}
