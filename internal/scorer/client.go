// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thomaspryor/broadwayscore/internal/httputil"
	"github.com/thomaspryor/broadwayscore/pkg/types"
)

const defaultTimeout = 60 * time.Second

// Client is the HTTP implementation of Scorer.
type Client struct {
	endpoint   string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	warnings   io.Writer
}

// NewClient builds a Client from cfg. Warnings (rate-limit retries) are
// written to w.
func NewClient(cfg types.ScorerConfig, w io.Writer) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("scorer endpoint not configured")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
		warnings:   w,
	}, nil
}

// Score posts the review context to the scoring service and decodes its
// verdict.
func (c *Client) Score(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encoding scorer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building scorer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, httpReq, c.maxRetries, c.warnings)
	if err != nil {
		return Result{}, fmt.Errorf("calling scorer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("scorer returned %d: %s", resp.StatusCode, snippet)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decoding scorer response: %w", err)
	}
	if err := result.Validate(); err != nil {
		return Result{}, err
	}
	return result, nil
}
