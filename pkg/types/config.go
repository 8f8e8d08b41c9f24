// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// IdentityConfig holds settings for the identity normalization stage.
type IdentityConfig struct {
	// OutletAliasFile is an optional YAML file of extra raw-string → outletId
	// mappings merged over the built-in alias table.
	OutletAliasFile string `json:"outlet_alias_file,omitempty" yaml:"outlet_alias_file,omitempty"`

	// CriticAliasFile is an optional YAML file of extra critic alias mappings.
	CriticAliasFile string `json:"critic_alias_file,omitempty" yaml:"critic_alias_file,omitempty"`
}

// ContentConfig holds thresholds for the content classification stage.
type ContentConfig struct {
	// MinCompleteWords is the minimum word count for the "complete" tier
	// (default 120).
	MinCompleteWords int `json:"min_complete_words" yaml:"min_complete_words"`

	// MinSubstantiveRatio is the minimum proportion of non-boilerplate words
	// below which text is rejected as navigation junk (default 0.5).
	MinSubstantiveRatio float64 `json:"min_substantive_ratio" yaml:"min_substantive_ratio"`
}

// ScorerConfig holds settings for the external review scoring service.
type ScorerConfig struct {
	// Endpoint is the scoring service URL. Empty disables external scoring.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// APIKey authenticates requests to the scoring service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Timeout is the per-request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retry attempts on rate limiting (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CorpusConfig holds settings for corpus persistence.
type CorpusConfig struct {
	// CorpusDir is the base directory for corpus data (contains raw/, index/,
	// reports/).
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// CatalogPath is the path to the read-only show catalog database.
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Identity IdentityConfig `json:"identity" yaml:"identity"`
	Content  ContentConfig  `json:"content" yaml:"content"`
	Scorer   ScorerConfig   `json:"scorer" yaml:"scorer"`
	Corpus   CorpusConfig   `json:"corpus" yaml:"corpus"`

	// ActiveOnly restricts processing to productions the catalog lists as open.
	ActiveOnly bool `json:"active_only" yaml:"active_only"`
}
