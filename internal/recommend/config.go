// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"fmt"
	"time"
)

// Config contains all tuning for the recommendation pipeline.
type Config struct {
	// Generation contains candidate-generation limits.
	Generation GenerationConfig `json:"generation"`

	// Rerank contains the ranking policy's tunable gates.
	Rerank RerankConfig `json:"rerank"`

	// Enrich contains detail-fetch limits.
	Enrich EnrichConfig `json:"enrich"`

	// Limits contains request-level limits.
	Limits LimitsConfig `json:"limits"`
}

// GenerationConfig bounds the candidate-generation fan-out.
type GenerationConfig struct {
	// MaxBrowseCalls is the cap on browse-by-cause calls per request.
	// Default: 3.
	MaxBrowseCalls int `json:"max_browse_calls"`

	// MaxSearchTerms is the cap on search terms per request.
	// Default: 5.
	MaxSearchTerms int `json:"max_search_terms"`

	// Take is the page size requested from each directory call.
	// Default: 50.
	Take int `json:"take"`

	// MaxCandidates caps the deduplicated candidate set handed to the
	// reranker. Default: 200.
	MaxCandidates int `json:"max_candidates"`

	// Concurrency is the maximum simultaneous in-flight generation
	// calls. Default: 8.
	Concurrency int `json:"concurrency"`
}

// RerankConfig tunes the ranking policy's gates. The thresholds are
// deliberately configurable: they encode editorial judgment, not
// derived constants.
type RerankConfig struct {
	// MinDescriptionLength is the shortest description the fallback
	// quality gate accepts for an unvetted organization. Default: 50.
	MinDescriptionLength int `json:"min_description_length"`

	// RequireDisbursable controls whether the fallback quality gate
	// requires the organization to accept disbursements. Default: true.
	RequireDisbursable bool `json:"require_disbursable"`

	// MinSurvivors is the floor below which cause-mismatched candidates
	// are backfilled rather than excluded. Default: 5.
	MinSurvivors int `json:"min_survivors"`

	// MaxPerCategory caps how many candidates sharing a normalized
	// category may appear inside the diversity window. Default: 2.
	MaxPerCategory int `json:"max_per_category"`

	// DiversityWindow is the prefix of the ranked list the category cap
	// applies to. Default: 10.
	DiversityWindow int `json:"diversity_window"`

	// FlexibilityMarkers are the phrases that qualify a global
	// organization for the higher global tier.
	FlexibilityMarkers []string `json:"flexibility_markers"`
}

// EnrichConfig bounds the detail-fetch stage.
type EnrichConfig struct {
	// TopK is how many ranked candidates get a detail fetch.
	// Default: 20.
	TopK int `json:"top_k"`

	// Concurrency is the maximum simultaneous detail fetches.
	// Default: 5.
	Concurrency int `json:"concurrency"`
}

// LimitsConfig contains request-level limits.
type LimitsConfig struct {
	// DefaultTopN is the response length when the request does not ask
	// for one. Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN is the largest response length a request may ask for.
	// Default: 10.
	MaxTopN int `json:"max_top_n"`

	// RequestDeadline bounds the whole pipeline. On expiry, in-flight
	// calls are abandoned and the pipeline continues with what it has.
	// Default: 10s.
	RequestDeadline time.Duration `json:"request_deadline"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			MaxBrowseCalls: 3,
			MaxSearchTerms: 5,
			Take:           50,
			MaxCandidates:  200,
			Concurrency:    8,
		},
		Rerank: RerankConfig{
			MinDescriptionLength: 50,
			RequireDisbursable:   true,
			MinSurvivors:         5,
			MaxPerCategory:       2,
			DiversityWindow:      10,
			FlexibilityMarkers: []string{
				"rapid response",
				"emergency response",
				"disaster response",
				"crisis response",
				"rapid deployment",
				"first responder",
			},
		},
		Enrich: EnrichConfig{
			TopK:        20,
			Concurrency: 5,
		},
		Limits: LimitsConfig{
			DefaultTopN:     10,
			MaxTopN:         10,
			RequestDeadline: 10 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Generation.MaxBrowseCalls < 0 {
		return fmt.Errorf("generation.max_browse_calls must be non-negative, got %d", c.Generation.MaxBrowseCalls)
	}
	if c.Generation.MaxSearchTerms < 1 {
		return fmt.Errorf("generation.max_search_terms must be positive, got %d", c.Generation.MaxSearchTerms)
	}
	if c.Generation.Take < 1 {
		return fmt.Errorf("generation.take must be positive, got %d", c.Generation.Take)
	}
	if c.Generation.MaxCandidates < 1 {
		return fmt.Errorf("generation.max_candidates must be positive, got %d", c.Generation.MaxCandidates)
	}
	if c.Generation.Concurrency < 1 {
		return fmt.Errorf("generation.concurrency must be positive, got %d", c.Generation.Concurrency)
	}

	if c.Rerank.MinDescriptionLength < 0 {
		return fmt.Errorf("rerank.min_description_length must be non-negative, got %d", c.Rerank.MinDescriptionLength)
	}
	if c.Rerank.MinSurvivors < 0 {
		return fmt.Errorf("rerank.min_survivors must be non-negative, got %d", c.Rerank.MinSurvivors)
	}
	if c.Rerank.MaxPerCategory < 1 {
		return fmt.Errorf("rerank.max_per_category must be positive, got %d", c.Rerank.MaxPerCategory)
	}
	if c.Rerank.DiversityWindow < 1 {
		return fmt.Errorf("rerank.diversity_window must be positive, got %d", c.Rerank.DiversityWindow)
	}

	if c.Enrich.TopK < 1 {
		return fmt.Errorf("enrich.top_k must be positive, got %d", c.Enrich.TopK)
	}
	if c.Enrich.Concurrency < 1 {
		return fmt.Errorf("enrich.concurrency must be positive, got %d", c.Enrich.Concurrency)
	}

	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d",
			c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Enrich.TopK < c.Limits.MaxTopN {
		return fmt.Errorf("enrich.top_k must be >= limits.max_top_n, got %d < %d",
			c.Enrich.TopK, c.Limits.MaxTopN)
	}
	if c.Limits.RequestDeadline <= 0 {
		return fmt.Errorf("limits.request_deadline must be positive, got %v", c.Limits.RequestDeadline)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := &Config{
		Generation: c.Generation,
		Rerank:     c.Rerank,
		Enrich:     c.Enrich,
		Limits:     c.Limits,
	}
	clone.Rerank.FlexibilityMarkers = append([]string(nil), c.Rerank.FlexibilityMarkers...)
	return clone
}
