// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Request is the engine's input: a crisis description with extracted
// entities. Top-level Causes and Keywords are merged with the ones
// inside Entities before the pipeline runs, so callers can supply
// either.
type Request struct {
	Title       string                `json:"title" validate:"omitempty,max=500"`
	Description string                `json:"description" validate:"omitempty,max=10000"`
	Entities    models.CrisisEntities `json:"entities"`
	Causes      []string              `json:"causes,omitempty" validate:"omitempty,max=10,dive,max=100"`
	Keywords    []string              `json:"keywords,omitempty" validate:"omitempty,max=20,dive,max=100"`
	Debug       bool                  `json:"debug,omitempty"`
	TopN        int                   `json:"topN,omitempty" validate:"omitempty,min=1,max=10"`
}

// Response is the ordered recommendation list plus optional debug
// telemetry.
type Response struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
	Debug           *DebugInfo              `json:"debug,omitempty"`
}

// StageCounts tracks candidate volume through the pipeline.
type StageCounts struct {
	// Fetched is the raw total across all generation calls, before dedup.
	Fetched int `json:"fetched"`
	// Deduplicated is the candidate count entering the reranker.
	Deduplicated int `json:"deduplicated"`
	// Ranked is the survivor count after the reranking policy.
	Ranked int `json:"ranked"`
	// Enriched is how many ranked candidates got a detail fetch.
	Enriched int `json:"enriched"`
	// Returned is the final response length.
	Returned int `json:"returned"`
}

// StageTimings records per-stage elapsed time in milliseconds.
type StageTimings struct {
	GenerateMS int64 `json:"generateMs"`
	RerankMS   int64 `json:"rerankMs"`
	EnrichMS   int64 `json:"enrichMs"`
	TotalMS    int64 `json:"totalMs"`
}

// DebugInfo is attached to the response when the request asks for it.
type DebugInfo struct {
	FromCache        bool           `json:"fromCache"`
	SearchTerms      []string       `json:"searchTerms"`
	BrowseCauses     []string       `json:"browseCauses"`
	SourceFailures   []string       `json:"sourceFailures,omitempty"`
	Counts           StageCounts    `json:"counts"`
	Exclusions       map[string]int `json:"exclusions,omitempty"`
	GeoTierCounts    map[int]int    `json:"geoTierCounts,omitempty"`
	CauseLevelCounts map[int]int    `json:"causeLevelCounts,omitempty"`
	PartialResult    bool           `json:"partialResult,omitempty"`
	Timings          StageTimings   `json:"timings"`
}

// SignalProvider resolves an external trust/vetting signal for one
// candidate. Two independent providers are injected: one consulted for
// the trust score, one for the vetting status, so either source can be
// swapped without touching the other. Providers must be pure and fast;
// any I/O belongs behind the provider's own cache.
type SignalProvider func(c models.Candidate) models.TrustVettingSignal

// UnknownSignalProvider is the default when no external reputation
// source is wired in: no score, vetting unknown.
func UnknownSignalProvider(models.Candidate) models.TrustVettingSignal {
	return models.TrustVettingSignal{VettedStatus: models.VettedUnknown}
}

// mergeSignals combines the trust provider's score with the vetting
// provider's status. The score's source wins when both name one.
func mergeSignals(trust, vetting models.TrustVettingSignal) models.TrustVettingSignal {
	merged := models.TrustVettingSignal{
		TrustScore:   trust.TrustScore,
		VettedStatus: vetting.VettedStatus,
		Source:       trust.Source,
	}
	if merged.Source == "" {
		merged.Source = vetting.Source
	}
	if merged.VettedStatus == "" {
		merged.VettedStatus = models.VettedUnknown
	}
	return merged
}
