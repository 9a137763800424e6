// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/cache"
	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Pipeline outcome labels for metrics.
const (
	outcomeOK               = "ok"
	outcomeCached           = "cached"
	outcomePartial          = "partial"
	outcomeEmpty            = "empty"
	outcomeAllSourcesFailed = "all_sources_failed"
)

// Engine is the public entry point of the recommendation pipeline. It
// wires generation, reranking, and enrichment together, applies the
// recommendation-level cache, enforces the request deadline, and
// assembles the response. Safe for concurrent use: all per-request
// state lives on the stack, only the injected cache store is shared.
type Engine struct {
	cfg       *Config
	generator *Generator
	reranker  *Reranker
	enricher  *Enricher
	store     *cache.Store
	logger    zerolog.Logger
}

// NewEngine builds an engine over the given directory provider and
// cache store. Nil signal providers default to always-unknown; a nil
// config gets production defaults.
func NewEngine(cfg *Config, provider directory.API, store *cache.Store, trust, vetting SignalProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("recommend: directory provider is required")
	}
	if store == nil {
		return nil, fmt.Errorf("recommend: cache store is required")
	}

	engineLogger := logger.With().Str("component", "recommend").Logger()
	return &Engine{
		cfg:       cfg,
		generator: NewGenerator(cfg.Generation, provider, engineLogger),
		reranker:  NewReranker(cfg.Rerank, trust, vetting),
		enricher:  NewEnricher(cfg.Enrich, provider, engineLogger),
		store:     store,
		logger:    engineLogger,
	}, nil
}

// recommendationKey is the normalized cache-key input: logically
// identical requests must produce identical keys regardless of the
// caller's term ordering or casing.
type recommendationKey struct {
	Country        string   `json:"country"`
	Region         string   `json:"region"`
	City           string   `json:"city"`
	DisasterType   string   `json:"disasterType"`
	AffectedGroups []string `json:"affectedGroups"`
	Causes         []string `json:"causes"`
	Keywords       []string `json:"keywords"`
	TopN           int      `json:"topN"`
}

// Recommend runs the full pipeline for one crisis. The request's
// top-level Causes and Keywords are merged into its entities first.
//
// Partial upstream failures degrade the result rather than failing the
// request; only every generation source failing returns an error, with
// the gathered debug telemetry still attached when requested.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	entities := mergeRequestEntities(req)
	topN := e.clampTopN(req.TopN)
	key := cache.GenerateKey(cache.NamespaceRecommendation, recommendationKey{
		Country:        normalizeText(entities.Geography.Country),
		Region:         normalizeText(entities.Geography.Region),
		City:           normalizeText(entities.Geography.City),
		DisasterType:   normalizeText(entities.DisasterType),
		AffectedGroups: cache.NormalizeTerms(entities.AffectedGroups),
		Causes:         cache.NormalizeTerms(entities.Causes),
		Keywords:       cache.NormalizeTerms(entities.Keywords),
		TopN:           topN,
	})

	if cached, ok := e.store.Recommendations().Get(key); ok {
		if resp, ok := cached.(*Response); ok {
			metrics.RecordCacheHit(cache.NamespaceRecommendation)
			metrics.RecordPipelineOutcome(outcomeCached)
			e.logger.Debug().Str("key", key).Msg("Recommendation served from cache")
			return presentResponse(resp, req.Debug, true), nil
		}
	}
	metrics.RecordCacheMiss(cache.NamespaceRecommendation)

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Limits.RequestDeadline)
	defer cancel()

	resp, cacheable, err := e.runPipeline(ctx, entities, topN, start)
	if err != nil {
		return presentResponse(resp, req.Debug, false), err
	}

	if cacheable {
		e.store.Recommendations().Set(key, resp)
	}
	return presentResponse(resp, req.Debug, false), nil
}

// runPipeline executes generate, rerank, and enrich, and assembles the
// canonical response with full debug telemetry. The second return
// reports whether the response is complete enough to cache: partial
// results would otherwise pin degraded output for the whole TTL.
func (e *Engine) runPipeline(ctx context.Context, entities models.CrisisEntities, topN int, start time.Time) (*Response, bool, error) {
	debug := &DebugInfo{}

	genStart := time.Now()
	gen, err := e.generator.Generate(ctx, entities)
	debug.Timings.GenerateMS = time.Since(genStart).Milliseconds()
	debug.SearchTerms = gen.SearchTerms
	debug.BrowseCauses = gen.BrowseCauses
	for _, f := range gen.Failures {
		debug.SourceFailures = append(debug.SourceFailures, f.Describe())
	}
	debug.Counts.Fetched = gen.FetchedTotal
	debug.Counts.Deduplicated = len(gen.Candidates)
	metrics.RecordStage("generate", time.Since(genStart), len(gen.Candidates))

	if err != nil {
		metrics.RecordPipelineOutcome(outcomeAllSourcesFailed)
		e.logger.Error().Err(err).Msg("Every candidate source failed")
		debug.PartialResult = true
		debug.Timings.TotalMS = time.Since(start).Milliseconds()
		return &Response{Recommendations: []models.Recommendation{}, Debug: debug}, false, err
	}

	rerankStart := time.Now()
	ranked := e.reranker.Rerank(entities, gen.Candidates)
	debug.Timings.RerankMS = time.Since(rerankStart).Milliseconds()
	debug.Counts.Ranked = len(ranked.Ranked)
	debug.Exclusions = ranked.Exclusions
	debug.GeoTierCounts = ranked.TierCounts
	debug.CauseLevelCounts = ranked.LevelCounts
	metrics.RecordStage("rerank", time.Since(rerankStart), len(ranked.Ranked))
	for reason, n := range ranked.Exclusions {
		metrics.RecordExclusions(reason, n)
	}

	enrichStart := time.Now()
	enriched := e.enricher.Enrich(ctx, ranked.Ranked)
	debug.Timings.EnrichMS = time.Since(enrichStart).Milliseconds()
	debug.Counts.Enriched = countEnriched(enriched)
	metrics.RecordStage("enrich", time.Since(enrichStart), len(enriched))

	if len(enriched) > topN {
		enriched = enriched[:topN]
	}
	recommendations := make([]models.Recommendation, 0, len(enriched))
	for _, c := range enriched {
		recommendations = append(recommendations, models.NewRecommendation(c))
	}

	debug.Counts.Returned = len(recommendations)
	debug.PartialResult = len(gen.Failures) > 0 || ctx.Err() != nil
	debug.Timings.TotalMS = time.Since(start).Milliseconds()

	switch {
	case debug.PartialResult:
		metrics.RecordPipelineOutcome(outcomePartial)
	case len(recommendations) == 0:
		metrics.RecordPipelineOutcome(outcomeEmpty)
	default:
		metrics.RecordPipelineOutcome(outcomeOK)
	}

	e.logger.Info().
		Int("candidates", debug.Counts.Deduplicated).
		Int("ranked", debug.Counts.Ranked).
		Int("returned", debug.Counts.Returned).
		Bool("partial", debug.PartialResult).
		Int64("elapsed_ms", debug.Timings.TotalMS).
		Msg("Recommendation pipeline complete")

	resp := &Response{
		Recommendations: recommendations,
		Count:           len(recommendations),
		Debug:           debug,
	}
	return resp, !debug.PartialResult, nil
}

// presentResponse shapes the canonical (cached) response for one
// caller: the stored value is never mutated, debug telemetry is
// stripped unless asked for, and cache hits are labeled as such.
func presentResponse(resp *Response, wantDebug, fromCache bool) *Response {
	if resp == nil {
		return nil
	}
	out := *resp
	if !wantDebug {
		out.Debug = nil
		return &out
	}
	if out.Debug != nil {
		debugCopy := *out.Debug
		debugCopy.FromCache = fromCache
		out.Debug = &debugCopy
	}
	return &out
}

// mergeRequestEntities folds the request's top-level cause and keyword
// lists into the classifier's entities.
func mergeRequestEntities(req Request) models.CrisisEntities {
	entities := req.Entities
	entities.Causes = dedupeTerms(append(append([]string(nil), entities.Causes...), req.Causes...), 10)
	entities.Keywords = dedupeTerms(append(append([]string(nil), entities.Keywords...), req.Keywords...), 20)
	return entities
}

func (e *Engine) clampTopN(topN int) int {
	if topN < 1 {
		return e.cfg.Limits.DefaultTopN
	}
	if topN > e.cfg.Limits.MaxTopN {
		return e.cfg.Limits.MaxTopN
	}
	return topN
}

func countEnriched(list []models.EnrichedCandidate) int {
	n := 0
	for _, c := range list {
		if !c.EnrichmentFailed {
			n++
		}
	}
	return n
}
