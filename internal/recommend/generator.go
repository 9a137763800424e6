// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Generator runs the broad candidate pass: a bounded set of browse and
// search calls against the directory, merged and deduplicated by stable
// identifier. Individual call failures produce a partial result; only
// all calls failing is an error.
type Generator struct {
	cfg      GenerationConfig
	provider directory.API
	logger   zerolog.Logger
}

// NewGenerator builds a generator over the given directory provider.
func NewGenerator(cfg GenerationConfig, provider directory.API, logger zerolog.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With().Str("component", "generator").Logger(),
	}
}

// GenerationResult is the merged candidate set plus the accounting the
// debug block wants.
type GenerationResult struct {
	// Candidates is deduplicated, browse results before search results,
	// then by discovery order, truncated to the configured cap.
	Candidates []models.Candidate

	// FetchedTotal is the raw result count across all calls, before
	// dedup.
	FetchedTotal int

	// SearchTerms and BrowseCauses are the queries actually issued.
	SearchTerms  []string
	BrowseCauses []string

	// Failures lists the calls that returned errors.
	Failures []SourceFailure
}

// sourceCall is one planned directory call.
type sourceCall struct {
	kind   string // models.ProvenanceBrowse or models.ProvenanceSearch
	query  string
	causes []string
}

// sourceResult pairs a call with its outcome, so the partition into
// successes and failures is an explicit value rather than a log line.
type sourceResult struct {
	call       sourceCall
	candidates []models.Candidate
	err        error
}

// Generate issues the bounded browse/search fan-out for the crisis
// entities. The returned result is valid even when err is non-nil:
// an AllSourcesFailedError still carries the per-call failure list for
// the debug block.
func (g *Generator) Generate(ctx context.Context, entities models.CrisisEntities) (*GenerationResult, error) {
	causes := dedupeTerms(entities.Causes, g.cfg.MaxBrowseCalls)
	terms := buildSearchTerms(entities, g.cfg.MaxSearchTerms)

	calls := make([]sourceCall, 0, len(causes)+len(terms))
	for _, cause := range causes {
		calls = append(calls, sourceCall{kind: models.ProvenanceBrowse, query: cause})
	}
	for _, term := range terms {
		calls = append(calls, sourceCall{kind: models.ProvenanceSearch, query: term, causes: entities.Causes})
	}

	result := &GenerationResult{SearchTerms: terms, BrowseCauses: causes}
	if len(calls) == 0 {
		g.logger.Debug().Msg("No usable entities, skipping generation")
		return result, nil
	}

	g.collect(g.runCalls(ctx, calls), result)

	if len(result.Failures) == len(calls) {
		return result, &AllSourcesFailedError{Failures: result.Failures}
	}

	g.logger.Debug().
		Int("calls", len(calls)).
		Int("failed", len(result.Failures)).
		Int("fetched", result.FetchedTotal).
		Int("deduplicated", len(result.Candidates)).
		Msg("Candidate generation complete")

	return result, nil
}

// runCalls fans the calls out with the configured concurrency cap.
// Calls not yet started when the context expires are recorded as
// failed with the context error.
func (g *Generator) runCalls(ctx context.Context, calls []sourceCall) []sourceResult {
	results := make([]sourceResult, len(calls))
	sem := make(chan struct{}, g.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, call := range calls {
		select {
		case <-ctx.Done():
			results[i] = sourceResult{call: call, err: ctx.Err()}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, sc sourceCall) {
			defer func() {
				<-sem
				wg.Done()
			}()
			results[idx] = g.runCall(ctx, sc)
		}(i, call)
	}

	wg.Wait()
	return results
}

func (g *Generator) runCall(ctx context.Context, call sourceCall) sourceResult {
	var (
		candidates []models.Candidate
		err        error
	)
	switch call.kind {
	case models.ProvenanceBrowse:
		candidates, err = g.provider.Browse(ctx, call.query, directory.BrowseOptions{Take: g.cfg.Take})
	default:
		candidates, err = g.provider.Search(ctx, call.query, directory.SearchOptions{
			Causes: call.causes,
			Take:   g.cfg.Take,
		})
	}

	if err != nil {
		g.logger.Warn().Err(err).
			Str("source", call.kind).
			Str("query", call.query).
			Msg("Candidate source failed")
		metrics.RecordGenerationFailure(call.kind)
		return sourceResult{call: call, err: err}
	}
	return sourceResult{call: call, candidates: candidates}
}

// collect merges per-call results into the generation result:
// first occurrence of an identifier wins, later discoveries are
// recorded on its provenance, and the candidate list is truncated at
// the configured cap.
func (g *Generator) collect(results []sourceResult, out *GenerationResult) {
	index := make(map[string]int)

	for _, res := range results {
		if res.err != nil {
			out.Failures = append(out.Failures, SourceFailure{
				Source: res.call.kind,
				Query:  res.call.query,
				Err:    res.err,
			})
			continue
		}

		out.FetchedTotal += len(res.candidates)
		for _, c := range res.candidates {
			if pos, dup := index[c.Identifier]; dup {
				out.Candidates[pos].Provenance.AlsoDiscoveredBy = append(
					out.Candidates[pos].Provenance.AlsoDiscoveredBy, describeCall(res.call))
				continue
			}
			if len(out.Candidates) >= g.cfg.MaxCandidates {
				continue
			}
			c.Provenance = models.Provenance{Source: res.call.kind, QueryUsed: res.call.query}
			index[c.Identifier] = len(out.Candidates)
			out.Candidates = append(out.Candidates, c)
		}
	}
}

func describeCall(call sourceCall) string {
	return fmt.Sprintf("%s:%s", call.kind, call.query)
}

// buildSearchTerms derives the ranked search terms from the entities:
// the disaster type, the country, their combination, then up to two
// affected groups, deduplicated and capped.
func buildSearchTerms(entities models.CrisisEntities, max int) []string {
	disaster := strings.TrimSpace(entities.DisasterType)
	country := strings.TrimSpace(entities.Geography.Country)

	raw := []string{disaster, country}
	if disaster != "" && country != "" {
		raw = append(raw, disaster+" "+country)
	}
	groups := entities.AffectedGroups
	if len(groups) > 2 {
		groups = groups[:2]
	}
	raw = append(raw, groups...)

	return dedupeTerms(raw, max)
}

// dedupeTerms trims, case-insensitively deduplicates, and caps a term
// list, preserving first-seen order and casing.
func dedupeTerms(terms []string, max int) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
		if len(out) == max {
			break
		}
	}
	return out
}
