// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Enricher fetches full detail records for the leading ranked
// candidates. A failed fetch marks that one candidate and never drops
// it or disturbs the others.
type Enricher struct {
	cfg      EnrichConfig
	provider directory.API
	logger   zerolog.Logger
}

// NewEnricher builds an enricher over the given directory provider.
func NewEnricher(cfg EnrichConfig, provider directory.API, logger zerolog.Logger) *Enricher {
	return &Enricher{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With().Str("component", "enricher").Logger(),
	}
}

// Enrich fetches details for the top-K ranked candidates with the
// configured concurrency cap, preserving order. Candidates whose fetch
// fails, or that were never started before the context expired, keep
// their ranked-stage fields and are flagged.
func (e *Enricher) Enrich(ctx context.Context, ranked []models.RankedCandidate) []models.EnrichedCandidate {
	topK := ranked
	if len(topK) > e.cfg.TopK {
		topK = topK[:e.cfg.TopK]
	}

	enriched := make([]models.EnrichedCandidate, len(topK))
	sem := make(chan struct{}, e.cfg.Concurrency)
	var wg sync.WaitGroup

	for i, c := range topK {
		enriched[i] = models.EnrichedCandidate{RankedCandidate: c}

		select {
		case <-ctx.Done():
			enriched[i].EnrichmentFailed = true
			metrics.RecordEnrichmentFailure()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			e.enrichOne(ctx, &enriched[idx])
		}(i)
	}

	wg.Wait()
	return enriched
}

// enrichOne merges a detail record into one candidate in place. The
// ranked-stage fields only ever gain information: details fill gaps
// and extend the description, they never erase what ranking saw.
func (e *Enricher) enrichOne(ctx context.Context, c *models.EnrichedCandidate) {
	details, err := e.provider.GetDetails(ctx, c.Identifier)
	if err != nil {
		e.logger.Warn().Err(err).
			Str("identifier", c.Identifier).
			Msg("Detail fetch failed, keeping ranked fields")
		metrics.RecordEnrichmentFailure()
		c.EnrichmentFailed = true
		return
	}

	switch {
	case details.DescriptionLong != "":
		c.Description = details.DescriptionLong
	case len(details.Description) > len(c.Description):
		c.Description = details.Description
	}
	if c.WebsiteURL == "" {
		c.WebsiteURL = details.WebsiteURL
	}
	if c.ProfileURL == "" {
		c.ProfileURL = details.ProfileURL
	}
	if c.LocationText == "" {
		c.LocationText = details.LocationText
	}
	if len(details.Categories) > 0 {
		c.Categories = details.Categories
	}
	if details.LogoURL != "" {
		c.LogoURL = details.LogoURL
	}
	if details.CoverImageURL != "" {
		c.CoverImageURL = details.CoverImageURL
	}
}
