// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

func rankedFixture(n int) []models.RankedCandidate {
	out := make([]models.RankedCandidate, n)
	for i := range out {
		out[i] = models.RankedCandidate{
			Candidate: models.Candidate{
				Identifier:  fmt.Sprintf("org-%03d", i),
				Name:        fmt.Sprintf("Org %d", i),
				Description: "short",
			},
			GeoTier:    GeoTierLocal,
			CauseLevel: CauseLevelGeneral,
		}
	}
	return out
}

func TestEnrichMergesDetails(t *testing.T) {
	provider := &mockProvider{
		detailsFn: func(_ context.Context, id string) (*models.CharityDetails, error) {
			return &models.CharityDetails{
				Identifier:      id,
				DescriptionLong: "A much longer mission statement for " + id,
				WebsiteURL:      "https://" + id + ".example.org",
				Categories:      []string{"disaster relief"},
				CoverImageURL:   "https://img.example.org/" + id,
			}, nil
		},
	}

	e := NewEnricher(DefaultConfig().Enrich, provider, testLogger())
	enriched := e.Enrich(context.Background(), rankedFixture(3))

	if len(enriched) != 3 {
		t.Fatalf("enriched = %d, want 3", len(enriched))
	}
	for i, c := range enriched {
		if c.EnrichmentFailed {
			t.Errorf("candidate %d flagged failed", i)
		}
		if c.Description == "short" {
			t.Errorf("candidate %d description not extended", i)
		}
		if c.WebsiteURL == "" || c.CoverImageURL == "" || len(c.Categories) == 0 {
			t.Errorf("candidate %d details not merged: %+v", i, c)
		}
	}
}

// Ranking order is preserved through enrichment regardless of which
// detail fetch finishes first.
func TestEnrichPreservesOrder(t *testing.T) {
	e := NewEnricher(DefaultConfig().Enrich, &mockProvider{}, testLogger())
	enriched := e.Enrich(context.Background(), rankedFixture(12))

	for i, c := range enriched {
		if want := fmt.Sprintf("org-%03d", i); c.Identifier != want {
			t.Errorf("position %d holds %s, want %s", i, c.Identifier, want)
		}
	}
}

func TestEnrichRespectsTopK(t *testing.T) {
	cfg := DefaultConfig().Enrich
	cfg.TopK = 20

	provider := &mockProvider{}
	e := NewEnricher(cfg, provider, testLogger())
	enriched := e.Enrich(context.Background(), rankedFixture(50))

	if len(enriched) != 20 {
		t.Fatalf("enriched = %d, want topK of 20", len(enriched))
	}
	if got := provider.detailsCalls.Load(); got != 20 {
		t.Errorf("detail fetches = %d, want 20", got)
	}
}

func TestEnrichFailureKeepsCandidate(t *testing.T) {
	provider := &mockProvider{
		detailsFn: func(_ context.Context, id string) (*models.CharityDetails, error) {
			if id == "org-001" {
				return nil, directory.ErrServerError
			}
			return &models.CharityDetails{Identifier: id, DescriptionLong: "long detail text"}, nil
		},
	}

	e := NewEnricher(DefaultConfig().Enrich, provider, testLogger())
	enriched := e.Enrich(context.Background(), rankedFixture(3))

	if len(enriched) != 3 {
		t.Fatalf("enriched = %d, want all 3 kept", len(enriched))
	}
	for i, c := range enriched {
		failed := c.Identifier == "org-001"
		if c.EnrichmentFailed != failed {
			t.Errorf("candidate %d enrichmentFailed = %v, want %v", i, c.EnrichmentFailed, failed)
		}
		if failed && c.Description != "short" {
			t.Errorf("failed candidate's ranked fields were modified: %q", c.Description)
		}
	}
}

func TestEnrichExpiredContextFlagsAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &mockProvider{
		detailsFn: func(ctx context.Context, id string) (*models.CharityDetails, error) {
			return nil, ctx.Err()
		},
	}

	e := NewEnricher(DefaultConfig().Enrich, provider, testLogger())
	enriched := e.Enrich(ctx, rankedFixture(4))

	if len(enriched) != 4 {
		t.Fatalf("enriched = %d, want 4 (partial-result semantics keep everything)", len(enriched))
	}
	for i, c := range enriched {
		if !c.EnrichmentFailed {
			t.Errorf("candidate %d not flagged after context expiry", i)
		}
	}
}
