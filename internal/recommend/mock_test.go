// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockProvider is a hand-rolled directory.API double. Each method
// counts its calls and delegates to the injectable func, or returns
// empty results when none is set.
type mockProvider struct {
	searchFn  func(ctx context.Context, term string, opts directory.SearchOptions) ([]models.Candidate, error)
	browseFn  func(ctx context.Context, cause string, opts directory.BrowseOptions) ([]models.Candidate, error)
	detailsFn func(ctx context.Context, identifier string) (*models.CharityDetails, error)

	searchCalls  atomic.Int64
	browseCalls  atomic.Int64
	detailsCalls atomic.Int64
}

func (m *mockProvider) Search(ctx context.Context, term string, opts directory.SearchOptions) ([]models.Candidate, error) {
	m.searchCalls.Add(1)
	if m.searchFn != nil {
		return m.searchFn(ctx, term, opts)
	}
	return nil, nil
}

func (m *mockProvider) Browse(ctx context.Context, cause string, opts directory.BrowseOptions) ([]models.Candidate, error) {
	m.browseCalls.Add(1)
	if m.browseFn != nil {
		return m.browseFn(ctx, cause, opts)
	}
	return nil, nil
}

func (m *mockProvider) GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error) {
	m.detailsCalls.Add(1)
	if m.detailsFn != nil {
		return m.detailsFn(ctx, identifier)
	}
	return &models.CharityDetails{Identifier: identifier}, nil
}

func (m *mockProvider) Ping(ctx context.Context) error { return nil }

var _ directory.API = (*mockProvider)(nil)

// Shared fixtures: three disaster-relief organizations at the three
// surviving geographic tiers for a crisis in Turkey, all complete
// enough to pass the fallback quality gate.

func turkeyOrg() models.Candidate {
	return models.Candidate{
		Identifier:    "11-1111111",
		Name:          "Anatolia Earthquake Response Foundation",
		Description:   "Provides emergency shelter, food, and medical care to earthquake survivors across Turkey, focusing on rapid local disaster relief.",
		WebsiteURL:    "https://anatolia-response.example.org",
		LocationText:  "Istanbul, Turkey",
		CategoryText:  "disaster relief",
		IsDisbursable: true,
	}
}

func greeceOrg() models.Candidate {
	return models.Candidate{
		Identifier:    "22-2222222",
		Name:          "Aegean Relief Network",
		Description:   "Greek disaster relief organization delivering earthquake recovery assistance and emergency supplies throughout Greece and the Aegean.",
		WebsiteURL:    "https://aegean-relief.example.org",
		LocationText:  "Athens, Greece",
		CategoryText:  "disaster relief",
		IsDisbursable: true,
	}
}

func globalFlexibleOrg() models.Candidate {
	return models.Candidate{
		Identifier:    "33-3333333",
		Name:          "Worldwide Crisis Aid",
		Description:   "Global rapid response organization deploying disaster relief teams worldwide within 72 hours of any major emergency or earthquake.",
		WebsiteURL:    "https://worldwide-crisis-aid.example.org",
		LocationText:  "Geneva, Switzerland",
		CategoryText:  "disaster relief",
		IsDisbursable: true,
	}
}

func turkeyEntities() models.CrisisEntities {
	return models.CrisisEntities{
		Geography:    models.CrisisGeography{Country: "Turkey"},
		DisasterType: "earthquake",
		Causes:       []string{"disaster relief"},
	}
}

// scoreOf returns a provider that reports the given trust scores by
// candidate identifier and vetting unknown otherwise.
func scoreOf(scores map[string]float64) SignalProvider {
	return func(c models.Candidate) models.TrustVettingSignal {
		if s, ok := scores[c.Identifier]; ok {
			score := s
			return models.TrustVettingSignal{TrustScore: &score, VettedStatus: models.VettedTrue, Source: "test"}
		}
		return models.TrustVettingSignal{VettedStatus: models.VettedUnknown}
	}
}

// vettedAs returns a provider that reports the given statuses by
// candidate identifier and unknown otherwise.
func vettedAs(statuses map[string]string) SignalProvider {
	return func(c models.Candidate) models.TrustVettingSignal {
		if s, ok := statuses[c.Identifier]; ok {
			return models.TrustVettingSignal{VettedStatus: s, Source: "test"}
		}
		return models.TrustVettingSignal{VettedStatus: models.VettedUnknown}
	}
}
