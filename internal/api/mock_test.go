// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package api

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

// stubProvider is a hand-rolled directory.API double for handler tests.
type stubProvider struct {
	searchFn func(ctx context.Context, term string, opts directory.SearchOptions) ([]models.Candidate, error)
	browseFn func(ctx context.Context, cause string, opts directory.BrowseOptions) ([]models.Candidate, error)
	pingErr  error

	browseCalls atomic.Int64
	searchCalls atomic.Int64
}

func (s *stubProvider) Search(ctx context.Context, term string, opts directory.SearchOptions) ([]models.Candidate, error) {
	s.searchCalls.Add(1)
	if s.searchFn != nil {
		return s.searchFn(ctx, term, opts)
	}
	return nil, nil
}

func (s *stubProvider) Browse(ctx context.Context, cause string, opts directory.BrowseOptions) ([]models.Candidate, error) {
	s.browseCalls.Add(1)
	if s.browseFn != nil {
		return s.browseFn(ctx, cause, opts)
	}
	return nil, nil
}

func (s *stubProvider) GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error) {
	return &models.CharityDetails{Identifier: identifier}, nil
}

func (s *stubProvider) Ping(ctx context.Context) error { return s.pingErr }

var _ directory.API = (*stubProvider)(nil)

// reliefOrg is a complete candidate that passes the fallback quality
// gate and lands on the same-country tier for a crisis in Turkey.
func reliefOrg() models.Candidate {
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

func workingProvider() *stubProvider {
	return &stubProvider{
		browseFn: func(_ context.Context, _ string, _ directory.BrowseOptions) ([]models.Candidate, error) {
			return []models.Candidate{reliefOrg()}, nil
		},
	}
}
