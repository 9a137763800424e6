// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package directory

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockAPI is a hand-rolled API double. Each method counts its calls and
// delegates to the injectable func, or returns empty results when none
// is set.
type mockAPI struct {
	searchFn  func(ctx context.Context, term string, opts SearchOptions) ([]models.Candidate, error)
	browseFn  func(ctx context.Context, cause string, opts BrowseOptions) ([]models.Candidate, error)
	detailsFn func(ctx context.Context, identifier string) (*models.CharityDetails, error)
	pingFn    func(ctx context.Context) error

	searchCalls  atomic.Int64
	browseCalls  atomic.Int64
	detailsCalls atomic.Int64
	pingCalls    atomic.Int64
}

func (m *mockAPI) Search(ctx context.Context, term string, opts SearchOptions) ([]models.Candidate, error) {
	m.searchCalls.Add(1)
	if m.searchFn != nil {
		return m.searchFn(ctx, term, opts)
	}
	return nil, nil
}

func (m *mockAPI) Browse(ctx context.Context, cause string, opts BrowseOptions) ([]models.Candidate, error) {
	m.browseCalls.Add(1)
	if m.browseFn != nil {
		return m.browseFn(ctx, cause, opts)
	}
	return nil, nil
}

func (m *mockAPI) GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error) {
	m.detailsCalls.Add(1)
	if m.detailsFn != nil {
		return m.detailsFn(ctx, identifier)
	}
	return &models.CharityDetails{Identifier: identifier}, nil
}

func (m *mockAPI) Ping(ctx context.Context) error {
	m.pingCalls.Add(1)
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

var _ API = (*mockAPI)(nil)
