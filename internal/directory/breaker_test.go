// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package directory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

func TestBreakerOpensAfterSustainedFailures(t *testing.T) {
	t.Parallel()

	mock := &mockAPI{
		searchFn: func(context.Context, string, SearchOptions) ([]models.Candidate, error) {
			return nil, &Error{Op: "search", Kind: ErrServerError, StatusCode: 500}
		},
	}
	b := NewBreakerClient(mock, testLogger())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := b.Search(ctx, "flood", SearchOptions{}); !errors.Is(err, ErrServerError) {
			t.Fatalf("call %d error = %v, want pass-through server error", i+1, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("state = %q after 10 straight failures, want open", b.State())
	}

	_, err := b.Search(ctx, "flood", SearchOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable from open breaker", err)
	}
	if mock.searchCalls.Load() != 10 {
		t.Errorf("upstream calls = %d, want rejection without a call", mock.searchCalls.Load())
	}
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	t.Parallel()

	mock := &mockAPI{
		searchFn: func(context.Context, string, SearchOptions) ([]models.Candidate, error) {
			return nil, &Error{Op: "search", Kind: ErrNotFound, StatusCode: 404}
		},
	}
	b := NewBreakerClient(mock, testLogger())
	ctx := context.Background()

	// A pile of misses is normal operation, not an outage.
	for i := 0; i < 20; i++ {
		if _, err := b.Search(ctx, "nonexistent", SearchOptions{}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d error = %v, want ErrNotFound", i+1, err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("state = %q, want closed after NotFound streak", b.State())
	}
	if mock.searchCalls.Load() != 20 {
		t.Errorf("upstream calls = %d, want every call through", mock.searchCalls.Load())
	}
}

func TestBreakerPassesThroughResults(t *testing.T) {
	t.Parallel()

	want := []models.Candidate{{Identifier: "a", Name: "Alpha"}}
	mock := &mockAPI{
		searchFn: func(context.Context, string, SearchOptions) ([]models.Candidate, error) {
			return want, nil
		},
		detailsFn: func(_ context.Context, id string) (*models.CharityDetails, error) {
			return &models.CharityDetails{Identifier: id, Name: "Alpha"}, nil
		},
	}
	b := NewBreakerClient(mock, testLogger())
	ctx := context.Background()

	got, err := b.Search(ctx, "alpha", SearchOptions{})
	if err != nil || len(got) != 1 || got[0].Identifier != "a" {
		t.Errorf("Search() = %+v, %v", got, err)
	}

	details, err := b.GetDetails(ctx, "a")
	if err != nil || details.Name != "Alpha" {
		t.Errorf("GetDetails() = %+v, %v", details, err)
	}
}

func TestBreakerPingBypasses(t *testing.T) {
	t.Parallel()

	mock := &mockAPI{
		browseFn: func(context.Context, string, BrowseOptions) ([]models.Candidate, error) {
			return nil, &Error{Op: "browse", Kind: ErrServerError, StatusCode: 503}
		},
	}
	b := NewBreakerClient(mock, testLogger())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		b.Browse(ctx, "disaster_relief", BrowseOptions{})
	}
	if b.State() != "open" {
		t.Fatalf("state = %q, want open", b.State())
	}

	if err := b.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v, want probe through an open breaker", err)
	}
	if mock.pingCalls.Load() != 1 {
		t.Errorf("ping calls = %d, want 1", mock.pingCalls.Load())
	}
}

func TestCastResultTypeMismatch(t *testing.T) {
	t.Parallel()

	_, err := castResult[*models.CharityDetails]("details", "not a details record")
	if !errors.Is(err, ErrServerError) {
		t.Fatalf("error = %v, want server-error kind", err)
	}
	if !strings.Contains(err.Error(), "details") {
		t.Errorf("error = %v, want operation named", err)
	}
}
