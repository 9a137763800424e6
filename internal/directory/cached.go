// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package directory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/cache"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// CachedClient caches directory reads in front of an inner API.
//
// Keys are derived from normalized parameters, so logically identical
// calls (same causes in any order, equivalent casing) share one entry.
// Errors are never cached: a failed call leaves the slot empty so the
// next caller retries upstream. A degraded cache is treated as
// always-miss and never fails a request.
type CachedClient struct {
	inner  API
	store  *cache.Store
	logger zerolog.Logger
}

// NewCachedClient wraps inner with read-through caching backed by store.
func NewCachedClient(inner API, store *cache.Store, logger zerolog.Logger) *CachedClient {
	return &CachedClient{
		inner:  inner,
		store:  store,
		logger: logger.With().Str("component", "directory-cache").Logger(),
	}
}

// searchKey is the normalized cache identity of a search call.
type searchKey struct {
	Term   string   `json:"term"`
	Causes []string `json:"causes,omitempty"`
	Take   int      `json:"take"`
}

// browseKey is the normalized cache identity of a browse call.
type browseKey struct {
	Cause string `json:"cause"`
	Take  int    `json:"take"`
	Page  int    `json:"page"`
}

// Search returns cached results when present, otherwise calls through
// and stores the result.
func (c *CachedClient) Search(ctx context.Context, term string, opts SearchOptions) ([]models.Candidate, error) {
	key := cache.GenerateKey(cache.NamespaceSearch, searchKey{
		Term:   strings.ToLower(strings.TrimSpace(term)),
		Causes: cache.NormalizeTerms(opts.Causes),
		Take:   takeOrDefault(opts.Take),
	})

	if cached, ok := c.store.Search().Get(key); ok {
		if candidates, ok := cached.([]models.Candidate); ok {
			metrics.RecordCacheHit(cache.NamespaceSearch)
			return candidates, nil
		}
	}
	metrics.RecordCacheMiss(cache.NamespaceSearch)

	candidates, err := c.inner.Search(ctx, term, opts)
	if err != nil {
		return nil, err
	}
	c.store.Search().Set(key, candidates)
	return candidates, nil
}

// Browse returns cached results when present, otherwise calls through
// and stores the result.
func (c *CachedClient) Browse(ctx context.Context, cause string, opts BrowseOptions) ([]models.Candidate, error) {
	key := cache.GenerateKey(cache.NamespaceBrowse, browseKey{
		Cause: strings.ToLower(strings.TrimSpace(cause)),
		Take:  takeOrDefault(opts.Take),
		Page:  opts.Page,
	})

	if cached, ok := c.store.Browse().Get(key); ok {
		if candidates, ok := cached.([]models.Candidate); ok {
			metrics.RecordCacheHit(cache.NamespaceBrowse)
			return candidates, nil
		}
	}
	metrics.RecordCacheMiss(cache.NamespaceBrowse)

	candidates, err := c.inner.Browse(ctx, cause, opts)
	if err != nil {
		return nil, err
	}
	c.store.Browse().Set(key, candidates)
	return candidates, nil
}

// GetDetails returns the cached record when present, otherwise calls
// through and stores the result in both cache tiers.
func (c *CachedClient) GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error) {
	normalized := strings.TrimSpace(identifier)

	if details, ok := c.store.GetDetails(normalized); ok {
		metrics.RecordCacheHit(cache.NamespaceDetails)
		return &details, nil
	}
	metrics.RecordCacheMiss(cache.NamespaceDetails)

	details, err := c.inner.GetDetails(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if details != nil {
		c.store.SetDetails(normalized, *details)
	}
	return details, nil
}

// Ping passes through; probe results are never cached.
func (c *CachedClient) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

var _ API = (*CachedClient)(nil)
