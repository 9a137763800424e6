// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper is the slice of the cache store the janitor needs.
// Satisfied by *cache.Store.
type Sweeper interface {
	Sweep() int64
}

// CacheJanitorService periodically sweeps expired entries out of the
// cache namespaces. Without it, expired entries are only reclaimed
// lazily on lookup, and keys that are never read again would sit in
// memory until restart.
type CacheJanitorService struct {
	store    Sweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates the janitor. A non-positive interval
// gets a five-minute default.
func NewCacheJanitorService(store Sweeper, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "cache_janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service: sweep on every tick until the
// context is canceled.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Info().Dur("interval", j.interval).Msg("Cache janitor started")

	for {
		select {
		case <-ctx.Done():
			j.logger.Info().Msg("Cache janitor stopping")
			return ctx.Err()
		case <-ticker.C:
			evicted := j.store.Sweep()
			if evicted > 0 {
				j.logger.Debug().Int64("evicted", evicted).Msg("Swept expired cache entries")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it in log messages.
func (j *CacheJanitorService) String() string {
	return j.name
}
