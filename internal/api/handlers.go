// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package api

import (
	"time"

	"github.com/hurakan/feelgive-sub000/internal/auth"
	"github.com/hurakan/feelgive-sub000/internal/cache"
	"github.com/hurakan/feelgive-sub000/internal/config"
	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/recommend"
)

// BreakerInspector exposes the circuit breaker state for readiness
// reporting. Implemented by directory.BreakerClient; nil when the
// breaker is disabled.
type BreakerInspector interface {
	State() string
}

// Handler contains dependencies for the API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: shared response/validation helpers
//   - handlers_recommend.go: the recommendation endpoint
//   - handlers_health.go: health and probe endpoints
//   - handlers_cache.go: cache stats and invalidation
type Handler struct {
	engine      *recommend.Engine
	store       *cache.Store
	provider    directory.API
	breaker     BreakerInspector
	maintenance *auth.Maintenance
	config      *config.Config
	startTime   time.Time
	version     string
}

// NewHandler creates the API handler. The provider is the same layered
// directory client the engine uses; it is consulted directly only by
// the readiness probe. breaker may be nil when the circuit breaker is
// disabled.
func NewHandler(engine *recommend.Engine, store *cache.Store, provider directory.API, breaker BreakerInspector, maintenance *auth.Maintenance, cfg *config.Config, version string) *Handler {
	return &Handler{
		engine:      engine,
		store:       store,
		provider:    provider,
		breaker:     breaker,
		maintenance: maintenance,
		config:      cfg,
		startTime:   time.Now(),
		version:     version,
	}
}
