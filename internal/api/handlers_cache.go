// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/hurakan/feelgive-sub000/internal/auth"
	"github.com/hurakan/feelgive-sub000/internal/cache"
	"github.com/hurakan/feelgive-sub000/internal/logging"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// CacheStats handles cache statistics requests.
//
// @Summary Get cache statistics
// @Description Returns per-namespace entry counts and hit rates, plus persistent-tier sizes when the Badger tier is enabled.
// @Tags Cache
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=cache.StoreStats} "Cache statistics"
// @Router /cache/stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Stats()

	for name, s := range stats.Namespaces {
		metrics.UpdateCacheGauges(name, s.TotalKeys)
	}

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(stats, 0, false))
}

// CacheClear handles cache invalidation requests. The endpoint is
// destructive and requires maintenance credentials; with none
// configured it answers 404 so the surface stays hidden.
//
// @Summary Clear all caches
// @Description Invalidates every cache namespace and the persistent tier. Requires a maintenance bearer credential; disabled (404) when none is configured.
// @Tags Cache
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Caches cleared"
// @Failure 401 {object} models.APIResponse "Missing or invalid maintenance credential"
// @Failure 404 {object} models.APIResponse "Maintenance auth not configured"
// @Router /cache/clear [post]
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.Authorize(r); err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound,
				"Not found", nil)
			return
		}
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized,
			"Maintenance credential required", err)
		return
	}

	start := time.Now()
	removed := h.store.ClearAll()

	for _, name := range []string{
		cache.NamespaceSearch, cache.NamespaceBrowse,
		cache.NamespaceDetails, cache.NamespaceRecommendation,
	} {
		metrics.UpdateCacheGauges(name, 0)
	}

	logging.Info().
		Int64("entries_removed", removed).
		Str("remote_addr", r.RemoteAddr).
		Msg("Cache cleared via maintenance endpoint")

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]interface{}{
		"cleared":         true,
		"entries_removed": removed,
	}, time.Since(start).Milliseconds(), false))
}
