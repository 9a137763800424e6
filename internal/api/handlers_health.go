// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package api

import (
	"net/http"
	"time"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Health handles aggregate health requests.
//
// @Summary Get system health status
// @Description Returns health status including directory connectivity, circuit breaker state, and uptime. A directory outage degrades the status but the endpoint still returns 200; the service keeps serving cached recommendations.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	directoryConnected := h.provider != nil && h.provider.Ping(r.Context()) == nil

	status := "healthy"
	if !directoryConnected {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:             status,
		Version:            h.version,
		DirectoryConnected: directoryConnected,
		UptimeSeconds:      time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		health.BreakerState = h.breaker.State()
	}

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(health, 0, false))
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
//
// @Summary Kubernetes liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, 0, false))
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Ready means the directory provider answers and the circuit breaker
// is not open.
//
// @Summary Kubernetes readiness probe
// @Description Returns 200 OK when the service can reach the nonprofit directory and the circuit breaker is closed. Returns 503 otherwise.
// @Tags Core
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Service is ready"
// @Failure 503 {object} models.APIResponse "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	directoryConnected := h.provider != nil && h.provider.Ping(r.Context()) == nil

	breakerState := ""
	if h.breaker != nil {
		breakerState = h.breaker.State()
	}
	ready := directoryConnected && breakerState != "open"

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"directory_connected": directoryConnected,
			"breaker_state":       breakerState,
			"ready_to_serve":      ready,
			"uptime":              time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
