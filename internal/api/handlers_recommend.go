// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/hurakan/feelgive-sub000/internal/logging"
	"github.com/hurakan/feelgive-sub000/internal/models"
	"github.com/hurakan/feelgive-sub000/internal/recommend"
)

// maxRecommendBodyBytes caps the request body; crisis descriptions are
// bounded well below this.
const maxRecommendBodyBytes = 1 << 20

// Recommendations handles recommendation requests.
//
// @Summary Recommend nonprofits for a crisis
// @Description Runs the recommendation pipeline for a described crisis: candidate generation against the nonprofit directory, geography/cause reranking, and detail enrichment. Partial upstream failures degrade the result; only a full directory outage fails the request.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body recommend.Request true "Crisis description with extracted entities"
// @Success 200 {object} models.APIResponse{data=recommend.Response} "Ranked recommendations"
// @Failure 400 {object} models.APIResponse "Malformed or invalid request"
// @Failure 502 {object} models.APIResponse "Every candidate source failed"
// @Router /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommend.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxRecommendBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest,
			"Request body is not valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest,
			models.NewErrorResponse(apiErr.Code, apiErr.Message, apiErr.Details))
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		status, code, message := mapPipelineError(err)
		details := pipelineErrorDetails(resp)
		logging.Error().
			Err(err).
			Str("code", code).
			Str("crisis_country", sanitizeLogValue(req.Entities.Geography.Country)).
			Msg("Recommendation request failed")
		respondJSON(w, status, models.NewErrorResponse(code, message, details))
		return
	}

	cached := resp.Debug != nil && resp.Debug.FromCache
	respondJSON(w, http.StatusOK,
		models.NewSuccessResponse(resp, time.Since(start).Milliseconds(), cached))
}

// pipelineErrorDetails surfaces the debug telemetry gathered before the
// failure, when the caller asked for it.
func pipelineErrorDetails(resp *recommend.Response) map[string]interface{} {
	if resp == nil || resp.Debug == nil {
		return nil
	}
	return map[string]interface{}{
		"debug": resp.Debug,
	}
}
