// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// errors.go - mapping from pipeline errors to HTTP error envelopes.

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/models"
	"github.com/hurakan/feelgive-sub000/internal/recommend"
)

// mapPipelineError translates an engine error into transport terms.
// The machine-readable code is what clients branch on; the HTTP status
// carries the transport-level meaning.
func mapPipelineError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrAllSourcesFailed):
		return http.StatusBadGateway, models.ErrCodeAllSourcesFailed,
			"Every candidate source failed; the nonprofit directory may be down"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, models.ErrCodeDeadlineExceeded,
			"The recommendation pipeline did not finish within its deadline"
	case errors.Is(err, directory.ErrRateLimited):
		return http.StatusServiceUnavailable, models.ErrCodeProviderRateLimited,
			"The nonprofit directory is rate limiting; retry shortly"
	case errors.Is(err, directory.ErrUnavailable):
		return http.StatusServiceUnavailable, models.ErrCodeProviderUnavailable,
			"The nonprofit directory is temporarily unavailable"
	case errors.Is(err, directory.ErrBadRequest):
		return http.StatusBadRequest, models.ErrCodeBadRequest,
			"The directory rejected the request"
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal,
			"Recommendation pipeline failed"
	}
}
