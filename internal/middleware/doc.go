// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

/*
Package middleware provides HTTP middleware for the recommendation API.

Two components cover the cross-cutting request concerns:

  - Request ID: UUID-based request tracking wired into the logging
    context for distributed tracing
  - Prometheus Metrics: per-endpoint request counters, latency
    histograms, and an active-request gauge

Both are http.HandlerFunc wrappers; the api package adapts them into
Chi's func(http.Handler) http.Handler form when composing the router.
CORS and rate limiting come from the Chi ecosystem (go-chi/cors,
go-chi/httprate) and are configured in the api package rather than
hand-rolled here.
*/
package middleware
