// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

/*
Package api exposes the recommendation engine over HTTP.

The surface is intentionally small:

	POST /api/v1/recommendations  - run the pipeline for a crisis
	GET  /api/v1/cache/stats      - cache namespace statistics
	POST /api/v1/cache/clear      - invalidate all caches (maintenance auth)
	GET  /api/v1/health           - aggregate health
	GET  /api/v1/health/live      - liveness probe
	GET  /api/v1/health/ready     - readiness probe
	GET  /metrics                 - Prometheus metrics
	GET  /swagger/*               - API documentation

Routing uses Chi with the ecosystem's CORS and rate-limiting middleware;
every response is wrapped in the models.APIResponse envelope.
*/
package api
