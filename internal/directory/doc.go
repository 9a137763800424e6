// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package directory is the resilient HTTP client for the external
// nonprofit directory provider. It exposes the provider's three
// operations (search-by-term, browse-by-cause, get-details) behind the
// API interface and contains no ranking logic.
//
// The concrete Client handles per-call timeouts, outbound rate pacing,
// typed error classification, and bounded retry with exponential backoff
// on retryable failures. BreakerClient layers a circuit breaker on top,
// and CachedClient layers the TTL cache on top of that; production wiring
// is Client -> BreakerClient -> CachedClient.
package directory
