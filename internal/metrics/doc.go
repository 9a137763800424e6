// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package metrics exposes the Prometheus instrumentation for the
// recommendation service:
//
//   - API endpoint latency, throughput, and rate-limit rejections
//   - directory provider call outcomes, retries, and circuit breaker state
//   - per-namespace cache efficiency
//   - recommendation pipeline stage timings, candidate counts, and
//     exclusion reasons
//
// All collectors are registered on the default registry via promauto and
// served by the /metrics endpoint. Components record through the helper
// functions rather than touching collectors directly, which keeps label
// vocabularies in one place.
package metrics
