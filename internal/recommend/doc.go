// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package recommend turns extracted crisis entities into a short,
// explainable, policy-ordered list of nonprofits.
//
// The pipeline is two-stage: a broad candidate generation pass issues a
// bounded set of directory browse and search calls, then a pure local
// reranker orders the merged candidates by a fixed policy: geographic
// tier first, cause alignment second, trust score only as a tiebreaker,
// quality signals last. A vetting gate excludes organizations known to
// be unvetted; when vetting is unknown, a fallback quality gate applies.
// The top-ranked candidates are enriched with full detail records before
// the final response is assembled.
//
// The Engine orchestrates the stages, applies the recommendation-level
// cache, enforces the request deadline with partial-result semantics,
// and attaches debug telemetry on request.
//
// Apart from the injected directory provider and cache store, the
// package holds no cross-request state: every stage is a functional
// transformation over the previous stage's output.
package recommend
