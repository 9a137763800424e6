// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

// Package cache provides the TTL caches that sit between the
// recommendation pipeline and the external nonprofit directory.
//
// Entries live in four independent namespaces with independent TTLs:
// search and browse results, organization details, and assembled
// recommendation lists. Keys are deterministic digests of normalized
// call parameters, so logically identical lookups hit the same entry
// regardless of argument order.
//
// The Store is explicitly constructed and injected into the components
// that need it; there is no package-level singleton. An optional Badger
// tier persists the details namespace across restarts. Cache failure is
// never fatal: a tier that cannot be opened degrades to always-miss and
// requests proceed against the upstream directory.
package cache
