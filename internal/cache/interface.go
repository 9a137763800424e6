// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package cache

import "time"

// Cacher is the contract a cache namespace satisfies. Memory (TTL map)
// is the working implementation; Nop is the degraded always-miss mode
// used when a tier is unavailable and in tests that need cache-off
// behavior.
type Cacher interface {
	// Get retrieves a value. The second return is false on miss or expiry.
	Get(key string) (interface{}, bool)

	// Set stores a value with the namespace's default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with an explicit TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a single entry.
	Delete(key string)

	// Clear drops every entry and returns how many were removed.
	Clear() int64

	// Sweep removes expired entries and returns how many were evicted.
	// Called periodically by the cache janitor.
	Sweep() int64

	// GetStats returns a snapshot of the namespace's counters.
	GetStats() Stats

	// HitRate returns hits/(hits+misses) as a percentage.
	HitRate() float64
}

// Compile-time interface checks.
var (
	_ Cacher = (*Memory)(nil)
	_ Cacher = (*Nop)(nil)
)
