// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package cache

import (
	"sync/atomic"
	"time"
)

// Nop is an always-miss Cacher. It is the degraded mode for a tier that
// could not be initialized: the pipeline keeps working, every lookup
// goes upstream. Misses are still counted so the stats endpoint shows
// the degradation.
type Nop struct {
	misses atomic.Int64
}

// NewNop returns an always-miss cache.
func NewNop() *Nop {
	return &Nop{}
}

// Get always misses.
func (n *Nop) Get(string) (interface{}, bool) {
	n.misses.Add(1)
	return nil, false
}

// Set discards the value.
func (n *Nop) Set(string, interface{}) {}

// SetWithTTL discards the value.
func (n *Nop) SetWithTTL(string, interface{}, time.Duration) {}

// Delete is a no-op.
func (n *Nop) Delete(string) {}

// Clear is a no-op.
func (n *Nop) Clear() int64 { return 0 }

// Sweep is a no-op.
func (n *Nop) Sweep() int64 { return 0 }

// GetStats reports the accumulated misses.
func (n *Nop) GetStats() Stats {
	return Stats{Misses: n.misses.Load()}
}

// HitRate is always zero.
func (n *Nop) HitRate() float64 { return 0.0 }
