// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package cache

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Cache namespace names. Also used as the metrics label values.
const (
	NamespaceSearch         = "search"
	NamespaceBrowse         = "browse"
	NamespaceDetails        = "details"
	NamespaceRecommendation = "recommendation"
)

// Config holds the per-namespace TTLs and the optional persistent tier
// settings.
type Config struct {
	SearchTTL         time.Duration
	BrowseTTL         time.Duration
	DetailsTTL        time.Duration
	RecommendationTTL time.Duration
	BadgerEnabled     bool
	BadgerPath        string
}

// DefaultConfig returns production TTLs: half a day for raw directory
// results, a full day for details, an hour for assembled recommendations.
func DefaultConfig() Config {
	return Config{
		SearchTTL:         12 * time.Hour,
		BrowseTTL:         12 * time.Hour,
		DetailsTTL:        24 * time.Hour,
		RecommendationTTL: time.Hour,
	}
}

// Store owns the four cache namespaces and the optional persistent
// details tier. One Store is constructed at startup and injected into
// every component that caches.
type Store struct {
	search         Cacher
	browse         Cacher
	details        Cacher
	recommendation Cacher
	persistent     *BadgerStore
	logger         zerolog.Logger
}

// NewStore builds the namespaces from cfg. When the Badger tier is
// enabled but cannot be opened, the store logs the failure and continues
// memory-only; construction never fails.
func NewStore(cfg Config, logger zerolog.Logger) *Store {
	s := &Store{
		search:         NewMemory(cfg.SearchTTL),
		browse:         NewMemory(cfg.BrowseTTL),
		details:        NewMemory(cfg.DetailsTTL),
		recommendation: NewMemory(cfg.RecommendationTTL),
		logger:         logger.With().Str("component", "cache").Logger(),
	}

	if cfg.BadgerEnabled {
		persistent, err := OpenBadger(cfg.BadgerPath, cfg.DetailsTTL, logger)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", cfg.BadgerPath).
				Msg("Persistent cache unavailable, continuing memory-only")
		} else {
			s.persistent = persistent
			s.logger.Info().Str("path", cfg.BadgerPath).Msg("Persistent details cache opened")
		}
	}

	return s
}

// Namespace returns the Cacher for a namespace name. Unknown names get
// an always-miss cache so a bad name degrades instead of panicking.
func (s *Store) Namespace(name string) Cacher {
	switch name {
	case NamespaceSearch:
		return s.search
	case NamespaceBrowse:
		return s.browse
	case NamespaceDetails:
		return s.details
	case NamespaceRecommendation:
		return s.recommendation
	default:
		s.logger.Warn().Str("namespace", name).Msg("Unknown cache namespace requested")
		return NewNop()
	}
}

// Search returns the search-results namespace.
func (s *Store) Search() Cacher { return s.search }

// Browse returns the browse-results namespace.
func (s *Store) Browse() Cacher { return s.browse }

// Details returns the in-memory details namespace. Most callers want
// GetDetails/SetDetails, which also consult the persistent tier.
func (s *Store) Details() Cacher { return s.details }

// Recommendations returns the assembled-recommendations namespace.
func (s *Store) Recommendations() Cacher { return s.recommendation }

// GetDetails looks up a details record, checking memory first and then
// the persistent tier. A persistent hit is promoted into memory.
func (s *Store) GetDetails(key string) (models.CharityDetails, bool) {
	if v, ok := s.details.Get(key); ok {
		if details, ok := v.(models.CharityDetails); ok {
			return details, true
		}
	}

	if s.persistent != nil {
		if details, ok := s.persistent.Get(key); ok {
			s.details.Set(key, details)
			return details, true
		}
	}

	return models.CharityDetails{}, false
}

// SetDetails stores a details record in memory and, when enabled, on disk.
func (s *Store) SetDetails(key string, details models.CharityDetails) {
	s.details.Set(key, details)
	if s.persistent != nil {
		s.persistent.Set(key, details)
	}
}

// PersistentStats describes the optional Badger tier.
type PersistentStats struct {
	Enabled   bool  `json:"enabled"`
	LSMBytes  int64 `json:"lsm_bytes,omitempty"`
	VLogBytes int64 `json:"vlog_bytes,omitempty"`
}

// StoreStats is the aggregate stats snapshot served by the cache-stats
// endpoint.
type StoreStats struct {
	Namespaces map[string]Stats `json:"namespaces"`
	Persistent PersistentStats  `json:"persistent"`
}

// Stats snapshots every namespace plus the persistent tier.
func (s *Store) Stats() StoreStats {
	out := StoreStats{
		Namespaces: map[string]Stats{
			NamespaceSearch:         s.search.GetStats(),
			NamespaceBrowse:         s.browse.GetStats(),
			NamespaceDetails:        s.details.GetStats(),
			NamespaceRecommendation: s.recommendation.GetStats(),
		},
	}
	if s.persistent != nil {
		lsm, vlog := s.persistent.Size()
		out.Persistent = PersistentStats{Enabled: true, LSMBytes: lsm, VLogBytes: vlog}
	}
	return out
}

// HitRates returns the per-namespace hit percentages.
func (s *Store) HitRates() map[string]float64 {
	return map[string]float64{
		NamespaceSearch:         s.search.HitRate(),
		NamespaceBrowse:         s.browse.HitRate(),
		NamespaceDetails:        s.details.HitRate(),
		NamespaceRecommendation: s.recommendation.HitRate(),
	}
}

// ClearAll invalidates every namespace and the persistent tier, returning
// the number of in-memory entries removed.
func (s *Store) ClearAll() int64 {
	removed := s.search.Clear()
	removed += s.browse.Clear()
	removed += s.details.Clear()
	removed += s.recommendation.Clear()

	if s.persistent != nil {
		if err := s.persistent.Clear(); err != nil {
			s.logger.Warn().Err(err).Msg("Persistent cache clear failed")
		}
	}

	s.logger.Info().Int64("entries_removed", removed).Msg("All cache namespaces cleared")
	return removed
}

// Sweep evicts expired entries from every namespace and runs persistent
// garbage collection. Returns total in-memory evictions.
func (s *Store) Sweep() int64 {
	evicted := s.search.Sweep()
	evicted += s.browse.Sweep()
	evicted += s.details.Sweep()
	evicted += s.recommendation.Sweep()

	if s.persistent != nil {
		s.persistent.Sweep()
	}

	return evicted
}

// Close releases the persistent tier, if any.
func (s *Store) Close() error {
	if s.persistent == nil {
		return nil
	}
	return s.persistent.Close()
}
