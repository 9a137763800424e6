// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"fmt"
	"sort"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Exclusion reasons, used as debug counter keys and metric labels.
const (
	ExclusionVettedFalse   = "vetted_false"
	ExclusionQualityGate   = "quality_gate"
	ExclusionGeoUnrelated  = "geo_unrelated"
	ExclusionCauseMismatch = "cause_mismatch"
)

// Reranker orders candidates by the fixed policy: geographic tier,
// then cause alignment, then trust score, then quality signals. It is
// a pure function of its inputs: no I/O, no shared state, deterministic
// for identical candidate lists.
type Reranker struct {
	cfg     RerankConfig
	trust   SignalProvider
	vetting SignalProvider
}

// NewReranker builds a reranker with the given policy configuration and
// signal providers. Nil providers default to always-unknown.
func NewReranker(cfg RerankConfig, trust, vetting SignalProvider) *Reranker {
	if trust == nil {
		trust = UnknownSignalProvider
	}
	if vetting == nil {
		vetting = UnknownSignalProvider
	}
	return &Reranker{cfg: cfg, trust: trust, vetting: vetting}
}

// RerankResult is the ordered survivor list plus the accounting the
// debug block and metrics want.
type RerankResult struct {
	Ranked      []models.RankedCandidate
	Exclusions  map[string]int
	TierCounts  map[int]int
	LevelCounts map[int]int
}

// Rerank applies the full policy to a deduplicated candidate list.
//
// Candidates vetted "false" and candidates with no geographic link are
// excluded outright. Unvetted candidates must pass the fallback quality
// gate. Cause-unaligned candidates are excluded unless the survivor
// count would fall below the configured floor, in which case the best
// of them are appended last and flagged as mismatches.
func (r *Reranker) Rerank(entities models.CrisisEntities, candidates []models.Candidate) RerankResult {
	result := RerankResult{
		Exclusions:  make(map[string]int),
		TierCounts:  make(map[int]int),
		LevelCounts: make(map[int]int),
	}

	var survivors, unaligned []models.RankedCandidate

	for _, c := range candidates {
		signal := mergeSignals(r.trust(c), r.vetting(c))

		if signal.VettedStatus == models.VettedFalse {
			result.Exclusions[ExclusionVettedFalse]++
			continue
		}
		if signal.VettedStatus != models.VettedTrue {
			if ok, _ := passesQualityGate(c, r.cfg); !ok {
				result.Exclusions[ExclusionQualityGate]++
				continue
			}
		}

		tier, geoReason := classifyGeoTier(entities.Geography, c, r.cfg.FlexibilityMarkers)
		if tier == GeoTierExcluded {
			result.Exclusions[ExclusionGeoUnrelated]++
			continue
		}

		level, causeReason := classifyCauseLevel(entities, c)

		ranked := models.RankedCandidate{
			Candidate:    c,
			Trust:        signal,
			GeoTier:      tier,
			CauseLevel:   level,
			QualityScore: qualityScore(c),
			Reasons:      buildReasons(geoReason, causeReason, signal),
		}
		ranked.TotalScore = totalScore(ranked)

		if level == CauseLevelUnaligned {
			ranked.CauseMismatch = true
			unaligned = append(unaligned, ranked)
			continue
		}
		survivors = append(survivors, ranked)
	}

	sortRanked(survivors)
	sortRanked(unaligned)

	// Backfill: a thin crisis description must still yield a usable
	// list, so the best mismatches fill up to the floor, always behind
	// every aligned candidate.
	if len(survivors) < r.cfg.MinSurvivors && len(unaligned) > 0 {
		take := r.cfg.MinSurvivors - len(survivors)
		if take > len(unaligned) {
			take = len(unaligned)
		}
		for _, c := range unaligned[:take] {
			c.Reasons = append(c.Reasons, "Included to avoid an empty result set")
			survivors = append(survivors, c)
		}
		unaligned = unaligned[take:]
	}
	if len(unaligned) > 0 {
		result.Exclusions[ExclusionCauseMismatch] += len(unaligned)
	}

	survivors = applyDiversity(survivors, r.cfg.MaxPerCategory, r.cfg.DiversityWindow)

	for _, c := range survivors {
		result.TierCounts[c.GeoTier]++
		result.LevelCounts[c.CauseLevel]++
	}
	result.Ranked = survivors
	return result
}

// rankLess is the policy ordering: the ordinal keys dominate, trust
// breaks ties only inside an equal (tier, level) bucket, unscored
// candidates sort behind scored ones, quality breaks what remains.
func rankLess(a, b models.RankedCandidate) bool {
	if a.GeoTier != b.GeoTier {
		return a.GeoTier < b.GeoTier
	}
	if a.CauseLevel != b.CauseLevel {
		return a.CauseLevel < b.CauseLevel
	}
	aScored, bScored := a.Trust.HasScore(), b.Trust.HasScore()
	if aScored != bScored {
		return aScored
	}
	if aScored && *a.Trust.TrustScore != *b.Trust.TrustScore {
		return *a.Trust.TrustScore > *b.Trust.TrustScore
	}
	return a.QualityScore > b.QualityScore
}

func sortRanked(list []models.RankedCandidate) {
	sort.SliceStable(list, func(i, j int) bool {
		return rankLess(list[i], list[j])
	})
}

// totalScore is a display-only composite. Ordering always uses the
// ordinal keys in rankLess; the wide gaps here just make the displayed
// score agree with that order.
func totalScore(c models.RankedCandidate) float64 {
	score := float64(5-c.GeoTier)*10000 + float64(4-c.CauseLevel)*1000
	if c.Trust.HasScore() {
		score += *c.Trust.TrustScore
	}
	return score + c.QualityScore
}

func buildReasons(geoReason, causeReason string, signal models.TrustVettingSignal) []string {
	reasons := []string{geoReason, causeReason}
	switch {
	case signal.HasScore() && signal.Source != "":
		reasons = append(reasons, fmt.Sprintf("Trust score %.0f from %s", *signal.TrustScore, signal.Source))
	case signal.HasScore():
		reasons = append(reasons, fmt.Sprintf("Trust score %.0f", *signal.TrustScore))
	case signal.VettedStatus == models.VettedTrue && signal.Source != "":
		reasons = append(reasons, fmt.Sprintf("Vetted by %s", signal.Source))
	case signal.VettedStatus == models.VettedTrue:
		reasons = append(reasons, "Vetted organization")
	default:
		reasons = append(reasons, "Trust data unavailable; included via quality checks")
	}
	return reasons
}

// primaryCategory is the normalized grouping key for the diversity cap.
// Candidates without category data cannot be grouped and are never
// capped.
func primaryCategory(c models.RankedCandidate) string {
	if len(c.Categories) > 0 {
		return normalizeText(c.Categories[0])
	}
	return normalizeText(c.CategoryText)
}

// applyDiversity caps how many candidates of one category appear inside
// the leading window, demoting the excess to just after it. Nothing is
// dropped and relative order is otherwise preserved.
func applyDiversity(ranked []models.RankedCandidate, maxPer, window int) []models.RankedCandidate {
	if len(ranked) <= 1 {
		return ranked
	}

	head := make([]models.RankedCandidate, 0, len(ranked))
	var deferred, tail []models.RankedCandidate
	counts := make(map[string]int)

	for _, c := range ranked {
		if len(head) >= window {
			tail = append(tail, c)
			continue
		}
		cat := primaryCategory(c)
		if cat != "" {
			if counts[cat] >= maxPer {
				deferred = append(deferred, c)
				continue
			}
			counts[cat]++
		}
		head = append(head, c)
	}

	out := head
	out = append(out, deferred...)
	return append(out, tail...)
}
