// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"fmt"
	"strings"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Cause alignment levels, best to worst. Level 4 candidates are
// excluded unless the survivor floor forces a backfill.
const (
	CauseLevelSpecific  = 1 // disaster type plus an affected-group match
	CauseLevelGeneral   = 2 // general cause-category match
	CauseLevelAdjacent  = 3 // configured adjacent cause
	CauseLevelUnaligned = 4 // no alignment
)

// disasterSynonyms widens disaster-type matching beyond the literal
// term.
var disasterSynonyms = map[string][]string{
	"earthquake":   {"seismic", "quake", "aftershock"},
	"flood":        {"flooding", "flash flood", "inundation"},
	"hurricane":    {"cyclone", "typhoon", "storm surge"},
	"wildfire":     {"bushfire", "forest fire", "fire relief"},
	"drought":      {"water scarcity", "crop failure"},
	"famine":       {"hunger", "food crisis", "malnutrition"},
	"conflict":     {"war", "armed conflict", "displacement"},
	"epidemic":     {"outbreak", "pandemic", "disease"},
	"tsunami":      {"tidal wave"},
	"landslide":    {"mudslide"},
	"tornado":      {"twister", "storm damage"},
	"winter storm": {"blizzard", "ice storm", "extreme cold"},
}

// adjacentCauses maps a crisis cause to the cause families considered
// close enough to rank, just behind direct matches.
var adjacentCauses = map[string][]string{
	"disaster relief": {"humanitarian", "emergency", "refugee", "shelter", "food security", "crisis"},
	"health":          {"medical", "hospital", "disease", "sanitation", "water"},
	"hunger":          {"food", "nutrition", "agriculture"},
	"refugees":        {"migration", "displacement", "asylum", "humanitarian"},
	"water":           {"sanitation", "hygiene", "infrastructure"},
	"poverty":         {"economic development", "livelihood", "microfinance"},
	"environment":     {"climate", "conservation", "reforestation"},
	"children":        {"education", "family", "youth", "orphan"},
	"housing":         {"shelter", "homeless", "rebuilding"},
	"animals":         {"wildlife", "livestock", "veterinary"},
}

// baselineAdjacent applies to any crisis regardless of its cause tags:
// broad humanitarian work is always at least adjacent.
var baselineAdjacent = []string{"humanitarian aid", "humanitarian", "emergency relief", "mutual aid"}

// candidateCauseText assembles the text scanned for cause signals.
func candidateCauseText(c models.Candidate) string {
	parts := []string{c.Name, c.Description, c.CategoryText}
	parts = append(parts, c.Categories...)
	return normalizeText(strings.Join(parts, " "))
}

// disasterTerms returns the normalized disaster type plus its synonyms.
func disasterTerms(disasterType string) []string {
	normalized := normalizeText(disasterType)
	if normalized == "" {
		return nil
	}
	return append([]string{normalized}, disasterSynonyms[normalized]...)
}

// needTerms returns the affected-group and keyword terms that qualify a
// candidate for the specific alignment level.
func needTerms(entities models.CrisisEntities) []string {
	terms := make([]string, 0, len(entities.AffectedGroups)+len(entities.Keywords))
	terms = append(terms, normalizeAll(entities.AffectedGroups)...)
	terms = append(terms, normalizeAll(entities.Keywords)...)
	return terms
}

// adjacentTerms returns the adjacency vocabulary for the crisis's cause
// tags plus the always-on baseline.
func adjacentTerms(causes []string) []string {
	terms := append([]string(nil), baselineAdjacent...)
	for _, cause := range normalizeAll(causes) {
		terms = append(terms, adjacentCauses[cause]...)
	}
	return terms
}

// classifyCauseLevel computes cause alignment for a candidate, with a
// reason. Level 4 marks no alignment; the reranker decides whether such
// candidates are excluded or backfilled.
func classifyCauseLevel(entities models.CrisisEntities, c models.Candidate) (int, string) {
	text := candidateCauseText(c)
	disaster := disasterTerms(entities.DisasterType)

	disasterHit, matchedDisaster := "", false
	if len(disaster) > 0 {
		disasterHit, matchedDisaster = containsAnyTerm(text, disaster)
	}

	if matchedDisaster {
		if need, ok := containsAnyTerm(text, needTerms(entities)); ok {
			return CauseLevelSpecific, fmt.Sprintf("Specializes in %s relief, serving %s", disasterHit, need)
		}
	}

	for _, cause := range normalizeAll(entities.Causes) {
		if containsTerm(text, cause) {
			return CauseLevelGeneral, fmt.Sprintf("Works in %s", cause)
		}
	}
	if matchedDisaster {
		return CauseLevelGeneral, fmt.Sprintf("Works on %s response", disasterHit)
	}

	if adjacent, ok := containsAnyTerm(text, adjacentTerms(entities.Causes)); ok {
		return CauseLevelAdjacent, fmt.Sprintf("Related field: %s", adjacent)
	}

	return CauseLevelUnaligned, "Cause does not match the crisis"
}
