// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

func rankedIdentifiers(result RerankResult) []string {
	ids := make([]string, 0, len(result.Ranked))
	for _, c := range result.Ranked {
		ids = append(ids, c.Identifier)
	}
	return ids
}

// The Turkey-earthquake scenario: a local, a neighboring, and a global
// high-flexibility organization must rank strictly by geographic tier,
// even when trust scores point the other way.
func TestRerankGeoTierDominance(t *testing.T) {
	// The global org carries the best trust score; tier must still win.
	trust := scoreOf(map[string]float64{
		globalFlexibleOrg().Identifier: 99,
		greeceOrg().Identifier:         90,
	})
	r := NewReranker(DefaultConfig().Rerank, trust, nil)

	candidates := []models.Candidate{globalFlexibleOrg(), greeceOrg(), turkeyOrg()}
	result := r.Rerank(turkeyEntities(), candidates)

	want := []string{turkeyOrg().Identifier, greeceOrg().Identifier, globalFlexibleOrg().Identifier}
	if got := rankedIdentifiers(result); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked order = %v, want %v", got, want)
	}

	if result.Ranked[0].GeoTier != GeoTierLocal {
		t.Errorf("turkey org tier = %d, want %d", result.Ranked[0].GeoTier, GeoTierLocal)
	}
	if result.Ranked[1].GeoTier != GeoTierNeighbor {
		t.Errorf("greece org tier = %d, want %d", result.Ranked[1].GeoTier, GeoTierNeighbor)
	}
	if result.Ranked[2].GeoTier != GeoTierFlexible {
		t.Errorf("global org tier = %d, want %d", result.Ranked[2].GeoTier, GeoTierFlexible)
	}
}

func TestRerankCauseDominanceWithinTier(t *testing.T) {
	entities := turkeyEntities()
	entities.AffectedGroups = []string{"children"}

	specific := turkeyOrg()
	specific.Identifier = "44-4444444"
	specific.Description = "Runs earthquake response programs protecting children and families displaced by seismic disasters across Turkey."

	general := turkeyOrg()
	general.Identifier = "55-5555555"
	general.Description = "Long-standing disaster relief organization serving communities throughout Turkey with supplies and logistics."

	// Trust favors the generally aligned org; cause level must still win.
	trust := scoreOf(map[string]float64{general.Identifier: 99})
	r := NewReranker(DefaultConfig().Rerank, trust, nil)

	result := r.Rerank(entities, []models.Candidate{general, specific})

	want := []string{specific.Identifier, general.Identifier}
	if got := rankedIdentifiers(result); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked order = %v, want %v", got, want)
	}
	if result.Ranked[0].CauseLevel != CauseLevelSpecific {
		t.Errorf("specific org level = %d, want %d", result.Ranked[0].CauseLevel, CauseLevelSpecific)
	}
	if result.Ranked[1].CauseLevel != CauseLevelGeneral {
		t.Errorf("general org level = %d, want %d", result.Ranked[1].CauseLevel, CauseLevelGeneral)
	}
}

// Trust breaks ties inside an equal (tier, level) bucket; a candidate
// without a score sorts last and its reasons say the data is missing,
// never a fabricated number.
func TestRerankTrustTiebreakAndMissingScore(t *testing.T) {
	scored := turkeyOrg()
	scored.Identifier = "66-6666666"
	scored.Name = "Marmara Disaster Relief Society"

	unscored := turkeyOrg()
	unscored.Identifier = "77-7777777"
	unscored.Name = "Bosphorus Disaster Relief Union"

	trust := scoreOf(map[string]float64{scored.Identifier: 95})
	r := NewReranker(DefaultConfig().Rerank, trust, nil)

	result := r.Rerank(turkeyEntities(), []models.Candidate{unscored, scored})

	want := []string{scored.Identifier, unscored.Identifier}
	if got := rankedIdentifiers(result); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked order = %v, want %v", got, want)
	}

	last := result.Ranked[1]
	if last.Trust.HasScore() {
		t.Fatalf("unscored candidate reports a trust score: %v", *last.Trust.TrustScore)
	}
	reasons := strings.Join(last.Reasons, " | ")
	if !strings.Contains(reasons, "Trust data unavailable") {
		t.Errorf("reasons = %q, want a trust-unavailable note", reasons)
	}
	for _, reason := range last.Reasons {
		if strings.Contains(reason, "Trust score") {
			t.Errorf("unscored candidate claims a score: %q", reason)
		}
	}
}

func TestRerankHardExclusions(t *testing.T) {
	unvetted := turkeyOrg()
	unvetted.Identifier = "88-8888888"

	unrelated := models.Candidate{
		Identifier:    "99-9999999",
		Name:          "Springfield Community Choir",
		Description:   "A neighborhood choir performing seasonal concerts and offering weekly singing workshops for all ages in Springfield.",
		WebsiteURL:    "https://springfield-choir.example.org",
		LocationText:  "Springfield",
		IsDisbursable: true,
	}

	noWebsite := turkeyOrg()
	noWebsite.Identifier = "10-1010101"
	noWebsite.WebsiteURL = ""

	vetting := vettedAs(map[string]string{unvetted.Identifier: models.VettedFalse})
	r := NewReranker(DefaultConfig().Rerank, nil, vetting)

	result := r.Rerank(turkeyEntities(), []models.Candidate{unvetted, unrelated, noWebsite, turkeyOrg()})

	if got := rankedIdentifiers(result); !reflect.DeepEqual(got, []string{turkeyOrg().Identifier}) {
		t.Fatalf("ranked = %v, want only the clean turkey org", got)
	}
	for _, c := range result.Ranked {
		if c.GeoTier == GeoTierExcluded {
			t.Errorf("tier-5 candidate %s survived", c.Identifier)
		}
	}
	if result.Exclusions[ExclusionVettedFalse] != 1 {
		t.Errorf("vetted_false exclusions = %d, want 1", result.Exclusions[ExclusionVettedFalse])
	}
	if result.Exclusions[ExclusionGeoUnrelated] != 1 {
		t.Errorf("geo_unrelated exclusions = %d, want 1", result.Exclusions[ExclusionGeoUnrelated])
	}
	if result.Exclusions[ExclusionQualityGate] != 1 {
		t.Errorf("quality_gate exclusions = %d, want 1", result.Exclusions[ExclusionQualityGate])
	}
}

// An explicitly vetted organization skips the fallback quality gate
// entirely; a sparse record is not held against it.
func TestRerankVettedSkipsQualityGate(t *testing.T) {
	sparse := turkeyOrg()
	sparse.Identifier = "12-1212121"
	sparse.WebsiteURL = ""
	sparse.IsDisbursable = false

	vetting := vettedAs(map[string]string{sparse.Identifier: models.VettedTrue})
	r := NewReranker(DefaultConfig().Rerank, nil, vetting)

	result := r.Rerank(turkeyEntities(), []models.Candidate{sparse})
	if len(result.Ranked) != 1 {
		t.Fatalf("ranked = %d candidates, want 1", len(result.Ranked))
	}
	if got := strings.Join(result.Ranked[0].Reasons, " | "); !strings.Contains(got, "Vetted by test") {
		t.Errorf("reasons = %q, want a vetted-by note", got)
	}
}

func unalignedTurkeyOrg(i int) models.Candidate {
	return models.Candidate{
		Identifier:    fmt.Sprintf("20-%07d", i),
		Name:          fmt.Sprintf("Istanbul Arts Collective %d", i),
		Description:   "Provides music lessons, painting classes, and theater workshops to schools and cultural centers across Turkey.",
		WebsiteURL:    "https://istanbul-arts.example.org",
		LocationText:  "Istanbul, Turkey",
		CategoryText:  "arts and culture",
		IsDisbursable: true,
	}
}

func TestRerankBackfillBelowSurvivorFloor(t *testing.T) {
	candidates := []models.Candidate{turkeyOrg(), greeceOrg()}
	for i := 0; i < 3; i++ {
		candidates = append(candidates, unalignedTurkeyOrg(i))
	}

	r := NewReranker(DefaultConfig().Rerank, nil, nil)
	result := r.Rerank(turkeyEntities(), candidates)

	if len(result.Ranked) != 5 {
		t.Fatalf("ranked = %d candidates, want 5 (2 aligned + 3 backfilled)", len(result.Ranked))
	}

	// Backfilled mismatches always rank behind every aligned candidate.
	for i, c := range result.Ranked {
		wantMismatch := i >= 2
		if c.CauseMismatch != wantMismatch {
			t.Errorf("position %d (%s): causeMismatch = %v, want %v", i, c.Identifier, c.CauseMismatch, wantMismatch)
		}
	}
	if got := strings.Join(result.Ranked[4].Reasons, " | "); !strings.Contains(got, "avoid an empty result set") {
		t.Errorf("backfilled reasons = %q, want a backfill note", got)
	}
}

func TestRerankMismatchesExcludedAboveFloor(t *testing.T) {
	candidates := []models.Candidate{turkeyOrg(), greeceOrg(), globalFlexibleOrg()}
	aligned := []string{"31-0000001", "31-0000002"}
	for i, id := range aligned {
		c := turkeyOrg()
		c.Identifier = id
		c.Name = fmt.Sprintf("Ankara Relief Circle %d", i)
		candidates = append(candidates, c)
	}
	candidates = append(candidates, unalignedTurkeyOrg(9))

	r := NewReranker(DefaultConfig().Rerank, nil, nil)
	result := r.Rerank(turkeyEntities(), candidates)

	if len(result.Ranked) != 5 {
		t.Fatalf("ranked = %d candidates, want 5", len(result.Ranked))
	}
	for _, c := range result.Ranked {
		if c.CauseMismatch {
			t.Errorf("mismatch %s retained despite a full survivor set", c.Identifier)
		}
	}
	if result.Exclusions[ExclusionCauseMismatch] != 1 {
		t.Errorf("cause_mismatch exclusions = %d, want 1", result.Exclusions[ExclusionCauseMismatch])
	}
}

func TestRerankDiversityCap(t *testing.T) {
	var candidates []models.Candidate
	for i := 0; i < 4; i++ {
		c := turkeyOrg()
		c.Identifier = fmt.Sprintf("40-%07d", i)
		c.Name = fmt.Sprintf("Turkey Disaster Relief Org %d", i)
		candidates = append(candidates, c)
	}
	health := turkeyOrg()
	health.Identifier = "41-0000001"
	health.Name = "Istanbul Medical Relief"
	health.Description = "Operates mobile clinics providing medical care and disaster relief health services to communities across Turkey."
	health.CategoryText = "health"
	candidates = append(candidates, health)

	r := NewReranker(DefaultConfig().Rerank, nil, nil)
	result := r.Rerank(turkeyEntities(), candidates)

	if len(result.Ranked) != 5 {
		t.Fatalf("ranked = %d candidates, want 5 (diversity demotes, never drops)", len(result.Ranked))
	}

	// At most two disaster-relief orgs may precede the health org.
	seen := 0
	for _, c := range result.Ranked {
		if c.Identifier == health.Identifier {
			break
		}
		seen++
	}
	if seen > 2 {
		t.Errorf("health org at position %d, want within the first 3 after the category cap", seen)
	}
}

func TestRerankDeterministic(t *testing.T) {
	candidates := []models.Candidate{globalFlexibleOrg(), turkeyOrg(), greeceOrg()}
	r := NewReranker(DefaultConfig().Rerank, nil, nil)

	first := r.Rerank(turkeyEntities(), candidates)
	second := r.Rerank(turkeyEntities(), candidates)

	if !reflect.DeepEqual(rankedIdentifiers(first), rankedIdentifiers(second)) {
		t.Fatalf("rerank is not deterministic: %v vs %v", rankedIdentifiers(first), rankedIdentifiers(second))
	}
}

// Malformed input never panics the reranker; empty candidates fall out
// through the conservative defaults.
func TestRerankMalformedCandidates(t *testing.T) {
	r := NewReranker(DefaultConfig().Rerank, nil, nil)
	result := r.Rerank(turkeyEntities(), []models.Candidate{{}, {Identifier: "x"}})
	if len(result.Ranked) != 0 {
		t.Fatalf("ranked = %d, want 0 for empty records", len(result.Ranked))
	}
}
