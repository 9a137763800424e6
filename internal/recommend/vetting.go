// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"regexp"
	"strings"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// genericNameRe flags names that read as bare legal vehicles (donor-
// advised funds, family trusts) rather than operating charities. These
// pass through the directory's typeahead search constantly and carry no
// usable crisis-response signal.
var genericNameRe = regexp.MustCompile(`(?i)^[\w\s]+(trust|tr|fund|uw|fbo)$`)

// einRe matches a US tax registration number, with or without the dash.
var einRe = regexp.MustCompile(`^\d{2}-?\d{7}$`)

func isGenericEntityName(name string) bool {
	return genericNameRe.MatchString(strings.TrimSpace(name))
}

// passesQualityGate is the fallback filter for candidates whose vetting
// status is unknown. Returns the failing check's name for the debug
// exclusion counters.
func passesQualityGate(c models.Candidate, cfg RerankConfig) (bool, string) {
	if cfg.RequireDisbursable && !c.IsDisbursable {
		return false, "not disbursable"
	}
	if len(c.Description) <= cfg.MinDescriptionLength {
		return false, "description too short"
	}
	if c.WebsiteURL == "" {
		return false, "no website"
	}
	if isGenericEntityName(c.Name) {
		return false, "generic entity name"
	}
	return true, ""
}

// qualityScore is the last tiebreak: a small completeness bonus that
// never outweighs the ordinal tiers.
func qualityScore(c models.Candidate) float64 {
	var score float64
	switch {
	case len(c.Description) > 200:
		score += 3
	case len(c.Description) > 50:
		score += 2
	case len(c.Description) > 0:
		score += 1
	}
	if c.WebsiteURL != "" {
		score += 2
	}
	if einRe.MatchString(c.Identifier) {
		score += 2
	}
	if c.LocationText != "" {
		score++
	}
	return score
}
