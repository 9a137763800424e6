// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package models

// CrisisGeography locates a crisis. Country drives the geographic ranking
// policy; Region and City sharpen the match when the upstream classifier
// provides them.
type CrisisGeography struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// CrisisEntities is the structured output of the upstream content
// classifier. The engine consumes it as-is; it never re-extracts entities
// from raw text.
type CrisisEntities struct {
	Geography      CrisisGeography `json:"geography"`
	DisasterType   string          `json:"disasterType,omitempty"`
	AffectedGroups []string        `json:"affectedGroups,omitempty"`
	Causes         []string        `json:"causes,omitempty"`
	Keywords       []string        `json:"keywords,omitempty"`
}

// Provenance source values.
const (
	ProvenanceSearch = "search"
	ProvenanceBrowse = "browse"
)

// Provenance records which directory query first discovered a candidate.
// When the same organization surfaces from several queries, the first
// discovery wins and the rest are appended to AlsoDiscoveredBy.
type Provenance struct {
	Source           string   `json:"source"`
	QueryUsed        string   `json:"queryUsed"`
	AlsoDiscoveredBy []string `json:"alsoDiscoveredBy,omitempty"`
}

// Candidate is a slim organization record as returned by directory search
// and browse calls. Identifier is the stable dedup key: the provider's
// registration number when present, else its assigned slug. Metadata
// beyond Identifier and Name is best-effort and frequently absent.
type Candidate struct {
	Identifier    string     `json:"identifier"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	WebsiteURL    string     `json:"websiteUrl,omitempty"`
	ProfileURL    string     `json:"profileUrl,omitempty"`
	LocationText  string     `json:"locationText,omitempty"`
	CategoryText  string     `json:"categoryText,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	LogoURL       string     `json:"logoUrl,omitempty"`
	CoverImageURL string     `json:"coverImageUrl,omitempty"`
	IsDisbursable bool       `json:"isDisbursable"`
	Provenance    Provenance `json:"provenance"`
}

// Vetting status values for TrustVettingSignal.VettedStatus.
const (
	VettedTrue    = "true"
	VettedFalse   = "false"
	VettedUnknown = "unknown"
)

// TrustVettingSignal carries externally supplied reputation data. A nil
// TrustScore means no score exists; it is reported as absent, never as a
// default number.
type TrustVettingSignal struct {
	TrustScore   *float64 `json:"trustScore,omitempty"`
	VettedStatus string   `json:"vettedStatus"`
	Source       string   `json:"source,omitempty"`
}

// HasScore reports whether a real trust score is present.
func (s TrustVettingSignal) HasScore() bool {
	return s.TrustScore != nil
}

// RankedCandidate is a Candidate after the ranking stage. GeoTier and
// CauseLevel are ordinal keys (lower is better); ordering compares them
// lexicographically and never sums them. TotalScore is a display-only
// composite derived from the ordinal keys and exists solely so callers
// can show a single number.
type RankedCandidate struct {
	Candidate

	Trust         TrustVettingSignal `json:"trust"`
	GeoTier       int                `json:"geoTier"`
	CauseLevel    int                `json:"causeLevel"`
	QualityScore  float64            `json:"qualityScore"`
	TotalScore    float64            `json:"totalScore"`
	Reasons       []string           `json:"reasons"`
	CauseMismatch bool               `json:"causeMismatch,omitempty"`
}

// EnrichedCandidate is a RankedCandidate whose detail fields have been
// filled in from the directory's detail endpoint. When the detail fetch
// fails the ranked fields are kept unchanged and EnrichmentFailed is set;
// the candidate is never dropped for that reason alone.
type EnrichedCandidate struct {
	RankedCandidate

	EnrichmentFailed bool `json:"enrichmentFailed,omitempty"`
}

// CharityDetails is the full record from the directory's detail endpoint.
type CharityDetails struct {
	Identifier      string   `json:"identifier"`
	Name            string   `json:"name"`
	EIN             string   `json:"ein,omitempty"`
	Description     string   `json:"description,omitempty"`
	DescriptionLong string   `json:"descriptionLong,omitempty"`
	WebsiteURL      string   `json:"websiteUrl,omitempty"`
	ProfileURL      string   `json:"profileUrl,omitempty"`
	LocationText    string   `json:"locationText,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	LogoURL         string   `json:"logoUrl,omitempty"`
	CoverImageURL   string   `json:"coverImageUrl,omitempty"`
	IsDisbursable   bool     `json:"isDisbursable"`
}

// Recommendation is the outward-facing view record assembled from an
// EnrichedCandidate.
type Recommendation struct {
	Identifier       string   `json:"identifier"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	WebsiteURL       string   `json:"websiteUrl,omitempty"`
	ProfileURL       string   `json:"profileUrl,omitempty"`
	Location         string   `json:"location,omitempty"`
	CoverImageURL    string   `json:"coverImageUrl,omitempty"`
	LogoURL          string   `json:"logoUrl,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Score            float64  `json:"score"`
	Reasons          []string `json:"reasons"`
	CauseMismatch    bool     `json:"causeMismatch,omitempty"`
	EnrichmentFailed bool     `json:"enrichmentFailed,omitempty"`
}

// NewRecommendation flattens an enriched candidate into its view record.
func NewRecommendation(c EnrichedCandidate) Recommendation {
	return Recommendation{
		Identifier:       c.Identifier,
		Name:             c.Name,
		Description:      c.Description,
		WebsiteURL:       c.WebsiteURL,
		ProfileURL:       c.ProfileURL,
		Location:         c.LocationText,
		CoverImageURL:    c.CoverImageURL,
		LogoURL:          c.LogoURL,
		Categories:       c.Categories,
		Score:            c.TotalScore,
		Reasons:          c.Reasons,
		CauseMismatch:    c.CauseMismatch,
		EnrichmentFailed: c.EnrichmentFailed,
	}
}
