// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hurakan/feelgive-sub000/internal/models"
)

// Geographic tiers, best to worst. Tier 5 is a hard exclusion.
const (
	GeoTierLocal    = 1 // operates in the crisis country itself
	GeoTierNeighbor = 2 // neighboring country or shared macro-region
	GeoTierFlexible = 3 // global with a rapid-response capability
	GeoTierGlobal   = 4 // global without the flexibility signal
	GeoTierExcluded = 5 // no discernible link to the crisis area
)

// countryInfo places a country in a macro-region and lists cross-region
// neighbors. Countries sharing a region are treated as neighbors
// implicitly, so the explicit list only carries adjacency the regions
// miss (Turkey/Greece sit in different macro-regions but border each
// other).
type countryInfo struct {
	region    string
	neighbors []string
}

// countryTable is the static macro-region and neighbor lookup. It does
// not try to be a gazetteer: it covers crisis-prone countries and their
// surroundings well enough to separate "in the country", "next door",
// and "unrelated".
var countryTable = map[string]countryInfo{
	// Middle East
	"turkey":               {region: "middle east", neighbors: []string{"greece", "bulgaria", "georgia", "armenia", "azerbaijan"}},
	"syria":                {region: "middle east"},
	"iraq":                 {region: "middle east"},
	"iran":                 {region: "middle east", neighbors: []string{"afghanistan", "pakistan", "azerbaijan", "armenia", "turkmenistan"}},
	"lebanon":              {region: "middle east"},
	"israel":               {region: "middle east", neighbors: []string{"egypt"}},
	"jordan":               {region: "middle east", neighbors: []string{"egypt"}},
	"saudi arabia":         {region: "middle east"},
	"yemen":                {region: "middle east", neighbors: []string{"somalia", "djibouti"}},
	// Caucasus
	"georgia":              {region: "caucasus", neighbors: []string{"turkey", "russia"}},
	"armenia":              {region: "caucasus", neighbors: []string{"turkey", "iran"}},
	"azerbaijan":           {region: "caucasus", neighbors: []string{"turkey", "iran", "russia"}},
	// North Africa
	"egypt":                {region: "north africa", neighbors: []string{"israel", "jordan"}},
	"libya":                {region: "north africa", neighbors: []string{"chad", "niger"}},
	"tunisia":              {region: "north africa"},
	"algeria":              {region: "north africa", neighbors: []string{"mali", "niger"}},
	"morocco":              {region: "north africa", neighbors: []string{"spain"}},
	"sudan":                {region: "north africa", neighbors: []string{"south sudan", "ethiopia", "eritrea", "chad"}},
	// Horn of Africa
	"ethiopia":             {region: "horn of africa", neighbors: []string{"sudan", "south sudan", "kenya"}},
	"eritrea":              {region: "horn of africa", neighbors: []string{"sudan"}},
	"somalia":              {region: "horn of africa", neighbors: []string{"kenya", "yemen"}},
	"djibouti":             {region: "horn of africa", neighbors: []string{"yemen"}},
	// East Africa
	"kenya":                {region: "east africa", neighbors: []string{"ethiopia", "somalia"}},
	"uganda":               {region: "east africa", neighbors: []string{"democratic republic of the congo", "south sudan"}},
	"tanzania":             {region: "east africa", neighbors: []string{"democratic republic of the congo", "mozambique", "zambia", "malawi"}},
	"rwanda":               {region: "east africa", neighbors: []string{"democratic republic of the congo"}},
	"burundi":              {region: "east africa", neighbors: []string{"democratic republic of the congo"}},
	"south sudan":          {region: "east africa", neighbors: []string{"sudan", "ethiopia", "democratic republic of the congo"}},
	// Central Africa
	"democratic republic of the congo": {region: "central africa", neighbors: []string{"uganda", "rwanda", "burundi", "tanzania", "zambia", "south sudan"}},
	"chad":                 {region: "central africa", neighbors: []string{"libya", "sudan", "niger", "nigeria"}},
	"cameroon":             {region: "central africa", neighbors: []string{"nigeria"}},
	"central african republic": {region: "central africa"},
	// West Africa
	"nigeria":              {region: "west africa", neighbors: []string{"cameroon", "chad"}},
	"niger":                {region: "west africa", neighbors: []string{"libya", "algeria", "chad"}},
	"mali":                 {region: "west africa", neighbors: []string{"algeria"}},
	"burkina faso":         {region: "west africa"},
	"senegal":              {region: "west africa"},
	"ghana":                {region: "west africa"},
	"sierra leone":         {region: "west africa"},
	"liberia":              {region: "west africa"},
	// Southern Africa
	"south africa":         {region: "southern africa"},
	"mozambique":           {region: "southern africa", neighbors: []string{"tanzania"}},
	"zimbabwe":             {region: "southern africa"},
	"zambia":               {region: "southern africa", neighbors: []string{"tanzania", "democratic republic of the congo"}},
	"malawi":               {region: "southern africa", neighbors: []string{"tanzania"}},
	"madagascar":           {region: "southern africa"},
	// South Asia
	"afghanistan":          {region: "south asia", neighbors: []string{"iran", "turkmenistan", "uzbekistan", "tajikistan"}},
	"pakistan":             {region: "south asia", neighbors: []string{"iran", "china"}},
	"india":                {region: "south asia", neighbors: []string{"china", "myanmar"}},
	"bangladesh":           {region: "south asia", neighbors: []string{"myanmar"}},
	"nepal":                {region: "south asia", neighbors: []string{"china"}},
	"sri lanka":            {region: "south asia"},
	// Southeast Asia
	"myanmar":              {region: "southeast asia", neighbors: []string{"bangladesh", "india", "china"}},
	"thailand":             {region: "southeast asia"},
	"vietnam":              {region: "southeast asia", neighbors: []string{"china"}},
	"laos":                 {region: "southeast asia", neighbors: []string{"china"}},
	"cambodia":             {region: "southeast asia"},
	"philippines":          {region: "southeast asia"},
	"indonesia":            {region: "southeast asia", neighbors: []string{"papua new guinea", "australia"}},
	"malaysia":             {region: "southeast asia"},
	// East Asia
	"japan":                {region: "east asia"},
	"south korea":          {region: "east asia"},
	"north korea":          {region: "east asia"},
	"china":                {region: "east asia", neighbors: []string{"india", "nepal", "pakistan", "myanmar", "vietnam", "laos", "kazakhstan", "kyrgyzstan", "tajikistan", "mongolia", "russia"}},
	"taiwan":               {region: "east asia"},
	"mongolia":             {region: "east asia", neighbors: []string{"china", "russia"}},
	// Central Asia
	"kazakhstan":           {region: "central asia", neighbors: []string{"russia", "china"}},
	"uzbekistan":           {region: "central asia", neighbors: []string{"afghanistan"}},
	"kyrgyzstan":           {region: "central asia", neighbors: []string{"china"}},
	"tajikistan":           {region: "central asia", neighbors: []string{"afghanistan", "china"}},
	"turkmenistan":         {region: "central asia", neighbors: []string{"iran", "afghanistan"}},
	// Eastern Europe
	"ukraine":              {region: "eastern europe", neighbors: []string{"slovakia"}},
	"russia":               {region: "eastern europe", neighbors: []string{"georgia", "azerbaijan", "kazakhstan", "mongolia", "china", "finland", "norway"}},
	"belarus":              {region: "eastern europe"},
	"poland":               {region: "eastern europe", neighbors: []string{"germany", "czech republic", "slovakia"}},
	"romania":              {region: "eastern europe", neighbors: []string{"bulgaria", "serbia", "hungary"}},
	"moldova":              {region: "eastern europe"},
	"hungary":              {region: "eastern europe", neighbors: []string{"austria", "serbia", "croatia", "romania", "slovakia"}},
	"slovakia":             {region: "eastern europe", neighbors: []string{"ukraine", "poland", "hungary", "austria", "czech republic"}},
	"czech republic":       {region: "eastern europe", neighbors: []string{"germany", "austria", "poland", "slovakia"}},
	// Southern Europe
	"greece":               {region: "southern europe", neighbors: []string{"turkey", "albania", "bulgaria"}},
	"italy":                {region: "southern europe", neighbors: []string{"france", "switzerland", "austria"}},
	"spain":                {region: "southern europe", neighbors: []string{"france", "portugal", "morocco"}},
	"portugal":             {region: "southern europe", neighbors: []string{"spain"}},
	"bulgaria":             {region: "southern europe", neighbors: []string{"turkey", "greece", "romania", "serbia"}},
	"albania":              {region: "southern europe", neighbors: []string{"greece"}},
	"croatia":              {region: "southern europe", neighbors: []string{"hungary", "serbia", "bosnia and herzegovina"}},
	"serbia":               {region: "southern europe", neighbors: []string{"hungary", "romania", "bulgaria", "croatia", "bosnia and herzegovina"}},
	"bosnia and herzegovina": {region: "southern europe", neighbors: []string{"croatia", "serbia"}},
	// Western Europe
	"germany":              {region: "western europe", neighbors: []string{"poland", "czech republic", "denmark"}},
	"france":               {region: "western europe", neighbors: []string{"spain", "italy"}},
	"netherlands":          {region: "western europe"},
	"belgium":              {region: "western europe"},
	"austria":              {region: "western europe", neighbors: []string{"italy", "hungary", "czech republic", "slovakia"}},
	"switzerland":          {region: "western europe", neighbors: []string{"italy"}},
	"united kingdom":       {region: "western europe", neighbors: []string{"ireland"}},
	"ireland":              {region: "western europe", neighbors: []string{"united kingdom"}},
	// Northern Europe
	"norway":               {region: "northern europe", neighbors: []string{"russia"}},
	"sweden":               {region: "northern europe"},
	"finland":              {region: "northern europe", neighbors: []string{"russia"}},
	"denmark":              {region: "northern europe", neighbors: []string{"germany"}},
	"iceland":              {region: "northern europe"},
	// North America
	"united states":        {region: "north america"},
	"canada":               {region: "north america"},
	"mexico":               {region: "north america", neighbors: []string{"guatemala"}},
	// Central America
	"guatemala":            {region: "central america", neighbors: []string{"mexico"}},
	"honduras":             {region: "central america"},
	"el salvador":          {region: "central america"},
	"nicaragua":            {region: "central america"},
	"costa rica":           {region: "central america"},
	"panama":               {region: "central america", neighbors: []string{"colombia"}},
	// Caribbean
	"cuba":                 {region: "caribbean"},
	"haiti":                {region: "caribbean"},
	"dominican republic":   {region: "caribbean"},
	"jamaica":              {region: "caribbean"},
	"puerto rico":          {region: "caribbean"},
	// South America
	"colombia":             {region: "south america", neighbors: []string{"panama"}},
	"venezuela":            {region: "south america"},
	"ecuador":              {region: "south america"},
	"peru":                 {region: "south america"},
	"bolivia":              {region: "south america"},
	"brazil":               {region: "south america"},
	"chile":                {region: "south america"},
	"argentina":            {region: "south america"},
	"paraguay":             {region: "south america"},
	"uruguay":              {region: "south america"},
	// Oceania
	"australia":            {region: "oceania", neighbors: []string{"indonesia", "papua new guinea"}},
	"new zealand":          {region: "oceania"},
	"papua new guinea":     {region: "oceania", neighbors: []string{"indonesia", "australia"}},
	"fiji":                 {region: "oceania"},
	"tonga":                {region: "oceania"},
	"vanuatu":              {region: "oceania"},
	"samoa":                {region: "oceania"},
}

// countryAliases maps common spellings and endonyms to table keys.
var countryAliases = map[string]string{
	"türkiye":        "turkey",
	"turkiye":        "turkey",
	"usa":            "united states",
	"us":             "united states",
	"america":        "united states",
	"united states of america": "united states",
	"uk":             "united kingdom",
	"britain":        "united kingdom",
	"great britain":  "united kingdom",
	"drc":            "democratic republic of the congo",
	"dr congo":       "democratic republic of the congo",
	"congo":          "democratic republic of the congo",
	"burma":          "myanmar",
	"czechia":        "czech republic",
	"bosnia":         "bosnia and herzegovina",
	"korea":          "south korea",
	"republic of korea": "south korea",
	"persia":         "iran",
	"holland":        "netherlands",
}

// globalMarkers flag an organization as global/multinational.
var globalMarkers = []string{
	"global",
	"international",
	"worldwide",
	"multinational",
	"around the world",
	"across borders",
}

// countryTerm is a searchable name with its canonical table key.
type countryTerm struct {
	term      string
	canonical string
}

// countryTerms lists every country name and alias, longest first so
// "south sudan" matches before "sudan".
var countryTerms = buildCountryTerms()

func buildCountryTerms() []countryTerm {
	terms := make([]countryTerm, 0, len(countryTable)+len(countryAliases))
	for name := range countryTable {
		terms = append(terms, countryTerm{term: name, canonical: name})
	}
	for alias, canonical := range countryAliases {
		terms = append(terms, countryTerm{term: alias, canonical: canonical})
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i].term) != len(terms[j].term) {
			return len(terms[i].term) > len(terms[j].term)
		}
		return terms[i].term < terms[j].term
	})
	return terms
}

// normalizeText lowercases and strips punctuation so term matching can
// use plain word-boundary containment.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127:
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// containsTerm reports whether term occurs in text on word boundaries.
// Both arguments must already be normalized.
func containsTerm(text, term string) bool {
	if term == "" || text == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+term+" ")
}

func containsAnyTerm(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if containsTerm(text, term) {
			return term, true
		}
	}
	return "", false
}

// canonicalCountry resolves a raw country string to its table key, or
// "" when unknown.
func canonicalCountry(raw string) string {
	normalized := normalizeText(raw)
	if normalized == "" {
		return ""
	}
	if _, ok := countryTable[normalized]; ok {
		return normalized
	}
	if canonical, ok := countryAliases[normalized]; ok {
		return canonical
	}
	return ""
}

// findCountries returns the canonical names of every table country
// mentioned in the (normalized) text, in match order.
func findCountries(text string) []string {
	var found []string
	seen := make(map[string]struct{})
	for _, ct := range countryTerms {
		if !containsTerm(text, ct.term) {
			continue
		}
		if _, dup := seen[ct.canonical]; dup {
			continue
		}
		seen[ct.canonical] = struct{}{}
		found = append(found, ct.canonical)
	}
	return found
}

// neighborSet returns the countries considered adjacent to country:
// everything in its macro-region plus its explicit cross-region
// neighbors.
func neighborSet(country string) map[string]struct{} {
	info, ok := countryTable[country]
	if !ok {
		return nil
	}
	neighbors := make(map[string]struct{})
	for name, other := range countryTable {
		if name != country && other.region == info.region {
			neighbors[name] = struct{}{}
		}
	}
	for _, n := range info.neighbors {
		neighbors[n] = struct{}{}
	}
	return neighbors
}

// candidateGeoText assembles the text scanned for geographic signals.
func candidateGeoText(c models.Candidate) string {
	return normalizeText(strings.Join([]string{c.LocationText, c.Name, c.Description, c.CategoryText}, " "))
}

// classifyGeoTier computes the geographic tier for a candidate against
// the crisis geography, with a human-readable reason. Tier 5 means the
// candidate must be excluded.
func classifyGeoTier(geo models.CrisisGeography, c models.Candidate, flexMarkers []string) (int, string) {
	text := candidateGeoText(c)
	crisisCountry := canonicalCountry(geo.Country)

	// Without a crisis country there is nothing to violate: local
	// organizations cannot be placed, so only the global tiers apply
	// and nobody is hard-excluded on geography.
	if crisisCountry == "" {
		if _, global := containsAnyTerm(text, globalMarkers); global {
			if marker, flexible := containsAnyTerm(text, normalizeAll(flexMarkers)); flexible {
				return GeoTierFlexible, fmt.Sprintf("Global organization with %s capability", marker)
			}
			return GeoTierGlobal, "Global organization"
		}
		return GeoTierGlobal, "Crisis location unspecified"
	}

	if city := normalizeText(geo.City); city != "" && containsTerm(text, city) {
		return GeoTierLocal, fmt.Sprintf("Operates directly in %s", geo.City)
	}
	if region := normalizeText(geo.Region); region != "" && containsTerm(text, region) {
		return GeoTierLocal, fmt.Sprintf("Operates directly in %s", geo.Region)
	}

	mentioned := findCountries(text)
	for _, country := range mentioned {
		if country == crisisCountry {
			return GeoTierLocal, fmt.Sprintf("Operates directly in %s", titleCountry(crisisCountry))
		}
	}

	neighbors := neighborSet(crisisCountry)
	for _, country := range mentioned {
		if _, ok := neighbors[country]; ok {
			return GeoTierNeighbor, fmt.Sprintf("Operates in %s, near the crisis area", titleCountry(country))
		}
	}

	if _, global := containsAnyTerm(text, globalMarkers); global {
		if marker, flexible := containsAnyTerm(text, normalizeAll(flexMarkers)); flexible {
			return GeoTierFlexible, fmt.Sprintf("Global organization with %s capability", marker)
		}
		return GeoTierGlobal, "Global organization"
	}

	return GeoTierExcluded, "No geographic link to the crisis area"
}

func normalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := normalizeText(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// titleCountry renders a canonical country name for display.
func titleCountry(canonical string) string {
	words := strings.Fields(canonical)
	for i, w := range words {
		switch w {
		case "of", "the", "and":
			continue
		default:
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
