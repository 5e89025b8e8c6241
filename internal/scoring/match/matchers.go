// internal/scoring/match/matchers.go
package match

import (
	"fmt"
	"math"
	"strings"

	"fundlink/internal/money"
)

// MatchDomain scores industry alignment between a startup domain and an
// investor's preferred domains.
func MatchDomain(startupDomain string, investorDomains []string) DimensionResult {
	if startupDomain == "" || len(investorDomains) == 0 {
		return DimensionResult{Score: 0, Match: TierNone, Details: "Domain data incomplete"}
	}

	normalized := normalize(startupDomain)
	investorNormalized := normalizeAll(investorDomains)

	for _, d := range investorNormalized {
		if d == normalized {
			return DimensionResult{
				Score:   100,
				Match:   TierExact,
				Details: fmt.Sprintf("Direct domain match: %s", startupDomain),
			}
		}
	}

	for _, d := range investorNormalized {
		if d != "" && (strings.Contains(normalized, d) || strings.Contains(d, normalized)) {
			return DimensionResult{
				Score:   80,
				Match:   TierPartial,
				Details: fmt.Sprintf("Partial domain match: %s ~ %s", startupDomain, d),
			}
		}
	}

	for _, similar := range domainSimilarity[normalized] {
		for _, d := range investorNormalized {
			if d != "" && (strings.Contains(d, similar) || strings.Contains(similar, d)) {
				return DimensionResult{
					Score:   60,
					Match:   TierSimilar,
					Details: fmt.Sprintf("Related domain match: %s related to investor preferences", startupDomain),
				}
			}
		}
	}

	return DimensionResult{Score: 20, Match: TierWeak, Details: "No direct domain alignment"}
}

// MatchStage scores funding-stage alignment. Stage normalization strips
// spaces, hyphens and underscores so "Series A" equals "series-a".
func MatchStage(startupStage string, investorStages []string) DimensionResult {
	if startupStage == "" || len(investorStages) == 0 {
		return DimensionResult{Score: 50, Match: TierUnknown, Details: "Stage data incomplete"}
	}

	normalized := normalizeStage(startupStage)
	investorNormalized := make([]string, 0, len(investorStages))
	for _, s := range investorStages {
		investorNormalized = append(investorNormalized, normalizeStage(s))
	}

	for _, s := range investorNormalized {
		if s == normalized {
			return DimensionResult{
				Score:   100,
				Match:   TierExact,
				Details: fmt.Sprintf("Stage match: %s", startupStage),
			}
		}
	}

	startupLevel := stageHierarchy[normalized]
	for i, s := range investorNormalized {
		investorLevel := stageHierarchy[s]
		if abs(startupLevel-investorLevel) == 1 {
			return DimensionResult{
				Score:   75,
				Match:   TierAdjacent,
				Details: fmt.Sprintf("Adjacent stage: %s near %s", startupStage, investorStages[i]),
			}
		}
	}

	for _, s := range investorNormalized {
		if s != "" && (strings.Contains(normalized, s) || strings.Contains(s, normalized)) {
			return DimensionResult{Score: 70, Match: TierPartial, Details: "Partial stage match"}
		}
	}

	return DimensionResult{Score: 30, Match: TierMismatch, Details: "Stage preference mismatch"}
}

// MatchTicket scores how the startup's funding ask sits against the
// investor's ticket band. Outside the band, distance from the band center
// relative to its width decides the tier.
func MatchTicket(startupAsk FlexValue, investorTicket Ticket) DimensionResult {
	if startupAsk.IsZero() || investorTicket.IsZero() {
		return DimensionResult{Score: 50, Match: TierUnknown, Details: "Ticket data incomplete"}
	}

	ask := startupAsk.Amount()
	band := investorTicket.Band()

	if ask >= band.Min && ask <= band.Max {
		return DimensionResult{
			Score:   100,
			Match:   TierExact,
			Details: fmt.Sprintf("Ask within ticket range: %s", money.FormatAmount(ask)),
		}
	}

	center := (band.Min + band.Max) / 2
	width := band.Max - band.Min
	distance := math.Abs(ask - center)

	if distance <= width*0.5 {
		return DimensionResult{Score: 80, Match: TierClose, Details: "Ask close to ticket range"}
	}
	if distance <= width {
		return DimensionResult{Score: 60, Match: TierAdjacent, Details: "Ask slightly outside ticket range"}
	}

	return DimensionResult{Score: 30, Match: TierMismatch, Details: "Ask outside ticket range"}
}

// MatchLocation scores geographic fit. An investor with no location
// preference is treated as location-agnostic and rewarded, not penalized.
func MatchLocation(startupLocation string, investorLocations []string) DimensionResult {
	if startupLocation == "" {
		return DimensionResult{Score: 50, Match: TierUnknown, Details: "Location not specified"}
	}
	if len(investorLocations) == 0 {
		return DimensionResult{Score: 70, Match: TierOpen, Details: "Investor location agnostic"}
	}

	normalized := normalize(startupLocation)
	investorNormalized := normalizeAll(investorLocations)

	for _, l := range investorNormalized {
		if l == normalized || strings.Contains(normalized, l) || strings.Contains(l, normalized) {
			return DimensionResult{
				Score:   100,
				Match:   TierExact,
				Details: fmt.Sprintf("Location match: %s", startupLocation),
			}
		}
	}

	for region, cities := range regionCities {
		startupInRegion := false
		for _, c := range cities {
			if strings.Contains(normalized, c) {
				startupInRegion = true
				break
			}
		}
		if !startupInRegion {
			continue
		}

		for _, l := range investorNormalized {
			if strings.Contains(l, region) || anyCityIn(l, cities) {
				return DimensionResult{
					Score:   80,
					Match:   TierRegional,
					Details: fmt.Sprintf("Regional match: %s", startupLocation),
				}
			}
		}
	}

	return DimensionResult{Score: 40, Match: TierMismatch, Details: "Location not in investor preferences"}
}

// ScoreThesis rates qualitative alignment between an investor's thesis
// keywords and the startup's descriptive fields. Base 50, +10 per keyword
// hit, +5 per focus-area hit, capped at 100.
func ScoreThesis(startup StartupProfile, investor InvestorProfile) int {
	score := 50

	startupKeywords := make([]string, 0, 4)
	for _, k := range []string{startup.Domain, startup.Industry, startup.Category, startup.BusinessModel} {
		if k != "" {
			startupKeywords = append(startupKeywords, strings.ToLower(k))
		}
	}

	for _, keyword := range investor.EffectiveThesisKeywords() {
		needle := strings.ToLower(keyword)
		for _, sk := range startupKeywords {
			if strings.Contains(sk, needle) {
				score += 10
				break
			}
		}
	}

	if len(investor.FocusAreas) > 0 && startup.Domain != "" {
		domain := strings.ToLower(startup.Domain)
		for _, area := range investor.FocusAreas {
			if strings.Contains(domain, strings.ToLower(area)) {
				score += 5
			}
		}
	}

	return min(score, 100)
}

// ScoreTraction rates execution signals. Each signal contributes its
// highest qualifying tier only. Base 50, capped at 100.
func ScoreTraction(startup StartupProfile) int {
	score := 50

	if !startup.Revenue.IsZero() {
		revenue := startup.Revenue.Amount()
		switch {
		case revenue >= 1_000_000:
			score += 20
		case revenue >= 100_000:
			score += 15
		case revenue >= 10_000:
			score += 10
		}
	}

	users := startup.Users
	if users.IsZero() {
		users = startup.Customers
	}
	if !users.IsZero() {
		count := users.Float()
		switch {
		case count >= 10_000:
			score += 15
		case count >= 1_000:
			score += 10
		case count >= 100:
			score += 5
		}
	}

	if !startup.GrowthRate.IsZero() {
		growth := startup.GrowthRate.Float()
		switch {
		case growth >= 100:
			score += 15
		case growth >= 50:
			score += 10
		case growth >= 20:
			score += 5
		}
	}

	if startup.TeamSize.Float() >= 10 {
		score += 5
	}

	return min(score, 100)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, normalize(v))
	}
	return out
}

func normalizeStage(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}

func anyCityIn(location string, cities []string) bool {
	for _, c := range cities {
		if strings.Contains(location, c) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
