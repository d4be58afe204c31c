// Package thememapper implements stage 2 of the pipeline: scoring every
// catalog theme against an asset profile and emitting those above their
// activation threshold (SPEC_FULL.md §4.4).
package thememapper

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aristath/georisk/internal/domain"
)

var emergingBonusThemes = map[string]bool{
	"currency_volatility":  true,
	"political_instability": true,
	"trade_disruption":     true,
}

// Map scores every theme in themes against profile and returns those that
// clear their own minimum relevance threshold, sorted by descending score.
func Map(profile domain.AssetProfile, themes []domain.ThemeDefinition) []domain.ThemeRelevance {
	var out []domain.ThemeRelevance

	for _, theme := range themes {
		if !theme.Active {
			continue
		}

		score := 0.0
		var matchedDims []string

		if profile.Country != "" && contains(theme.RelevantCountries, profile.Country) {
			score += theme.Weights.Country
			matchedDims = append(matchedDims, fmt.Sprintf("country=%s", profile.Country))
		}
		if profile.Region != "" && contains(theme.RelevantRegions, profile.Region) {
			score += theme.Weights.Region
			matchedDims = append(matchedDims, fmt.Sprintf("region=%s", profile.Region))
		}
		if profile.Sector != "" && contains(theme.RelevantSectors, profile.Sector) {
			score += theme.Weights.Sector
			matchedDims = append(matchedDims, fmt.Sprintf("sector=%s", profile.Sector))
		}

		switch theme.Name {
		case "energy_security":
			if profile.EnergyExposed {
				score += theme.Weights.ExposureBonus
				matchedDims = append(matchedDims, "energy exposure")
			}
		case "political_instability":
			if profile.GovernmentExposed {
				score += theme.Weights.ExposureBonus
				matchedDims = append(matchedDims, "government exposure")
			}
		case "currency_volatility":
			if profile.FinancialExposed {
				score += theme.Weights.ExposureBonus * 0.667
				matchedDims = append(matchedDims, "financial exposure")
			}
		case "supply_chain_risk":
			if profile.TechnologyExposed {
				score += theme.Weights.ExposureBonus * 0.667
				matchedDims = append(matchedDims, "technology exposure")
			}
		}

		if profile.EmergingMarket && emergingBonusThemes[theme.Name] {
			score += theme.Weights.EmergingBonus
			matchedDims = append(matchedDims, "emerging market")
		}

		score = math.Min(score, 1.0)

		if score < theme.MinRelevanceThreshold {
			continue
		}

		out = append(out, domain.ThemeRelevance{
			Theme:          theme.Name,
			RelevanceScore: score,
			Reasoning:      reasoning(theme.DisplayName, matchedDims),
			KeywordsMatched: matchedKeywords(profile, theme),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})

	return out
}

func reasoning(displayName string, dims []string) string {
	if len(dims) == 0 {
		return displayName + " theme applies generally"
	}
	return displayName + " relevant via " + strings.Join(dims, ", ")
}

func matchedKeywords(profile domain.AssetProfile, theme domain.ThemeDefinition) []string {
	haystack := strings.ToLower(profile.Name + " " + profile.Sector + " " + profile.Country)
	var matched []string
	for _, kw := range theme.Keywords {
		if strings.Contains(haystack, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
