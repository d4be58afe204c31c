// Package catalog provides the theme catalog described in SPEC_FULL.md
// §4.2: an ordered set of geopolitical risk theme definitions, overridable
// from persistent storage, with a built-in default set used to seed an
// empty store.
package catalog

import "github.com/aristath/georisk/internal/domain"

// DefaultThemes is the built-in set of eight geopolitical risk themes used
// to seed the catalog store and as the fallback when no persisted themes
// are active.
func DefaultThemes() []domain.ThemeDefinition {
	return []domain.ThemeDefinition{
		{
			Name:        "sanctions",
			DisplayName: "Sanctions Risk",
			Keywords:    []string{"sanction", "embargo", "export control", "asset freeze", "blacklist", "SDN list"},
			RelevantCountries: []string{"Russia", "Iran", "North Korea", "Syria", "Venezuela", "Belarus"},
			RelevantRegions:   []string{"Eastern Europe", "Middle East"},
			RelevantSectors:   []string{"Energy", "Banking", "Defense"},
			Weights:           domain.ThemeWeights{Country: 0.4, Region: 0.2, Sector: 0.2, ExposureBonus: 0.15, EmergingBonus: 0.1},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "trade_disruption",
			DisplayName: "Trade Disruption",
			Keywords:    []string{"tariff", "trade war", "export ban", "import restriction", "supply disruption", "customs"},
			RelevantCountries: []string{"China", "United States", "Taiwan"},
			RelevantRegions:   []string{"Asia-Pacific", "North America"},
			RelevantSectors:   []string{"Technology", "Manufacturing", "Industrials"},
			Weights:           domain.ThemeWeights{Country: 0.35, Region: 0.25, Sector: 0.2, ExposureBonus: 0.1, EmergingBonus: 0.1},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "political_instability",
			DisplayName: "Political Instability",
			Keywords:    []string{"coup", "election crisis", "unrest", "protest", "government collapse", "impeachment"},
			RelevantCountries: []string{"Turkey", "Pakistan", "Argentina", "South Africa", "Brazil"},
			RelevantRegions:   []string{"Latin America", "Middle East", "Sub-Saharan Africa"},
			RelevantSectors:   []string{"Government", "Financials"},
			Weights:           domain.ThemeWeights{Country: 0.35, Region: 0.3, Sector: 0.1, ExposureBonus: 0.15, EmergingBonus: 0.1},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "currency_volatility",
			DisplayName: "Currency Volatility",
			Keywords:    []string{"currency crisis", "devaluation", "capital controls", "inflation spike", "central bank intervention"},
			RelevantCountries: []string{"Turkey", "Argentina", "Egypt", "Nigeria"},
			RelevantRegions:   []string{"Emerging Markets", "Latin America"},
			RelevantSectors:   []string{"Financials", "Banking"},
			Weights:           domain.ThemeWeights{Country: 0.3, Region: 0.25, Sector: 0.15, ExposureBonus: 0.2, EmergingBonus: 0.1},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "energy_security",
			DisplayName: "Energy Security",
			Keywords:    []string{"pipeline", "oil embargo", "gas supply", "OPEC", "energy crisis", "refinery attack"},
			RelevantCountries: []string{"Russia", "Saudi Arabia", "Iran", "Venezuela"},
			RelevantRegions:   []string{"Middle East", "Eastern Europe"},
			RelevantSectors:   []string{"Energy", "Utilities"},
			Weights:           domain.ThemeWeights{Country: 0.35, Region: 0.25, Sector: 0.25, ExposureBonus: 0.15, EmergingBonus: 0.0},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "regional_conflict",
			DisplayName: "Regional Conflict",
			Keywords:    []string{"war", "invasion", "military strike", "border clash", "ceasefire collapse", "insurgency"},
			RelevantCountries: []string{"Russia", "Ukraine", "Israel", "Taiwan", "Pakistan", "India"},
			RelevantRegions:   []string{"Eastern Europe", "Middle East", "South Asia"},
			RelevantSectors:   []string{"Defense", "Energy"},
			Weights:           domain.ThemeWeights{Country: 0.4, Region: 0.3, Sector: 0.1, ExposureBonus: 0.1, EmergingBonus: 0.1},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "regulatory_changes",
			DisplayName: "Regulatory Changes",
			Keywords:    []string{"antitrust", "new regulation", "data privacy law", "tax reform", "licensing crackdown"},
			RelevantCountries: []string{"United States", "China", "Germany", "United Kingdom"},
			RelevantRegions:   []string{"European Union", "North America"},
			RelevantSectors:   []string{"Technology", "Financials", "Healthcare"},
			Weights:           domain.ThemeWeights{Country: 0.3, Region: 0.3, Sector: 0.25, ExposureBonus: 0.1, EmergingBonus: 0.05},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
		{
			Name:        "supply_chain_risk",
			DisplayName: "Supply Chain Risk",
			Keywords:    []string{"semiconductor shortage", "shipping disruption", "port closure", "factory shutdown", "logistics crisis"},
			RelevantCountries: []string{"China", "Taiwan", "Vietnam", "South Korea"},
			RelevantRegions:   []string{"Asia-Pacific"},
			RelevantSectors:   []string{"Technology", "Manufacturing", "Industrials"},
			Weights:           domain.ThemeWeights{Country: 0.3, Region: 0.25, Sector: 0.25, ExposureBonus: 0.2, EmergingBonus: 0.1},
			MinRelevanceThreshold: 0.15,
			Active:                true,
		},
	}
}
