// Package characterize implements the pure characterize(Holding) function
// described in SPEC_FULL.md §4.3.
package characterize

import (
	"strings"

	"github.com/aristath/georisk/internal/domain"
)

var emergingMarkets = map[string]bool{
	"Russia": true, "China": true, "India": true, "Brazil": true, "Turkey": true,
	"South Africa": true, "Mexico": true, "Indonesia": true, "Thailand": true,
	"Philippines": true, "Vietnam": true, "Argentina": true, "Chile": true,
	"Colombia": true, "Egypt": true, "Nigeria": true, "Pakistan": true,
	"Poland": true, "Czech Republic": true, "Hungary": true, "Romania": true,
	"Bulgaria": true,
}

var developedMarkets = map[string]bool{
	"United States": true, "UK": true, "United Kingdom": true, "Germany": true,
	"France": true, "Japan": true, "Canada": true, "Australia": true,
	"Switzerland": true, "Netherlands": true, "Sweden": true, "Norway": true,
	"Denmark": true, "Finland": true, "Belgium": true, "Austria": true,
	"Italy": true, "Spain": true, "Singapore": true, "Hong Kong": true,
	"South Korea": true, "New Zealand": true,
}

var energySectors = map[string]bool{"Energy": true, "Oil": true, "Gas": true, "Utilities": true}
var financialSectors = map[string]bool{"Financials": true, "Banking": true, "Insurance": true}
var technologySectors = map[string]bool{"Technology": true, "Software": true, "Hardware": true, "Semiconductors": true}
var infrastructureSectors = map[string]bool{"Infrastructure": true, "Utilities": true, "Transportation": true, "Real Estate": true}
var governmentSectors = map[string]bool{"Government": true, "Sovereign": true}

var genericSectors = map[string]bool{"Diversified": true, "Cash": true, "General": true}

// Characterize derives a deterministic AssetProfile from a Holding. It
// performs no I/O and has no hidden state.
func Characterize(h domain.Holding) domain.AssetProfile {
	profile := domain.AssetProfile{Holding: h}

	profile.EmergingMarket = emergingMarkets[h.Country]
	profile.DevelopedMarket = developedMarkets[h.Country]

	profile.GlobalFund = h.Country == "" || h.Country == "Global" || h.Region == "Global"

	profile.EnergyExposed = energySectors[h.Sector]
	profile.FinancialExposed = financialSectors[h.Sector]
	profile.TechnologyExposed = technologySectors[h.Sector]
	profile.InfrastructureExposed = infrastructureSectors[h.Sector]

	// Government exposure: Government/Sovereign sector, OR (Fixed Income
	// asset class AND name mentions "Treasury"), OR name mentions
	// "Government". This parenthesization is authoritative over the mixed-
	// precedence expression in the original source.
	isTreasuryBond := h.AssetClass == "Fixed Income" && strings.Contains(h.Name, "Treasury")
	mentionsGovernment := strings.Contains(h.Name, "Government")
	profile.GovernmentExposed = governmentSectors[h.Sector] || isTreasuryBond || mentionsGovernment

	profile.SectorSpecific = !genericSectors[h.Sector]
	profile.CountrySpecific = h.Country != "" && h.Country != "Global"

	return profile
}
