package thememapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/characterize"
	"github.com/aristath/georisk/internal/domain"
)

func TestMap_RussianEnergyETF_MatchesSanctionsAndEnergy(t *testing.T) {
	h := domain.Holding{Name: "Russia Energy ETF", Country: "Russia", Region: "Europe", Sector: "Energy"}
	profile := characterize.Characterize(h)

	relevances := Map(profile, catalog.DefaultThemes())
	require.NotEmpty(t, relevances)

	names := map[string]bool{}
	for _, r := range relevances {
		names[r.Theme] = true
		assert.GreaterOrEqual(t, r.RelevanceScore, 0.0)
		assert.LessOrEqual(t, r.RelevanceScore, 1.0)
	}
	assert.True(t, names["sanctions"])
	assert.True(t, names["energy_security"])
}

func TestMap_USDiversifiedCash_NoThemesPassThreshold(t *testing.T) {
	h := domain.Holding{Name: "Cash Reserve", Country: "United States", Region: "Americas", Sector: "Cash"}
	profile := characterize.Characterize(h)

	relevances := Map(profile, catalog.DefaultThemes())
	assert.Empty(t, relevances)
}

func TestMap_SortedDescendingByScore(t *testing.T) {
	h := domain.Holding{Name: "Turkey Financials Fund", Country: "Turkey", Region: "Emerging Markets", Sector: "Financials"}
	profile := characterize.Characterize(h)

	relevances := Map(profile, catalog.DefaultThemes())
	for i := 1; i < len(relevances); i++ {
		assert.GreaterOrEqual(t, relevances[i-1].RelevanceScore, relevances[i].RelevanceScore)
	}
}

func TestMap_EveryEmittedThemeClearsItsOwnThreshold(t *testing.T) {
	h := domain.Holding{Name: "Turkey Financials Fund", Country: "Turkey", Region: "Emerging Markets", Sector: "Financials"}
	profile := characterize.Characterize(h)

	themes := catalog.DefaultThemes()
	byName := map[string]domain.ThemeDefinition{}
	for _, theme := range themes {
		byName[theme.Name] = theme
	}

	for _, r := range Map(profile, themes) {
		assert.GreaterOrEqual(t, r.RelevanceScore, byName[r.Theme].MinRelevanceThreshold)
	}
}
