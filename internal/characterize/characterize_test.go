package characterize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/georisk/internal/domain"
)

func TestCharacterize_RussianEnergyETF(t *testing.T) {
	h := domain.Holding{Name: "Russia Energy ETF", Country: "Russia", Region: "Europe", Sector: "Energy", AssetClass: "Equity"}
	p := Characterize(h)

	assert.True(t, p.EmergingMarket)
	assert.False(t, p.DevelopedMarket)
	assert.False(t, p.GlobalFund)
	assert.True(t, p.EnergyExposed)
	assert.True(t, p.SectorSpecific)
	assert.True(t, p.CountrySpecific)
}

func TestCharacterize_USDiversifiedCash(t *testing.T) {
	h := domain.Holding{Name: "Cash Reserve", Country: "United States", Region: "Americas", Sector: "Cash", AssetClass: "Cash"}
	p := Characterize(h)

	assert.True(t, p.DevelopedMarket)
	assert.False(t, p.SectorSpecific)
	assert.True(t, p.CountrySpecific)
}

func TestCharacterize_GlobalFundByEmptyCountry(t *testing.T) {
	h := domain.Holding{Name: "World Equity Fund", Region: "Global", Sector: "Diversified"}
	p := Characterize(h)

	assert.True(t, p.GlobalFund)
	assert.False(t, p.CountrySpecific)
	assert.False(t, p.SectorSpecific)
}

func TestCharacterize_TreasuryBondIsGovernmentExposed(t *testing.T) {
	h := domain.Holding{Name: "US Treasury 10yr Bond", Country: "United States", Region: "Americas", Sector: "Fixed Income", AssetClass: "Fixed Income"}
	p := Characterize(h)

	assert.True(t, p.GovernmentExposed)
}

func TestCharacterize_NonTreasuryFixedIncomeIsNotGovernmentExposed(t *testing.T) {
	h := domain.Holding{Name: "Corporate Bond Fund", Country: "Germany", Region: "Europe", Sector: "Fixed Income", AssetClass: "Fixed Income"}
	p := Characterize(h)

	assert.False(t, p.GovernmentExposed)
}

func TestCharacterize_NameMentioningGovernmentIsExposedRegardlessOfSector(t *testing.T) {
	h := domain.Holding{Name: "Government Infrastructure Fund", Country: "France", Region: "Europe", Sector: "Infrastructure", AssetClass: "Equity"}
	p := Characterize(h)

	assert.True(t, p.GovernmentExposed)
	assert.True(t, p.InfrastructureExposed)
}
