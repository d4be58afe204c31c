package probability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/georisk/internal/domain"
)

func TestSynthesize_NeutralDefaultWhenNoThemes(t *testing.T) {
	p := Synthesize(domain.AggregateImpact{OverallDirection: domain.DirectionNeutral}, domain.RiskToleranceMedium)
	assert.InDelta(t, 0.2, p.Negative, 0.0001)
	assert.InDelta(t, 0.6, p.Neutral, 0.0001)
	assert.InDelta(t, 0.2, p.Positive, 0.0001)
}

func TestSynthesize_SumsToOne(t *testing.T) {
	impact := domain.AggregateImpact{
		OverallDirection: domain.DirectionNegative,
		OverallMagnitude: 0.7,
		ThemeImpacts: []domain.ThemeImpact{
			{Theme: "sanctions", Direction: domain.DirectionNegative, Magnitude: 0.8, Confidence: 0.9},
		},
	}
	p := Synthesize(impact, domain.RiskToleranceMedium)
	assert.InDelta(t, 1.0, p.Negative+p.Neutral+p.Positive, 1e-9)
	assert.GreaterOrEqual(t, p.Negative, 0.0)
	assert.GreaterOrEqual(t, p.Neutral, 0.0)
	assert.GreaterOrEqual(t, p.Positive, 0.0)
}

func TestSynthesize_LowToleranceIncreasesNegativeVsHighTolerance(t *testing.T) {
	impact := domain.AggregateImpact{
		OverallDirection: domain.DirectionNegative,
		OverallMagnitude: 0.6,
		ThemeImpacts: []domain.ThemeImpact{
			{Theme: "political_instability", Direction: domain.DirectionNegative, Magnitude: 0.6, Confidence: 0.8},
		},
	}
	low := Synthesize(impact, domain.RiskToleranceLow)
	high := Synthesize(impact, domain.RiskToleranceHigh)
	assert.Greater(t, low.Negative, high.Negative)
}

func TestSynthesize_PositiveDirectionFavorsPositiveBucket(t *testing.T) {
	impact := domain.AggregateImpact{OverallDirection: domain.DirectionPositive, OverallMagnitude: 0.5}
	p := Synthesize(impact, domain.RiskToleranceMedium)
	assert.Greater(t, p.Positive, p.Negative)
}

func TestSynthesize_AllZeroFallsBackToNeutralDefault(t *testing.T) {
	p := normalize(0, 0, 0)
	assert.Equal(t, domain.ActionProbabilities{Negative: 0.2, Neutral: 0.6, Positive: 0.2}, p)
}
