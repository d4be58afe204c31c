// Package probability implements the probability synthesizer described in
// SPEC_FULL.md §4.10: derive a base {negative, neutral, positive}
// distribution from the aggregate impact's overall direction, adjust per
// theme impact, apply a risk-tolerance multiplier, then clamp and
// normalize.
package probability

import (
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/georisk/internal/domain"
)

const themeAdjustmentWeight = 0.3

// Synthesize computes the final ActionProbabilities from impact and
// tolerance, per SPEC_FULL.md §4.10.
func Synthesize(impact domain.AggregateImpact, tolerance domain.RiskTolerance) domain.ActionProbabilities {
	neg, neu, pos := baseProbabilities(impact.OverallDirection, impact.OverallMagnitude)

	for _, theme := range impact.ThemeImpacts {
		w := theme.Magnitude * theme.Confidence * themeAdjustmentWeight
		switch theme.Direction {
		case domain.DirectionNegative:
			neg += w
			neu -= 0.5 * w
			pos -= 0.5 * w
		case domain.DirectionPositive:
			pos += w
			neu -= 0.5 * w
			neg -= 0.5 * w
		}
	}

	neg, neu, pos = applyRiskTolerance(neg, neu, pos, tolerance, impact.OverallDirection)

	return normalize(neg, neu, pos)
}

// baseProbabilities returns the starting distribution for direction, with
// m the overall magnitude in [0,1].
func baseProbabilities(direction domain.Direction, m float64) (neg, neu, pos float64) {
	switch direction {
	case domain.DirectionNegative:
		return 0.4 + 0.4*m, 0.4 - 0.2*m, 0.2 - 0.2*m
	case domain.DirectionPositive:
		return 0.2 - 0.1*m, 0.4 - 0.2*m, 0.4 + 0.3*m
	default:
		return 0.2, 0.6, 0.2
	}
}

// applyRiskTolerance multiplies the negative/neutral/positive components
// per §4.10's table, which only varies the multiplier when the overall
// direction is negative.
func applyRiskTolerance(neg, neu, pos float64, tolerance domain.RiskTolerance, direction domain.Direction) (float64, float64, float64) {
	if direction != domain.DirectionNegative {
		return neg, neu, pos
	}
	switch tolerance {
	case domain.RiskToleranceLow:
		return neg * 1.3, neu * 0.9, pos * 0.7
	case domain.RiskToleranceHigh:
		return neg * 0.8, neu * 1.1, pos * 1.0
	default:
		return neg, neu, pos
	}
}

// normalize clamps every component to non-negative and rescales to sum to
// 1, falling back to the documented neutral default if all three are zero.
func normalize(neg, neu, pos float64) domain.ActionProbabilities {
	values := []float64{clampNonNegative(neg), clampNonNegative(neu), clampNonNegative(pos)}

	sum := floats.Sum(values)
	if sum == 0 {
		return domain.ActionProbabilities{Negative: 0.2, Neutral: 0.6, Positive: 0.2}
	}
	floats.Scale(1/sum, values)

	return domain.ActionProbabilities{Negative: values[0], Neutral: values[1], Positive: values[2]}
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
