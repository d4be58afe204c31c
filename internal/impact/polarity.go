// Package impact implements the theme-impact assessor described in
// SPEC_FULL.md §4.9: grouping validated signals by theme, scoring each
// group's direction/magnitude/confidence by polarity word counting, and
// rolling the per-theme impacts up into one aggregate.
package impact

import (
	"strings"

	"github.com/aristath/georisk/internal/domain"
)

var negativeTerms = []string{
	"conflict", "sanction", "instability", "decline", "risk", "tension", "dispute", "threat",
	"volatility", "uncertainty", "loss", "embargo", "restriction", "protest", "unrest", "war", "attack",
}

var positiveTerms = []string{
	"growth", "improve", "stability", "recovery", "positive", "strength", "agreement",
	"cooperation", "progress", "expansion", "boost", "gain",
}

// classifySignalText reports whether text contains any negative/positive
// term (case-insensitive, substring match).
func classifySignalText(text string) (negative, positive bool) {
	lower := strings.ToLower(text)
	for _, term := range negativeTerms {
		if strings.Contains(lower, term) {
			negative = true
			break
		}
	}
	for _, term := range positiveTerms {
		if strings.Contains(lower, term) {
			positive = true
			break
		}
	}
	return negative, positive
}

// directionFromCounts applies §4.9's 0.4-of-total dominance rule.
func directionFromCounts(negCount, posCount, total int) domain.Direction {
	if total == 0 {
		return domain.DirectionNeutral
	}
	if negCount > posCount && float64(negCount) > 0.4*float64(total) {
		return domain.DirectionNegative
	}
	if posCount > negCount && float64(posCount) > 0.4*float64(total) {
		return domain.DirectionPositive
	}
	return domain.DirectionNeutral
}

// themeAdjustment returns the theme-specific magnitude bonus from §4.9,
// applied only when at least one negative signal is present.
func themeAdjustment(theme string, negCount, posCount int) float64 {
	if negCount == 0 {
		return 0
	}
	switch theme {
	case "sanctions":
		return 0.2
	case "political_instability":
		return 0.15
	case "trade_disruption":
		return 0.15
	case "currency_volatility":
		if negCount > posCount {
			return 0.1
		}
		return 0
	case "energy_security":
		return 0.1
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
