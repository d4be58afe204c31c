package scoring

import "gonum.org/v1/gonum/floats"

// Weights mirrors settings.ScoreWeights without importing the settings
// package (scoring is a leaf; settings depends on nothing, but keeping the
// scoring package dependency-free makes it easy to unit test standalone).
type Weights struct {
	Base          float64
	ThemeMatch    float64
	Recency       float64
	SourceQuality float64
	Activity      float64
}

// FinalScore combines the five scoring dimensions into one final score via
// their configured weights. When activity is exactly zero (non-snapshot
// sources carry no activity level), the activity weight is redistributed
// proportionally across the other four dimensions rather than silently
// discarded, per SPEC_FULL.md §4.5.
func FinalScore(base, themeMatch, recency, sourceQuality, activity float64, w Weights) float64 {
	values := []float64{base, themeMatch, recency, sourceQuality}
	weights := []float64{w.Base, w.ThemeMatch, w.Recency, w.SourceQuality}

	if activity == 0 {
		remaining := w.Base + w.ThemeMatch + w.Recency + w.SourceQuality
		if remaining > 0 {
			redistributed := w.Activity / remaining
			for i := range weights {
				weights[i] += weights[i] * redistributed
			}
		}
	} else {
		values = append(values, activity)
		weights = append(weights, w.Activity)
	}

	score := floats.Dot(values, weights)
	return clamp01(score)
}
