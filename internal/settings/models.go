// Package settings implements the scoring-settings provider described in
// SPEC_FULL.md §4.1: a memoized, invalidatable view over a persisted,
// named-and-flagged-active settings record, falling back to documented
// built-in defaults.
package settings

// ScoreWeights controls how the five scoring dimensions combine into a
// signal's final score. Fields are expected to sum to 1.0.
type ScoreWeights struct {
	Base          float64 `json:"base"`
	ThemeMatch    float64 `json:"themeMatch"`
	Recency       float64 `json:"recency"`
	SourceQuality float64 `json:"sourceQuality"`
	Activity      float64 `json:"activity"`
}

// BaseRelevanceScores are the starting relevance values assigned to a
// corpus item before theme/recency/quality adjustments, depending on how
// directly it matches the holding's country/region/sector.
type BaseRelevanceScores struct {
	CountryExact   float64 `json:"countryExact"`
	CountryPartial float64 `json:"countryPartial"`
	Region         float64 `json:"region"`
	Sector         float64 `json:"sector"`
}

// Thresholds are the cutoffs applied throughout stage 3 of the pipeline.
type Thresholds struct {
	Semantic     float64 `json:"semantic"`
	RelevanceLow float64 `json:"relevanceLow"`
	RelevanceHigh float64 `json:"relevanceHigh"`
	ThemeWeb     float64 `json:"themeWeb"`
}

// ScoringSettings is the full tunable-parameter record consulted by every
// scoring stage. A record is identified by Name and may be Active.
type ScoringSettings struct {
	Name          string
	Active        bool
	Weights       ScoreWeights
	DecayConstant float64
	BaseRelevance BaseRelevanceScores
	SourceScores  map[string]float64
	ActivityScores map[string]float64
	Thresholds    Thresholds
	LookbackDays  int
	MaxSignals    int
	MaxEventsPerSnapshot int
	UseSemanticFiltering bool
	UseBatchValidation   bool
}

// Defaults returns the built-in settings record used when no persisted
// record is active. Values are documented in SPEC_FULL.md §4.1.
func Defaults() ScoringSettings {
	return ScoringSettings{
		Name:   "default",
		Active: true,
		Weights: ScoreWeights{
			Base:          0.3,
			ThemeMatch:    0.25,
			Recency:       0.2,
			SourceQuality: 0.15,
			Activity:      0.1,
		},
		DecayConstant: 30.0,
		BaseRelevance: BaseRelevanceScores{
			CountryExact:   0.5,
			CountryPartial: 0.3,
			Region:         0.2,
			Sector:         0.2,
		},
		SourceScores: map[string]float64{
			"reuters":   0.95,
			"bloomberg": 0.95,
			"ap":        0.9,
			"bbc":       0.9,
			"financial times": 0.9,
			"wall street journal": 0.9,
			"default": 0.7,
		},
		ActivityScores: map[string]float64{
			"Critical": 1.0,
			"High":     0.8,
			"Medium":   0.5,
			"Low":      0.2,
			"default":  0.3,
		},
		Thresholds: Thresholds{
			Semantic:      0.6,
			RelevanceLow:  0.05,
			RelevanceHigh: 0.1,
			ThemeWeb:      0.3,
		},
		LookbackDays:         90,
		MaxSignals:           20,
		MaxEventsPerSnapshot: 3,
		UseSemanticFiltering: true,
		UseBatchValidation:   true,
	}
}
