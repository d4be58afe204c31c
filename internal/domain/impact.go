package domain

// ThemeImpact is the stage-4 per-theme direction, magnitude, and confidence
// derived from the validated signals matched to that theme.
type ThemeImpact struct {
	Theme       string    `json:"theme"`
	Direction   Direction `json:"direction"`
	Magnitude   float64   `json:"magnitude"`
	Confidence  float64   `json:"confidence"`
	Reasoning   string    `json:"reasoning"`
	SignalCount int       `json:"signalCount"`
	Summary     string    `json:"summary"`
}

// AggregateImpact rolls up every ThemeImpact into a single overall
// direction/magnitude/confidence triple.
type AggregateImpact struct {
	OverallDirection  Direction     `json:"overallDirection"`
	OverallMagnitude  float64       `json:"overallMagnitude"`
	OverallConfidence float64       `json:"overallConfidence"`
	ThemeImpacts      []ThemeImpact `json:"themeImpacts"`
	TotalSignals      int           `json:"totalSignals"`
}

// ActionProbabilities is the final three-way probability distribution.
// Negative+Neutral+Positive must sum to 1.0 within 1e-6.
type ActionProbabilities struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
}

// DetailedResult is everything runPipeline returns: every intermediate
// artifact plus the final probabilities, so a caller can inspect how the
// result was derived.
type DetailedResult struct {
	ScanID        string              `json:"scanId"`
	Holding       Holding             `json:"holding"`
	RiskTolerance RiskTolerance       `json:"riskTolerance"`
	LookbackDays  int                 `json:"lookbackDays"`
	Profile       AssetProfile        `json:"profile"`
	Themes        []ThemeRelevance    `json:"themes"`
	Signals       []IntelligenceSignal `json:"signals"`
	WebSearches   []ThemeSearchMeta   `json:"webSearches"`
	Impact        AggregateImpact     `json:"impact"`
	Probabilities ActionProbabilities `json:"probabilities"`
}
