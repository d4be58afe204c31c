package domain

// ThemeWeights controls how strongly each dimension of a match contributes
// to a theme's relevance score. All fields are expected in [0,1].
type ThemeWeights struct {
	Country       float64 `json:"country"`
	Region        float64 `json:"region"`
	Sector        float64 `json:"sector"`
	ExposureBonus float64 `json:"exposureBonus"`
	EmergingBonus float64 `json:"emergingBonus"`
}

// ThemeDefinition describes one geopolitical risk theme in the catalog.
type ThemeDefinition struct {
	Name                string       `json:"name"`
	DisplayName         string       `json:"displayName"`
	Keywords            []string     `json:"keywords"`
	RelevantCountries   []string     `json:"relevantCountries"`
	RelevantRegions     []string     `json:"relevantRegions"`
	RelevantSectors     []string     `json:"relevantSectors"`
	Weights             ThemeWeights `json:"weights"`
	MinRelevanceThreshold float64    `json:"minRelevanceThreshold"`
	Active              bool         `json:"active"`
}

// ThemeRelevance is the stage-2 output: how strongly one theme applies to
// the asset profile under analysis.
type ThemeRelevance struct {
	Theme           string   `json:"theme"`
	RelevanceScore  float64  `json:"relevanceScore"`
	Reasoning       string   `json:"reasoning"`
	KeywordsMatched []string `json:"keywordsMatched"`
}

// Direction is the qualitative effect a theme or the aggregate impact has
// on the holding under analysis.
type Direction string

const (
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
	DirectionPositive Direction = "positive"
)
