package domain

import "time"

// SignalSource identifies where a raw signal originated.
type SignalSource string

const (
	SignalSourceCorpus SignalSource = "corpus"
	SignalSourceWeb    SignalSource = "web"
)

// RawSignal is a piece of evidence before scoring: either a corpus item
// (news item or country-snapshot event) or a web search result.
type RawSignal struct {
	Source        SignalSource `json:"source"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	Topic         string       `json:"topic,omitempty"`
	URL           string       `json:"url,omitempty"`
	Country       string       `json:"country,omitempty"`
	PublishedAt   string       `json:"publishedAt"`
	ActivityLevel string       `json:"activityLevel,omitempty"`
}

// EvidenceQuality is the batch validator's assessment of how strong the
// supporting evidence for a signal is.
type EvidenceQuality string

const (
	EvidenceQualityHigh   EvidenceQuality = "high"
	EvidenceQualityMedium EvidenceQuality = "medium"
	EvidenceQualityLow    EvidenceQuality = "low"
	EvidenceQualityNone   EvidenceQuality = ""
)

// IntelligenceSignal is a RawSignal enriched with every scoring stage's
// output. Fields populated only by optional stages (semantic filtering,
// batch validation) carry their stage's documented zero-value when that
// stage did not run.
type IntelligenceSignal struct {
	RawSignal

	BaseRelevance     float64 `json:"baseRelevance"`
	ThemeMatchScore   float64 `json:"themeMatchScore"`
	RecencyScore      float64 `json:"recencyScore"`
	SourceQuality     float64 `json:"sourceQuality"`
	ActivityLevelScore float64 `json:"activityLevelScore"`
	ThemeMatch        string  `json:"themeMatch,omitempty"`
	RelevanceScore    float64 `json:"relevanceScore"`

	SemanticRelevance  float64 `json:"semanticRelevance"`
	SemanticConfidence float64 `json:"semanticConfidence"`
	SemanticReasoning  string  `json:"semanticReasoning,omitempty"`

	ValidationConfidence float64         `json:"validationConfidence"`
	IsCorroborated       bool            `json:"isCorroborated"`
	IsContradicted       bool            `json:"isContradicted"`
	CorroborationCount   int             `json:"corroborationCount"`
	EvidenceQuality      EvidenceQuality `json:"evidenceQuality,omitempty"`
	ValidationReasoning  string          `json:"validationReasoning,omitempty"`
	ConfidenceMultiplier float64         `json:"confidenceMultiplier"`
}

// ThemeSearchMeta records the outcome of one theme's web search fan-out,
// whether it succeeded or not, for diagnostics in the final result.
type ThemeSearchMeta struct {
	Theme         string `json:"theme"`
	Query         string `json:"query"`
	ResultsCount  int    `json:"resultsCount"`
	SignalsCount  int    `json:"signalsCount"`
	Error         string `json:"error,omitempty"`
}

// GlobalItem is a persisted corpus news item.
type GlobalItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	SourceName  string    `json:"sourceName"`
	SourceURL   string    `json:"sourceUrl"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
	Topic       string    `json:"topic"`
	Countries   []string  `json:"countries"`
	CountryIDs  []string  `json:"countryIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SnapshotEvent is one recorded event inside a CountrySnapshot.
type SnapshotEvent struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Why        string   `json:"why"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	UpdatedAt  string   `json:"updatedAt"`
	Topic      string   `json:"topic"`
}

// CountrySnapshot is a persisted rollup of a country's current activity
// level and recent events.
type CountrySnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ActivityLevel string          `json:"activityLevel"`
	UpdatedAt     string          `json:"updatedAt"`
	Events        []SnapshotEvent `json:"events"`
	Stats         SnapshotStats   `json:"stats"`
	UpdatedAtDB   time.Time       `json:"updatedAtDb"`
}

// SnapshotStats are the denormalized counters carried on a CountrySnapshot.
type SnapshotStats struct {
	Signals    int     `json:"signals"`
	Disputes   int     `json:"disputes"`
	Confidence float64 `json:"confidence"`
}
