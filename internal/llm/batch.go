package llm

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/georisk/internal/cache"
)

// SignalValidation is one entry of a BatchValidationResult, matching
// SPEC_FULL.md §6's batch-validation JSON shape.
type SignalValidation struct {
	SignalIndex          int      `json:"signal_index"`
	ValidationConfidence float64  `json:"validation_confidence"`
	IsCorroborated       bool     `json:"is_corroborated"`
	IsContradicted       bool     `json:"is_contradicted"`
	CorroboratingIndices []int    `json:"corroborating_indices"`
	ContradictingIndices []int    `json:"contradicting_indices"`
	EvidenceQuality      string   `json:"evidence_quality"`
	ValidationReasoning  string   `json:"validation_reasoning"`
}

// BatchValidationResult is the full response of one batch validation call.
type BatchValidationResult struct {
	Validations        []SignalValidation `json:"validations"`
	OverallCoherence   float64            `json:"overall_coherence"`
	ContradictionCount int                `json:"contradiction_count"`
	CorroborationCount int                `json:"corroboration_count"`
	AnalysisSummary    string             `json:"analysis_summary"`
}

// BatchSignalSummary is the minimal (title, summary) pair sent to the
// batch validator for one signal.
type BatchSignalSummary struct {
	Title   string
	Summary string
}

const (
	batchTimeout  = 40 * time.Second
	maxBatchItems = 50
)

// BatchValidationAdapter cross-references a batch of signals for internal
// consistency, caching results for 60 minutes keyed by MD5 of the batch.
type BatchValidationAdapter struct {
	client *Client
	cache  *cache.TTLCache[BatchValidationResult]
}

// NewBatchValidationAdapter creates a batch validation adapter over
// client, using cache for its 60-minute TTL memoization.
func NewBatchValidationAdapter(client *Client, cache *cache.TTLCache[BatchValidationResult]) *BatchValidationAdapter {
	return &BatchValidationAdapter{client: client, cache: cache}
}

// Validate cross-checks up to the first 50 signals in signals against each
// other for corroboration/contradiction, given the holding's country and
// sector. On any failure it returns the documented neutral fallback: every
// signal gets validation_confidence 0.7 and neither corroborated nor
// contradicted.
func (a *BatchValidationAdapter) Validate(ctx context.Context, signals []BatchSignalSummary, country, sector string) BatchValidationResult {
	truncated := signals
	if len(truncated) > maxBatchItems {
		truncated = truncated[:maxBatchItems]
	}

	parts := make([]string, 0, len(truncated)*2+2)
	parts = append(parts, country, sector)
	for _, s := range truncated {
		parts = append(parts, s.Title, s.Summary)
	}
	key := cache.KeyFromParts(parts...)

	if cached, ok := a.cache.Get(key); ok {
		return cached
	}

	result := a.validateUncached(ctx, truncated, country, sector)
	a.cache.Set(key, result)
	return result
}

func (a *BatchValidationAdapter) validateUncached(ctx context.Context, signals []BatchSignalSummary, country, sector string) BatchValidationResult {
	system := "You cross-reference a batch of geopolitical news signals about the same holding for internal " +
		"consistency. Respond ONLY with JSON: {\"validations\": [{\"signal_index\": int, \"validation_confidence\": 0-1, " +
		"\"is_corroborated\": bool, \"is_contradicted\": bool, \"corroborating_indices\": [int], \"contradicting_indices\": [int], " +
		"\"evidence_quality\": \"high\"|\"medium\"|\"low\", \"validation_reasoning\": string}], \"overall_coherence\": 0-1, " +
		"\"contradiction_count\": int, \"corroboration_count\": int, \"analysis_summary\": string}."

	var sb strings.Builder
	sb.WriteString("Holding country: " + country + "\nSector: " + sector + "\nSignals:\n")
	for i, s := range signals {
		sb.WriteString(strconv.Itoa(i) + ". " + s.Title + " — " + s.Summary + "\n")
	}

	raw, err := a.client.complete(ctx, batchTimeout, system, sb.String())
	if err != nil {
		return neutralBatchFallback(len(signals), err.Error())
	}

	var result BatchValidationResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &result); err != nil {
		return neutralBatchFallback(len(signals), "unparsable batch validation response: "+err.Error())
	}
	return result
}

func neutralBatchFallback(count int, reason string) BatchValidationResult {
	validations := make([]SignalValidation, count)
	for i := range validations {
		validations[i] = SignalValidation{
			SignalIndex:          i,
			ValidationConfidence: 0.7,
			EvidenceQuality:      "medium",
			ValidationReasoning:  reason,
		}
	}
	return BatchValidationResult{Validations: validations, OverallCoherence: 0.5, AnalysisSummary: reason}
}
