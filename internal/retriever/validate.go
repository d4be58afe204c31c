package retriever

import (
	"context"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/llm"
)

const minSignalsForBatchValidation = 3
const maxBatchValidationSignals = 50

// applyBatchValidation cross-checks signals against each other and folds
// the result into each signal's ConfidenceMultiplier and RelevanceScore,
// per SPEC_FULL.md §4.8 stage 3e. Only runs when there are at least
// minSignalsForBatchValidation signals; otherwise signals pass through
// unchanged with a neutral multiplier. signals must already be sorted by
// relevance (highest first): only the top maxBatchValidationSignals are
// sent to the validator, the rest pass through untouched.
func applyBatchValidation(ctx context.Context, adapter *llm.BatchValidationAdapter, signals []domain.IntelligenceSignal,
	country, sector string) []domain.IntelligenceSignal {

	if adapter == nil || len(signals) < minSignalsForBatchValidation {
		return signals
	}

	limit := len(signals)
	if limit > maxBatchValidationSignals {
		limit = maxBatchValidationSignals
	}
	subset, rest := signals[:limit], signals[limit:]

	summaries := make([]llm.BatchSignalSummary, len(subset))
	for i, sig := range subset {
		summaries[i] = llm.BatchSignalSummary{Title: sig.Title, Summary: sig.Summary}
	}

	result := adapter.Validate(ctx, summaries, country, sector)

	byIndex := make(map[int]llm.SignalValidation, len(result.Validations))
	for _, v := range result.Validations {
		byIndex[v.SignalIndex] = v
	}

	out := make([]domain.IntelligenceSignal, 0, len(signals))
	for i, sig := range subset {
		v, ok := byIndex[i]
		if !ok {
			out = append(out, sig)
			continue
		}

		sig.ValidationConfidence = v.ValidationConfidence
		sig.IsCorroborated = v.IsCorroborated
		sig.IsContradicted = v.IsContradicted
		sig.CorroborationCount = len(v.CorroboratingIndices)
		sig.EvidenceQuality = domain.EvidenceQuality(v.EvidenceQuality)
		sig.ValidationReasoning = v.ValidationReasoning

		multiplier := v.ValidationConfidence
		if v.IsCorroborated {
			multiplier *= 1.3
		}
		if v.IsContradicted {
			multiplier *= 0.5
		}
		switch sig.EvidenceQuality {
		case domain.EvidenceQualityHigh:
			multiplier *= 1.2
		case domain.EvidenceQualityLow:
			multiplier *= 0.7
		}

		sig.ConfidenceMultiplier = multiplier
		sig.RelevanceScore = clamp01(sig.RelevanceScore * multiplier)
		out = append(out, sig)
	}
	return append(out, rest...)
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
