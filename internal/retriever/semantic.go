package retriever

import (
	"context"
	"sync"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/llm"
)

const semanticInFlight = 8

// applySemanticFilter re-scores each signal's relevance with the semantic
// adapter and drops anything below threshold, per SPEC_FULL.md §4.8 stage
// 3b. A kept signal with no ThemeMatch adopts the adapter's first matched
// theme. Calls run with bounded concurrency (semanticInFlight in flight).
func applySemanticFilter(ctx context.Context, adapter *llm.SemanticAdapter, signals []domain.IntelligenceSignal,
	country, sector string, themeNames []string, threshold float64) []domain.IntelligenceSignal {

	if adapter == nil || len(signals) == 0 {
		return signals
	}

	sem := make(chan struct{}, semanticInFlight)
	var wg sync.WaitGroup
	var mu sync.Mutex
	kept := make([]domain.IntelligenceSignal, 0, len(signals))

	for _, sig := range signals {
		wg.Add(1)
		sem <- struct{}{}
		go func(sig domain.IntelligenceSignal) {
			defer wg.Done()
			defer func() { <-sem }()

			result := adapter.Analyze(ctx, sig.Title, sig.Summary, country, sector, themeNames)
			sig.SemanticRelevance = result.RelevanceScore
			sig.SemanticConfidence = result.ConfidenceScore
			sig.SemanticReasoning = result.Reasoning

			if sig.SemanticRelevance < threshold {
				return
			}
			if sig.ThemeMatch == "" && len(result.MatchedThemes) > 0 {
				sig.ThemeMatch = result.MatchedThemes[0]
			}

			mu.Lock()
			kept = append(kept, sig)
			mu.Unlock()
		}(sig)
	}
	wg.Wait()

	return kept
}
