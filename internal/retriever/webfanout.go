package retriever

import (
	"context"
	"sort"
	"sync"

	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/websearch"
)

const webFanoutConcurrency = 3
const webFanoutMaxThemes = 3

// fanOutWebSearch runs the web search adapter concurrently (bounded to
// webFanoutConcurrency) for the top webFanoutMaxThemes theme matches at or
// above themeWebThreshold, per SPEC_FULL.md §4.8 stage 3c. A per-theme
// search failure is recorded in that theme's ThemeSearchMeta.Error and
// never aborts the other themes' searches.
func fanOutWebSearch(ctx context.Context, adapter *websearch.Adapter, locale string,
	themes []domain.ThemeRelevance, catalog map[string]domain.ThemeDefinition,
	lookbackDays int, themeWebThreshold float64) ([]domain.IntelligenceSignal, []domain.ThemeSearchMeta) {

	if adapter == nil {
		return nil, nil
	}

	candidates := make([]domain.ThemeRelevance, 0, len(themes))
	for _, t := range themes {
		if t.RelevanceScore >= themeWebThreshold {
			candidates = append(candidates, t)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].RelevanceScore > candidates[j].RelevanceScore })
	if len(candidates) > webFanoutMaxThemes {
		candidates = candidates[:webFanoutMaxThemes]
	}

	sem := make(chan struct{}, webFanoutConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var signals []domain.IntelligenceSignal
	metas := make([]domain.ThemeSearchMeta, len(candidates))

	for i, cand := range candidates {
		def, ok := catalog[cand.Theme]
		if !ok {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, def domain.ThemeDefinition) {
			defer wg.Done()
			defer func() { <-sem }()

			results, query, err := adapter.SearchTheme(ctx, locale, def, lookbackDays)
			meta := domain.ThemeSearchMeta{Theme: def.Name, Query: query, ResultsCount: len(results)}
			if err != nil {
				meta.Error = err.Error()
				mu.Lock()
				metas[i] = meta
				mu.Unlock()
				return
			}

			themeSignals := make([]domain.IntelligenceSignal, 0, len(results))
			for _, r := range results {
				raw := websearch.ToRawSignal(r, locale)
				themeSignals = append(themeSignals, domain.IntelligenceSignal{
					RawSignal:       raw,
					ThemeMatch:      def.Name,
					ThemeMatchScore: cand.RelevanceScore,
					RelevanceScore:  cand.RelevanceScore,
					SourceQuality:   0.75,
					ConfidenceMultiplier: 1.0,
				})
			}
			meta.SignalsCount = len(themeSignals)

			mu.Lock()
			signals = append(signals, themeSignals...)
			metas[i] = meta
			mu.Unlock()
		}(i, def)
	}
	wg.Wait()

	return signals, metas
}
