package retriever

import (
	"sort"

	"github.com/aristath/georisk/internal/domain"
)

// mergeDedup combines corpus and web signals, keeping the
// highest-relevance signal for any duplicate URL, then sorts descending
// by relevance score (URL as a stable tiebreaker), per SPEC_FULL.md §4.8
// stage 3d.
func mergeDedup(groups ...[]domain.IntelligenceSignal) []domain.IntelligenceSignal {
	byURL := make(map[string]domain.IntelligenceSignal)
	var noURL []domain.IntelligenceSignal

	for _, group := range groups {
		for _, sig := range group {
			if sig.URL == "" {
				noURL = append(noURL, sig)
				continue
			}
			existing, ok := byURL[sig.URL]
			if !ok || sig.RelevanceScore > existing.RelevanceScore {
				byURL[sig.URL] = sig
			}
		}
	}

	merged := make([]domain.IntelligenceSignal, 0, len(byURL)+len(noURL))
	for _, sig := range byURL {
		merged = append(merged, sig)
	}
	merged = append(merged, noURL...)

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].RelevanceScore != merged[j].RelevanceScore {
			return merged[i].RelevanceScore > merged[j].RelevanceScore
		}
		return merged[i].URL < merged[j].URL
	})
	return merged
}
