package websearch

import "strings"

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true, "on": true, "to": true,
	"for": true, "and": true, "or": true, "is": true, "at": true, "by": true, "with": true,
}

func wordSet(title string) map[string]bool {
	words := strings.Fields(strings.ToLower(title))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,:;!?\"'")
		if w == "" || stopWords[w] {
			continue
		}
		set[w] = true
	}
	return set
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// titlesAreSimilar reports whether a and b are similar enough (Jaccard
// similarity of their stop-word-stripped title word sets >= threshold) to
// be treated as duplicates.
func titlesAreSimilar(a, b string, threshold float64) bool {
	return jaccardSimilarity(wordSet(a), wordSet(b)) >= threshold
}

const dedupThreshold = 0.7

// DeduplicateByTitle drops results whose title is similar (Jaccard >= 0.7)
// to one already kept, preserving input order.
func DeduplicateByTitle(results []RawResult) []RawResult {
	var kept []RawResult
	for _, r := range results {
		duplicate := false
		for _, k := range kept {
			if titlesAreSimilar(r.Title, k.Title, dedupThreshold) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, r)
		}
	}
	return kept
}
