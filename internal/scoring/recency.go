// Package scoring implements the per-signal scoring primitives described
// in SPEC_FULL.md §4.5: recency decay, source-quality lookup,
// activity-level lookup, and their weighted combination into a final
// score.
package scoring

import (
	"math"
	"strings"
	"time"
)

// acceptedDateFormats lists every publishedAt layout the scorer will try,
// in order, per SPEC_FULL.md §9.
var acceptedDateFormats = []string{
	"2006-01-02T15:04:05.999999999Z07:00", // ISO with fractional seconds + offset/Z
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

// ParsePublished attempts to parse publishedAt against every accepted
// format in order, returning false if none match.
func ParsePublished(publishedAt string) (time.Time, bool) {
	publishedAt = strings.TrimSpace(publishedAt)
	if publishedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedDateFormats {
		if t, err := time.Parse(layout, publishedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RecencyScore applies exponential decay to how many whole days ago
// publishedAt was, relative to now. Unparsable or stale (older than
// lookbackDays) dates score zero.
func RecencyScore(publishedAt string, lookbackDays int, decayConstant float64, now time.Time) float64 {
	t, ok := ParsePublished(publishedAt)
	if !ok {
		return 0
	}

	daysAgo := math.Floor(now.Sub(t).Hours() / 24)
	if daysAgo < 0 {
		daysAgo = 0
	}
	if daysAgo > float64(lookbackDays) {
		return 0
	}

	if decayConstant <= 0 {
		decayConstant = 30.0
	}

	score := math.Exp(-daysAgo / decayConstant)
	return clamp01(score)
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
