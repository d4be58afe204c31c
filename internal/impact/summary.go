package impact

import (
	"fmt"

	"github.com/aristath/georisk/internal/domain"
)

// deterministicSummary is the fallback used when the LLM summary generator
// is unavailable or every configured model returns not-found, per
// SPEC_FULL.md §4.9.
func deterministicSummary(theme string, direction domain.Direction, signalCount int) string {
	switch direction {
	case domain.DirectionNegative:
		return fmt.Sprintf("%d signal(s) point to elevated %s risk, skewing negative for this holding.", signalCount, displayTheme(theme))
	case domain.DirectionPositive:
		return fmt.Sprintf("%d signal(s) suggest improving conditions around %s for this holding.", signalCount, displayTheme(theme))
	default:
		return fmt.Sprintf("%d signal(s) on %s show no clear directional skew for this holding.", signalCount, displayTheme(theme))
	}
}

func displayTheme(theme string) string {
	out := make([]byte, 0, len(theme))
	for i := 0; i < len(theme); i++ {
		if theme[i] == '_' {
			out = append(out, ' ')
			continue
		}
		out = append(out, theme[i])
	}
	return string(out)
}
