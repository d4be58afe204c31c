package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecencyScore_Today(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	score := RecencyScore(now.Format("2006-01-02"), 90, 30.0, now)
	assert.InDelta(t, 1.0, score, 0.01)
}

func TestRecencyScore_ThirtyDaysAgo(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	score := RecencyScore(thirtyDaysAgo.Format("2006-01-02"), 90, 30.0, now)
	assert.InDelta(t, 0.368, score, 0.01)
}

func TestRecencyScore_BeyondLookback(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	stale := now.AddDate(0, 0, -91)
	score := RecencyScore(stale.Format("2006-01-02"), 90, 30.0, now)
	assert.Equal(t, 0.0, score)
}

func TestRecencyScore_UnparsableDate(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	score := RecencyScore("not-a-date", 90, 30.0, now)
	assert.Equal(t, 0.0, score)
}

func TestSourceQualityScore_ExactMatch(t *testing.T) {
	table := map[string]float64{"Reuters": 0.95, "default": 0.7}
	assert.Equal(t, 0.95, SourceQualityScore("Reuters", table))
}

func TestSourceQualityScore_CaseInsensitiveMatch(t *testing.T) {
	table := map[string]float64{"Reuters": 0.95, "default": 0.7}
	assert.Equal(t, 0.95, SourceQualityScore("reuters", table))
}

func TestSourceQualityScore_SubstringMatch(t *testing.T) {
	table := map[string]float64{"Reuters": 0.95, "default": 0.7}
	assert.Equal(t, 0.95, SourceQualityScore("Reuters World News", table))
}

func TestSourceQualityScore_FallsBackToDefault(t *testing.T) {
	table := map[string]float64{"Reuters": 0.95, "default": 0.7}
	assert.Equal(t, 0.7, SourceQualityScore("Unknown Blog", table))
}

func TestActivityLevelScore_TableLookupAndDefault(t *testing.T) {
	table := map[string]float64{"Critical": 1.0, "High": 0.8, "Medium": 0.5, "Low": 0.2, "default": 0.3}
	assert.Equal(t, 1.0, ActivityLevelScore("Critical", table))
	assert.Equal(t, 0.3, ActivityLevelScore("Unknown", table))
}

func TestFinalScore_InBounds(t *testing.T) {
	w := Weights{Base: 0.3, ThemeMatch: 0.25, Recency: 0.2, SourceQuality: 0.15, Activity: 0.1}
	score := FinalScore(0.5, 0.8, 1.0, 0.9, 0.5, w)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestFinalScore_RedistributesActivityWeightWhenZero(t *testing.T) {
	w := Weights{Base: 0.3, ThemeMatch: 0.25, Recency: 0.2, SourceQuality: 0.15, Activity: 0.1}
	withActivity := FinalScore(0.5, 0.8, 1.0, 0.9, 0.5, w)
	withoutActivity := FinalScore(0.5, 0.8, 1.0, 0.9, 0, w)
	assert.NotEqual(t, withActivity, withoutActivity)
	assert.LessOrEqual(t, withoutActivity, 1.0)
}
