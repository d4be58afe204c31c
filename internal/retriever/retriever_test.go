package retriever

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/aristath/georisk/internal/cache"
	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/corpus"
	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/llm"
	"github.com/aristath/georisk/internal/settings"
)

func newTestRetriever(t *testing.T) (*Retriever, *corpus.Store) {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := corpus.NewStore(db, zerolog.Nop())
	require.NoError(t, store.EnsureSchema())

	catalogRepo := catalog.NewRepository(db, zerolog.Nop())
	require.NoError(t, catalogRepo.EnsureSchema())
	catalogProv := catalog.NewProvider(catalogRepo, zerolog.Nop())

	r := NewRetriever(store, catalogProv, nil, nil, nil, cache.NewTTLCache[Result](10*time.Minute), zerolog.Nop())
	return r, store
}

func testThemes() []domain.ThemeRelevance {
	return []domain.ThemeRelevance{{Theme: "sanctions", RelevanceScore: 0.8}}
}

func TestRetrieve_CorpusOnlyFindsMatchingSignal(t *testing.T) {
	r, store := newTestRetriever(t)
	require.NoError(t, store.PutGlobalItem(domain.GlobalItem{
		Title: "Russia faces new sanctions over energy exports", Summary: "Sanctions widen against Russian oil trade.",
		URL: "https://a.example/1", PublishedAt: time.Now().Format(time.RFC3339), Countries: []string{"Russia"},
	}))

	profile := domain.AssetProfile{Holding: domain.Holding{Country: "Russia"}}
	cfg := settings.Defaults()
	cfg.UseSemanticFiltering = false
	cfg.UseBatchValidation = false

	result := r.Retrieve(context.Background(), profile, testThemes(), cfg)
	require.NotEmpty(t, result.Signals)
	assert.Equal(t, "sanctions", result.Signals[0].ThemeMatch)
}

func TestRetrieve_TruncatesToMaxSignals(t *testing.T) {
	r, store := newTestRetriever(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, store.PutGlobalItem(domain.GlobalItem{
			Title:       "Russia sanctions escalate further this week",
			Summary:     "Sanctions and trade restrictions widen against Russian institutions.",
			URL:         "https://a.example/" + string(rune('a'+i)),
			PublishedAt: time.Now().Format(time.RFC3339),
			Countries:   []string{"Russia"},
		}))
	}

	profile := domain.AssetProfile{Holding: domain.Holding{Country: "Russia"}}
	cfg := settings.Defaults()
	cfg.UseSemanticFiltering = false
	cfg.UseBatchValidation = false
	cfg.MaxSignals = 3

	result := r.Retrieve(context.Background(), profile, testThemes(), cfg)
	assert.Len(t, result.Signals, 3)
}

func TestRetrieve_CachesResultUntilKeyChanges(t *testing.T) {
	r, store := newTestRetriever(t)
	profile := domain.AssetProfile{Holding: domain.Holding{Country: "Russia"}}
	cfg := settings.Defaults()
	cfg.UseSemanticFiltering = false
	cfg.UseBatchValidation = false

	first := r.Retrieve(context.Background(), profile, testThemes(), cfg)
	assert.Empty(t, first.Signals)

	require.NoError(t, store.PutGlobalItem(domain.GlobalItem{
		Title: "Russia sanctions escalate sharply today", Summary: "New restrictions on Russian banks announced.",
		URL: "https://a.example/fresh", PublishedAt: time.Now().Format(time.RFC3339), Countries: []string{"Russia"},
	}))

	second := r.Retrieve(context.Background(), profile, testThemes(), cfg)
	assert.Empty(t, second.Signals, "cached result should be served until the cache key changes")

	cfg.LookbackDays = cfg.LookbackDays + 1
	third := r.Retrieve(context.Background(), profile, testThemes(), cfg)
	assert.NotEmpty(t, third.Signals, "changing an input to the cache key should bypass the stale cache entry")
}

func TestMergeDedup_KeepsHighestScoreForDuplicateURL(t *testing.T) {
	a := domain.IntelligenceSignal{RawSignal: domain.RawSignal{URL: "https://x.example/1"}, RelevanceScore: 0.4}
	b := domain.IntelligenceSignal{RawSignal: domain.RawSignal{URL: "https://x.example/1"}, RelevanceScore: 0.9}

	merged := mergeDedup([]domain.IntelligenceSignal{a}, []domain.IntelligenceSignal{b})
	require.Len(t, merged, 1)
	assert.Equal(t, 0.9, merged[0].RelevanceScore)
}

func TestApplyBatchValidation_PassesThroughBelowMinimumCount(t *testing.T) {
	signals := []domain.IntelligenceSignal{
		{RawSignal: domain.RawSignal{Title: "a"}, RelevanceScore: 0.5},
	}
	client := llm.NewClient("http://127.0.0.1:0", "", nil, zerolog.Nop())
	adapter := llm.NewBatchValidationAdapter(client, cache.NewTTLCache[llm.BatchValidationResult](time.Minute))

	out := applyBatchValidation(context.Background(), adapter, signals, "Russia", "Energy")
	require.Len(t, out, 1)
	assert.Equal(t, 0.5, out[0].RelevanceScore)
}

func TestApplyBatchValidation_AppliesNeutralFallbackMultiplierOnFailure(t *testing.T) {
	signals := []domain.IntelligenceSignal{
		{RawSignal: domain.RawSignal{Title: "a"}, RelevanceScore: 0.5},
		{RawSignal: domain.RawSignal{Title: "b"}, RelevanceScore: 0.5},
		{RawSignal: domain.RawSignal{Title: "c"}, RelevanceScore: 0.5},
	}
	client := llm.NewClient("http://127.0.0.1:0", "", []string{"unreachable-model"}, zerolog.Nop())
	adapter := llm.NewBatchValidationAdapter(client, cache.NewTTLCache[llm.BatchValidationResult](time.Minute))

	out := applyBatchValidation(context.Background(), adapter, signals, "Russia", "Energy")
	require.Len(t, out, 3)
	for _, sig := range out {
		assert.InDelta(t, 0.7, sig.ConfidenceMultiplier, 0.0001)
		assert.Equal(t, domain.EvidenceQuality("medium"), sig.EvidenceQuality)
	}
}
