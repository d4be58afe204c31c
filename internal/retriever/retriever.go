package retriever

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/georisk/internal/cache"
	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/corpus"
	"github.com/aristath/georisk/internal/domain"
	"github.com/aristath/georisk/internal/llm"
	"github.com/aristath/georisk/internal/settings"
	"github.com/aristath/georisk/internal/websearch"
)

// Retriever orchestrates SPEC_FULL.md §4.8's stages 3a-3f: corpus
// scoring, optional semantic filtering, web fan-out, merge/dedup,
// optional batch validation, and truncation. Results are cached (for the
// TTL of the injected cache) behind the composite key built by cacheKey.
type Retriever struct {
	corpusStore  *corpus.Store
	catalogProv  *catalog.Provider
	semantic     *llm.SemanticAdapter
	batch        *llm.BatchValidationAdapter
	webAdapter   *websearch.Adapter
	cache        *cache.TTLCache[Result]
	log          zerolog.Logger
}

// Result is what one Retrieve call returns: the merged signals plus
// diagnostics about the web search fan-out.
type Result struct {
	Signals     []domain.IntelligenceSignal
	WebSearches []domain.ThemeSearchMeta
}

// NewRetriever wires the retriever's collaborators. semantic, batch, and
// webAdapter may be nil to disable their respective optional stages.
func NewRetriever(corpusStore *corpus.Store, catalogProv *catalog.Provider, semantic *llm.SemanticAdapter,
	batch *llm.BatchValidationAdapter, webAdapter *websearch.Adapter, resultCache *cache.TTLCache[Result],
	log zerolog.Logger) *Retriever {
	return &Retriever{
		corpusStore: corpusStore,
		catalogProv: catalogProv,
		semantic:    semantic,
		batch:       batch,
		webAdapter:  webAdapter,
		cache:       resultCache,
		log:         log.With().Str("component", "retriever").Logger(),
	}
}

// Retrieve runs the full retrieval pipeline for profile against themes,
// honoring cfg's feature flags and thresholds.
func (r *Retriever) Retrieve(ctx context.Context, profile domain.AssetProfile, themes []domain.ThemeRelevance,
	cfg settings.ScoringSettings) Result {

	key := cacheKey(profile, themes, cfg)
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	result := r.retrieveUncached(ctx, profile, themes, cfg)
	r.cache.Set(key, result)
	return result
}

func (r *Retriever) retrieveUncached(ctx context.Context, profile domain.AssetProfile, themes []domain.ThemeRelevance,
	cfg settings.ScoringSettings) Result {

	catalogThemes := r.catalogProv.ListActiveThemes()
	catalogByName := make(map[string]domain.ThemeDefinition, len(catalogThemes))
	themeNames := make([]string, 0, len(catalogThemes))
	for _, t := range catalogThemes {
		catalogByName[t.Name] = t
		themeNames = append(themeNames, t.Name)
	}

	// Stage 3a: corpus scoring.
	items := r.corpusStore.QueryGlobalItems(profile, cfg.LookbackDays)
	snaps := r.corpusStore.QuerySnapshots(profile, cfg.LookbackDays)
	corpusSignals := ScoreGlobalItems(profile, items, themes, catalogByName, cfg)
	corpusSignals = append(corpusSignals, ScoreSnapshots(profile, snaps, themes, catalogByName, cfg)...)

	// Stage 3b: optional semantic filter.
	if cfg.UseSemanticFiltering && r.semantic != nil {
		corpusSignals = applySemanticFilter(ctx, r.semantic, corpusSignals, profile.Country, profile.Sector,
			themeNames, cfg.Thresholds.Semantic)
	}

	// Stage 3c: web fan-out.
	webSignals, webMeta := fanOutWebSearch(ctx, r.webAdapter, profile.Country, themes, catalogByName,
		cfg.LookbackDays, cfg.Thresholds.ThemeWeb)

	// Stage 3d: merge/dedup.
	merged := mergeDedup(corpusSignals, webSignals)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].RelevanceScore > merged[j].RelevanceScore })

	// Stage 3e: optional batch validation, capped at the top 50 signals.
	if cfg.UseBatchValidation {
		merged = applyBatchValidation(ctx, r.batch, merged, profile.Country, profile.Sector)
		sort.SliceStable(merged, func(i, j int) bool { return merged[i].RelevanceScore > merged[j].RelevanceScore })
	}

	// Stage 3f: truncate to maxSignals.
	if cfg.MaxSignals > 0 && len(merged) > cfg.MaxSignals {
		r.log.Info().Int("kept", cfg.MaxSignals).Int("dropped", len(merged)-cfg.MaxSignals).
			Msg("truncating intelligence signals to configured maximum")
		merged = merged[:cfg.MaxSignals]
	}

	return Result{Signals: merged, WebSearches: webMeta}
}

// cacheKey builds the composite cache key described in SPEC_FULL.md §4.8:
// country, region, sector, asset type, sorted theme names, lookback days,
// the two feature flags, and the semantic threshold. The themes' relevance
// scores and the other settings (weights, relevance and theme-web
// thresholds, MaxSignals) are not part of the key.
func cacheKey(profile domain.AssetProfile, themes []domain.ThemeRelevance, cfg settings.ScoringSettings) string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Theme
	}
	sort.Strings(names)

	return cache.KeyFromParts(
		profile.Country, profile.Region, profile.Sector, profile.AssetType,
		strings.Join(names, ","),
		strconv.Itoa(cfg.LookbackDays),
		boolStr(cfg.UseSemanticFiltering),
		strconv.FormatFloat(cfg.Thresholds.Semantic, 'f', -1, 64),
		boolStr(cfg.UseBatchValidation),
	)
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
