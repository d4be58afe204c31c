// Package pipeline implements the orchestrator described in
// SPEC_FULL.md §4.11: wiring the characterization, theme-identification,
// intelligence-retrieval, impact-assessment, and probability-synthesis
// stages into runPipeline/runPipelineStream.
package pipeline

import (
	"time"

	"github.com/aristath/georisk/internal/cache"
	"github.com/aristath/georisk/internal/catalog"
	"github.com/aristath/georisk/internal/llm"
	"github.com/aristath/georisk/internal/retriever"
	"github.com/aristath/georisk/internal/settings"
)

const (
	semanticCacheTTL = 60 * time.Minute
	batchCacheTTL    = 60 * time.Minute
	retrieverCacheTTL = 10 * time.Minute
)

// Caches is the explicit, orchestrator-owned cache handle from §9's
// "explicit Caches handle, not globals" design note. It composes the
// settings provider, catalog provider, and every TTL-keyed adapter cache
// so the ingestion collaborator can invalidate all of them in one call
// (each is cleared in turn under its own lock, not as one atomic step).
type Caches struct {
	Settings *settings.Provider
	Catalog  *catalog.Provider

	Semantic  *cache.TTLCache[llm.SemanticResult]
	Batch     *cache.TTLCache[llm.BatchValidationResult]
	Retriever *cache.TTLCache[retriever.Result]
}

// NewCaches builds the cache handle with the TTLs fixed by SPEC_FULL.md §5.
func NewCaches(settingsProv *settings.Provider, catalogProv *catalog.Provider) *Caches {
	return &Caches{
		Settings:  settingsProv,
		Catalog:   catalogProv,
		Semantic:  cache.NewTTLCache[llm.SemanticResult](semanticCacheTTL),
		Batch:     cache.NewTTLCache[llm.BatchValidationResult](batchCacheTTL),
		Retriever: cache.NewTTLCache[retriever.Result](retrieverCacheTTL),
	}
}

// InvalidateAll drops the settings memoization and every adapter cache.
// Called by the ingestion collaborator whenever the corpus is refreshed.
func (c *Caches) InvalidateAll() {
	c.Settings.Invalidate()
	c.Semantic.InvalidateAll()
	c.Batch.InvalidateAll()
	c.Retriever.InvalidateAll()
}
