package ingestion

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/georisk/internal/corpus"
)

// CacheInvalidator is the subset of pipeline.Caches this job needs,
// defined locally to avoid an import cycle (pipeline already depends on
// the packages this job wires together).
type CacheInvalidator interface {
	InvalidateAll()
}

// CorpusRefreshJob is the ingestion collaborator that owns writes to the
// signal corpus (SPEC_FULL.md §5: "mutation happens only in the
// ingestion collaborator"). In this codebase it stands in for the
// external crawler/feed job: it touches the corpus watermark and
// invalidates every pipeline cache so the next retrieval re-reads
// settings and re-queries the corpus.
type CorpusRefreshJob struct {
	store  *corpus.Store
	caches CacheInvalidator
	log    zerolog.Logger
}

// NewCorpusRefreshJob creates the refresh job over store and caches.
func NewCorpusRefreshJob(store *corpus.Store, caches CacheInvalidator, log zerolog.Logger) *CorpusRefreshJob {
	return &CorpusRefreshJob{store: store, caches: caches, log: log.With().Str("job", "corpus_refresh").Logger()}
}

// Name identifies this job for scheduler logging.
func (j *CorpusRefreshJob) Name() string { return "corpus_refresh" }

// Run touches the corpus watermark and invalidates all pipeline caches.
func (j *CorpusRefreshJob) Run(ctx context.Context) error {
	if err := j.store.TouchWatermark(); err != nil {
		return err
	}
	j.caches.InvalidateAll()
	j.log.Info().Msg("corpus refreshed; pipeline caches invalidated")
	return nil
}
