package ingestion

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/aristath/georisk/internal/corpus"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateAll() { c.calls++ }

func TestCorpusRefreshJob_TouchesWatermarkAndInvalidatesCaches(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := corpus.NewStore(db, zerolog.Nop())
	require.NoError(t, store.EnsureSchema())

	before, err := store.Watermark()
	require.NoError(t, err)
	assert.True(t, before.IsZero())

	invalidator := &countingInvalidator{}
	job := NewCorpusRefreshJob(store, invalidator, zerolog.Nop())
	assert.Equal(t, "corpus_refresh", job.Name())

	require.NoError(t, job.Run(context.Background()))

	after, err := store.Watermark()
	require.NoError(t, err)
	assert.False(t, after.IsZero())
	assert.Equal(t, 1, invalidator.calls)
}

func TestScheduler_RunNowExecutesImmediately(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := corpus.NewStore(db, zerolog.Nop())
	require.NoError(t, store.EnsureSchema())

	job := NewCorpusRefreshJob(store, &countingInvalidator{}, zerolog.Nop())
	s := New(zerolog.Nop())
	require.NoError(t, s.RunNow(context.Background(), job))

	after, err := store.Watermark()
	require.NoError(t, err)
	assert.False(t, after.IsZero())
}
