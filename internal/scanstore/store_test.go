package scanstore

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/aristath/georisk/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewStore(db, zerolog.Nop())
	require.NoError(t, store.EnsureSchema())
	return store
}

func TestStore_GetMissingScanReturnsNotOK(t *testing.T) {
	store := newTestStore(t)
	_, ok, err := store.Get("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutThenGetRoundTrips(t *testing.T) {
	store := newTestStore(t)
	result := domain.DetailedResult{
		ScanID:  "scan-1",
		Holding: domain.Holding{Name: "ACME Corp"},
	}
	require.NoError(t, store.Put(result))

	got, ok, err := store.Get("scan-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "scan-1", got.ScanID)
	assert.Equal(t, "ACME Corp", got.Holding.Name)
}

func TestStore_PutOverwritesExistingScanID(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put(domain.DetailedResult{ScanID: "scan-2", Holding: domain.Holding{Name: "First"}}))
	require.NoError(t, store.Put(domain.DetailedResult{ScanID: "scan-2", Holding: domain.Holding{Name: "Second"}}))

	got, ok, err := store.Get("scan-2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Second", got.Holding.Name)
}
