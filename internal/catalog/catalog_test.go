package catalog

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestDefaultThemes_EightThemesAllActive(t *testing.T) {
	themes := DefaultThemes()
	require.Len(t, themes, 8)
	for _, theme := range themes {
		assert.True(t, theme.Active, "%s should default to active", theme.Name)
		assert.NotEmpty(t, theme.Keywords, "%s must have keywords", theme.Name)
		assert.Greater(t, theme.MinRelevanceThreshold, 0.0)
	}
}

func TestProvider_FallsBackToDefaultsWhenStoreEmpty(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	require.NoError(t, repo.EnsureSchema())

	p := NewProvider(repo, zerolog.Nop())
	assert.Len(t, p.ListActiveThemes(), 8)
}

func TestRepository_SeedIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db, zerolog.Nop())
	require.NoError(t, repo.EnsureSchema())
	require.NoError(t, repo.Seed())
	require.NoError(t, repo.Seed())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 8, count)
}
