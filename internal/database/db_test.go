package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchemaOwner struct {
	calls int
	err   error
}

func (f *fakeSchemaOwner) EnsureSchema() error {
	f.calls++
	return f.err
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{Path: "file::memory:?cache=shared", Name: "georisk"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_CallsEnsureSchemaOnEveryOwner(t *testing.T) {
	db := newTestDB(t)
	a := &fakeSchemaOwner{}
	b := &fakeSchemaOwner{}

	require.NoError(t, db.Migrate(a, b))
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestMigrate_StopsAndReturnsErrorIfAnOwnerFails(t *testing.T) {
	db := newTestDB(t)
	ok := &fakeSchemaOwner{}
	failing := &fakeSchemaOwner{err: assert.AnError}
	never := &fakeSchemaOwner{}

	err := db.Migrate(ok, failing, never)
	require.Error(t, err)
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 0, never.calls)
}

func TestHealthCheck_PassesForFreshDatabase(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.HealthCheck(context.Background()))
}
