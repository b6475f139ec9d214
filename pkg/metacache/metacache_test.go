package metacache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) storage.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKey_CategoryParticipates(t *testing.T) {
	year := 2010
	movieKey := Key("Inception", &year, storage.CategoryMovies)
	tvKey := Key("Inception", &year, storage.CategoryDomesticTV)
	assert.NotEqual(t, movieKey, tvKey)
}

func TestLookupAndStore(t *testing.T) {
	ctx := context.Background()
	c := New(newStore(t))

	key := Key("Inception", nil, storage.CategoryMovies)

	_, found, err := c.Lookup(ctx, key, false)
	require.NoError(t, err)
	assert.False(t, found)

	rec := Record{TmdbID: "movie:27205", Overview: "a dream within a dream"}
	require.NoError(t, c.Store(ctx, key, rec))

	got, found, err := c.Lookup(ctx, key, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec.TmdbID, got.TmdbID)
}

func TestLookup_NegativeCaching(t *testing.T) {
	ctx := context.Background()
	c := New(newStore(t))
	key := Key("Unknown Title", nil, storage.CategoryMovies)

	require.NoError(t, c.Store(ctx, key, Record{Failed: true}))

	got, found, err := c.Lookup(ctx, key, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Failed)
}

func TestLookup_IgnoreCacheBypasses(t *testing.T) {
	ctx := context.Background()
	c := New(newStore(t))
	key := Key("Inception", nil, storage.CategoryMovies)
	require.NoError(t, c.Store(ctx, key, Record{TmdbID: "movie:27205"}))

	_, found, err := c.Lookup(ctx, key, true)
	require.NoError(t, err)
	assert.False(t, found)
}
