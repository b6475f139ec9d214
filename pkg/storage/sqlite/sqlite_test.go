package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeriesLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sr := storage.Series{Path: "movies/Inception", Category: storage.CategoryMovies, Name: "Inception (2010)"}
	require.NoError(t, s.UpsertSeries(ctx, sr))

	got, err := s.GetSeries(ctx, sr.Path)
	require.NoError(t, err)
	assert.Equal(t, sr.Name, got.Name)
	assert.False(t, got.Failed)
	assert.Nil(t, got.TmdbID)

	year := 2010
	require.NoError(t, s.SetSeriesCleaned(ctx, sr.Path, "Inception", &year))
	got, err = s.GetSeries(ctx, sr.Path)
	require.NoError(t, err)
	require.NotNil(t, got.CleanedName)
	assert.Equal(t, "Inception", *got.CleanedName)

	require.NoError(t, s.SetSeriesEnriched(ctx, sr.Path, storage.SeriesEnrichment{
		TmdbID: "movie:27205",
		Year:   &year,
	}))
	got, err = s.GetSeries(ctx, sr.Path)
	require.NoError(t, err)
	require.NotNil(t, got.TmdbID)
	assert.Equal(t, "movie:27205", *got.TmdbID)
	assert.False(t, got.Failed)

	require.NoError(t, s.SetSeriesFailed(ctx, sr.Path, true))
	got, err = s.GetSeries(ctx, sr.Path)
	require.NoError(t, err)
	assert.True(t, got.Failed)
	assert.Nil(t, got.TmdbID)
}

func TestGetSeries_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSeries(context.Background(), "movies/does-not-exist")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEpisodeReconciliation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sr := storage.Series{Path: "movies/Inception", Category: storage.CategoryMovies, Name: "Inception"}
	require.NoError(t, s.UpsertSeries(ctx, sr))

	e1 := storage.Episode{ID: "abc", SeriesPath: sr.Path, Title: "Inception.mkv", VideoURL: "/video_serve?path=movies/Inception/Inception.mkv"}
	e2 := storage.Episode{ID: "def", SeriesPath: sr.Path, Title: "Inception.2.mkv", VideoURL: "/video_serve?path=movies/Inception/Inception.2.mkv"}
	require.NoError(t, s.UpsertEpisode(ctx, e1))
	require.NoError(t, s.UpsertEpisode(ctx, e2))

	ids, err := s.ListEpisodeIDsByCategory(ctx, storage.CategoryMovies)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"abc", "def"}, ids)

	// simulate a rescan that only sees e1
	n, err := s.DeleteEpisodesNotIn(ctx, storage.CategoryMovies, []string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	eps, err := s.ListEpisodesBySeries(ctx, sr.Path)
	require.NoError(t, err)
	require.Len(t, eps, 1)
	assert.Equal(t, "abc", eps[0].ID)

	n, err = s.DeleteOrphanedSeries(ctx, storage.CategoryMovies)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = s.DeleteEpisodesNotIn(ctx, storage.CategoryMovies, nil)
	require.NoError(t, err)
	n, err = s.DeleteOrphanedSeries(ctx, storage.CategoryMovies)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.GetSeries(ctx, sr.Path)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestResolverCache(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	row := storage.ResolverCacheRow{Hash: "abc123", Data: []byte(`{"failed":true}`)}
	require.NoError(t, s.PutCacheEntry(ctx, row))

	got, err := s.GetCacheEntry(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, row.Data, got.Data)

	_, err = s.GetCacheEntry(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestColumnReconciliation(t *testing.T) {
	s := newTestStore(t)
	cols, err := tableColumns(s.db, "series")
	require.NoError(t, err)
	for _, want := range expectedColumns["series"] {
		assert.True(t, cols[want], "missing column %s", want)
	}
}

func TestClearFailed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok := storage.Series{Path: "movies/Ok", Category: storage.CategoryMovies, Name: "Ok"}
	failed := storage.Series{Path: "movies/Failed", Category: storage.CategoryMovies, Name: "Failed"}
	require.NoError(t, s.UpsertSeries(ctx, ok))
	require.NoError(t, s.UpsertSeries(ctx, failed))
	require.NoError(t, s.SetSeriesFailed(ctx, failed.Path, true))

	require.NoError(t, s.ClearFailed(ctx))

	got, err := s.GetSeries(ctx, failed.Path)
	require.NoError(t, err)
	assert.False(t, got.Failed)

	got, err = s.GetSeries(ctx, ok.Path)
	require.NoError(t, err)
	assert.False(t, got.Failed)
}

func TestServerConfig(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, ok, err := s.GetConfig(ctx, "scan_done_movies")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetConfig(ctx, "scan_done_movies", "true"))
	require.NoError(t, s.SetConfig(ctx, "scan_done_foreign-tv", "true"))
	require.NoError(t, s.SetConfig(ctx, "last_scan_version", "3"))

	v, ok, err := s.GetConfig(ctx, "scan_done_movies")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", v)

	require.NoError(t, s.SetConfig(ctx, "scan_done_movies", "false"))
	v, ok, err = s.GetConfig(ctx, "scan_done_movies")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", v)

	require.NoError(t, s.ClearConfigPrefix(ctx, "scan_done_"))

	_, ok, err = s.GetConfig(ctx, "scan_done_movies")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.GetConfig(ctx, "scan_done_foreign-tv")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.GetConfig(ctx, "last_scan_version")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", v)
}
