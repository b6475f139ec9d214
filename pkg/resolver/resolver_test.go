package resolver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ryanb/mediavault/pkg/metacache"
	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/storage/sqlite"
	"github.com/ryanb/mediavault/pkg/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTMDB struct {
	searchResults []tmdb.SearchResult
	movies        map[int]*tmdb.MediaDetails
	series        map[int]*tmdb.MediaDetails
}

func (f *fakeTMDB) SearchMulti(ctx context.Context, query, language string, year *int) (*tmdb.SearchResponse, error) {
	return &tmdb.SearchResponse{Results: f.searchResults}, nil
}

func (f *fakeTMDB) GetMovieDetails(ctx context.Context, id int) (*tmdb.MediaDetails, error) {
	if d, ok := f.movies[id]; ok {
		return d, nil
	}
	return nil, tmdb.ErrNotFound
}

func (f *fakeTMDB) GetSeriesDetails(ctx context.Context, id int) (*tmdb.MediaDetails, error) {
	if d, ok := f.series[id]; ok {
		return d, nil
	}
	return nil, tmdb.ErrNotFound
}

func (f *fakeTMDB) GetSeasonEpisodes(ctx context.Context, seriesID, seasonNumber int) ([]tmdb.Episode, error) {
	return nil, nil
}

func newMetaCache(t *testing.T) *metacache.Cache {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return metacache.New(s)
}

func TestResolve_RankingPrefersKindForCategory(t *testing.T) {
	fake := &fakeTMDB{
		searchResults: []tmdb.SearchResult{
			{ID: 1, Title: "Taxi Driver", ReleaseDate: "1976-02-08", Popularity: 50, MediaType: "movie"},
			{ID: 2, Name: "Taxi Driver", FirstAirDate: "2021-01-01", Popularity: 120, MediaType: "tv"},
			{ID: 3, Name: "Taxi Driver", FirstAirDate: "2017-01-01", Popularity: 30, MediaType: "tv"},
		},
		movies: map[int]*tmdb.MediaDetails{1: {ID: 1, Title: "Taxi Driver", ReleaseDate: "1976-02-08"}},
		series: map[int]*tmdb.MediaDetails{2: {ID: 2, Name: "Taxi Driver", FirstAirDate: "2021-01-01"}},
	}

	r := New(fake, newMetaCache(t))

	rec, err := r.Resolve(context.Background(), "Taxi Driver 1976.mkv", storage.CategoryMovies, false)
	require.NoError(t, err)
	assert.Equal(t, "movie:1", rec.TmdbID)

	rec2, err := r.Resolve(context.Background(), "Taxi Driver S01.mkv", storage.CategoryDomesticTV, false)
	require.NoError(t, err)
	assert.Equal(t, "tv:2", rec2.TmdbID)
}

func TestResolve_ForbiddenInput(t *testing.T) {
	fake := &fakeTMDB{}
	r := New(fake, newMetaCache(t))
	_, err := r.Resolve(context.Background(), "Inception Behind the Scenes.mkv", storage.CategoryMovies, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResolve_MissCachesFailure(t *testing.T) {
	fake := &fakeTMDB{}
	mc := newMetaCache(t)
	r := New(fake, mc)

	_, err := r.Resolve(context.Background(), "Totally Unknown Movie 2099.mkv", storage.CategoryMovies, false)
	assert.ErrorIs(t, err, ErrLookupMiss)

	// second call should hit the cached failure without calling out again
	_, err = r.Resolve(context.Background(), "Totally Unknown Movie 2099.mkv", storage.CategoryMovies, false)
	assert.ErrorIs(t, err, ErrLookupMiss)
}
