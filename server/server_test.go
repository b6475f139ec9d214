package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ryanb/mediavault/config"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/projection"
	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Server, storage.Store) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { store.Close() })

	proj := projection.New(store, 42)

	s := New(zap.NewNop().Sugar(), config.Server{ListenAddr: ":0"}, store, proj, nil, nil, nil,
		progress.New(), progress.New(), nil)
	return s, store
}

func TestServer_Healthz(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	s.Healthz().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("content-type"))

	var resp GenericResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Response)
}

func TestServer_List_Paginates(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		require.NoError(t, store.UpsertSeries(ctx, storage.Series{
			Path: "movies/" + name, Category: storage.CategoryMovies, Name: name,
		}))
	}
	require.NoError(t, s.projection.Rebuild(ctx))

	req := httptest.NewRequest(http.MethodGet, "/list?path=movies&limit=1&offset=1", nil)
	rr := httptest.NewRecorder()
	s.List().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Response []projection.GroupedSeries `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Response, 1)
}

func TestServer_List_MissingPath(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	rr := httptest.NewRecorder()
	s.List().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServer_SeriesDetail_SortsEpisodesNaturally(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertSeries(ctx, storage.Series{
		Path: "domestic-tv/Show", Category: storage.CategoryDomesticTV, Name: "Show",
	}))
	for _, title := range []string{"Episode 10", "Episode 2", "Episode 1"} {
		require.NoError(t, store.UpsertEpisode(ctx, storage.Episode{
			ID: "domestic-tv/Show/" + title, SeriesPath: "domestic-tv/Show", Title: title,
		}))
	}
	require.NoError(t, s.projection.Rebuild(ctx))

	req := httptest.NewRequest(http.MethodGet, "/api/series_detail?path=domestic-tv/Show", nil)
	rr := httptest.NewRecorder()
	s.SeriesDetail().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Response projection.GroupedSeries `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Response.Episodes, 3)
	assert.Equal(t, "Episode 1", resp.Response.Episodes[0].Title)
	assert.Equal(t, "Episode 2", resp.Response.Episodes[1].Title)
	assert.Equal(t, "Episode 10", resp.Response.Episodes[2].Title)
}

func TestServer_SeriesDetail_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/series_detail?path=movies/Missing", nil)
	rr := httptest.NewRecorder()
	s.SeriesDetail().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
