package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMulti(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "Inception", r.URL.Query().Get("query"))
		_ = json.NewEncoder(w).Encode(SearchResponse{Results: []SearchResult{
			{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", Popularity: 50},
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	resp, err := c.SearchMulti(context.Background(), "Inception", "en-US", nil)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Inception", resp.Results[0].DisplayTitle())
}

func TestGetMovieDetails_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	_, err := c.GetMovieDetails(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSeriesDetails_FetchesSeasons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tv/100":
			_ = json.NewEncoder(w).Encode(MediaDetails{ID: 100, Name: "Show", NumberOfSeasons: 1})
		case "/tv/100/season/1":
			_ = json.NewEncoder(w).Encode(struct {
				Episodes []Episode `json:"episodes"`
			}{Episodes: []Episode{{SeasonNumber: 1, EpisodeNumber: 1, Overview: "pilot"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	d, err := c.GetSeriesDetails(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, d.Episodes, 1)
	assert.Equal(t, "pilot", d.Episodes[0].Overview)
}
