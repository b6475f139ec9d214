// Package tmdb is a hand-written client for the external movie/TV database
// the resolver (C4) queries. It exposes the same ITmdb/Client shape the
// teacher's oapi-codegen-generated client did, calling the REST surface
// directly instead of going through generated request/response types.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// HTTPDoer is the subset of *http.Client the tmdb client needs; satisfied
// by pkg/http.RateLimitedClient.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ITmdb is the interface the resolver programs against.
type ITmdb interface {
	SearchMulti(ctx context.Context, query, language string, year *int) (*SearchResponse, error)
	GetMovieDetails(ctx context.Context, id int) (*MediaDetails, error)
	GetSeriesDetails(ctx context.Context, id int) (*MediaDetails, error)
	GetSeasonEpisodes(ctx context.Context, seriesID, seasonNumber int) ([]Episode, error)
}

// Client is the concrete ITmdb implementation.
type Client struct {
	baseURL string
	apiKey  string
	http    HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP doer, e.g. with
// pkg/http.RateLimitedClient.
func WithHTTPClient(c HTTPDoer) Option {
	return func(t *Client) { t.http = c }
}

// New builds a Client against baseURL (scheme+host) using apiKey for every
// request.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchResult is one candidate entry returned by a search endpoint.
type SearchResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
}

// DisplayTitle returns Title for movies, Name for TV results.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// Date returns ReleaseDate for movies, FirstAirDate for TV results.
func (r SearchResult) Date() string {
	if r.ReleaseDate != "" {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// SearchResponse wraps the results page.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Genre is one genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one credited actor.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is one credited crew member.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits bundles cast and crew.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Episode is one per-episode record from a season's episode list.
type Episode struct {
	SeasonNumber  int    `json:"season_number"`
	EpisodeNumber int    `json:"episode_number"`
	Overview      string `json:"overview"`
	AirDate       string `json:"air_date"`
	StillPath     string `json:"still_path"`
}

// MediaDetails is the full detail record for a movie or TV result.
type MediaDetails struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	Popularity       float64 `json:"popularity"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	Genres           []Genre `json:"genres"`
	Credits          Credits `json:"credits"`
	Episodes         []Episode
}

// DisplayTitle returns Title for movies, Name for TV results.
func (m MediaDetails) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Date returns ReleaseDate for movies, FirstAirDate for TV results.
func (m MediaDetails) Date() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("append_to_response", "credits,content_ratings")

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrHTTP, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// SearchMulti performs a combined movie+TV title search.
func (c *Client) SearchMulti(ctx context.Context, query, language string, year *int) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("query", query)
	if language != "" {
		q.Set("language", language)
	}
	if year != nil {
		q.Set("year", strconv.Itoa(*year))
	}

	var resp SearchResponse
	if err := c.get(ctx, "/search/multi", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMovieDetails fetches the full movie detail record by id.
func (c *Client) GetMovieDetails(ctx context.Context, id int) (*MediaDetails, error) {
	var d MediaDetails
	path := fmt.Sprintf("/movie/%d", id)
	if err := c.get(ctx, path, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetSeriesDetails fetches the full TV detail record by id, including every
// season's episode list.
func (c *Client) GetSeriesDetails(ctx context.Context, id int) (*MediaDetails, error) {
	var d MediaDetails
	path := fmt.Sprintf("/tv/%d", id)
	if err := c.get(ctx, path, nil, &d); err != nil {
		return nil, err
	}

	for season := 1; season <= d.NumberOfSeasons; season++ {
		eps, err := c.GetSeasonEpisodes(ctx, id, season)
		if err != nil {
			continue
		}
		d.Episodes = append(d.Episodes, eps...)
	}
	return &d, nil
}

// GetSeasonEpisodes fetches one season's episode list.
func (c *Client) GetSeasonEpisodes(ctx context.Context, seriesID, seasonNumber int) ([]Episode, error) {
	var season struct {
		Episodes []Episode `json:"episodes"`
	}
	path := fmt.Sprintf("/tv/%d/season/%d", seriesID, seasonNumber)
	if err := c.get(ctx, path, nil, &season); err != nil {
		return nil, err
	}
	return season.Episodes, nil
}
