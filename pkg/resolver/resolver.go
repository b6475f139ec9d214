// Package resolver implements the external resolver (C4): a multi-strategy
// search against the external movie/TV database with weighted candidate
// scoring, memoization, and negative caching.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ryanb/mediavault/pkg/cache"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/metacache"
	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/titleclean"
	"github.com/ryanb/mediavault/pkg/tmdb"
	"go.uber.org/zap"
)

// ErrForbidden is returned when the input was classified as not-a-work.
var ErrForbidden = errors.New("resolver: forbidden input")

// ErrLookupMiss is returned when every strategy was exhausted with no
// accepted candidate.
var ErrLookupMiss = errors.New("resolver: lookup miss")

const acceptThreshold = 50.0

// diagnosticsCapacity bounds the failure-diagnostic log the admin surface
// reads from, so a long run of consistently-unmatchable names can't grow it
// without limit.
const diagnosticsCapacity = 500

// PrimaryLanguage is the catalog's primary search language.
const PrimaryLanguage = "en-US"

// Candidate is a scored search result from one strategy.
type Candidate struct {
	tmdb.SearchResult
	Score float64
}

// Diagnostic is recorded on definitive failure for the admin surface.
type Diagnostic struct {
	RawName    string
	Cleaned    string
	Year       *int
	TopCandidates []Candidate
}

// Resolver resolves raw release names into enriched metadata records.
type Resolver struct {
	client      tmdb.ITmdb
	metaCache   *metacache.Cache
	diagnostics *cache.Cache[string, Diagnostic]
}

// New builds a Resolver.
func New(client tmdb.ITmdb, metaCache *metacache.Cache) *Resolver {
	return &Resolver{
		client:      client,
		metaCache:   metaCache,
		diagnostics: cache.NewBounded[string, Diagnostic](diagnosticsCapacity),
	}
}

// Diagnostics returns the bounded diagnostic log consulted by the admin UI.
func (r *Resolver) Diagnostics() *cache.Cache[string, Diagnostic] {
	return r.diagnostics
}

// preferredKind returns "movie" or "tv" when category implies one.
func preferredKind(category storage.Category) string {
	switch category {
	case storage.CategoryMovies:
		return "movie"
	case storage.CategoryForeignTV, storage.CategoryDomesticTV, storage.CategoryAnimation, storage.CategoryAiring:
		return "tv"
	default:
		return ""
	}
}

// Resolve implements the full C4 contract: strategy pipeline, scoring,
// detail fetch, and cache write-through.
func (r *Resolver) Resolve(ctx context.Context, rawName string, category storage.Category, ignoreCache bool) (*metacache.Record, error) {
	log := logger.FromCtx(ctx)

	cleaned := titleclean.Clean(rawName)
	if cleaned.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, rawName)
	}

	key := metacache.Key(cleaned.Title, cleaned.Year, category)

	if rec, found, err := r.metaCache.Lookup(ctx, key, ignoreCache); err != nil {
		return nil, err
	} else if found {
		if rec.Failed {
			return nil, fmt.Errorf("%w: %s (cached)", ErrLookupMiss, cleaned.Title)
		}
		return rec, nil
	}

	candidate, winnerKind, err := r.runStrategies(ctx, rawName, cleaned, category)
	if err != nil {
		r.recordFailure(ctx, key, rawName, cleaned, nil)
		return nil, err
	}

	rec, err := r.fetchFullRecord(ctx, candidate, winnerKind)
	if err != nil {
		log.Debugw("detail fetch failed after accepted candidate", zap.Error(err))
		r.recordFailure(ctx, key, rawName, cleaned, []Candidate{*candidate})
		return nil, fmt.Errorf("%w: %v", ErrLookupMiss, err)
	}

	if err := r.metaCache.Store(ctx, key, *rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Resolver) recordFailure(ctx context.Context, key, rawName string, cleaned titleclean.Result, top []Candidate) {
	_ = r.metaCache.Store(ctx, key, metacache.Record{Failed: true})
	r.diagnostics.Set(key, Diagnostic{
		RawName:       rawName,
		Cleaned:       cleaned.Title,
		Year:          cleaned.Year,
		TopCandidates: top,
	})
}

// runStrategies tries S0..S6 in order, returning the first accepted
// candidate. winnerKind is "movie" or "tv" based on the result's MediaType.
func (r *Resolver) runStrategies(ctx context.Context, rawName string, cleaned titleclean.Result, category storage.Category) (*Candidate, string, error) {
	kind := preferredKind(category)

	if cleaned.TMDbHint != nil {
		if c, k, ok := r.tryHint(ctx, *cleaned.TMDbHint); ok {
			return c, k, nil
		}
	}

	strategies := []func() ([]tmdb.SearchResult, error){
		func() ([]tmdb.SearchResult, error) { return r.search(ctx, cleaned.Title, PrimaryLanguage, cleaned.Year) },
		func() ([]tmdb.SearchResult, error) { return r.search(ctx, cleaned.Title, PrimaryLanguage, nil) },
	}
	for _, alt := range alternativeTitles(rawName) {
		alt := alt
		strategies = append(strategies, func() ([]tmdb.SearchResult, error) {
			return r.search(ctx, alt, PrimaryLanguage, nil)
		})
	}
	if hangul := hangulSubstring(cleaned.Title); hangul != "" {
		strategies = append(strategies, func() ([]tmdb.SearchResult, error) {
			return r.search(ctx, hangul, PrimaryLanguage, nil)
		})
	}
	if cjk := hanKanaSubstring(cleaned.Title); cjk != "" {
		strategies = append(strategies, func() ([]tmdb.SearchResult, error) {
			return r.search(ctx, cjk, "", nil)
		})
	}
	for _, seg := range splitSegments(cleaned.Title) {
		seg := seg
		strategies = append(strategies, func() ([]tmdb.SearchResult, error) {
			return r.search(ctx, seg, "", nil)
		})
	}

	for _, strat := range strategies {
		results, err := strat()
		if err != nil || len(results) == 0 {
			continue
		}
		candidates := score(results, cleaned, kind)
		if best := topAccepted(candidates); best != nil {
			return best, best.MediaType, nil
		}
	}

	return nil, "", fmt.Errorf("%w: %s", ErrLookupMiss, cleaned.Title)
}

func (r *Resolver) search(ctx context.Context, query, language string, year *int) ([]tmdb.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	resp, err := r.client.SearchMulti(ctx, query, language, year)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Results, nil
}

func (r *Resolver) tryHint(ctx context.Context, id int) (*Candidate, string, bool) {
	if d, err := r.client.GetMovieDetails(ctx, id); err == nil {
		return &Candidate{SearchResult: tmdb.SearchResult{ID: d.ID, Title: d.Title, ReleaseDate: d.ReleaseDate, PosterPath: d.PosterPath, MediaType: "movie"}, Score: 1000}, "movie", true
	}
	if d, err := r.client.GetSeriesDetails(ctx, id); err == nil {
		return &Candidate{SearchResult: tmdb.SearchResult{ID: d.ID, Name: d.Name, FirstAirDate: d.FirstAirDate, PosterPath: d.PosterPath, MediaType: "tv"}, Score: 1000}, "tv", true
	}
	return nil, "", false
}

func (r *Resolver) fetchFullRecord(ctx context.Context, c *Candidate, kind string) (*metacache.Record, error) {
	rec := &metacache.Record{}

	if kind == "movie" {
		d, err := r.client.GetMovieDetails(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		rec.TmdbID = fmt.Sprintf("movie:%d", d.ID)
		fillFromDetails(rec, d)
		return rec, nil
	}

	d, err := r.client.GetSeriesDetails(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	rec.TmdbID = fmt.Sprintf("tv:%d", d.ID)
	rec.SeasonCount = d.NumberOfSeasons
	fillFromDetails(rec, d)

	if len(d.Episodes) > 0 {
		rec.Episodes = make(map[string]metacache.EpPair, len(d.Episodes))
		for _, e := range d.Episodes {
			rec.Episodes[metacache.EpisodeKey(e.SeasonNumber, e.EpisodeNumber)] = metacache.EpPair{
				Overview:  e.Overview,
				AirDate:   e.AirDate,
				StillPath: e.StillPath,
			}
		}
	}
	return rec, nil
}

func fillFromDetails(rec *metacache.Record, d *tmdb.MediaDetails) {
	rec.PosterPath = d.PosterPath
	rec.Overview = d.Overview
	rec.Rating = d.VoteAverage
	for _, g := range d.Genres {
		rec.GenreIDs = append(rec.GenreIDs, g.ID)
		rec.GenreNames = append(rec.GenreNames, g.Name)
	}
	for _, c := range d.Credits.Crew {
		if c.Job == "Director" {
			rec.Director = c.Name
			break
		}
	}
	for i, c := range d.Credits.Cast {
		if i >= 10 {
			break
		}
		rec.Actors = append(rec.Actors, storage.Actor{Name: c.Name, Profile: c.ProfilePath, Role: c.Character})
	}
	dateStr := d.ReleaseDate
	if dateStr == "" {
		dateStr = d.FirstAirDate
	}
	if len(dateStr) >= 4 {
		var y int
		if _, err := fmt.Sscanf(dateStr[:4], "%d", &y); err == nil {
			rec.Year = y
		}
	}
}

var hangulPattern = regexp.MustCompile(`[\x{AC00}-\x{D7A3}]+`)
var hanKanaPattern = regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3040}-\x{30FF}]+`)
var bracketContentPattern = regexp.MustCompile(`[\[({]([^\[\]{}()]+)[\]})]`)
var segmentSplitPattern = regexp.MustCompile(`[-:～]`)

func hangulSubstring(title string) string {
	return strings.TrimSpace(hangulPattern.FindString(title))
}

func hanKanaSubstring(title string) string {
	return strings.TrimSpace(hanKanaPattern.FindString(title))
}

func alternativeTitles(raw string) []string {
	matches := bracketContentPattern.FindAllStringSubmatch(raw, -1)
	var out []string
	for _, m := range matches {
		t := strings.TrimSpace(m[1])
		if len([]rune(t)) >= 2 {
			out = append(out, t)
		}
	}
	return out
}

func splitSegments(title string) []string {
	parts := segmentSplitPattern.Split(title, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	if len(out) <= 1 {
		return nil
	}
	return out
}
