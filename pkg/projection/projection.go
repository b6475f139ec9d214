// Package projection implements the projection cache (C8): a read-optimized
// in-memory snapshot of the catalog store, organized by category and by
// series-group, answering list/section/home queries in constant time.
package projection

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/ryanb/mediavault/pkg/cache"
	"github.com/ryanb/mediavault/pkg/storage"
)

const (
	todaysPicksSize     = 40
	recentlyReleasedCap = 100
	genreSectionSize    = 60
	genreSectionMin     = 5
	genreSectionCount   = 3
	entireListCap       = 800
	hotRightNowSize     = 100
	liveAiringCap       = 100

	// sectionsCacheCapacity bounds the per-(category,keyword) section cache;
	// keyword is free text from the client, so an unbounded cache keyed by it
	// would grow without limit.
	sectionsCacheCapacity = 500

	// detailCacheCapacity bounds the per-path series-detail cache fronting
	// FindByPath's linear scan.
	detailCacheCapacity = 200
)

// GroupedSeries is one client-visible card: the enriched fields of its
// representative Series plus every Episode across the group's members.
type GroupedSeries struct {
	GroupKey    string
	Path        string
	Category    storage.Category
	Name        string
	CleanedName *string
	Year        *int
	TmdbID      *string
	Failed      bool
	PosterPath  *string
	Overview    *string
	Rating      *float64
	SeasonCount *int
	GenreIDs    []int
	GenreNames  []string
	Director    *string
	Actors      []storage.Actor
	Episodes    []storage.Episode
}

// Section is a named, ordered list of cards, e.g. "Today's picks".
type Section struct {
	Title string
	Items []GroupedSeries
}

// groupKey implements the §4.8 grouping rule, resolved here rather than as
// a global tmdbId collapse across categories: grouping is scoped to a single
// category, since the series detail endpoint filters by category and a
// movie and a same-named TV series are distinct cards even when TMDb
// happens to reuse an id across kinds.
func groupKey(s storage.Series) string {
	if s.TmdbID != nil && *s.TmdbID != "" {
		return string(s.Category) + "|tmdb:" + *s.TmdbID
	}
	cleaned := s.Name
	if s.CleanedName != nil {
		cleaned = *s.CleanedName
	}
	year := ""
	if s.YearVal != nil {
		year = fmt.Sprintf("%d", *s.YearVal)
	}
	return string(s.Category) + "|name:" + cleaned + "_" + year
}

// Cache is the projection cache. All reads take a shared lock; Rebuild
// replaces the snapshot atomically under an exclusive lock.
type Cache struct {
	store storage.Store

	rngMu sync.Mutex
	rng   *rand.Rand

	mu         sync.RWMutex
	byCategory map[storage.Category][]GroupedSeries
	sections   *cache.Cache[string, []Section]
	detail     *cache.Cache[string, GroupedSeries]
}

// New builds an empty Cache. seed fixes the shuffle order for deterministic
// testing (P5); production callers pass a time-derived seed at startup.
func New(store storage.Store, seed int64) *Cache {
	return &Cache{
		store:      store,
		rng:        rand.New(rand.NewSource(seed)),
		byCategory: map[storage.Category][]GroupedSeries{},
		sections:   cache.NewBounded[string, []Section](sectionsCacheCapacity),
		detail:     cache.NewBounded[string, GroupedSeries](detailCacheCapacity),
	}
}

// Rebuild reloads the snapshot from the store. It is safe to call
// concurrently with reads; readers observe either the old or new snapshot,
// never a partial one.
func (c *Cache) Rebuild(ctx context.Context) error {
	categories := []storage.Category{
		storage.CategoryMovies, storage.CategoryForeignTV, storage.CategoryDomesticTV,
		storage.CategoryAnimation, storage.CategoryAiring,
	}

	next := map[storage.Category][]GroupedSeries{}
	for _, cat := range categories {
		series, err := c.store.ListSeries(ctx, storage.SeriesFilter{Category: cat})
		if err != nil {
			return fmt.Errorf("projection rebuild %s: %w", cat, err)
		}
		grouped, err := c.group(ctx, series)
		if err != nil {
			return err
		}
		next[cat] = grouped
	}

	c.mu.Lock()
	c.byCategory = next
	c.sections = cache.NewBounded[string, []Section](sectionsCacheCapacity)
	c.detail = cache.NewBounded[string, GroupedSeries](detailCacheCapacity)
	c.mu.Unlock()
	return nil
}

func (c *Cache) group(ctx context.Context, series []storage.Series) ([]GroupedSeries, error) {
	index := map[string]*GroupedSeries{}
	var order []string

	for _, s := range series {
		key := groupKey(s)
		g, ok := index[key]
		if !ok {
			g = &GroupedSeries{
				GroupKey: key, Path: s.Path, Category: s.Category, Name: s.Name,
				CleanedName: s.CleanedName, Year: s.Year, TmdbID: s.TmdbID, Failed: s.Failed,
				PosterPath: s.PosterPath, Overview: s.Overview, Rating: s.Rating,
				SeasonCount: s.SeasonCount, GenreIDs: s.GenreIDs, GenreNames: s.GenreNames,
				Director: s.Director, Actors: s.Actors,
			}
			index[key] = g
			order = append(order, key)
		}

		episodes, err := c.store.ListEpisodesBySeries(ctx, s.Path)
		if err != nil {
			return nil, fmt.Errorf("list episodes for %s: %w", s.Path, err)
		}
		g.Episodes = append(g.Episodes, episodes...)
	}

	out := make([]GroupedSeries, 0, len(order))
	for _, k := range order {
		out = append(out, *index[k])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// ByCategory returns a snapshot copy of the category's grouped list,
// optionally filtered to cards whose path or name contains keyword,
// case-insensitively.
func (c *Cache) ByCategory(category storage.Category, keyword string) []GroupedSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.byCategory[category]
	if keyword == "" {
		out := make([]GroupedSeries, len(items))
		copy(out, items)
		return out
	}
	var filtered []GroupedSeries
	for _, g := range items {
		if containsFold(g.Path, keyword) || containsFold(g.Name, keyword) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// FindByPath returns the group carrying the given series path, if any.
func (c *Cache) FindByPath(category storage.Category, path string) (*GroupedSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.byCategory[category] {
		if g.Path == path {
			cp := g
			return &cp, true
		}
	}
	return nil, false
}

// DetailByPath is FindByPath fronted by a bounded per-path cache, so a
// client repeatedly reloading the same series-detail page doesn't re-scan
// every category's group list on each request.
func (c *Cache) DetailByPath(category storage.Category, path string) (*GroupedSeries, bool) {
	key := string(category) + "|" + path

	c.mu.RLock()
	detail := c.detail
	c.mu.RUnlock()

	if g, ok := detail.Get(key); ok {
		cp := g
		return &cp, true
	}
	g, ok := c.FindByPath(category, path)
	if !ok {
		return nil, false
	}
	detail.Set(key, *g)
	return g, true
}

// Search returns every card across all categories whose name or path
// contains q, case-insensitively.
func (c *Cache) Search(q string) []GroupedSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []GroupedSeries
	for _, items := range c.byCategory {
		for _, g := range items {
			if containsFold(g.Path, q) || containsFold(g.Name, q) {
				out = append(out, g)
			}
		}
	}
	return out
}

// shuffleCopy returns a pseudo-random permutation of items, capped at n,
// drawn from the cache's seeded generator.
func (c *Cache) shuffleCopy(items []GroupedSeries, n int) []GroupedSeries {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	perm := c.rng.Perm(len(items))
	if n > len(perm) {
		n = len(perm)
	}
	out := make([]GroupedSeries, n)
	for i := 0; i < n; i++ {
		out[i] = items[perm[i]]
	}
	return out
}
