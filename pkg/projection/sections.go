package projection

import (
	"sort"

	"github.com/ryanb/mediavault/pkg/storage"
)

// Sections composes the up-to-four section list for a category, optionally
// filtered to paths/names containing keyword. Results are cached by
// (category, keyword) until the next Rebuild.
func (c *Cache) Sections(category storage.Category, keyword string, currentYear int) []Section {
	cacheKey := string(category) + "|" + keyword

	c.mu.RLock()
	sections := c.sections
	c.mu.RUnlock()

	if s, ok := sections.Get(cacheKey); ok {
		return s
	}

	items := c.ByCategory(category, keyword)
	built := c.buildSections(items, currentYear)
	sections.Set(cacheKey, built)

	return built
}

func (c *Cache) buildSections(items []GroupedSeries, currentYear int) []Section {
	var sections []Section

	if picks := c.shuffleCopy(items, todaysPicksSize); len(picks) > 0 {
		sections = append(sections, Section{Title: "Today's picks", Items: picks})
	}

	if recent := recentlyReleased(items, currentYear); len(recent) > 0 {
		sections = append(sections, Section{Title: "Recently released", Items: recent})
	}

	for _, genre := range topGenres(items, genreSectionCount, genreSectionMin) {
		matching := filterByGenre(items, genre)
		picks := c.shuffleCopy(matching, genreSectionSize)
		if len(picks) > 0 {
			sections = append(sections, Section{Title: genre, Items: picks})
		}
	}

	entire := items
	if len(entire) > entireListCap {
		entire = entire[:entireListCap]
	}
	sections = append(sections, Section{Title: "Entire list", Items: entire})

	return sections
}

func recentlyReleased(items []GroupedSeries, currentYear int) []GroupedSeries {
	var out []GroupedSeries
	for _, g := range items {
		if g.Year != nil && *g.Year >= currentYear-1 {
			out = append(out, g)
		}
		if len(out) >= recentlyReleasedCap {
			break
		}
	}
	return out
}

type genreCount struct {
	name  string
	count int
}

func topGenres(items []GroupedSeries, count, minItems int) []string {
	counts := map[string]int{}
	var order []string
	for _, g := range items {
		for _, name := range g.GenreNames {
			if _, ok := counts[name]; !ok {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	ranked := make([]genreCount, 0, len(order))
	for _, name := range order {
		if counts[name] >= minItems {
			ranked = append(ranked, genreCount{name, counts[name]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })

	if len(ranked) > count {
		ranked = ranked[:count]
	}
	names := make([]string, len(ranked))
	for i, gc := range ranked {
		names[i] = gc.name
	}
	return names
}

func filterByGenre(items []GroupedSeries, genre string) []GroupedSeries {
	var out []GroupedSeries
	for _, g := range items {
		for _, name := range g.GenreNames {
			if name == genre {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// Home composes the home-page sections: "Hottest right now" (movies ∪
// domestic-tv, deduplicated by grouping key) and "Live airing" (airing
// items not already sampled into the first section).
func (c *Cache) Home(currentYear int) []Section {
	movies := c.ByCategory(storage.CategoryMovies, "")
	domestic := c.ByCategory(storage.CategoryDomesticTV, "")

	seen := map[string]bool{}
	var union []GroupedSeries
	for _, g := range append(movies, domestic...) {
		if seen[g.GroupKey] {
			continue
		}
		seen[g.GroupKey] = true
		union = append(union, g)
	}

	hottest := c.shuffleCopy(union, hotRightNowSize)
	hottestKeys := map[string]bool{}
	for _, g := range hottest {
		hottestKeys[g.GroupKey] = true
	}

	airing := c.ByCategory(storage.CategoryAiring, "")
	var liveAiring []GroupedSeries
	for _, g := range airing {
		if hottestKeys[g.GroupKey] {
			continue
		}
		liveAiring = append(liveAiring, g)
		if len(liveAiring) >= liveAiringCap {
			break
		}
	}

	return []Section{
		{Title: "Hottest right now", Items: hottest},
		{Title: "Live airing", Items: liveAiring},
	}
}
