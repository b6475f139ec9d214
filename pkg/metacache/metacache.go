// Package metacache implements the tiered metadata cache (C3): a bounded
// in-process memo backed by the catalog store's durable resolver-cache
// table.
package metacache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ryanb/mediavault/pkg/cache"
	"github.com/ryanb/mediavault/pkg/storage"
	"golang.org/x/text/unicode/norm"
)

// Record is the enriched metadata payload for one resolved work, or a
// negative marker for a definitive failure.
type Record struct {
	TmdbID      string            `json:"tmdbId,omitempty"`
	PosterPath  string            `json:"posterPath,omitempty"`
	Year        int               `json:"year,omitempty"`
	Overview    string            `json:"overview,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	SeasonCount int               `json:"seasonCount,omitempty"`
	GenreIDs    []int             `json:"genreIds,omitempty"`
	GenreNames  []string          `json:"genreNames,omitempty"`
	Director    string            `json:"director,omitempty"`
	Actors      []storage.Actor   `json:"actors,omitempty"`
	Episodes    map[string]EpPair `json:"episodes,omitempty"`

	Failed    bool `json:"failed,omitempty"`
	Forbidden bool `json:"forbidden,omitempty"`
}

// EpPair is one per-episode metadata record, keyed by "season#_episode#" in
// Record.Episodes.
type EpPair struct {
	Overview  string `json:"overview,omitempty"`
	AirDate   string `json:"airDate,omitempty"`
	StillPath string `json:"stillPath,omitempty"`
}

// EpisodeKey formats the map key used in Record.Episodes.
func EpisodeKey(season, episode int) string {
	return fmt.Sprintf("%d_%d", season, episode)
}

// memoCapacity bounds the in-process tier so a long-running process doesn't
// grow it unbounded across many distinct cleaned-name/year/category keys.
const memoCapacity = 5000

// Cache is the tiered metadata cache.
type Cache struct {
	memo  *cache.Cache[string, Record]
	store storage.Store
}

// New builds a Cache backed by store for its durable tier.
func New(store storage.Store) *Cache {
	return &Cache{
		memo:  cache.NewBounded[string, Record](memoCapacity),
		store: store,
	}
}

// Key computes the MD5 hash of NFC(cleaned + "_" + year + "_" + category).
func Key(cleaned string, year *int, category storage.Category) string {
	yearStr := ""
	if year != nil {
		yearStr = fmt.Sprintf("%d", *year)
	}
	raw := norm.NFC.String(fmt.Sprintf("%s_%s_%s", cleaned, yearStr, category))
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached record for key, consulting the in-process memo
// first and falling through to the durable tier. ignoreCache bypasses both
// tiers for reads but does not clear a prior negative entry on its own.
func (c *Cache) Lookup(ctx context.Context, key string, ignoreCache bool) (*Record, bool, error) {
	if ignoreCache {
		return nil, false, nil
	}

	if rec, ok := c.memo.Get(key); ok {
		return &rec, true, nil
	}

	row, err := c.store.GetCacheEntry(ctx, key)
	if err == storage.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("metacache lookup %s: %w", key, err)
	}

	var rec Record
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return nil, false, fmt.Errorf("metacache decode %s: %w", key, err)
	}
	c.memo.Set(key, rec)
	return &rec, true, nil
}

// Store writes rec to both tiers, including negative (failed) records.
func (c *Cache) Store(ctx context.Context, key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("metacache encode %s: %w", key, err)
	}
	if err := c.store.PutCacheEntry(ctx, storage.ResolverCacheRow{Hash: key, Data: data}); err != nil {
		return fmt.Errorf("metacache store %s: %w", key, err)
	}
	c.memo.Set(key, rec)
	return nil
}

// Invalidate removes key from the in-process memo, so the next Lookup
// consults the durable tier.
func (c *Cache) Invalidate(key string) {
	c.memo.Delete(key)
}
