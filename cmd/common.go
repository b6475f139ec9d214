package cmd

import (
	"net/http"
	"time"

	"github.com/ryanb/mediavault/config"
	mhttp "github.com/ryanb/mediavault/pkg/http"
	"github.com/ryanb/mediavault/pkg/metacache"
	"github.com/ryanb/mediavault/pkg/pathresolve"
	"github.com/ryanb/mediavault/pkg/resolver"
	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/storage/sqlite"
	"github.com/ryanb/mediavault/pkg/tmdb"
)

// categoryRoots returns the fixed category -> on-disk-root mapping from config.
func categoryRoots(lib config.Library) map[storage.Category]string {
	return map[storage.Category]string{
		storage.CategoryMovies:     lib.Movies,
		storage.CategoryForeignTV:  lib.ForeignTV,
		storage.CategoryDomesticTV: lib.DomesticTV,
		storage.CategoryAnimation:  lib.Animation,
		storage.CategoryAiring:     lib.Airing,
	}
}

// pathResolver builds the filesystem resolver keyed by category label.
func pathResolver(lib config.Library) *pathresolve.Resolver {
	roots := make(map[string]string, 5)
	for cat, root := range categoryRoots(lib) {
		roots[string(cat)] = root
	}
	return pathresolve.New(roots)
}

func newStore(cfg config.Storage) (storage.Store, error) {
	return sqlite.New(cfg.FilePath)
}

func newResolver(cfg config.TMDB, store storage.Store) *resolver.Resolver {
	// Metadata requests use a fixed 10s timeout.
	httpClient := mhttp.NewRateLimitedHTTPClient(mhttp.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	client := tmdb.New(cfg.Scheme+"://"+cfg.Host, cfg.APIKey, tmdb.WithHTTPClient(httpClient))
	cache := metacache.New(store)
	return resolver.New(client, cache)
}
