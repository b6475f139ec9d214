package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/maruel/natural"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/projection"
	"github.com/ryanb/mediavault/pkg/storage"
)

func errMissingParam(name string) error {
	return errors.New("missing or invalid required parameter: " + name)
}

// Home returns the curated home page sections.
func (s *Server) Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections := s.projection.Home(time.Now().Year())
		writeResponse(w, http.StatusOK, GenericResponse{Response: sections})
	}
}

// CategorySections returns the same section shape as Home, scoped to one category.
func (s *Server) CategorySections() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := r.URL.Query().Get("cat")
		if cat == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingParam("cat"))
			return
		}
		kw := r.URL.Query().Get("kw")
		sections := s.projection.Sections(storage.Category(cat), kw, time.Now().Year())
		writeResponse(w, http.StatusOK, GenericResponse{Response: sections})
	}
}

// List returns the flat, optionally-filtered and paginated set of items in a category.
func (s *Server) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		path := q.Get("path")
		if path == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingParam("path"))
			return
		}

		limit, offset, err := parseLimitOffset(q)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		items := s.projection.ByCategory(storage.Category(path), q.Get("keyword"))
		writeResponse(w, http.StatusOK, GenericResponse{Response: paginate(items, limit, offset)})
	}
}

// Search returns series whose name or path contains the query string.
func (s *Server) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingParam("q"))
			return
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.projection.Search(q)})
	}
}

// SeriesDetail returns a grouped series record with its episodes sorted in
// natural order by title, so "Episode 2" sorts before "Episode 10".
func (s *Server) SeriesDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingParam("path"))
			return
		}

		for _, cat := range allCategories {
			g, ok := s.projection.DetailByPath(cat, path)
			if !ok {
				continue
			}
			detail := *g
			episodes := make([]storage.Episode, len(detail.Episodes))
			copy(episodes, detail.Episodes)
			sort.SliceStable(episodes, func(i, j int) bool {
				return natural.Less(episodes[i].Title, episodes[j].Title)
			})
			detail.Episodes = episodes
			writeResponse(w, http.StatusOK, GenericResponse{Response: detail})
			return
		}

		writeErrorResponse(w, http.StatusNotFound, storage.ErrNotFound)
	}
}

// VideoServe streams a media file with HTTP range support, resolving the
// logical "<category>/<relative>" path through the Unicode-tolerant
// filesystem resolver. Every request is served as the raw file; there is no
// transcoded HLS fallback.
func (s *Server) VideoServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		category := q.Get("type")
		relPath := q.Get("path")
		if category == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingParam("type"))
			return
		}
		if relPath == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingParam("path"))
			return
		}

		full, err := s.resolvePaths.Resolve(category + "/" + relPath)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}

		f, err := os.Open(full)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		http.ServeContent(w, r, filepath.Base(full), info.ModTime(), f)
	}
}

// ThumbServe is a collaborator endpoint: frame extraction and scaling is a
// thin wrapper around an external media-processing tool and is out of
// scope, so this reports 501 rather than faking image generation.
func (s *Server) ThumbServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotImplemented, errors.New("thumbnail generation is handled by an external collaborator"))
	}
}

// RescanBroken triggers a background crawl and returns immediately. The
// crawl outlives the request, so it runs detached from the request context
// under the same logger.
func (s *Server) RescanBroken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		ctx := logger.WithCtx(context.Background(), log)
		go func() {
			for cat, root := range s.categoryRoots {
				if _, err := s.crawler.ScanCategory(ctx, root, cat); err != nil {
					log.Errorw("rescan failed", "category", cat, "error", err)
				}
			}
			if err := s.projection.Rebuild(ctx); err != nil {
				log.Errorw("projection rebuild after rescan failed", "error", err)
			}
		}()
		writeResponse(w, http.StatusAccepted, GenericResponse{Response: "started"})
	}
}

// RematchMetadata triggers a forced re-enrichment run in the background.
func (s *Server) RematchMetadata() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.triggerEnrich(r, true)
		writeResponse(w, http.StatusAccepted, GenericResponse{Response: "started"})
	}
}

// RetryFailedMetadata resets every previously failed series and triggers an
// enrichment run so they're reconsidered. Without the reset, selectCandidates'
// failed=0 filter would make this a no-op: the rows it's meant to retry are
// exactly the ones that filter excludes.
func (s *Server) RetryFailedMetadata() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		if err := s.store.ClearFailed(r.Context()); err != nil {
			log.Errorw("clear failed series failed", "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		s.triggerEnrich(r, false)
		writeResponse(w, http.StatusAccepted, GenericResponse{Response: "started"})
	}
}

func (s *Server) triggerEnrich(r *http.Request, forceAll bool) {
	log := logger.FromCtx(r.Context())
	ctx := logger.WithCtx(context.Background(), log)
	go func() {
		if _, err := s.enricher.Enrich(ctx, forceAll); err != nil {
			log.Errorw("enrich run failed", "error", err)
			return
		}
		if err := s.projection.Rebuild(ctx); err != nil {
			log.Errorw("projection rebuild after enrich failed", "error", err)
		}
	}()
}

func parseLimitOffset(q url.Values) (limit, offset int, err error) {
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return 0, 0, errMissingParam("limit")
		}
	}
	if v := q.Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errMissingParam("offset")
		}
	}
	return limit, offset, nil
}

func paginate(items []projection.GroupedSeries, limit, offset int) []projection.GroupedSeries {
	if offset >= len(items) {
		return []projection.GroupedSeries{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
