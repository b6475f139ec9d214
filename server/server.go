// Package server implements the catalog API (C10): an HTTP surface over
// the projection cache and catalog store, returning gzip-compressed JSON.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ryanb/mediavault/config"
	"github.com/ryanb/mediavault/pkg/crawler"
	"github.com/ryanb/mediavault/pkg/enrich"
	"github.com/ryanb/mediavault/pkg/pathresolve"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/projection"
	"github.com/ryanb/mediavault/pkg/resolver"
	"github.com/ryanb/mediavault/pkg/storage"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// GenericResponse is the standard response envelope: either a populated
// Response or a non-empty Error, never both.
type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response,omitempty"`
}

// Server houses every dependency the catalog API needs to answer requests.
type Server struct {
	baseLogger     *zap.SugaredLogger
	config         config.Server
	store          storage.Store
	projection     *projection.Cache
	resolvePaths   *pathresolve.Resolver
	crawler        *crawler.Crawler
	enricher       *enrich.Worker
	scanProgress   *progress.Monitor
	enrichProgress *progress.Monitor
	categoryRoots  map[storage.Category]string
}

// allCategories is the fixed set of catalog categories the API iterates over
// when a lookup isn't already scoped to one (e.g. series detail by path).
var allCategories = []storage.Category{
	storage.CategoryMovies,
	storage.CategoryForeignTV,
	storage.CategoryDomesticTV,
	storage.CategoryAnimation,
	storage.CategoryAiring,
}

// New builds a Server.
func New(logger *zap.SugaredLogger, cfg config.Server, store storage.Store, proj *projection.Cache,
	resolvePaths *pathresolve.Resolver, crawl *crawler.Crawler, enricher *enrich.Worker,
	scanProgress, enrichProgress *progress.Monitor, categoryRoots map[storage.Category]string) *Server {
	return &Server{
		baseLogger:     logger,
		config:         cfg,
		store:          store,
		projection:     proj,
		resolvePaths:   resolvePaths,
		crawler:        crawl,
		enricher:       enricher,
		scanProgress:   scanProgress,
		enrichProgress: enrichProgress,
		categoryRoots:  categoryRoots,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	writeResponse(w, status, GenericResponse{Error: errMsg})
}

func writeResponse(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	w.Write(b)
}

// Router builds the full mux router, wrapped in gzip compression and CORS.
func (s *Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())

	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	rtr.HandleFunc("/home", s.Home()).Methods(http.MethodGet)
	rtr.HandleFunc("/category_sections", s.CategorySections()).Methods(http.MethodGet)
	rtr.HandleFunc("/list", s.List()).Methods(http.MethodGet)
	rtr.HandleFunc("/search", s.Search()).Methods(http.MethodGet)

	rtr.HandleFunc("/api/series_detail", s.SeriesDetail()).Methods(http.MethodGet)
	rtr.HandleFunc("/video_serve", s.VideoServe()).Methods(http.MethodGet)
	rtr.HandleFunc("/thumb_serve", s.ThumbServe()).Methods(http.MethodGet)

	rtr.HandleFunc("/rescan_broken", s.RescanBroken()).Methods(http.MethodGet)
	rtr.HandleFunc("/rematch_metadata", s.RematchMetadata()).Methods(http.MethodGet)
	rtr.HandleFunc("/retry_failed_metadata", s.RetryFailedMetadata()).Methods(http.MethodGet)

	rtr.HandleFunc("/api/updater/status", s.UpdaterStatus()).Methods(http.MethodGet)
	rtr.HandleFunc("/api/status", s.Status()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Range"}),
		handlers.ExposedHeaders([]string{"Content-Length", "Content-Range", "Accept-Ranges"}),
		handlers.MaxAge(3600),
	)(rtr)

	return handlers.CompressHandler(corsHandler)
}

// Serve starts the http server and blocks until an interrupt is received.
func (s *Server) Serve() error {
	srv := &http.Server{
		Addr:    s.config.ListenAddr,
		Handler: s.Router(),
	}

	go func() {
		s.baseLogger.Infow("serving...", "addr", s.config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint used for liveness probes.
func (s *Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

// Status returns aggregate counts from the catalog store, plus the
// resolver's bounded failure-diagnostic log.
func (s *Server) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.store.CountSeriesByCategory(r.Context())
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}
		episodes, err := s.store.CountEpisodes(r.Context())
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		var diagnostics []resolver.Diagnostic
		if s.enricher != nil {
			diag := s.enricher.Resolver().Diagnostics()
			for _, key := range diag.Keys() {
				if d, ok := diag.Get(key); ok {
					diagnostics = append(diagnostics, d)
				}
			}
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: map[string]any{
			"seriesByCategory": counts,
			"episodes":         episodes,
			"failureDiagnostics": diagnostics,
		}})
	}
}

// UpdaterStatus returns a merged snapshot of the scan and enrich monitors.
func (s *Server) UpdaterStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: map[string]any{
			"scan":   s.scanProgress.Snapshot(),
			"enrich": s.enrichProgress.Snapshot(),
		}})
	}
}
