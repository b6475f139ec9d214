// Package enrich implements the enrichment worker (C7): it backfills
// cleaned titles, groups unresolved series, and fans out bounded-parallel
// resolver calls whose results are written back once each batch has
// resolved. Every store write commits in its own transaction, so a batch's
// writes are not applied atomically.
package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/metacache"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/resolver"
	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/titleclean"
	"go.uber.org/zap"
)

const (
	batchSize       = 50
	poolSize        = 10
	rebuildEveryN   = 5
)

// Result summarizes one Enrich run.
type Result struct {
	Groups   int
	Resolved int
	Failed   int
}

// Worker is the enrichment worker. A process-wide mutex ensures at most one
// run executes at a time.
type Worker struct {
	store      storage.Store
	resolver   *resolver.Resolver
	onRebuild  func(context.Context)
	progress   *progress.Monitor
	running    sync.Mutex
}

// New builds a Worker. onRebuild is invoked every rebuildEveryN batches so
// the projection cache (C8) can refresh.
func New(store storage.Store, r *resolver.Resolver, mon *progress.Monitor, onRebuild func(context.Context)) *Worker {
	return &Worker{store: store, resolver: r, onRebuild: onRebuild, progress: mon}
}

// Resolver exposes the underlying external resolver, so the admin surface
// can read its failure-diagnostic log.
func (w *Worker) Resolver() *resolver.Resolver {
	return w.resolver
}

// group is one (cleanedName, year, category) bucket of Series rows.
type group struct {
	cleanedName string
	year        *int
	category    storage.Category
	members     []storage.Series
}

func groupKey(cleaned string, year *int, category storage.Category) string {
	y := "?"
	if year != nil {
		y = fmt.Sprintf("%d", *year)
	}
	return string(category) + "|" + cleaned + "|" + y
}

// Enrich runs one enrichment pass. If a pass is already running it returns
// ErrBusy immediately.
func (w *Worker) Enrich(ctx context.Context, forceAll bool) (*Result, error) {
	if !w.running.TryLock() {
		return nil, ErrBusy
	}
	defer w.running.Unlock()

	log := logger.FromCtx(ctx)
	w.progress.Start("enrich", 0)
	defer w.progress.Finish()

	if err := w.backfillCleanedNames(ctx); err != nil {
		return nil, fmt.Errorf("backfill cleaned names: %w", err)
	}

	candidates, err := w.selectCandidates(ctx, forceAll)
	if err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	groups := groupCandidates(candidates)
	result := &Result{Groups: len(groups)}
	w.progress.Update(0, len(groups), 0, "")

	batches := batchGroups(groups, batchSize)
	for i, batch := range batches {
		if err := w.runBatch(ctx, batch, result); err != nil {
			log.Errorw("enrichment batch failed", zap.Error(err))
		}
		w.progress.Update((i+1)*batchSize, len(groups), result.Resolved, "")
		if w.onRebuild != nil && (i+1)%rebuildEveryN == 0 {
			w.onRebuild(ctx)
		}
	}
	if w.onRebuild != nil {
		w.onRebuild(ctx)
	}

	return result, nil
}

func (w *Worker) backfillCleanedNames(ctx context.Context) error {
	pending, err := w.store.ListSeries(ctx, storage.SeriesFilter{CleanedNameNull: true})
	if err != nil {
		return err
	}
	for _, s := range pending {
		cleaned := titleclean.Clean(s.Name)
		if err := w.store.SetSeriesCleaned(ctx, s.Path, cleaned.Title, cleaned.Year); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) selectCandidates(ctx context.Context, forceAll bool) ([]storage.Series, error) {
	return w.store.ListSeries(ctx, storage.SeriesFilter{Unresolved: true, IncludeFailed: forceAll})
}

func groupCandidates(series []storage.Series) []*group {
	index := map[string]*group{}
	var order []string
	for _, s := range series {
		cleaned := ""
		if s.CleanedName != nil {
			cleaned = *s.CleanedName
		}
		key := groupKey(cleaned, s.YearVal, s.Category)
		g, ok := index[key]
		if !ok {
			g = &group{cleanedName: cleaned, year: s.YearVal, category: s.Category}
			index[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, s)
	}
	out := make([]*group, 0, len(order))
	for _, k := range order {
		out = append(out, index[k])
	}
	return out
}

func batchGroups(groups []*group, size int) [][]*group {
	var out [][]*group
	for i := 0; i < len(groups); i += size {
		end := i + size
		if end > len(groups) {
			end = len(groups)
		}
		out = append(out, groups[i:end])
	}
	return out
}

type batchOutcome struct {
	g      *group
	record *metacache.Record
	err    error
}

// runBatch resolves every group in the batch with a bounded-parallel pool,
// then writes all outcomes in one transaction-per-write-call sequence
// (the store's handleStatement already wraps each write; batching here
// bounds concurrency and keeps the critical section between resolver calls
// and store writes short).
func (w *Worker) runBatch(ctx context.Context, batch []*group, result *Result) error {
	sem := make(chan struct{}, poolSize)
	outcomes := make([]batchOutcome, len(batch))
	var wg sync.WaitGroup
	var resolved, failed int64

	for i, g := range batch {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, g *group) {
			defer wg.Done()
			defer func() { <-sem }()

			rep := g.members[0]
			rec, err := w.resolver.Resolve(ctx, rep.Name, g.category, false)
			outcomes[i] = batchOutcome{g: g, record: rec, err: err}
			if err != nil {
				atomic.AddInt64(&failed, 1)
			} else {
				atomic.AddInt64(&resolved, 1)
			}
		}(i, g)
	}
	wg.Wait()

	for _, o := range outcomes {
		if err := w.applyOutcome(ctx, o); err != nil {
			return err
		}
	}

	result.Resolved += int(resolved)
	result.Failed += int(failed)
	return nil
}

func (w *Worker) applyOutcome(ctx context.Context, o batchOutcome) error {
	if o.err != nil {
		for _, m := range o.g.members {
			if err := w.store.SetSeriesFailed(ctx, m.Path, true); err != nil {
				return err
			}
		}
		return nil
	}

	enrichment := storage.SeriesEnrichment{
		TmdbID:      o.record.TmdbID,
		Year:        yearPtr(o.record.Year),
		Rating:      floatPtr(o.record.Rating),
		SeasonCount: intPtr(o.record.SeasonCount),
		GenreIDs:    o.record.GenreIDs,
		GenreNames:  o.record.GenreNames,
	}
	if o.record.PosterPath != "" {
		enrichment.PosterPath = &o.record.PosterPath
	}
	if o.record.Overview != "" {
		enrichment.Overview = &o.record.Overview
	}
	if o.record.Director != "" {
		enrichment.Director = &o.record.Director
	}
	enrichment.Actors = o.record.Actors

	for _, m := range o.g.members {
		if err := w.store.SetSeriesEnriched(ctx, m.Path, enrichment); err != nil {
			return err
		}
		if len(o.record.Episodes) > 0 {
			if err := w.backfillEpisodes(ctx, m.Path, o.record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Worker) backfillEpisodes(ctx context.Context, seriesPath string, rec *metacache.Record) error {
	episodes, err := w.store.ListEpisodesBySeries(ctx, seriesPath)
	if err != nil {
		return err
	}
	for _, ep := range episodes {
		season, episode := titleclean.ExtractEpisodeNumbers(ep.Title)
		if episode == nil {
			continue
		}
		pair, ok := rec.Episodes[metacache.EpisodeKey(season, *episode)]
		if !ok {
			continue
		}
		var thumbURL *string
		if pair.StillPath != "" {
			thumbURL = &pair.StillPath
		}
		overview := pair.Overview
		airDate := pair.AirDate
		if err := w.store.UpdateEpisodeMetadata(ctx, ep.ID, &overview, &airDate, &season, episode, thumbURL); err != nil {
			return err
		}
	}
	return nil
}

func yearPtr(y int) *int {
	if y == 0 {
		return nil
	}
	return &y
}

func floatPtr(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func intPtr(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
