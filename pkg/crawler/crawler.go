// Package crawler implements the catalog crawler (C5): an iterative,
// cycle-safe directory walk that reconciles the files it finds with the
// catalog store.
package crawler

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	mio "github.com/ryanb/mediavault/pkg/io"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/pathresolve"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/storage"
	"go.uber.org/zap"
)

// videoExtensions is the fixed set of admitted container extensions.
var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".ts": true, ".mov": true,
	".wmv": true, ".m4v": true, ".flv": true, ".webm": true, ".mpg": true, ".mpeg": true,
}

// commitEvery is the interval, in admitted files, at which the crawler logs
// a checkpoint. Each Upsert here commits in its own transaction, so readers
// see every row as soon as it is written and there is no batched commit.
const commitEvery = 2000

// ScanResult summarizes one ScanCategory run.
type ScanResult struct {
	FilesSeen    int
	SeriesTouched int
	EpisodesDeleted int64
	SeriesDeleted   int64
}

// Crawler walks category roots and reconciles them against the store.
type Crawler struct {
	store    storage.Store
	progress *progress.Monitor
	io       mio.FileIO
}

// New builds a Crawler backed by the real filesystem.
func New(store storage.Store, mon *progress.Monitor) *Crawler {
	return NewWithFileIO(store, mon, &mio.MediaFileSystem{})
}

// NewWithFileIO builds a Crawler against an injected FileIO, letting tests
// substitute a fake directory tree instead of touching disk.
func NewWithFileIO(store storage.Store, mon *progress.Monitor, fio mio.FileIO) *Crawler {
	return &Crawler{store: store, progress: mon, io: fio}
}

type stackEntry struct {
	dir     string
	relPath string
}

// ScanCategory walks root (the real filesystem path for category) and
// reconciles the admitted files with the store.
func (c *Crawler) ScanCategory(ctx context.Context, root string, category storage.Category) (*ScanResult, error) {
	log := logger.FromCtx(ctx)
	result := &ScanResult{}

	c.progress.Start(fmt.Sprintf("scan:%s", category), 0)
	defer c.progress.Finish()

	visitedReal := map[string]bool{}
	seenIDs := make([]string, 0, 1024)
	touchedSeries := map[string]bool{}

	stack := []stackEntry{{dir: root, relPath: ""}}
	processed := 0

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		real, err := filepath.EvalSymlinks(entry.dir)
		if err != nil {
			continue
		}
		if visitedReal[real] {
			continue
		}
		visitedReal[real] = true

		children, err := c.io.ReadDir(entry.dir)
		if err != nil {
			log.Debugw("failed to read directory", zap.String("dir", entry.dir), zap.Error(err))
			continue
		}

		for _, child := range children {
			name := child.Name()
			if pathresolve.IsExcluded(name) {
				continue
			}

			childRel := filepath.Join(entry.relPath, name)
			childAbs := filepath.Join(entry.dir, name)

			if child.IsDir() {
				stack = append(stack, stackEntry{dir: childAbs, relPath: childRel})
				continue
			}

			ext := strings.ToLower(filepath.Ext(name))
			if !videoExtensions[ext] {
				continue
			}

			id := fileID(childAbs)
			seriesRelDir := filepath.Dir(childRel)
			if seriesRelDir == "." {
				seriesRelDir = ""
			}
			seriesPath := string(category) + "/" + seriesRelDir

			if err := c.store.UpsertSeries(ctx, storage.Series{
				Path:     seriesPath,
				Category: category,
				Name:     filepath.Base(seriesRelDir),
			}); err != nil {
				log.Debugw("failed to upsert series", zap.String("path", seriesPath), zap.Error(err))
				continue
			}
			touchedSeries[seriesPath] = true

			if err := c.store.UpsertEpisode(ctx, storage.Episode{
				ID:         id,
				SeriesPath: seriesPath,
				Title:      name,
				VideoURL:   "/video_serve?type=" + string(category) + "&path=" + childRel,
			}); err != nil {
				log.Debugw("failed to upsert episode", zap.String("id", id), zap.Error(err))
				continue
			}

			seenIDs = append(seenIDs, id)
			result.FilesSeen++
			processed++
			c.progress.Update(processed, 0, result.FilesSeen, name)

			if processed%commitEvery == 0 {
				log.Debugw("crawler checkpoint", zap.Int("processed", processed))
			}
		}
	}

	result.SeriesTouched = len(touchedSeries)

	deleted, err := c.store.DeleteEpisodesNotIn(ctx, category, seenIDs)
	if err != nil {
		return result, fmt.Errorf("delete vanished episodes: %w", err)
	}
	result.EpisodesDeleted = deleted

	seriesDeleted, err := c.store.DeleteOrphanedSeries(ctx, category)
	if err != nil {
		return result, fmt.Errorf("delete orphaned series: %w", err)
	}
	result.SeriesDeleted = seriesDeleted

	return result, nil
}

func fileID(absPath string) string {
	sum := md5.Sum([]byte(absPath))
	return hex.EncodeToString(sum[:])
}
