package cmd

import (
	"context"

	"github.com/ryanb/mediavault/config"
	"github.com/ryanb/mediavault/pkg/crawler"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/progress"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Crawl the library directories and reconcile the catalog store",
	Long:  `Walk every category root, upsert discovered series/episodes, and prune rows for files no longer on disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configuration", zap.Error(err))
		}

		store, err := newStore(cfg.Storage)
		if err != nil {
			log.Fatal("failed to open storage", zap.Error(err))
		}
		defer store.Close()

		if err := store.Init(ctx); err != nil {
			log.Fatal("failed to init database", zap.Error(err))
		}

		c := crawler.New(store, progress.New())

		const scanDonePrefix = "scan_done_"

		var totalFiles, totalSeries int
		allDone := true
		for cat, root := range categoryRoots(cfg.Library) {
			doneKey := scanDonePrefix + string(cat)
			if done, ok, err := store.GetConfig(ctx, doneKey); err != nil {
				log.Errorw("read scan resumability flag failed", "category", cat, "error", err)
			} else if ok && done == "true" {
				log.Infow("skipping already-scanned category", "category", cat)
				continue
			}

			result, err := c.ScanCategory(ctx, root, cat)
			if err != nil {
				log.Errorw("scan failed", "category", cat, "error", err)
				allDone = false
				continue
			}
			log.Infow("scan complete", "category", cat, "filesSeen", result.FilesSeen,
				"seriesTouched", result.SeriesTouched, "episodesDeleted", result.EpisodesDeleted,
				"seriesDeleted", result.SeriesDeleted)
			totalFiles += result.FilesSeen
			totalSeries += result.SeriesTouched

			if err := store.SetConfig(ctx, doneKey, "true"); err != nil {
				log.Errorw("persist scan resumability flag failed", "category", cat, "error", err)
			}
		}

		// A crash mid-run leaves scan_done_<category> flags in place so the next
		// invocation resumes rather than rescanning finished categories. Once every
		// category in this run finishes cleanly, clear them so the next full scan
		// starts fresh instead of skipping everything.
		if allDone {
			if err := store.ClearConfigPrefix(ctx, scanDonePrefix); err != nil {
				log.Errorw("clear scan resumability flags failed", "error", err)
			}
		}

		cmd.Printf("scanned %s files across %s series\n", humanize.Comma(int64(totalFiles)), humanize.Comma(int64(totalSeries)))
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
