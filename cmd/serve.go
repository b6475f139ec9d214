package cmd

import (
	"context"
	"time"

	"github.com/ryanb/mediavault/config"
	"github.com/ryanb/mediavault/pkg/crawler"
	"github.com/ryanb/mediavault/pkg/enrich"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/projection"
	"github.com/ryanb/mediavault/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	Long:  `Start the catalog API: /home, /category_sections, /list, /search, /api/series_detail, /video_serve, and the background-triggering maintenance endpoints.`,
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

		proj := projection.New(store, time.Now().UnixNano())
		if err := proj.Rebuild(ctx); err != nil {
			log.Fatal("failed to build projection cache", zap.Error(err))
		}

		scanProgress := progress.New()
		enrichProgress := progress.New()

		c := crawler.New(store, scanProgress)
		r := newResolver(cfg.TMDB, store)
		w := enrich.New(store, r, enrichProgress, func(rctx context.Context) {
			if err := proj.Rebuild(rctx); err != nil {
				log.Errorw("projection rebuild failed", "error", err)
			}
		})

		s := server.New(log, cfg.Server, store, proj, pathResolver(cfg.Library), c, w,
			scanProgress, enrichProgress, categoryRoots(cfg.Library))

		if err := s.Serve(); err != nil {
			log.Fatal("server exited with error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
