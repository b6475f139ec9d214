package cmd

import (
	"context"

	"github.com/ryanb/mediavault/config"
	"github.com/ryanb/mediavault/pkg/enrich"
	"github.com/ryanb/mediavault/pkg/logger"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/projection"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var enrichForceAll bool

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Resolve external metadata for series that don't have it yet",
	Long:  `Group unresolved series by cleaned name and year, resolve each group against the external metadata database, and backfill episode details.`,
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

		proj := projection.New(store, 1)
		r := newResolver(cfg.TMDB, store)
		w := enrich.New(store, r, progress.New(), func(rctx context.Context) {
			if err := proj.Rebuild(rctx); err != nil {
				log.Errorw("projection rebuild failed", "error", err)
			}
		})

		result, err := w.Enrich(ctx, enrichForceAll)
		if err != nil {
			log.Fatal("enrich run failed", zap.Error(err))
		}

		log.Infow("enrich complete", "groups", result.Groups, "resolved", result.Resolved, "failed", result.Failed)
	},
}

func init() {
	enrichCmd.Flags().BoolVar(&enrichForceAll, "force-all", false, "also retry series previously marked as failed")
	rootCmd.AddCommand(enrichCmd)
}
