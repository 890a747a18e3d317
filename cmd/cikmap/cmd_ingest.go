package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cikmap_backend/internal/app/di"
	cikmapadapters "cikmap_backend/internal/feature/cikmap/adapters"
	"cikmap_backend/internal/feature/cikmap/usecase"
	"cikmap_backend/internal/platform/cache"
)

var ingestMigrate bool

// ingestCmd copies the SEC listings into the ticker store
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Download SEC ticker listings into the database",
	Long: `Download the company and mutual fund listings from the SEC, upsert them
into the ticker store and invalidate the Redis listing cache.

A failing listing is logged and the other one is still stored; the command
exits non-zero if any listing failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		if ingestMigrate {
			cfg.DB.RunMigrations = true
		}
		db, err := di.NewDB(cfg.DB)
		if err != nil {
			return err
		}

		rdb := di.NewRedis(ctx, cfg.Redis)
		if rdb != nil {
			defer closeLogged(slog.Default(), rdb, "Redis client")
		}

		source := di.NewSecDirectory(cfg.SEC)
		store := cikmapadapters.NewTickerRepository(db)
		invalidator := cache.NewCachingTickerDirectory(rdb, 0, store, di.CacheNamespace)

		n, err := runIngest(ctx, usecase.NewIngestUsecase(source, store, invalidator))
		fmt.Fprintf(cmd.OutOrStdout(), "ingested %d tickers\n", n)
		return err
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestMigrate, "migrate", false, "Run database migrations before ingesting")
}

type ingester interface {
	IngestAll(ctx context.Context) (int, error)
}

func runIngest(ctx context.Context, uc ingester) (int, error) {
	n, err := uc.IngestAll(ctx)
	if err != nil {
		return n, fmt.Errorf("ingest failed: %w", err)
	}
	return n, nil
}
