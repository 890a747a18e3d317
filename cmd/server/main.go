package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"cikmap_backend/internal/app/di"
	"cikmap_backend/internal/app/router"
	cikmaphandler "cikmap_backend/internal/feature/cikmap/transport/handler"
	"cikmap_backend/internal/platform/config"
	"cikmap_backend/internal/platform/http/handler"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	checks := map[string]handler.CheckFunc{}

	// Redis
	rdb := di.NewRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// db（ティッカー取得元がDBの場合のみ）
	var db *gorm.DB
	if cfg.App.TickerSource == config.TickerSourceDB {
		db, err = di.NewDB(cfg.DB)
		if err != nil {
			log.Fatal(err)
		}
		checks["db"] = dbCheck(db)
	}

	dir, err := di.NewTickerDirectory(cfg, rdb, db)
	if err != nil {
		log.Fatal(err)
	}
	cm, err := di.NewCikMap(dir, cfg.App.NotFoundPolicy)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("registered fetchers", "models", cm.Registry.Models())

	// Handler
	cikMapH := cikmaphandler.NewCikMapHandler(cm.Usecase)
	fetchH := handler.NewFetchHandler(cm.Registry)

	// ルータ生成
	r := router.NewRouter(cikMapH, fetchH, router.Options{
		JWTSecret:   cfg.JWT.Secret,
		Checks:      checks,
		CORSOrigins: cfg.App.CORSOrigins,
	})

	slog.Info("starting server", "port", cfg.App.Port, "ticker_source", cfg.App.TickerSource,
		"not_found_policy", cfg.App.NotFoundPolicy, "cache", rdb != nil)
	if err := r.Run(cfg.App.Port); err != nil {
		log.Fatal(err)
	}
}

func dbCheck(db *gorm.DB) handler.CheckFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
