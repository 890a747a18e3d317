package di

import (
	"context"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cikmap_backend/internal/platform/config"
	infradb "cikmap_backend/internal/platform/db"
	infraredis "cikmap_backend/internal/platform/redis"
)

// NewRedis returns a connected Redis client, or nil when Redis is unavailable.
// The application runs without cache in that case.
func NewRedis(ctx context.Context, cfg config.RedisConfig) *redisv9.Client {
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		return nil
	}
	return rdb
}

// NewDB opens the ticker store database.
func NewDB(cfg config.DBConfig) (*gorm.DB, error) {
	return infradb.Open(infradb.Config{
		User:          cfg.User,
		Password:      cfg.Password,
		Name:          cfg.Name,
		Host:          cfg.Host,
		Port:          cfg.Port,
		SSLMode:       cfg.SSLMode,
		InstanceName:  cfg.Instance,
		RunMigrations: cfg.RunMigrations,
	})
}
