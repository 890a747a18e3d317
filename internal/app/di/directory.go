package di

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	cikmapadapters "cikmap_backend/internal/feature/cikmap/adapters"
	"cikmap_backend/internal/feature/cikmap/usecase"
	"cikmap_backend/internal/platform/cache"
	"cikmap_backend/internal/platform/config"
)

// ErrDBRequired is returned when the db ticker source is selected without a database.
var ErrDBRequired = errors.New("ticker source db requires a database connection")

// CacheNamespace is the Redis key prefix for ticker listings.
const CacheNamespace = "sec_tickers"

// NewTickerDirectory returns the TickerDirectory selected by cfg.App.TickerSource,
// wrapped with the listing cache. rdb may be nil; listings are then cached in process.
func NewTickerDirectory(cfg *config.Config, rdb *redis.Client, db *gorm.DB) (*cache.CachingTickerDirectory, error) {
	var inner usecase.TickerDirectory
	switch cfg.App.TickerSource {
	case config.TickerSourceDB:
		if db == nil {
			return nil, ErrDBRequired
		}
		inner = cikmapadapters.NewTickerRepository(db)
	default:
		inner = NewSecDirectory(cfg.SEC)
	}

	// TTL 0: 保存のたびに次のSEC更新時刻までの期間を計算する
	return cache.NewCachingTickerDirectory(rdb, 0, inner, CacheNamespace), nil
}
