package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
)

// TickerStore persists ticker listings.
type TickerStore interface {
	UpsertBatch(ctx context.Context, tickers []entity.Ticker) error
}

// CacheInvalidator drops cached listings after the store has been refreshed.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// IngestUsecase copies the SEC ticker listings into the store.
type IngestUsecase struct {
	source TickerDirectory
	store  TickerStore
	cache  CacheInvalidator
}

// NewIngestUsecase creates an IngestUsecase. cache may be nil.
func NewIngestUsecase(source TickerDirectory, store TickerStore, cache CacheInvalidator) *IngestUsecase {
	return &IngestUsecase{source: source, store: store, cache: cache}
}

// ingestOne fetches one listing and upserts it, returning the row count.
func (iu *IngestUsecase) ingestOne(ctx context.Context, kind entity.ListingKind) (int, error) {
	tickers, err := iu.source.List(ctx, kind)
	if err != nil {
		return 0, err
	}
	for i := range tickers {
		tickers[i].Kind = kind
		tickers[i].Position = i
	}
	if err := iu.store.UpsertBatch(ctx, tickers); err != nil {
		return 0, err
	}
	return len(tickers), nil
}

// IngestAll refreshes every listing kind. A failing kind is logged and the
// remaining kinds still run; the joined failures are returned.
func (iu *IngestUsecase) IngestAll(ctx context.Context) (int, error) {
	var (
		total int
		errs  []error
	)
	for _, kind := range entity.ListingKinds {
		n, err := iu.ingestOne(ctx, kind)
		if err != nil {
			slog.Error("failed to ingest tickers", "kind", kind, "error", err)
			errs = append(errs, fmt.Errorf("ingest %s: %w", kind, err))
			continue
		}
		slog.Info("ingested tickers", "kind", kind, "count", n)
		total += n
	}

	if iu.cache != nil {
		// ストアは更新済みなのでキャッシュ削除の失敗はログのみ
		if err := iu.cache.Invalidate(ctx); err != nil {
			slog.Warn("failed to invalidate ticker cache", "error", err)
		}
	}
	return total, errors.Join(errs...)
}
