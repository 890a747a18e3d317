package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"cikmap_backend/internal/feature/cikmap/domain"
	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/platform/provider"
)

// CikMapUsecase resolves symbols through the CikMap fetcher and exposes the
// underlying ticker listings.
type CikMapUsecase struct {
	fetcher provider.Fetcher[entity.CikMapQuery, entity.CikMapData]
	dir     TickerDirectory
}

// NewCikMapUsecase creates a CikMapUsecase.
func NewCikMapUsecase(fetcher provider.Fetcher[entity.CikMapQuery, entity.CikMapData], dir TickerDirectory) *CikMapUsecase {
	return &CikMapUsecase{fetcher: fetcher, dir: dir}
}

// Resolve runs the CikMap fetcher for a single symbol.
func (u *CikMapUsecase) Resolve(ctx context.Context, symbol string, credentials map[string]string) (entity.CikMapData, error) {
	data, err := provider.Fetch(ctx, u.fetcher, map[string]any{"symbol": symbol}, credentials)
	if err != nil {
		return entity.CikMapData{}, err
	}
	if !data.Found() {
		slog.Debug("cik not resolved", "symbol", symbol, "error_record", data.Error != "")
	}
	return data, nil
}

// ListTickers returns the listing of the given kind in upstream order.
func (u *CikMapUsecase) ListTickers(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidListingKind, kind)
	}
	return u.dir.List(ctx, kind)
}
