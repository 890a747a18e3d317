// Package adapters provides repository implementations for the cikmap feature.
package adapters

import (
	"context"
	"time"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/feature/cikmap/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertBatchSize keeps each INSERT under PostgreSQL's bind parameter limit.
const upsertBatchSize = 1000

// tickerGorm is the GORM implementation of the ticker store.
type tickerGorm struct {
	db *gorm.DB
}

var (
	_ usecase.TickerStore     = (*tickerGorm)(nil)
	_ usecase.TickerDirectory = (*tickerGorm)(nil)
)

// NewTickerRepository creates a ticker repository backed by db.
func NewTickerRepository(db *gorm.DB) *tickerGorm {
	return &tickerGorm{db: db}
}

// TickerModel is the persisted form of entity.Ticker.
type TickerModel struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      string    `gorm:"size:16;not null;uniqueIndex:ticker_kind_symbol,priority:1"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:ticker_kind_symbol,priority:2"`
	CIK       int64     `gorm:"column:cik;not null;index"`
	Name      string    `gorm:"size:255"`
	Position  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TickerModel) TableName() string {
	return "sec_tickers"
}

func toModel(e entity.Ticker) TickerModel {
	return TickerModel{
		Kind:     string(e.Kind),
		Symbol:   e.Symbol,
		CIK:      e.CIK,
		Name:     e.Name,
		Position: e.Position,
	}
}

func (r *tickerGorm) UpsertBatch(ctx context.Context, tickers []entity.Ticker) error {
	if len(tickers) == 0 {
		return nil
	}
	// 同一バッチ内の重複キーはON CONFLICTで衝突するため最初の行のみ残す
	seen := make(map[string]struct{}, len(tickers))
	ms := make([]TickerModel, 0, len(tickers))
	for _, e := range tickers {
		key := string(e.Kind) + "\x00" + e.Symbol
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"cik", "name", "position", "updated_at"}),
	}).CreateInBatches(&ms, upsertBatchSize).Error
}

// List returns the tickers of kind ordered by their upstream position.
func (r *tickerGorm) List(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
	var rows []TickerModel
	if err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("position ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Ticker, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Ticker{
			Symbol:   m.Symbol,
			CIK:      m.CIK,
			Name:     m.Name,
			Kind:     entity.ListingKind(m.Kind),
			Position: m.Position,
		})
	}
	return out, nil
}
