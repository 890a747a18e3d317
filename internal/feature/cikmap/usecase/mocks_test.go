package usecase_test

import (
	"context"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
)

// mockTickerDirectory はTickerDirectoryインターフェースのモック実装です。
type mockTickerDirectory struct {
	ListFunc func(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error)
	calls    []entity.ListingKind
}

// List はモックのList関数を呼び出します。
func (m *mockTickerDirectory) List(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
	m.calls = append(m.calls, kind)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind)
	}
	return nil, nil
}

// mockSymbolMapper はSymbolMapperインターフェースのモック実装です。
type mockSymbolMapper struct {
	LookupFunc func(ctx context.Context, symbol string) (string, error)
}

// Lookup はモックのLookup関数を呼び出します。
func (m *mockSymbolMapper) Lookup(ctx context.Context, symbol string) (string, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, symbol)
	}
	return "", nil
}

// staticDirectory は種別ごとに固定のティッカー一覧を返すTickerDirectoryです。
func staticDirectory(companies, funds []entity.Ticker) *mockTickerDirectory {
	return &mockTickerDirectory{
		ListFunc: func(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
			if kind == entity.KindFund {
				return funds, nil
			}
			return companies, nil
		},
	}
}
