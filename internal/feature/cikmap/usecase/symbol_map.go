// Package usecase implements CIK resolution and ticker listing ingestion.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
)

// cikWidth is the zero-padded width of a CIK in EDGAR URLs and filings.
const cikWidth = 10

// TickerDirectory abstracts a source of SEC ticker listings.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerDirectory interface {
	List(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error)
}

// SymbolMap resolves ticker symbols to zero-padded CIKs using a TickerDirectory.
type SymbolMap struct {
	dir TickerDirectory
}

// NewSymbolMap creates a SymbolMap over the given directory.
func NewSymbolMap(dir TickerDirectory) *SymbolMap {
	return &SymbolMap{dir: dir}
}

// Lookup returns the CIK for symbol, or "" if no listing contains it.
// Company listings are searched before fund listings; the first match in
// listing order wins.
func (m *SymbolMap) Lookup(ctx context.Context, symbol string) (string, error) {
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return "", nil
	}
	for _, kind := range entity.ListingKinds {
		tickers, err := m.dir.List(ctx, kind)
		if err != nil {
			return "", fmt.Errorf("list %s tickers: %w", kind, err)
		}
		for _, t := range tickers {
			if strings.ToUpper(t.Symbol) == sym {
				return PadCIK(t.CIK), nil
			}
		}
	}
	return "", nil
}

// NormalizeSymbol upper-cases s and uses EDGAR's share-class separator ("BRK.B" -> "BRK-B").
func NormalizeSymbol(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), ".", "-")
}

// PadCIK left-pads cik with zeros to 10 digits.
func PadCIK(cik int64) string {
	return fmt.Sprintf("%0*d", cikWidth, cik)
}
