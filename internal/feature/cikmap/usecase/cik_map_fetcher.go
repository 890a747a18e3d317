package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"cikmap_backend/internal/feature/cikmap/domain"
	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/platform/provider"
)

const (
	// ProviderName is the registry key of the SEC provider.
	ProviderName = "sec"
	// ModelName is the registry key of the CIK mapping model.
	ModelName = "CikMap"
)

// NotFoundPolicy selects the record produced for a symbol with no CIK.
type NotFoundPolicy int

const (
	// NotFoundNull yields {"cik": null}, the long-standing output for unmapped symbols.
	NotFoundNull NotFoundPolicy = iota
	// NotFoundErrorRecord yields {"Error": "Symbol not found."}.
	NotFoundErrorRecord
)

// ParseNotFoundPolicy parses "null" or "error".
func ParseNotFoundPolicy(s string) (NotFoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null":
		return NotFoundNull, nil
	case "error":
		return NotFoundErrorRecord, nil
	default:
		return NotFoundNull, fmt.Errorf("unknown not-found policy %q", s)
	}
}

// SymbolMapper resolves a ticker symbol to a CIK, returning "" when unknown.
type SymbolMapper interface {
	Lookup(ctx context.Context, symbol string) (string, error)
}

// SecCikMapFetcher maps a ticker symbol to its SEC CIK.
type SecCikMapFetcher struct {
	mapper SymbolMapper
	policy NotFoundPolicy
}

var _ provider.Fetcher[entity.CikMapQuery, entity.CikMapData] = (*SecCikMapFetcher)(nil)

// NewSecCikMapFetcher creates a fetcher backed by mapper.
func NewSecCikMapFetcher(mapper SymbolMapper, policy NotFoundPolicy) *SecCikMapFetcher {
	return &SecCikMapFetcher{mapper: mapper, policy: policy}
}

// TransformQuery validates params into a CikMapQuery.
func (f *SecCikMapFetcher) TransformQuery(params map[string]any) (entity.CikMapQuery, error) {
	return provider.DecodeQuery[entity.CikMapQuery](params)
}

// ExtractData looks the symbol up. Credentials are not needed by the SEC listings.
func (f *SecCikMapFetcher) ExtractData(ctx context.Context, query entity.CikMapQuery, _ map[string]string) (map[string]any, error) {
	cik, err := f.mapper.Lookup(ctx, query.Symbol)
	if err != nil {
		return nil, err
	}
	if cik != "" {
		return map[string]any{"cik": cik}, nil
	}
	if f.policy == NotFoundErrorRecord {
		return map[string]any{"Error": domain.NotFoundMessage}, nil
	}
	return map[string]any{"cik": nil}, nil
}

// TransformData validates the raw mapping into a CikMapData. A numeric cik is
// rendered as a string.
func (f *SecCikMapFetcher) TransformData(_ entity.CikMapQuery, data map[string]any) (entity.CikMapData, error) {
	raw := maps.Clone(data)
	if raw == nil {
		raw = map[string]any{}
	}
	if v, ok := raw["cik"]; ok {
		raw["cik"] = cikString(v)
	}
	return provider.DecodeResult[entity.CikMapData](raw)
}

// cikString converts numeric CIK values to strings and leaves anything else untouched.
func cikString(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		if n == float64(int64(n)) {
			return strconv.FormatInt(int64(n), 10)
		}
		return v
	case json.Number:
		return n.String()
	default:
		return v
	}
}
