package di

import (
	"fmt"

	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/feature/cikmap/usecase"
	"cikmap_backend/internal/platform/provider"
)

// CikMap bundles the components serving CIK resolution.
type CikMap struct {
	Fetcher  *usecase.SecCikMapFetcher
	Usecase  *usecase.CikMapUsecase
	Registry *provider.Registry
}

// NewCikMap builds the resolver over dir and registers it as sec/CikMap.
func NewCikMap(dir usecase.TickerDirectory, policyName string) (*CikMap, error) {
	policy, err := usecase.ParseNotFoundPolicy(policyName)
	if err != nil {
		return nil, fmt.Errorf("cikmap: %w", err)
	}

	fetcher := usecase.NewSecCikMapFetcher(usecase.NewSymbolMap(dir), policy)

	reg := provider.NewRegistry()
	reg.Register(usecase.ProviderName, usecase.ModelName, provider.Adapt[entity.CikMapQuery, entity.CikMapData](fetcher))

	return &CikMap{
		Fetcher:  fetcher,
		Usecase:  usecase.NewCikMapUsecase(fetcher, dir),
		Registry: reg,
	}, nil
}
