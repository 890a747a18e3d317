package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// FetchFunc is a type-erased fetcher, the shape the registry stores.
type FetchFunc func(ctx context.Context, params map[string]any, credentials map[string]string) (any, error)

// Adapt wraps a typed fetcher into a FetchFunc.
func Adapt[Q, R any](f Fetcher[Q, R]) FetchFunc {
	return func(ctx context.Context, params map[string]any, credentials map[string]string) (any, error) {
		return Fetch(ctx, f, params, credentials)
	}
}

// Registry maps provider/model pairs to fetchers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	fetchers map[string]map[string]FetchFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: map[string]map[string]FetchFunc{}}
}

// Register adds fn under provider/model, replacing any previous entry.
func (r *Registry) Register(provider, model string, fn FetchFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	models, ok := r.fetchers[provider]
	if !ok {
		models = map[string]FetchFunc{}
		r.fetchers[provider] = models
	}
	models[model] = fn
}

// Lookup returns the fetcher registered under provider/model.
func (r *Registry) Lookup(provider, model string) (FetchFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.fetchers[provider][model]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrFetcherNotFound, provider, model)
	}
	return fn, nil
}

// Fetch looks up and runs the fetcher registered under provider/model.
func (r *Registry) Fetch(ctx context.Context, provider, model string, params map[string]any, credentials map[string]string) (any, error) {
	fn, err := r.Lookup(provider, model)
	if err != nil {
		return nil, err
	}
	return fn(ctx, params, credentials)
}

// Models returns the registered "provider/model" keys in sorted order.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for p, models := range r.fetchers {
		for m := range models {
			out = append(out, p+"/"+m)
		}
	}
	sort.Strings(out)
	return out
}
