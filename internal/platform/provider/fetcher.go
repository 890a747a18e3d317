// Package provider is the plugin protocol every data adapter implements:
// validate the query, extract the raw data, validate the result.
package provider

import (
	"context"
	"errors"
)

var (
	// ErrInvalidQuery is returned when request params do not satisfy the query schema.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidResult is returned when raw data does not satisfy the result schema.
	ErrInvalidResult = errors.New("invalid result")

	// ErrFetcherNotFound is returned when no fetcher is registered for a provider/model pair.
	ErrFetcherNotFound = errors.New("fetcher not found")
)

// Fetcher is the three-step unit of work a provider adapter implements.
// Q is the validated query type and R the normalized result record.
type Fetcher[Q, R any] interface {
	// TransformQuery validates raw params into a query.
	TransformQuery(params map[string]any) (Q, error)
	// ExtractData retrieves raw data for the query. Credentials are provider specific
	// and may be nil.
	ExtractData(ctx context.Context, query Q, credentials map[string]string) (map[string]any, error)
	// TransformData validates the raw data into a result record.
	TransformData(query Q, data map[string]any) (R, error)
}

// Fetch runs the three steps of f in order and stops at the first error.
func Fetch[Q, R any](ctx context.Context, f Fetcher[Q, R], params map[string]any, credentials map[string]string) (R, error) {
	var zero R

	q, err := f.TransformQuery(params)
	if err != nil {
		return zero, err
	}
	data, err := f.ExtractData(ctx, q, credentials)
	if err != nil {
		return zero, err
	}
	return f.TransformData(q, data)
}
