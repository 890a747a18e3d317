package provider

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeQuery converts params into Q and checks its `validate` tags.
// Failures wrap ErrInvalidQuery.
func DecodeQuery[Q any](params map[string]any) (Q, error) {
	q, err := decode[Q](params)
	if err != nil {
		return q, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return q, nil
}

// DecodeResult converts raw data into R and checks its `validate` tags.
// Failures wrap ErrInvalidResult.
func DecodeResult[R any](data map[string]any) (R, error) {
	r, err := decode[R](data)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	return r, nil
}

func decode[T any](m map[string]any) (T, error) {
	var out T
	if m == nil {
		m = map[string]any{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, err
	}
	if err := validate.Struct(out); err != nil {
		return out, err
	}
	return out, nil
}
