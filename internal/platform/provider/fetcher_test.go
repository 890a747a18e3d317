package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoQuery struct {
	Symbol string `json:"symbol" validate:"required"`
}

type echoResult struct {
	Value string `json:"value" validate:"required"`
}

// echoFetcher はテスト用のFetcher実装です。各ステップの呼び出し回数を記録します。
type echoFetcher struct {
	extractErr error
	calls      []string
}

func (f *echoFetcher) TransformQuery(params map[string]any) (echoQuery, error) {
	f.calls = append(f.calls, "transform_query")
	return DecodeQuery[echoQuery](params)
}

func (f *echoFetcher) ExtractData(ctx context.Context, q echoQuery, credentials map[string]string) (map[string]any, error) {
	f.calls = append(f.calls, "extract_data")
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return map[string]any{"value": q.Symbol}, nil
}

func (f *echoFetcher) TransformData(q echoQuery, data map[string]any) (echoResult, error) {
	f.calls = append(f.calls, "transform_data")
	return DecodeResult[echoResult](data)
}

// TestFetch_RunsStepsInOrder は3つのステップが順番に実行されることを検証します。
func TestFetch_RunsStepsInOrder(t *testing.T) {
	t.Parallel()

	f := &echoFetcher{}
	got, err := Fetch[echoQuery, echoResult](context.Background(), f, map[string]any{"symbol": "AAPL"}, nil)

	require.NoError(t, err)
	assert.Equal(t, echoResult{Value: "AAPL"}, got)
	assert.Equal(t, []string{"transform_query", "extract_data", "transform_data"}, f.calls)
}

// TestFetch_StopsOnInvalidQuery はクエリ検証に失敗した場合に後続ステップが実行されないことを検証します。
func TestFetch_StopsOnInvalidQuery(t *testing.T) {
	t.Parallel()

	f := &echoFetcher{}
	_, err := Fetch[echoQuery, echoResult](context.Background(), f, map[string]any{}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, []string{"transform_query"}, f.calls)
}

// TestFetch_PropagatesExtractError はExtractDataのエラーがそのまま伝播されることを検証します。
func TestFetch_PropagatesExtractError(t *testing.T) {
	t.Parallel()

	upstream := errors.New("upstream down")
	f := &echoFetcher{extractErr: upstream}
	_, err := Fetch[echoQuery, echoResult](context.Background(), f, map[string]any{"symbol": "AAPL"}, nil)

	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, []string{"transform_query", "extract_data"}, f.calls)
}

// TestDecodeQuery は型の不一致や必須項目の欠落がErrInvalidQueryになることを検証します。
func TestDecodeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  map[string]any
		want    echoQuery
		wantErr bool
	}{
		{"valid", map[string]any{"symbol": "MSFT"}, echoQuery{Symbol: "MSFT"}, false},
		{"extra keys ignored", map[string]any{"symbol": "MSFT", "limit": 3}, echoQuery{Symbol: "MSFT"}, false},
		{"nil params", nil, echoQuery{}, true},
		{"empty symbol", map[string]any{"symbol": ""}, echoQuery{}, true},
		{"wrong type", map[string]any{"symbol": 42}, echoQuery{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeQuery[echoQuery](tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDecodeResult は結果スキーマに合わないデータがErrInvalidResultになることを検証します。
func TestDecodeResult(t *testing.T) {
	t.Parallel()

	_, err := DecodeResult[echoResult](map[string]any{"value": []int{1}})
	assert.ErrorIs(t, err, ErrInvalidResult)

	_, err = DecodeResult[echoResult](map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidResult)
}
