package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"cikmap_backend/internal/platform/provider"
)

// mockFetchRegistry はFetchRegistryインターフェースのモック実装です。
type mockFetchRegistry struct {
	FetchFunc func(ctx context.Context, provider, model string, params map[string]any, credentials map[string]string) (any, error)
}

// Fetch はモックのFetch関数を呼び出します。
func (m *mockFetchRegistry) Fetch(ctx context.Context, provider, model string, params map[string]any, credentials map[string]string) (any, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, provider, model, params, credentials)
	}
	return nil, nil
}

// record はErrorRecordを実装するテスト用の結果レコードです。
type record struct {
	Value string `json:"value,omitempty"`
	Error string `json:"Error,omitempty"`
}

func (r record) RecordError() string { return r.Error }

// TestFetchHandler_Fetch は汎用エンドポイントの各種シナリオをテーブル駆動テストで検証します。
func TestFetchHandler_Fetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		fetch          func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: params and path forwarded",
			url:  "/v1/sec/CikMap?symbol=AAPL",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				if p != "sec" || m != "CikMap" {
					return nil, errors.New("wrong route")
				}
				return gin.H{"cik": "0000320193", "echo": params["symbol"]}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"cik":"0000320193","echo":"AAPL"}`,
		},
		{
			name: "success: repeated params become a list",
			url:  "/v1/sec/CikMap?symbol=AAPL&symbol=MSFT",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				return params, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"symbol":["AAPL","MSFT"]}`,
		},
		{
			name: "success: record without error",
			url:  "/v1/sec/CikMap?symbol=AAPL",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				return record{Value: "0000320193"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"value":"0000320193"}`,
		},
		{
			name: "not found: error record",
			url:  "/v1/sec/CikMap?symbol=ZZZZ",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				return record{Error: "Symbol not found."}, nil
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"Error":"Symbol not found."}`,
		},
		{
			name: "failure: unknown fetcher",
			url:  "/v1/sec/Quote",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				return nil, provider.ErrFetcherNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"fetcher not found"}`,
		},
		{
			name: "failure: invalid query",
			url:  "/v1/sec/CikMap",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				return nil, provider.ErrInvalidQuery
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid query"}`,
		},
		{
			name: "failure: upstream error",
			url:  "/v1/sec/CikMap?symbol=AAPL",
			fetch: func(ctx context.Context, p, m string, params map[string]any, creds map[string]string) (any, error) {
				return nil, errors.New("sec http 503")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"sec http 503"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewFetchHandler(&mockFetchRegistry{FetchFunc: tt.fetch})
			router := gin.New()
			router.GET("/v1/:provider/:model", h.Fetch)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestStatusFromError はエラー種別とHTTPステータスの対応を検証します。
func TestStatusFromError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusNotFound, StatusFromError(provider.ErrFetcherNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusFromError(provider.ErrInvalidQuery))
	assert.Equal(t, http.StatusGatewayTimeout, StatusFromError(context.DeadlineExceeded))
	assert.Equal(t, http.StatusBadGateway, StatusFromError(provider.ErrInvalidResult))
	assert.Equal(t, http.StatusBadGateway, StatusFromError(errors.New("boom")))
}
