package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cikmap_backend/internal/platform/provider"
)

// FetchRegistry は provider/model の組からフェッチャーを実行するレジストリです。
type FetchRegistry interface {
	Fetch(ctx context.Context, provider, model string, params map[string]any, credentials map[string]string) (any, error)
}

// ErrorRecord はエラー表示を持ちうる結果レコードです。
// RecordError が空でない場合、結果は404で返します。
type ErrorRecord interface {
	RecordError() string
}

// FetchHandler は登録済みフェッチャーを汎用エンドポイントで公開します。
type FetchHandler struct {
	reg FetchRegistry
}

// NewFetchHandler は新しい FetchHandler を作成します。
func NewFetchHandler(reg FetchRegistry) *FetchHandler {
	return &FetchHandler{reg: reg}
}

// Fetch はクエリパラメータをそのままフェッチャーに渡し、結果をJSONで返します。
// 同名のパラメータが複数ある場合は配列として渡します。
//
// エンドポイント例:
// GET /v1/sec/CikMap?symbol=AAPL
func (h *FetchHandler) Fetch(c *gin.Context) {
	params := make(map[string]any)
	for k, vs := range c.Request.URL.Query() {
		if len(vs) == 1 {
			params[k] = vs[0]
		} else {
			params[k] = vs
		}
	}

	res, err := h.reg.Fetch(c.Request.Context(), c.Param("provider"), c.Param("model"), params, nil)
	if err != nil {
		c.JSON(StatusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if rec, ok := res.(ErrorRecord); ok && rec.RecordError() != "" {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// StatusFromError はフェッチャーのエラーをHTTPステータスに変換します。
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, provider.ErrFetcherNotFound):
		return http.StatusNotFound
	case errors.Is(err, provider.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
