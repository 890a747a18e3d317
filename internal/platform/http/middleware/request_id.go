// Package middleware はGin共通ミドルウェアを提供します。
package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを伝搬するヘッダー名です。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はgin.Contextに保存するリクエストIDのキーです。
	ContextRequestID = "requestID"

	maxRequestIDLen = 128
)

// RequestID はリクエストIDを付与するミドルウェアを返します。
// クライアントが X-Request-ID を送った場合はそれを使い、なければUUIDを生成します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)

		c.Next()

		if len(c.Errors) > 0 {
			slog.Warn("request finished with errors",
				"request_id", id, "path", c.FullPath(), "errors", c.Errors.String())
		}
	}
}
