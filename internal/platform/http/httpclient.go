// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Option はNewHTTPClientの追加設定です。
type Option func(*http.Client)

// WithRequestLogging はリクエストごとのメソッド・URL・ステータス・所要時間をslogのDebugレベルで出力します。
func WithRequestLogging(logger *slog.Logger) Option {
	return func(c *http.Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.Transport = &loggingTransport{next: c.Transport, logger: logger}
	}
}

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConnsPerHost: 接続先はほぼ単一ホストのため既定値(2)より多く保持
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
func NewHTTPClient(timeout time.Duration, opts ...Option) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	c := &http.Client{Timeout: timeout, Transport: t}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// loggingTransport はリクエスト結果をログ出力するRoundTripperです。
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (lt *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := lt.next.RoundTrip(req)
	if err != nil {
		lt.logger.Debug("outbound request failed",
			"method", req.Method, "url", req.URL.String(), "duration", time.Since(start), "error", err)
		return nil, err
	}
	lt.logger.Debug("outbound request",
		"method", req.Method, "url", req.URL.String(), "status", res.StatusCode, "duration", time.Since(start))
	return res, nil
}
