// Package router assembles the Gin engine and its routes.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	cikmaphandler "cikmap_backend/internal/feature/cikmap/transport/handler"
	"cikmap_backend/internal/platform/http/handler"
	"cikmap_backend/internal/platform/http/middleware"
	jwtmw "cikmap_backend/internal/platform/jwt"
)

// Options holds the settings the router needs besides handlers.
type Options struct {
	// JWTSecret が空の場合、認証なしでルートを公開します。
	JWTSecret string
	// Checks は /readyz で確認する依存先です。
	Checks map[string]handler.CheckFunc
	// CORSOrigins が空の場合CORSヘッダーを付与しません。
	CORSOrigins []string
}

func NewRouter(cikMap *cikmaphandler.CikMapHandler, fetch *handler.FetchHandler, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", middleware.HeaderRequestID},
			ExposeHeaders: []string{middleware.HeaderRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	// 依存先の疎通確認
	r.GET("/readyz", handler.Ready(opts.Checks))

	api := r.Group("/")
	if opts.JWTSecret != "" {
		// → リクエストヘッダーに JWT が必要になる
		api.Use(jwtmw.AuthRequired(opts.JWTSecret))
	} else {
		slog.Warn("JWT_SECRET is not set; API routes are unauthenticated")
	}
	{
		api.GET("/cik/:symbol", cikMap.Resolve)
		api.GET("/tickers", cikMap.ListTickers)
		api.GET("/v1/:provider/:model", fetch.Fetch)
	}

	return r
}
