// Package sec はSEC EDGARのティッカー一覧ファイルを取得するクライアントを提供します。
package sec

import "time"

// Config はSEC EDGARクライアントの設定を保持します。
type Config struct {
	BaseURL   string        // EDGARのベースURL（例: "https://www.sec.gov"）
	UserAgent string        // SECのフェアアクセスポリシーで必須の連絡先付きUser-Agent
	Timeout   time.Duration // HTTPリクエストタイムアウト
}

const (
	companyTickersPath = "/files/company_tickers.json"
	fundTickersPath    = "/files/company_tickers_mf.json"
)
