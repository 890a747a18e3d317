// Package dto はSEC EDGARのティッカー一覧ファイルのデータ転送オブジェクトを定義します。
package dto

import "encoding/json"

// CompanyTicker は company_tickers.json の1行を表します。
// ファイル全体は "0", "1", ... をキーとするオブジェクトです。
type CompanyTicker struct {
	CikStr int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// CompanyTickersResponse は company_tickers.json 全体を表します。
type CompanyTickersResponse map[string]CompanyTicker

// FundTickersResponse は company_tickers_mf.json を表します。
// Data の各行は Fields と同じ順序の列を持ちます（例: cik, seriesId, classId, symbol）。
type FundTickersResponse struct {
	Fields []string            `json:"fields"`
	Data   [][]json.RawMessage `json:"data"`
}
