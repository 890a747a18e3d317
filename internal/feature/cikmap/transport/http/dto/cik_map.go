// Package dto defines data transfer objects for the cikmap HTTP API.
package dto

// TickerItem represents a ticker in the listing response.
type TickerItem struct {
	Symbol string `json:"symbol"`
	Cik    string `json:"cik"`
	Name   string `json:"name,omitempty"`
}
