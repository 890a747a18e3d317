package entity

// ListingKind identifies which SEC listing a ticker came from.
type ListingKind string

const (
	// KindCompany is the operating company listing (company_tickers.json).
	KindCompany ListingKind = "company"
	// KindFund is the mutual fund and ETF listing (company_tickers_mf.json).
	KindFund ListingKind = "fund"
)

// ListingKinds is the search order used when resolving a symbol.
var ListingKinds = []ListingKind{KindCompany, KindFund}

// Valid reports whether k is a known listing kind.
func (k ListingKind) Valid() bool {
	return k == KindCompany || k == KindFund
}

// Ticker is one row of an SEC ticker listing.
type Ticker struct {
	Symbol   string      `json:"symbol"`
	CIK      int64       `json:"cik"`
	Name     string      `json:"name,omitempty"`
	Kind     ListingKind `json:"kind"`
	Position int         `json:"position"`
}
