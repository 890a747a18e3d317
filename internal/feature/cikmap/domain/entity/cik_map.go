// Package entity defines the domain models for the cikmap feature.
package entity

import "encoding/json"

// CikMapQuery is the validated input of a CIK lookup.
// Symbol is passed through as given; case normalization happens in the symbol map.
type CikMapQuery struct {
	Symbol string `json:"symbol" validate:"required"`
}

// CikMapData is the normalized result of a CIK lookup.
// Cik is nil when the symbol could not be resolved. Error is set only when the
// not-found error record is produced.
type CikMapData struct {
	Cik   *string `json:"cik" validate:"omitempty,numeric"`
	Error string  `json:"Error,omitempty"`
}

// Found reports whether the record carries an identifier.
func (d CikMapData) Found() bool {
	return d.Cik != nil && *d.Cik != ""
}

// RecordError returns the not-found message of an error record, or "".
func (d CikMapData) RecordError() string {
	return d.Error
}

// MarshalJSON renders an error record as {"Error": ...} only, and every other
// record as {"cik": ...}.
func (d CikMapData) MarshalJSON() ([]byte, error) {
	if d.Error != "" {
		return json.Marshal(struct {
			Error string `json:"Error"`
		}{d.Error})
	}
	return json.Marshal(struct {
		Cik *string `json:"cik"`
	}{d.Cik})
}
