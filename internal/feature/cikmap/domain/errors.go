// Package domain defines domain-level errors for the cikmap feature.
package domain

import "errors"

// NotFoundMessage is the human-readable message of the not-found error record.
const NotFoundMessage = "Symbol not found."

var (
	// ErrSymbolNotFound indicates that the symbol is absent from every SEC listing.
	// It is returned by callers that need an error rather than a record, such as the CLI.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrInvalidListingKind indicates an unknown ticker listing kind.
	ErrInvalidListingKind = errors.New("invalid listing kind")
)
