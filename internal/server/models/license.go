package models

import "time"

// License binds one token to one account.
//
// ExpiryDate is a calendar date (midnight UTC) fixed at generation.
// LastChecked is nil until the first recorded verification and only moves forward.
type License struct {
	ID          int64
	AccountID   int64
	Token       string
	ExpiryDate  time.Time
	LastChecked *time.Time
	CreatedAt   time.Time
}

// LicensePayload is the record sealed inside a license token.
type LicensePayload struct {
	ExpiryDate string `json:"expiry_date"`
}
