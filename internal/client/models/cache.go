package models

import "time"

// CacheRecord is what the client remembers between runs. An empty
// LicenseToken means the account has no license yet.
type CacheRecord struct {
	AccountID    int64
	LicenseToken string
	LastChecked  *time.Time
}
