// Package common defines shared constants and sentinel errors used across
// client and server layers of LicenseKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrDuplicateLicense = errors.New("duplicate license")
	ErrAccountNotFound  = errors.New("account not found")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")

	// Account errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// License lifecycle errors.
	ErrLicenseAlreadyExists = errors.New("account already has a license")
	ErrNoLicense            = errors.New("account has no license")
	ErrInvalidToken         = errors.New("invalid license key")
	ErrLicenseExpired       = errors.New("license has expired")
	ErrInvalidExpiryDays    = errors.New("expiry days must be a positive integer")

	// ErrDecode is returned when a license token cannot be authenticated or parsed.
	ErrDecode = errors.New("license token cannot be decoded")

	// Session token errors.
	ErrTokenExpired = errors.New("token expired")
)
