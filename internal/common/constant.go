// Package common contains shared constants and sentinel errors used across
// LicenseKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MaxExpiryDays caps license length so expiry dates stay within four-digit
// years. Keep in sync with the validate tag on GenerateLicenseRequest.
const MaxExpiryDays = 2_900_000
