package rpc

// Status values reported by VerifyLicense.
const (
	StatusValid = "valid"
)

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type SignupResponse struct {
	AccountID int64 `json:"account_id"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse.LicenseToken is empty when the account has no license yet.
type LoginResponse struct {
	AccountID    int64  `json:"account_id"`
	LicenseToken string `json:"license_token,omitempty"`
	AccessToken  string `json:"access_token"`
}

// GenerateLicenseRequest needs the access_token metadata of the same account.
type GenerateLicenseRequest struct {
	AccountID  int64 `json:"account_id" validate:"required,gt=0"`
	ExpiryDays int   `json:"expiry_days" validate:"gt=0,lte=2900000"`
}

type GenerateLicenseResponse struct {
	LicenseToken string `json:"license_token"`
	ExpiryDate   string `json:"expiry_date"`
}

type VerifyLicenseRequest struct {
	AccountID    int64  `json:"account_id" validate:"required,gt=0"`
	LicenseToken string `json:"license_token" validate:"required"`
}

type VerifyLicenseResponse struct {
	Status      string `json:"status"`
	ExpiryDate  string `json:"expiry_date"`
	LastChecked string `json:"last_checked"`
	Throttled   bool   `json:"throttled"`
}

type InspectLicenseRequest struct {
	LicenseToken string `json:"license_token" validate:"required"`
}

type InspectLicenseResponse struct {
	ExpiryDate string `json:"expiry_date"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
