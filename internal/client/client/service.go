package client

import "context"

// LoginResult is the account and, if one exists, its license token.
type LoginResult struct {
	AccountID    int64
	LicenseToken string
}

type VerifyResult struct {
	Status      string
	ExpiryDate  string
	LastChecked string
	Throttled   bool
}

type Client interface {
	Close() error
	Signup(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GenerateLicense(ctx context.Context, accountID int64, expiryDays int) (token string, expiryDate string, err error)
	VerifyLicense(ctx context.Context, accountID int64, token string) (*VerifyResult, error)
	InspectLicense(ctx context.Context, token string) (string, error)
	Ping(ctx context.Context) error
}
