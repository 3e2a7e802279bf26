package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/server/auth"
)

// LoginResult tells the caller whether to go on to generation
// (LicenseToken empty) or verification.
type LoginResult struct {
	AccountID    int64
	LicenseToken string
	AccessToken  string
}

// AuthService orchestrates signup and login.
type AuthService struct {
	credentials                 *CredentialStore
	licenses                    *LicenseService
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAuthService(c *CredentialStore, l *LicenseService, jwtSecret string, validity time.Duration) *AuthService {
	return &AuthService{
		credentials:                 c,
		licenses:                    l,
		jwtSecret:                   []byte(jwtSecret),
		accessTokenValidityDuration: validity,
	}
}

func (s *AuthService) Signup(ctx context.Context, username, password string) (int64, error) {
	return s.credentials.Create(ctx, username, password)
}

// Login fails with common.ErrInvalidCredentials for an unknown user and for
// a wrong password alike.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	account, err := s.credentials.Find(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	if !s.credentials.VerifyPassword(account, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.licenses.TokenFor(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	accessToken, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &LoginResult{
		AccountID:    account.ID,
		LicenseToken: token,
		AccessToken:  accessToken,
	}, nil
}

// Authenticate resolves an access token to its account id.
func (s *AuthService) Authenticate(token string) (int64, error) {
	return auth.GetAccountIDFromToken(token, s.jwtSecret)
}
