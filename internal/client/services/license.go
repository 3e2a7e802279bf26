// Package services implements the client's license flow on top of the
// server API and the local cache.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/client/client"
	"github.com/dmitrijs2005/licensekeeper/internal/client/models"
	"github.com/dmitrijs2005/licensekeeper/internal/client/repositories/cache"
	"github.com/dmitrijs2005/licensekeeper/internal/common"
)

// State tells the UI which step comes next.
type State string

const (
	StateLogin    State = "login"
	StateGenerate State = "generate"
	StateLicensed State = "licensed"
	StateNeedsKey State = "needs_key"
)

// OfflineGrace is how long a successful check is trusted while the server
// is unreachable.
const OfflineGrace = 24 * time.Hour

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrLoginRequired = errors.New("log in again to generate a license")
)

// License is a license as the client sees it.
type License struct {
	Token       string
	ExpiryDate  string
	LastChecked time.Time
	Throttled   bool
}

type LicenseService interface {
	Precheck(ctx context.Context) (State, error)
	Signup(ctx context.Context, username, password string) (State, error)
	Login(ctx context.Context, username, password string) (State, error)
	Generate(ctx context.Context, expiryDays int) (*License, error)
	Verify(ctx context.Context, token string) (*License, error)
	Inspect(ctx context.Context, token string) (string, error)
	Status(ctx context.Context) (*models.CacheRecord, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

type licenseService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewLicenseService(c client.Client, db *sql.DB) LicenseService {
	return &licenseService{client: c, db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *licenseService) getCacheRepo() cache.Repository {
	return cache.NewSQLiteRepository(s.db)
}

// Precheck decides the starting state from the cache: nothing cached means
// login, an account without a token means generation, and a cached token is
// verified with the server.
func (s *licenseService) Precheck(ctx context.Context) (State, error) {
	rec, err := s.getCacheRepo().Load(ctx)
	if err != nil {
		return "", err
	}

	switch {
	case rec == nil:
		return StateLogin, nil
	case rec.LicenseToken == "":
		return StateGenerate, nil
	}

	if _, err := s.verify(ctx, rec, rec.LicenseToken); err != nil {
		if errors.Is(err, client.ErrUnavailable) && rec.LastChecked != nil &&
			s.now().Sub(*rec.LastChecked) < OfflineGrace {
			return StateLicensed, nil
		}
		return StateNeedsKey, err
	}

	return StateLicensed, nil
}

// Signup creates the account and logs straight in, so that a license can
// be generated without asking for the password twice.
func (s *licenseService) Signup(ctx context.Context, username, password string) (State, error) {
	if _, err := s.client.Signup(ctx, username, password); err != nil {
		return "", err
	}
	return s.Login(ctx, username, password)
}

func (s *licenseService) Login(ctx context.Context, username, password string) (State, error) {
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return "", err
	}

	rec := &models.CacheRecord{AccountID: res.AccountID, LicenseToken: res.LicenseToken}
	if err := s.getCacheRepo().Save(ctx, rec); err != nil {
		return "", err
	}

	if res.LicenseToken == "" {
		return StateGenerate, nil
	}

	if _, err := s.verify(ctx, rec, res.LicenseToken); err != nil {
		return StateNeedsKey, err
	}
	return StateLicensed, nil
}

func (s *licenseService) Generate(ctx context.Context, expiryDays int) (*License, error) {
	rec, err := s.loggedIn(ctx)
	if err != nil {
		return nil, err
	}

	token, expiry, err := s.client.GenerateLicense(ctx, rec.AccountID, expiryDays)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, ErrLoginRequired
		}
		return nil, err
	}

	now := s.now()
	rec.LicenseToken = token
	rec.LastChecked = &now
	if err := s.getCacheRepo().Save(ctx, rec); err != nil {
		return nil, err
	}

	return &License{Token: token, ExpiryDate: expiry, LastChecked: now}, nil
}

// Verify checks token, or the cached token when token is empty. A token
// that verifies replaces the cached one.
func (s *licenseService) Verify(ctx context.Context, token string) (*License, error) {
	rec, err := s.loggedIn(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		token = rec.LicenseToken
	}
	if token == "" {
		return nil, common.ErrNoLicense
	}
	return s.verify(ctx, rec, token)
}

func (s *licenseService) verify(ctx context.Context, rec *models.CacheRecord, token string) (*License, error) {
	res, err := s.client.VerifyLicense(ctx, rec.AccountID, token)
	if err != nil {
		return nil, err
	}

	checked, perr := time.Parse(time.RFC3339, res.LastChecked)
	if perr != nil {
		checked = s.now()
	}

	rec.LicenseToken = token
	rec.LastChecked = &checked
	if err := s.getCacheRepo().Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("license verified but cache update failed: %w", err)
	}

	return &License{
		Token:       token,
		ExpiryDate:  res.ExpiryDate,
		LastChecked: checked,
		Throttled:   res.Throttled,
	}, nil
}

// Inspect returns the expiry date encoded in token, or in the cached token
// when token is empty. The server does not check ownership.
func (s *licenseService) Inspect(ctx context.Context, token string) (string, error) {
	if token == "" {
		rec, err := s.loggedIn(ctx)
		if err != nil {
			return "", err
		}
		token = rec.LicenseToken
	}
	if token == "" {
		return "", common.ErrNoLicense
	}
	return s.client.InspectLicense(ctx, token)
}

func (s *licenseService) loggedIn(ctx context.Context) (*models.CacheRecord, error) {
	rec, err := s.getCacheRepo().Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotLoggedIn
	}
	return rec, nil
}

func (s *licenseService) Status(ctx context.Context) (*models.CacheRecord, error) {
	return s.loggedIn(ctx)
}

func (s *licenseService) Logout(ctx context.Context) error {
	return s.getCacheRepo().Clear(ctx)
}

func (s *licenseService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *licenseService) Close() error {
	return s.client.Close()
}
