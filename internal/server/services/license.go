package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/logging"
	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/licensekeeper/internal/timex"
)

// ThrottleWindow is the minimum spacing between two recorded verifications.
const ThrottleWindow = 24 * time.Hour

// License events reported to an EventRecorder.
const (
	EventGenerated = "generated"
	EventVerified  = "verified"
	EventThrottled = "throttled"
	EventRejected  = "rejected"
	EventFailed    = "failed"
)

type TokenCodec interface {
	Encode(payload any) (string, error)
	Decode(token string, v any) error
}

// EventRecorder counts lifecycle events, e.g. for metrics.
type EventRecorder interface {
	LicenseEvent(event string)
}

type nopRecorder struct{}

func (nopRecorder) LicenseEvent(string) {}

// VerifyResult describes a license that passed verification.
type VerifyResult struct {
	ExpiryDate  time.Time
	LastChecked time.Time
	// Throttled is true when the check fell inside ThrottleWindow and
	// nothing was written.
	Throttled bool
}

// LicenseService implements the license lifecycle: one license per account,
// generated once, then verified with throttled bookkeeping.
type LicenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       TokenCodec
	clock       timex.Clock
	events      EventRecorder
	log         logging.Logger
}

func NewLicenseService(db *sql.DB, m repomanager.RepositoryManager, codec TokenCodec,
	clock timex.Clock, events EventRecorder, log logging.Logger) *LicenseService {
	if events == nil {
		events = nopRecorder{}
	}
	return &LicenseService{
		db:          db,
		repomanager: m,
		codec:       codec,
		clock:       clock,
		events:      events,
		log:         log.With("module", "licenses"),
	}
}

// Generate issues the account's license, valid through today+expiryDays.
// The expiry date and the token come from the same encode call.
func (s *LicenseService) Generate(ctx context.Context, accountID int64, expiryDays int) (string, time.Time, error) {
	if expiryDays <= 0 || expiryDays > common.MaxExpiryDays {
		return "", time.Time{}, common.ErrInvalidExpiryDays
	}

	now := s.clock.Now()
	expiry := timex.AddDays(now, expiryDays)
	if expiry.Year() > timex.MaxYear {
		return "", time.Time{}, common.ErrInvalidExpiryDays
	}

	token, err := s.codec.Encode(models.LicensePayload{ExpiryDate: timex.FormatDate(expiry)})
	if err != nil {
		return "", time.Time{}, err
	}

	_, err = s.repomanager.Licenses(s.db).Create(ctx, &models.License{
		AccountID:   accountID,
		Token:       token,
		ExpiryDate:  expiry,
		LastChecked: &now,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateLicense):
			return "", time.Time{}, common.ErrLicenseAlreadyExists
		case errors.Is(err, common.ErrAccountNotFound):
			return "", time.Time{}, err
		}
		return "", time.Time{}, fmt.Errorf("error creating license: %w", err)
	}

	s.events.LicenseEvent(EventGenerated)
	s.log.Info(ctx, "license generated", "account_id", accountID, "expiry", timex.FormatDate(expiry))

	return token, expiry, nil
}

// Verify checks token against the account's stored license. The token is
// compared as an opaque string and never decoded.
func (s *LicenseService) Verify(ctx context.Context, accountID int64, token string) (*VerifyResult, error) {
	repo := s.repomanager.Licenses(s.db)

	license, err := repo.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.events.LicenseEvent(EventRejected)
			return nil, common.ErrNoLicense
		}
		s.events.LicenseEvent(EventFailed)
		return nil, fmt.Errorf("error reading license: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(license.Token), []byte(token)) != 1 {
		s.events.LicenseEvent(EventRejected)
		s.log.Warn(ctx, "license token mismatch", "account_id", accountID)
		return nil, common.ErrInvalidToken
	}

	now := s.clock.Now()
	if license.ExpiryDate.Before(timex.Date(now)) {
		s.events.LicenseEvent(EventRejected)
		return nil, common.ErrLicenseExpired
	}

	if license.LastChecked != nil && now.Sub(*license.LastChecked) < ThrottleWindow {
		s.events.LicenseEvent(EventThrottled)
		return &VerifyResult{
			ExpiryDate:  license.ExpiryDate,
			LastChecked: *license.LastChecked,
			Throttled:   true,
		}, nil
	}

	updated, err := repo.UpdateLastChecked(ctx, license.ID, now)
	if err != nil {
		s.events.LicenseEvent(EventFailed)
		return nil, fmt.Errorf("error updating last check: %w", err)
	}

	checked := now
	if !updated {
		// a concurrent verification already moved last_checked past now
		current, err := repo.GetByAccount(ctx, accountID)
		if err != nil {
			s.events.LicenseEvent(EventFailed)
			return nil, fmt.Errorf("error reading license: %w", err)
		}
		if current.LastChecked != nil {
			checked = *current.LastChecked
		}
		s.log.Debug(ctx, "last check already advanced", "account_id", accountID)
	}

	s.events.LicenseEvent(EventVerified)

	return &VerifyResult{ExpiryDate: license.ExpiryDate, LastChecked: checked}, nil
}

// Inspect decodes a token and returns its payload. Tampered or foreign
// tokens fail with common.ErrDecode.
func (s *LicenseService) Inspect(_ context.Context, token string) (*models.LicensePayload, error) {
	var p models.LicensePayload
	if err := s.codec.Decode(token, &p); err != nil {
		return nil, err
	}
	if _, err := timex.ParseDate(p.ExpiryDate); err != nil {
		return nil, fmt.Errorf("%w: bad expiry date", common.ErrDecode)
	}
	return &p, nil
}

// TokenFor returns the account's license token, or "" if it has none.
func (s *LicenseService) TokenFor(ctx context.Context, accountID int64) (string, error) {
	license, err := s.repomanager.Licenses(s.db).GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading license: %w", err)
	}
	return license.Token, nil
}
