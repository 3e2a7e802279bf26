// Package licenses persists license records keyed one-to-one by account.
package licenses

import (
	"context"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
)

// Repository is the durable license store.
//
// Create relies on the unique constraint on account_id: a second license for
// the same account fails with common.ErrDuplicateLicense, never silently.
// UpdateLastChecked only ever moves last_checked forward and reports whether
// the row was changed.
type Repository interface {
	Create(ctx context.Context, license *models.License) (*models.License, error)
	GetByAccount(ctx context.Context, accountID int64) (*models.License, error)
	UpdateLastChecked(ctx context.Context, licenseID int64, at time.Time) (bool, error)
}
