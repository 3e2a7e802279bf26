// Package accounts persists account records. Usernames are unique by
// constraint; a second insert with the same name fails with
// common.ErrDuplicateUsername.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}
