// Package cache persists the client's single license cache record.
package cache

import (
	"context"

	"github.com/dmitrijs2005/licensekeeper/internal/client/models"
)

// Repository stores at most one record. Load returns (nil, nil) when the
// cache is empty.
type Repository interface {
	Load(ctx context.Context) (*models.CacheRecord, error)
	Save(ctx context.Context, rec *models.CacheRecord) error
	Clear(ctx context.Context) error
}
