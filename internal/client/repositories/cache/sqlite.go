package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/client/models"
	"github.com/dmitrijs2005/licensekeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.CacheRecord, error) {
	var (
		rec         models.CacheRecord
		lastChecked sql.NullString
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT account_id, license_token, last_checked FROM license_cache WHERE id = 1`).
		Scan(&rec.AccountID, &rec.LicenseToken, &lastChecked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load license cache: %w", err)
	}

	if lastChecked.Valid && lastChecked.String != "" {
		t, err := time.Parse(time.RFC3339, lastChecked.String)
		if err != nil {
			return nil, fmt.Errorf("bad last_checked in license cache: %w", err)
		}
		rec.LastChecked = &t
	}

	return &rec, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, rec *models.CacheRecord) error {
	var lastChecked sql.NullString
	if rec.LastChecked != nil {
		lastChecked = sql.NullString{String: rec.LastChecked.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO license_cache (id, account_id, license_token, last_checked) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id = excluded.account_id,
			license_token = excluded.license_token,
			last_checked = excluded.last_checked
	`, rec.AccountID, rec.LicenseToken, lastChecked)
	if err != nil {
		return fmt.Errorf("failed to save license cache: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM license_cache`); err != nil {
		return fmt.Errorf("failed to clear license cache: %w", err)
	}
	return nil
}
