package licenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/dbx"
	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
)

const accountConstraint = "licenses_account_id_key"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the license and fills in its ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, license *models.License) (*models.License, error) {
	query := `
		INSERT INTO licenses (account_id, token, expiry_date, last_checked)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	var lastChecked sql.NullTime
	if license.LastChecked != nil {
		lastChecked = sql.NullTime{Time: *license.LastChecked, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		license.AccountID, license.Token, license.ExpiryDate, lastChecked).
		Scan(&license.ID, &license.CreatedAt)

	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err, accountConstraint):
			return nil, common.ErrDuplicateLicense
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return license, nil
}

// GetByAccount returns the account's license or common.ErrorNotFound.
func (r *PostgresRepository) GetByAccount(ctx context.Context, accountID int64) (*models.License, error) {
	query := `
		SELECT id, account_id, token, expiry_date, last_checked, created_at
		FROM licenses
		WHERE account_id = $1
	`

	license := &models.License{}
	var lastChecked sql.NullTime

	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&license.ID, &license.AccountID, &license.Token,
		&license.ExpiryDate, &lastChecked, &license.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lastChecked.Valid {
		t := lastChecked.Time
		license.LastChecked = &t
	}

	return license, nil
}

// UpdateLastChecked sets last_checked to at unless it already holds a later
// (or equal) timestamp.
func (r *PostgresRepository) UpdateLastChecked(ctx context.Context, licenseID int64, at time.Time) (bool, error) {
	query := `
		UPDATE licenses SET last_checked = $2
		WHERE id = $1 AND (last_checked IS NULL OR last_checked < $2)
	`

	res, err := r.db.ExecContext(ctx, query, licenseID, at)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}
