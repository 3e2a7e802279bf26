package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/client/client"
	"github.com/dmitrijs2005/licensekeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := NewSQLiteRepository(newTestDB(t))
	ctx := context.Background()

	rec, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, repo.Save(ctx, &models.CacheRecord{AccountID: 1}))
	rec, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.CacheRecord{AccountID: 1}, rec)

	checked := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &models.CacheRecord{AccountID: 1, LicenseToken: "T", LastChecked: &checked}))

	rec, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec.LastChecked)
	assert.Equal(t, "T", rec.LicenseToken)
	assert.True(t, checked.Equal(*rec.LastChecked))

	require.NoError(t, repo.Clear(ctx))
	rec, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSQLiteRepository_SingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.CacheRecord{AccountID: 1, LicenseToken: "A"}))
	require.NoError(t, repo.Save(ctx, &models.CacheRecord{AccountID: 2, LicenseToken: "B"}))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM license_cache`).Scan(&n))
	assert.Equal(t, 1, n)

	rec, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.AccountID)
	assert.Equal(t, "B", rec.LicenseToken)
}

func TestSQLiteRepository_BadTimestamp(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO license_cache (id, account_id, license_token, last_checked) VALUES (1, 1, 'T', 'yesterday')`)
	require.NoError(t, err)

	_, err = NewSQLiteRepository(db).Load(context.Background())
	require.Error(t, err)
}
