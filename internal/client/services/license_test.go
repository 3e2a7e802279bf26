package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/client/client"
	"github.com/dmitrijs2005/licensekeeper/internal/client/models"
	"github.com/dmitrijs2005/licensekeeper/internal/client/repositories/cache"
	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	accountID    int64
	licenseToken string
	signupErr    error
	loginErr     error
	genErr       error
	verifyErr    error
	verified     []string
	closed       bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Signup(context.Context, string, string) (int64, error) {
	return f.accountID, f.signupErr
}

func (f *fakeClient) Login(context.Context, string, string) (*client.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.LoginResult{AccountID: f.accountID, LicenseToken: f.licenseToken}, nil
}

func (f *fakeClient) GenerateLicense(_ context.Context, _ int64, _ int) (string, string, error) {
	if f.genErr != nil {
		return "", "", f.genErr
	}
	f.licenseToken = "NEW"
	return "NEW", "2025-04-09", nil
}

func (f *fakeClient) VerifyLicense(_ context.Context, _ int64, token string) (*client.VerifyResult, error) {
	f.verified = append(f.verified, token)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if token != f.licenseToken {
		return nil, common.ErrInvalidToken
	}
	return &client.VerifyResult{Status: "valid", ExpiryDate: "2025-04-09", LastChecked: "2025-03-10T15:30:00Z"}, nil
}

func (f *fakeClient) InspectLicense(_ context.Context, token string) (string, error) {
	if token == "bad" {
		return "", common.ErrDecode
	}
	return "2025-04-09", nil
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func newService(t *testing.T, fc *fakeClient) (*licenseService, cache.Repository) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewLicenseService(fc, db).(*licenseService)
	s.now = func() time.Time { return time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC) }
	return s, cache.NewSQLiteRepository(db)
}

func seed(t *testing.T, db *sql.DB, rec *models.CacheRecord) {
	t.Helper()
	require.NoError(t, cache.NewSQLiteRepository(db).Save(context.Background(), rec))
}

func TestPrecheck_States(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cache", func(t *testing.T) {
		s, _ := newService(t, &fakeClient{})
		st, err := s.Precheck(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateLogin, st)
	})

	t.Run("account without license", func(t *testing.T) {
		s, _ := newService(t, &fakeClient{})
		seed(t, s.db, &models.CacheRecord{AccountID: 1})
		st, err := s.Precheck(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateGenerate, st)
	})

	t.Run("valid license refreshes last check", func(t *testing.T) {
		fc := &fakeClient{licenseToken: "T"}
		s, repo := newService(t, fc)
		seed(t, s.db, &models.CacheRecord{AccountID: 1, LicenseToken: "T"})

		st, err := s.Precheck(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateLicensed, st)

		rec, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, rec.LastChecked)
		assert.Equal(t, "2025-03-10T15:30:00Z", rec.LastChecked.Format(time.RFC3339))
	})

	t.Run("rejected license asks for a key", func(t *testing.T) {
		fc := &fakeClient{licenseToken: "T", verifyErr: common.ErrLicenseExpired}
		s, _ := newService(t, fc)
		seed(t, s.db, &models.CacheRecord{AccountID: 1, LicenseToken: "T"})

		st, err := s.Precheck(ctx)
		require.ErrorIs(t, err, common.ErrLicenseExpired)
		assert.Equal(t, StateNeedsKey, st)
	})

	t.Run("offline within grace", func(t *testing.T) {
		fc := &fakeClient{verifyErr: client.ErrUnavailable}
		s, _ := newService(t, fc)
		recent := s.now().Add(-time.Hour)
		seed(t, s.db, &models.CacheRecord{AccountID: 1, LicenseToken: "T", LastChecked: &recent})

		st, err := s.Precheck(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateLicensed, st)
	})

	t.Run("offline past grace", func(t *testing.T) {
		fc := &fakeClient{verifyErr: client.ErrUnavailable}
		s, _ := newService(t, fc)
		old := s.now().Add(-OfflineGrace - time.Minute)
		seed(t, s.db, &models.CacheRecord{AccountID: 1, LicenseToken: "T", LastChecked: &old})

		st, err := s.Precheck(ctx)
		require.ErrorIs(t, err, client.ErrUnavailable)
		assert.Equal(t, StateNeedsKey, st)
	})
}

func TestSignupThenGenerate(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{accountID: 1}
	s, repo := newService(t, fc)

	st, err := s.Signup(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, StateGenerate, st)

	lic, err := s.Generate(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, "NEW", lic.Token)
	assert.Equal(t, "2025-04-09", lic.ExpiryDate)

	rec, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.AccountID)
	assert.Equal(t, "NEW", rec.LicenseToken)

	st, err = s.Precheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateLicensed, st)
}

func TestSignup_Duplicate(t *testing.T) {
	s, repo := newService(t, &fakeClient{signupErr: common.ErrDuplicateUsername})

	_, err := s.Signup(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	rec, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestLogin_WithLicenseVerifies(t *testing.T) {
	fc := &fakeClient{accountID: 2, licenseToken: "T"}
	s, _ := newService(t, fc)

	st, err := s.Login(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, StateLicensed, st)
	assert.Equal(t, []string{"T"}, fc.verified)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s, _ := newService(t, &fakeClient{loginErr: common.ErrInvalidCredentials})

	_, err := s.Login(context.Background(), "bob", "bad")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{accountID: 3, licenseToken: "T"}
	s, repo := newService(t, fc)

	_, err := s.Verify(ctx, "")
	require.ErrorIs(t, err, ErrNotLoggedIn)

	seed(t, s.db, &models.CacheRecord{AccountID: 3})
	_, err = s.Verify(ctx, "")
	require.ErrorIs(t, err, common.ErrNoLicense)

	_, err = s.Verify(ctx, "garbage")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	lic, err := s.Verify(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-09", lic.ExpiryDate)

	// an entered key that verifies is remembered
	rec, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T", rec.LicenseToken)

	_, err = s.Verify(ctx, "")
	require.NoError(t, err)
}

func TestGenerate_NeedsSession(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t, &fakeClient{genErr: client.ErrUnauthorized})

	_, err := s.Generate(ctx, 30)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	seed(t, s.db, &models.CacheRecord{AccountID: 1})
	_, err = s.Generate(ctx, 30)
	require.ErrorIs(t, err, ErrLoginRequired)
}

func TestLogoutAndClose(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	s, repo := newService(t, fc)
	seed(t, s.db, &models.CacheRecord{AccountID: 1, LicenseToken: "T"})

	require.NoError(t, s.Logout(ctx))
	rec, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = s.Status(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())
	assert.True(t, fc.closed)
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t, &fakeClient{})

	_, err := s.Inspect(ctx, "")
	require.ErrorIs(t, err, ErrNotLoggedIn)

	got, err := s.Inspect(ctx, "any")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-09", got)

	_, err = s.Inspect(ctx, "bad")
	require.ErrorIs(t, err, common.ErrDecode)

	seed(t, s.db, &models.CacheRecord{AccountID: 1})
	_, err = s.Inspect(ctx, "")
	require.ErrorIs(t, err, common.ErrNoLicense)
}
