package server

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/logging"
	"github.com/dmitrijs2005/licensekeeper/internal/server/config"
	"github.com/dmitrijs2005/licensekeeper/internal/server/keystore"
	"github.com/dmitrijs2005/licensekeeper/internal/server/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyProvider(t *testing.T) {
	ctx := context.Background()

	p, err := newKeyProvider(ctx, &config.Config{KeySource: config.KeySourceFile, KeyFile: "x.key"})
	require.NoError(t, err)
	assert.IsType(t, &keystore.FileProvider{}, p)

	p, err = newKeyProvider(ctx, &config.Config{KeySource: config.KeySourcePassphrase, KeyPassphrase: "a", KeySalt: "b"})
	require.NoError(t, err)
	assert.IsType(t, &keystore.PassphraseProvider{}, p)

	_, err = newKeyProvider(ctx, &config.Config{KeySource: config.KeySourcePassphrase})
	require.Error(t, err)

	_, err = newKeyProvider(ctx, &config.Config{KeySource: "vault"})
	require.Error(t, err)
}

func TestNewKeyProvider_S3(t *testing.T) {
	orig := newS3Provider
	t.Cleanup(func() { newS3Provider = orig })

	var got keystore.S3Config
	newS3Provider = func(_ context.Context, c keystore.S3Config) (keystore.Provider, error) {
		got = c
		return keystore.NewFileProvider("unused"), nil
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.KeySource = config.KeySourceS3

	_, err := newKeyProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.S3Bucket, got.Bucket)
	assert.Equal(t, cfg.S3KeyObject, got.ObjectKey)
	assert.Equal(t, cfg.S3RootUser, got.AccessKey)
}

func TestNewApp_KeyFailureIsFatal(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })
	openPostgres = func(context.Context, string) (*sql.DB, error) {
		t.Fatal("database must not be opened without a key")
		return nil, nil
	}

	cfg := &config.Config{KeySource: config.KeySourcePassphrase, LogLevel: "error"}
	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_DatabaseError(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })
	openPostgres = func(context.Context, string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}

	cfg := &config.Config{
		KeySource: config.KeySourceFile,
		KeyFile:   filepath.Join(t.TempDir(), "license.key"),
		LogLevel:  "error",
	}
	_, err := NewApp(context.Background(), cfg)
	require.ErrorContains(t, err, "connection refused")
}

func TestRunMetricsServer(t *testing.T) {
	app := &App{
		config:  &config.Config{MetricsAddr: ""},
		logger:  logging.Discard(),
		metrics: metrics.New(),
	}
	require.NoError(t, app.runMetricsServer(context.Background()))

	app.config.MetricsAddr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.runMetricsServer(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestSessionSecret(t *testing.T) {
	ctx := context.Background()

	got, err := sessionSecret(ctx, &config.Config{SecretKey: "configured"}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "configured", got)

	a, err := sessionSecret(ctx, &config.Config{}, logging.Discard())
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := sessionSecret(ctx, &config.Config{}, logging.Discard())
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
