// Package server wires the license server together: key provisioning,
// Postgres, services, the gRPC endpoint and the metrics endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/cryptox"
	"github.com/dmitrijs2005/licensekeeper/internal/logging"
	"github.com/dmitrijs2005/licensekeeper/internal/server/config"
	"github.com/dmitrijs2005/licensekeeper/internal/server/keystore"
	"github.com/dmitrijs2005/licensekeeper/internal/server/metrics"
	"github.com/dmitrijs2005/licensekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/licensekeeper/internal/server/services"
	"github.com/dmitrijs2005/licensekeeper/internal/timex"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/licensekeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	metrics  *metrics.Metrics
	auth     *services.AuthService
	licenses *services.LicenseService
}

// test seams
var (
	openPostgres  = repomanager.OpenPostgres
	newS3Provider = func(ctx context.Context, c keystore.S3Config) (keystore.Provider, error) {
		return keystore.NewS3Provider(ctx, c)
	}
)

// NewApp provisions the license key, connects to the database, applies
// migrations and builds the services. A key that cannot be loaded or created
// is an error: the server must not issue tokens it could not verify after a
// restart.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	provider, err := newKeyProvider(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("key provider: %w", err)
	}

	key, err := keystore.NewProvisioner(provider).Key(ctx)
	if err != nil {
		return nil, fmt.Errorf("license key: %w", err)
	}

	codec, err := cryptox.NewTokenCodec(key)
	common.WipeByteArray(key)
	if err != nil {
		return nil, err
	}

	db, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	m := metrics.New()
	creds := services.NewCredentialStore(db, rm, cryptox.NewBcryptHasher(c.BcryptCost))
	licenses := services.NewLicenseService(db, rm, codec, timex.SystemClock{}, m, logger)
	secret, err := sessionSecret(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	auth := services.NewAuthService(creds, licenses, secret, c.AccessTokenValidityDuration)

	logger.Info(ctx, "license key ready", "source", c.KeySource)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		metrics:  m,
		auth:     auth,
		licenses: licenses,
	}, nil
}

// sessionSecret returns the configured JWT secret, or a random one when none
// is set. Access tokens signed with a random secret die with the process.
func sessionSecret(ctx context.Context, c *config.Config, logger logging.Logger) (string, error) {
	if c.SecretKey != "" {
		return c.SecretKey, nil
	}
	s, err := common.MakeRandHexString(32)
	if err != nil {
		return "", fmt.Errorf("session secret: %w", err)
	}
	logger.Warn(ctx, "no access token secret configured, using a random one")
	return s, nil
}

func newKeyProvider(ctx context.Context, c *config.Config) (keystore.Provider, error) {
	switch c.KeySource {
	case config.KeySourceFile:
		return keystore.NewFileProvider(c.KeyFile), nil
	case config.KeySourcePassphrase:
		return keystore.NewPassphraseProvider(c.KeyPassphrase, c.KeySalt)
	case config.KeySourceS3:
		return newS3Provider(ctx, keystore.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			Bucket:       c.S3Bucket,
			ObjectKey:    c.S3KeyObject,
		})
	}
	return nil, fmt.Errorf("unknown key source %q", c.KeySource)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runMetricsServer serves /metrics until ctx is done. An empty address
// disables it.
func (app *App) runMetricsServer(ctx context.Context) error {
	if app.config.MetricsAddr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until a signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.auth, app.licenses, app.metrics)
		return s.Run(ctx)
	})
	g.Go(func() error {
		return app.runMetricsServer(ctx)
	})

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(context.Background(), "closing database", "error", cerr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
