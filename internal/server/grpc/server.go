// Package grpc serves rpc.LicenseService over gRPC with the JSON codec.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/logging"
	"github.com/dmitrijs2005/licensekeeper/internal/rpc"
	"github.com/dmitrijs2005/licensekeeper/internal/server/models"
	"github.com/dmitrijs2005/licensekeeper/internal/server/services"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
)

// AuthGateway is implemented by services.AuthService.
type AuthGateway interface {
	Signup(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
	Authenticate(token string) (int64, error)
}

// LicenseEngine is implemented by services.LicenseService.
type LicenseEngine interface {
	Generate(ctx context.Context, accountID int64, expiryDays int) (string, time.Time, error)
	Verify(ctx context.Context, accountID int64, token string) (*services.VerifyResult, error)
	Inspect(ctx context.Context, token string) (*models.LicensePayload, error)
}

// RPCObserver records per-call outcomes, e.g. metrics.Metrics.
type RPCObserver interface {
	ObserveRPC(method, code string, d time.Duration)
}

type GRPCServer struct {
	address  string
	auth     AuthGateway
	licenses LicenseEngine
	observer RPCObserver
	logger   logging.Logger
	validate *validator.Validate
}

func NewGRPCServer(a string, l logging.Logger, ag AuthGateway, le LicenseEngine, o RPCObserver) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		auth:     ag,
		licenses: le,
		observer: o,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)
	rpc.RegisterLicenseServiceServer(srv, s)
	return srv
}

// Run listens on the configured address until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully when ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
