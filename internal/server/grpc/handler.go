package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/rpc"
	"github.com/dmitrijs2005/licensekeeper/internal/timex"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *rpc.SignupRequest) (*rpc.SignupResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, mapError(err)
	}

	id, err := s.auth.Signup(ctx, req.Username, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "account_id", id)
	return &rpc.SignupResponse{AccountID: id}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, mapError(err)
	}

	res, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.LoginResponse{
		AccountID:    res.AccountID,
		LicenseToken: res.LicenseToken,
		AccessToken:  res.AccessToken,
	}, nil
}

func (s *GRPCServer) GenerateLicense(ctx context.Context, req *rpc.GenerateLicenseRequest) (*rpc.GenerateLicenseResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		if failedOn(err, "ExpiryDays") {
			return nil, mapError(common.ErrInvalidExpiryDays)
		}
		return nil, mapError(err)
	}

	caller, ok := accountIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if caller != req.AccountID {
		return nil, status.Error(codes.PermissionDenied, "token does not belong to this account")
	}

	token, expiry, err := s.licenses.Generate(ctx, req.AccountID, req.ExpiryDays)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.GenerateLicenseResponse{
		LicenseToken: token,
		ExpiryDate:   timex.FormatDate(expiry),
	}, nil
}

func (s *GRPCServer) VerifyLicense(ctx context.Context, req *rpc.VerifyLicenseRequest) (*rpc.VerifyLicenseResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, mapError(err)
	}

	res, err := s.licenses.Verify(ctx, req.AccountID, req.LicenseToken)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.VerifyLicenseResponse{
		Status:      rpc.StatusValid,
		ExpiryDate:  timex.FormatDate(res.ExpiryDate),
		LastChecked: res.LastChecked.UTC().Format(time.RFC3339),
		Throttled:   res.Throttled,
	}, nil
}

func (s *GRPCServer) InspectLicense(ctx context.Context, req *rpc.InspectLicenseRequest) (*rpc.InspectLicenseResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, mapError(err)
	}

	p, err := s.licenses.Inspect(ctx, req.LicenseToken)
	if err != nil {
		return nil, mapError(err)
	}

	return &rpc.InspectLicenseResponse{ExpiryDate: p.ExpiryDate}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
