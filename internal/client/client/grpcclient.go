package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.LicenseServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = t
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if t := s.token(); t != "" {
		ctx = withAccessToken(ctx, t)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewLicenseClient creates a lazy connection to endpointURL. Extra dial
// options are appended to the defaults.
func NewLicenseClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(rpc.Codec{})),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)
	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewLicenseServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Signup(ctx context.Context, username, password string) (int64, error) {
	resp, err := s.client.Signup(ctx, &rpc.SignupRequest{Username: username, Password: password})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.AccountID, nil
}

// Login stores the returned access token for later GenerateLicense calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setToken(resp.AccessToken)

	return &LoginResult{AccountID: resp.AccountID, LicenseToken: resp.LicenseToken}, nil
}

func (s *GRPCClient) GenerateLicense(ctx context.Context, accountID int64, expiryDays int) (string, string, error) {
	resp, err := s.client.GenerateLicense(ctx, &rpc.GenerateLicenseRequest{AccountID: accountID, ExpiryDays: expiryDays})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.LicenseToken, resp.ExpiryDate, nil
}

func (s *GRPCClient) VerifyLicense(ctx context.Context, accountID int64, token string) (*VerifyResult, error) {
	resp, err := s.client.VerifyLicense(ctx, &rpc.VerifyLicenseRequest{AccountID: accountID, LicenseToken: token})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &VerifyResult{
		Status:      resp.Status,
		ExpiryDate:  resp.ExpiryDate,
		LastChecked: resp.LastChecked,
		Throttled:   resp.Throttled,
	}, nil
}

func (s *GRPCClient) InspectLicense(ctx context.Context, token string) (string, error) {
	resp, err := s.client.InspectLicense(ctx, &rpc.InspectLicenseRequest{LicenseToken: token})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.ExpiryDate, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}
