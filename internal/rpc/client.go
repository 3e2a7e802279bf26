package rpc

import (
	"context"

	"google.golang.org/grpc"
)

type LicenseServiceClient interface {
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	GenerateLicense(ctx context.Context, in *GenerateLicenseRequest, opts ...grpc.CallOption) (*GenerateLicenseResponse, error)
	VerifyLicense(ctx context.Context, in *VerifyLicenseRequest, opts ...grpc.CallOption) (*VerifyLicenseResponse, error)
	InspectLicense(ctx context.Context, in *InspectLicenseRequest, opts ...grpc.CallOption) (*InspectLicenseResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type licenseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLicenseServiceClient(cc grpc.ClientConnInterface) LicenseServiceClient {
	return &licenseServiceClient{cc: cc}
}

func invoke[Out any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Out, error) {
	out := new(Out)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *licenseServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, MethodSignup, in, opts)
}

func (c *licenseServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *licenseServiceClient) GenerateLicense(ctx context.Context, in *GenerateLicenseRequest, opts ...grpc.CallOption) (*GenerateLicenseResponse, error) {
	return invoke[GenerateLicenseResponse](ctx, c.cc, MethodGenerateLicense, in, opts)
}

func (c *licenseServiceClient) VerifyLicense(ctx context.Context, in *VerifyLicenseRequest, opts ...grpc.CallOption) (*VerifyLicenseResponse, error) {
	return invoke[VerifyLicenseResponse](ctx, c.cc, MethodVerifyLicense, in, opts)
}

func (c *licenseServiceClient) InspectLicense(ctx context.Context, in *InspectLicenseRequest, opts ...grpc.CallOption) (*InspectLicenseResponse, error) {
	return invoke[InspectLicenseResponse](ctx, c.cc, MethodInspectLicense, in, opts)
}

func (c *licenseServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
