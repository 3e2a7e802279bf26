package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "licensekeeper.LicenseService"

// Full method names, as seen by interceptors.
const (
	MethodSignup          = "/" + ServiceName + "/Signup"
	MethodLogin           = "/" + ServiceName + "/Login"
	MethodGenerateLicense = "/" + ServiceName + "/GenerateLicense"
	MethodVerifyLicense   = "/" + ServiceName + "/VerifyLicense"
	MethodInspectLicense  = "/" + ServiceName + "/InspectLicense"
	MethodPing            = "/" + ServiceName + "/Ping"
)

type LicenseServiceServer interface {
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	GenerateLicense(context.Context, *GenerateLicenseRequest) (*GenerateLicenseResponse, error)
	VerifyLicense(context.Context, *VerifyLicenseRequest) (*VerifyLicenseResponse, error)
	InspectLicense(context.Context, *InspectLicenseRequest) (*InspectLicenseResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func RegisterLicenseServiceServer(s grpc.ServiceRegistrar, srv LicenseServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds a method handler that decodes In and calls fn through the
// interceptor chain.
func unary[In any, Out any](fullMethod string, fn func(LicenseServiceServer, context.Context, *In) (*Out, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(In)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(LicenseServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(LicenseServiceServer), ctx, req.(*In))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LicenseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: unary(MethodSignup, LicenseServiceServer.Signup)},
		{MethodName: "Login", Handler: unary(MethodLogin, LicenseServiceServer.Login)},
		{MethodName: "GenerateLicense", Handler: unary(MethodGenerateLicense, LicenseServiceServer.GenerateLicense)},
		{MethodName: "VerifyLicense", Handler: unary(MethodVerifyLicense, LicenseServiceServer.VerifyLicense)},
		{MethodName: "InspectLicense", Handler: unary(MethodInspectLicense, LicenseServiceServer.InspectLicense)},
		{MethodName: "Ping", Handler: unary(MethodPing, LicenseServiceServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "licensekeeper/license_service",
}
