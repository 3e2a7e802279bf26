package grpc

import (
	"context"
	"path"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/dmitrijs2005/licensekeeper/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accountIDKey ctxKey = "accountID"

// methods that need a valid access token
var protectedMethods = map[string]bool{
	rpc.MethodGenerateLicense: true,
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	method := path.Base(info.FullMethod)
	log := s.logger.With("request_id", uuid.NewString(), "method", method)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	elapsed := time.Since(start)
	if s.observer != nil {
		s.observer.ObserveRPC(method, code.String(), elapsed)
	}

	switch code {
	case codes.OK:
		log.Info(ctx, "request served", "duration", elapsed)
	case codes.Internal, codes.Unknown:
		log.Error(ctx, "request failed", "code", code.String(), "duration", elapsed, "error", err)
	default:
		log.Info(ctx, "request rejected", "code", code.String(), "duration", elapsed, "error", status.Convert(err).Message())
	}

	return resp, err
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	accountID, err := s.auth.Authenticate(accessToken)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return handler(context.WithValue(ctx, accountIDKey, accountID), req)
}

func accountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}
