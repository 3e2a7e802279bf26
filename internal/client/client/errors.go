package client

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// known server errors, recognised by their status message
var serverErrors = []error{
	common.ErrDuplicateUsername,
	common.ErrInvalidCredentials,
	common.ErrLicenseAlreadyExists,
	common.ErrNoLicense,
	common.ErrInvalidToken,
	common.ErrLicenseExpired,
	common.ErrInvalidExpiryDays,
	common.ErrDecode,
	common.ErrAccountNotFound,
	common.ErrTokenExpired,
}

func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	for _, known := range serverErrors {
		if strings.HasPrefix(st.Message(), known.Error()) {
			return known
		}
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	}

	return errors.New(st.Message())
}
