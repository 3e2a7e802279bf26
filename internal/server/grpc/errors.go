package grpc

import (
	"errors"

	"github.com/dmitrijs2005/licensekeeper/internal/common"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError converts service errors to gRPC statuses. Unknown errors become
// Internal without leaking their text.
func mapError(err error) error {
	var verrs validator.ValidationErrors

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrDuplicateUsername),
		errors.Is(err, common.ErrLicenseAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrInvalidExpiryDays),
		errors.Is(err, common.ErrDecode),
		errors.As(err, &verrs):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNoLicense),
		errors.Is(err, common.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrLicenseExpired):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, "internal error")
}

// failedOn reports whether err is a validation failure on the named field.
func failedOn(err error, field string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
