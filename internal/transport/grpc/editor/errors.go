package editor

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/penspanic/Datra-sub005/internal/app/table/domain"
	"github.com/penspanic/Datra-sub005/internal/app/table/session"
)

// mapErrorToGRPC converts application errors to gRPC status codes.
func mapErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, session.ErrTableNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrKeyType),
		errors.Is(err, domain.ErrValueType),
		errors.Is(err, domain.ErrUnknownProperty),
		errors.Is(err, domain.ErrPropertyType):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")

	default:
		// Unknown error - return Internal
		return status.Error(codes.Internal, "internal server error")
	}
}
