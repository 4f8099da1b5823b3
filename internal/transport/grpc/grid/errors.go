package grid

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, validation.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, list_rows.ErrUnknownField), errors.Is(err, list_rows.ErrInvalidFilter):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, "row not found")

	case errors.Is(err, domain.ErrProductDeleted):
		return status.Error(codes.FailedPrecondition, "row is marked for deletion")

	case errors.Is(err, domain.ErrInvalidReference):
		return status.Error(codes.FailedPrecondition, "row is not part of the working set")

	case errors.Is(err, domain.ErrSourceConflict):
		return status.Error(codes.Aborted, "stored products changed since they were read, reload and retry")

	case errors.Is(err, domain.ErrCommitFailed):
		return status.Error(codes.Unavailable, "changes could not be saved, pending changes were kept")

	default:
		// Unknown error - return Internal
		return status.Error(codes.Internal, "internal server error")
	}
}
