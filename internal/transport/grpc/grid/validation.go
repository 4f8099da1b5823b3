package grid

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// validateKey checks the row key of EditRow and RemoveRow requests.
func validateKey(key string) error {
	if key == "" {
		return status.Error(codes.InvalidArgument, "key is required")
	}
	return nil
}
