package grpcapi

import (
	"job-marketplace-api/internal/apperr"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func codeOf(kind apperr.Kind) codes.Code {
	switch kind {
	case apperr.KindNotFound:
		return codes.NotFound
	case apperr.KindInvalidArgument:
		return codes.InvalidArgument
	case apperr.KindConflict:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

func toStatus(err error) error {
	if err == nil {
		return nil
	}

	return status.Error(codeOf(apperr.KindOf(err)), apperr.MessageOf(err))
}
