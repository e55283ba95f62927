package handler

import (
	"errors"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/twofactor-server/internal/model"
)

// ErrorDomain is the errdetails.ErrorInfo domain of protocol failures.
const ErrorDomain = "twofactor"

func handleError(err error) error {
	var protocolErr *model.ProtocolError

	switch {
	case errors.Is(err, model.ErrPersistence):
		return status.Error(codes.Internal, "internal server error")
	case errors.Is(err, model.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &protocolErr):
		return protocolStatus(protocolErr)
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.Aborted, "account is busy, retry later")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func protocolStatus(err *model.ProtocolError) error {
	st := status.New(codes.FailedPrecondition, err.Error())
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: "U2F_" + strings.ToUpper(string(err.Phase)) + "_FAILED",
		Domain: ErrorDomain,
		Metadata: map[string]string{
			"phase":  string(err.Phase),
			"detail": err.Detail,
		},
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
