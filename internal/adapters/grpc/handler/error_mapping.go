package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidFirstName),
		errors.Is(err, employee.ErrInvalidLastName),
		errors.Is(err, transaction.ErrInvalidPageSize),
		errors.Is(err, transaction.ErrInvalidPageToken),
		errors.Is(err, transaction.ErrInvalidEmployeeID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, transaction.ErrEmployeeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
