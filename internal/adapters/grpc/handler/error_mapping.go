package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/transaction-review/internal/core/employee"
	"github.com/ogurasousui/transaction-review/internal/core/transaction"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, transaction.ErrInvalidID),
		errors.Is(err, transaction.ErrInvalidEmployeeID),
		errors.Is(err, transaction.ErrInvalidPage),
		errors.Is(err, employee.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
