package handler

import (
	"context"

	"github.com/ogurasousui/transaction-review/internal/adapters/grpc/reviewrpc"
	"github.com/ogurasousui/transaction-review/internal/core/employee"
	"github.com/ogurasousui/transaction-review/internal/core/transaction"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ReviewGrpcHandler は ReviewService の gRPC 実装です。
type ReviewGrpcHandler struct {
	employees    employee.UseCase
	transactions transaction.UseCase
	reviewrpc.UnimplementedReviewServiceServer
}

var _ reviewrpc.ReviewServiceServer = (*ReviewGrpcHandler)(nil)

// NewReviewGrpcHandler は ReviewGrpcHandler を生成します。
func NewReviewGrpcHandler(employees employee.UseCase, transactions transaction.UseCase) *ReviewGrpcHandler {
	return &ReviewGrpcHandler{employees: employees, transactions: transactions}
}

// Employees は社員名簿を返します。社員がいなければ nil です。
func (h *ReviewGrpcHandler) Employees(ctx context.Context, req *reviewrpc.EmployeesRequest) ([]reviewrpc.Employee, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.employees.ListEmployees(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	if found == nil {
		return nil, nil
	}

	out := make([]reviewrpc.Employee, 0, len(found))
	for _, emp := range found {
		out = append(out, toRPCEmployee(emp))
	}
	return out, nil
}

// PaginatedTransactions は 1 ページ分の取引を返します。
func (h *ReviewGrpcHandler) PaginatedTransactions(ctx context.Context, req *reviewrpc.PaginatedTransactionsRequest) (*reviewrpc.PaginatedTransactionsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.transactions.ListPaginated(ctx, transaction.ListPaginatedInput{Page: req.Page})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &reviewrpc.PaginatedTransactionsResponse{
		Data:     toRPCTransactions(result.Transactions),
		NextPage: result.NextPage,
	}, nil
}

// TransactionsByEmployee は社員の全取引を返します。名簿にない社員は NotFound です。
func (h *ReviewGrpcHandler) TransactionsByEmployee(ctx context.Context, req *reviewrpc.TransactionsByEmployeeRequest) ([]reviewrpc.Transaction, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	emp, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}

	items, err := h.transactions.ListByEmployee(ctx, transaction.ListByEmployeeInput{EmployeeID: emp.ID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return toRPCTransactions(items), nil
}

// SetTransactionApproval は承認状態を更新します。
func (h *ReviewGrpcHandler) SetTransactionApproval(ctx context.Context, req *reviewrpc.SetTransactionApprovalRequest) (*reviewrpc.SetTransactionApprovalResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.transactions.SetApproval(ctx, transaction.SetApprovalInput{
		TransactionID: req.TransactionID,
		Value:         req.Value,
	}); err != nil {
		return nil, toStatusError(err)
	}
	return &reviewrpc.SetTransactionApprovalResponse{}, nil
}

func toRPCEmployee(emp *employee.Employee) reviewrpc.Employee {
	return reviewrpc.Employee{ID: emp.ID, FirstName: emp.FirstName, LastName: emp.LastName}
}

// 空でも null ではなく [] を返す
func toRPCTransactions(items []*transaction.Transaction) []reviewrpc.Transaction {
	out := make([]reviewrpc.Transaction, 0, len(items))
	for _, item := range items {
		out = append(out, reviewrpc.Transaction{
			ID:       item.ID,
			Amount:   item.Amount,
			Merchant: item.Merchant,
			Date:     item.Date.Format(reviewrpc.DateLayout),
			Approved: item.Approved,
			Employee: reviewrpc.Employee{
				ID:        item.Employee.ID,
				FirstName: item.Employee.FirstName,
				LastName:  item.Employee.LastName,
			},
		})
	}
	return out
}
