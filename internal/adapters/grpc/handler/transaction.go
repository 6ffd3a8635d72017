package handler

import (
	"context"

	browsev1 "github.com/ogurasousui/codex-grpc-transaction-browser/internal/adapters/grpc/browse/v1"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TransactionGrpcHandler は TransactionService の gRPC 実装です。
type TransactionGrpcHandler struct {
	employees    employee.UseCase
	transactions transaction.UseCase
	browsev1.UnimplementedTransactionServiceServer
}

// NewTransactionGrpcHandler は TransactionGrpcHandler を生成します。
func NewTransactionGrpcHandler(employees employee.UseCase, transactions transaction.UseCase) *TransactionGrpcHandler {
	return &TransactionGrpcHandler{employees: employees, transactions: transactions}
}

// ListEmployees は社員の全件を返します。
func (h *TransactionGrpcHandler) ListEmployees(ctx context.Context, req *browsev1.ListEmployeesRequest) (*browsev1.ListEmployeesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.employees.ListEmployees(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &browsev1.ListEmployeesResponse{Employees: make([]*browsev1.Employee, 0, len(found))}
	for _, emp := range found {
		resp.Employees = append(resp.Employees, toProtoEmployee(emp))
	}
	return resp, nil
}

// ListTransactions は全取引の 1 ページを返します。
func (h *TransactionGrpcHandler) ListTransactions(ctx context.Context, req *browsev1.ListTransactionsRequest) (*browsev1.ListTransactionsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	page, err := h.transactions.ListTransactions(ctx, transaction.ListTransactionsInput{
		PageSize:  int(req.GetPageSize()),
		PageToken: req.GetPageToken(),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &browsev1.ListTransactionsResponse{
		Transactions:  toProtoTransactions(page.Transactions),
		NextPageToken: page.NextPageToken,
	}, nil
}

// ListTransactionsByEmployee は指定社員の取引を全件返します。
func (h *TransactionGrpcHandler) ListTransactionsByEmployee(ctx context.Context, req *browsev1.ListTransactionsByEmployeeRequest) (*browsev1.ListTransactionsByEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.transactions.ListTransactionsByEmployee(ctx, transaction.ListTransactionsByEmployeeInput{
		EmployeeID: req.GetEmployeeId(),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &browsev1.ListTransactionsByEmployeeResponse{Transactions: toProtoTransactions(found)}, nil
}

func toProtoEmployee(emp *employee.Employee) *browsev1.Employee {
	if emp == nil {
		return nil
	}
	return &browsev1.Employee{
		Id:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
	}
}

func toProtoTransactions(items []*transaction.Transaction) []*browsev1.Transaction {
	out := make([]*browsev1.Transaction, 0, len(items))
	for _, tx := range items {
		if tx == nil {
			continue
		}
		out = append(out, &browsev1.Transaction{
			Id:         tx.ID,
			Employee:   toProtoEmployee(&tx.Employee),
			Amount:     tx.Amount.StringFixed(2),
			Merchant:   tx.Merchant,
			OccurredOn: tx.OccurredOn.Format(browsev1.DateLayout),
			Approved:   tx.Approved,
		})
	}
	return out
}
