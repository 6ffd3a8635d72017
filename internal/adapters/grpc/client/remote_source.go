// Package client は browse.v1.TransactionService を呼び出し、閲覧コアの取得関数を提供します。
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	browsev1 "github.com/ogurasousui/codex-grpc-transaction-browser/internal/adapters/grpc/browse/v1"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/browse"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	defaultPageSize       = 5
	defaultRequestTimeout = 10 * time.Second
)

var _ browse.Source = (*RemoteSource)(nil)

// Options は RemoteSource の動作設定です。ゼロ値の項目には既定値が使われます。
type Options struct {
	PageSize       int
	RequestTimeout time.Duration
}

// RemoteSource は gRPC 経由で社員と取引を取得します。
type RemoteSource struct {
	client browsev1.TransactionServiceClient
	opts   Options
	logger zerolog.Logger
}

// Dial は target への gRPC 接続を生成します。接続は最初の呼び出し時に確立されます。
func Dial(target string) (*grpc.ClientConn, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("client: target is required")
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", target, err)
	}
	return conn, nil
}

// NewRemoteSource は RemoteSource を生成します。
func NewRemoteSource(cc grpc.ClientConnInterface, opts Options, logger zerolog.Logger) *RemoteSource {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &RemoteSource{
		client: browsev1.NewTransactionServiceClient(cc),
		opts:   opts,
		logger: logger,
	}
}

// FetchEmployees は社員の全件を取得します。
func (s *RemoteSource) FetchEmployees(ctx context.Context) ([]*employee.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	resp, err := s.client.ListEmployees(ctx, &browsev1.ListEmployeesRequest{})
	if err != nil {
		return nil, fmt.Errorf("client: list employees: %w", err)
	}

	employees := make([]*employee.Employee, 0, len(resp.GetEmployees()))
	for _, pb := range resp.GetEmployees() {
		emp, err := toDomainEmployee(pb)
		if err != nil {
			return nil, fmt.Errorf("client: list employees: %w", err)
		}
		employees = append(employees, emp)
	}

	s.logger.Debug().Int("count", len(employees)).Msg("fetched employees")
	return employees, nil
}

// FetchTransactionPage は cursor の位置から全取引の 1 ページを取得します。
func (s *RemoteSource) FetchTransactionPage(ctx context.Context, cursor string) (*transaction.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	resp, err := s.client.ListTransactions(ctx, &browsev1.ListTransactionsRequest{
		PageSize:  int32(s.opts.PageSize),
		PageToken: cursor,
	})
	if err != nil {
		return nil, fmt.Errorf("client: list transactions: %w", err)
	}

	transactions, err := toDomainTransactions(resp.GetTransactions())
	if err != nil {
		return nil, fmt.Errorf("client: list transactions: %w", err)
	}

	s.logger.Debug().
		Str("cursor", cursor).
		Int("count", len(transactions)).
		Str("next_page_token", resp.GetNextPageToken()).
		Msg("fetched transaction page")

	return &transaction.Page{
		Transactions:  transactions,
		NextPageToken: resp.GetNextPageToken(),
	}, nil
}

// FetchTransactionsByEmployee は指定社員の取引を全件取得します。
func (s *RemoteSource) FetchTransactionsByEmployee(ctx context.Context, employeeID string) ([]*transaction.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	resp, err := s.client.ListTransactionsByEmployee(ctx, &browsev1.ListTransactionsByEmployeeRequest{EmployeeId: employeeID})
	if err != nil {
		return nil, fmt.Errorf("client: list transactions by employee %s: %w", employeeID, err)
	}

	transactions, err := toDomainTransactions(resp.GetTransactions())
	if err != nil {
		return nil, fmt.Errorf("client: list transactions by employee %s: %w", employeeID, err)
	}

	s.logger.Debug().Str("employee_id", employeeID).Int("count", len(transactions)).Msg("fetched employee transactions")
	return transactions, nil
}

func toDomainEmployee(pb *browsev1.Employee) (*employee.Employee, error) {
	if pb == nil {
		return nil, fmt.Errorf("employee is missing")
	}
	if strings.TrimSpace(pb.GetId()) == "" {
		return nil, fmt.Errorf("employee id: %w", employee.ErrInvalidID)
	}
	return &employee.Employee{
		ID:        pb.GetId(),
		FirstName: pb.GetFirstName(),
		LastName:  pb.GetLastName(),
	}, nil
}

func toDomainTransactions(items []*browsev1.Transaction) ([]*transaction.Transaction, error) {
	out := make([]*transaction.Transaction, 0, len(items))
	for _, pb := range items {
		tx, err := toDomainTransaction(pb)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

func toDomainTransaction(pb *browsev1.Transaction) (*transaction.Transaction, error) {
	if pb == nil {
		return nil, fmt.Errorf("transaction is missing")
	}
	if strings.TrimSpace(pb.GetId()) == "" {
		return nil, fmt.Errorf("transaction id is empty")
	}

	emp, err := toDomainEmployee(pb.GetEmployee())
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", pb.GetId(), err)
	}

	amount, err := decimal.NewFromString(pb.GetAmount())
	if err != nil {
		return nil, fmt.Errorf("transaction %s: amount %q: %w", pb.GetId(), pb.GetAmount(), err)
	}

	occurredOn, err := time.Parse(browsev1.DateLayout, pb.GetOccurredOn())
	if err != nil {
		return nil, fmt.Errorf("transaction %s: occurred_on %q: %w", pb.GetId(), pb.GetOccurredOn(), err)
	}

	return &transaction.Transaction{
		ID:         pb.GetId(),
		Employee:   *emp,
		Amount:     amount,
		Merchant:   pb.GetMerchant(),
		OccurredOn: occurredOn,
		Approved:   pb.GetApproved(),
	}, nil
}
