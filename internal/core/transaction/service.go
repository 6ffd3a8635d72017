package transaction

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// EmployeeFinder は社員の存在確認に利用します。
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

const (
	defaultListPageSize = 5
	maxListPageSize     = 100
)

// UseCase は取引ユースケースの公開インターフェースです。
type UseCase interface {
	ListTransactions(ctx context.Context, in ListTransactionsInput) (*Page, error)
	ListTransactionsByEmployee(ctx context.Context, in ListTransactionsByEmployeeInput) ([]*Transaction, error)
}

// Service は取引に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	employees EmployeeFinder
	tx        TransactionManager
}

// NewService は Service を生成します。employees が nil の場合は社員の存在確認を行いません。
func NewService(repo Repository, employees EmployeeFinder, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, employees: employees, tx: tx}
}

// ListTransactionsInput は全取引のページ取得時の入力です。
type ListTransactionsInput struct {
	PageSize  int
	PageToken string
}

// ListTransactionsByEmployeeInput は社員別取引の取得時の入力です。
type ListTransactionsByEmployeeInput struct {
	EmployeeID string
}

// ListTransactions は全取引を 1 ページ分取得します。
func (s *Service) ListTransactions(ctx context.Context, in ListTransactionsInput) (*Page, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	page := &Page{}
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		transactions, next, err := s.repo.List(txCtx, ListTransactionsFilter{Limit: limit, Offset: offset})
		if err != nil {
			return err
		}
		page.Transactions = transactions
		page.NextPageToken = next
		return nil
	}); err != nil {
		return nil, err
	}

	if page.Transactions == nil {
		page.Transactions = []*Transaction{}
	}

	return page, nil
}

// ListTransactionsByEmployee は指定社員の取引を全件取得します。
func (s *Service) ListTransactionsByEmployee(ctx context.Context, in ListTransactionsByEmployeeInput) ([]*Transaction, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var transactions []*Transaction
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if s.employees != nil {
			if _, err := s.employees.FindByID(txCtx, employeeID); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					return ErrEmployeeNotFound
				}
				return err
			}
		}

		found, err := s.repo.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}
		transactions = found
		return nil
	}); err != nil {
		return nil, err
	}

	if transactions == nil {
		transactions = []*Transaction{}
	}

	return transactions, nil
}

func normalizeEmployeeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmployeeID
	}

	id, err := uuid.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidEmployeeID
	}
	return id.String(), nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
