package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	pgdb "github.com/ogurasousui/codex-grpc-transaction-browser/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const transactionColumns = `
        SELECT t.id,
               t.amount::text,
               t.merchant,
               t.occurred_on,
               t.approved,
               e.id,
               e.first_name,
               e.last_name
          FROM transactions t
          JOIN employees e ON e.id = t.employee_id`

const transactionOrder = `
         ORDER BY t.occurred_on DESC, t.id`

// TransactionRepository は PostgreSQL を利用した取引参照の実装です。
type TransactionRepository struct {
	pool pgdb.Queryer
}

// NewTransactionRepository は TransactionRepository を生成します。
func NewTransactionRepository(pool pgdb.Queryer) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// List は取引を新しい順に取得します。後続があれば次ページのトークン (オフセット) を返します。
func (r *TransactionRepository) List(ctx context.Context, filter transaction.ListTransactionsFilter) ([]*transaction.Transaction, string, error) {
	if filter.Limit <= 0 {
		return nil, "", transaction.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", transaction.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1
	query := transactionColumns + transactionOrder + `
         LIMIT $1
        OFFSET $2
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, limitWithBuffer, filter.Offset)
	if err != nil {
		return nil, "", translateTransactionPgError(err)
	}

	transactions, err := collectTransactions(rows, filter.Limit)
	if err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(transactions) == limitWithBuffer {
		transactions = transactions[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return transactions, nextToken, nil
}

// ListByEmployee は指定社員の取引を全件取得します。
func (r *TransactionRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*transaction.Transaction, error) {
	query := transactionColumns + `
         WHERE t.employee_id = $1` + transactionOrder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, employeeID)
	if err != nil {
		return nil, translateTransactionPgError(err)
	}

	return collectTransactions(rows, 0)
}

func collectTransactions(rows pgx.Rows, capacity int) ([]*transaction.Transaction, error) {
	defer rows.Close()

	transactions := make([]*transaction.Transaction, 0, capacity)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, translateTransactionPgError(err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, translateTransactionPgError(err)
	}

	return transactions, nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var (
		id         string
		amountRaw  string
		merchant   string
		occurredOn time.Time
		approved   bool
		emp        employee.Employee
	)

	if err := row.Scan(
		&id,
		&amountRaw,
		&merchant,
		&occurredOn,
		&approved,
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
	); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountRaw)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: parse amount %q: %w", id, amountRaw, err)
	}

	t := occurredOn.UTC()
	return &transaction.Transaction{
		ID:         id,
		Employee:   emp,
		Amount:     amount,
		Merchant:   merchant,
		OccurredOn: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Approved:   approved,
	}, nil
}

func translateTransactionPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentationCode {
		return transaction.ErrInvalidEmployeeID
	}

	return err
}
