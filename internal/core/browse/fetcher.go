package browse

import (
	"context"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
)

// EmployeeFetcher は社員一覧を取得します。
type EmployeeFetcher interface {
	FetchEmployees(ctx context.Context) ([]*employee.Employee, error)
}

// PageFetcher は全取引を 1 ページ取得します。cursor が空文字列なら先頭ページです。
type PageFetcher interface {
	FetchTransactionPage(ctx context.Context, cursor string) (*transaction.Page, error)
}

// EmployeeTransactionsFetcher は指定社員の取引を全件取得します。
type EmployeeTransactionsFetcher interface {
	FetchTransactionsByEmployee(ctx context.Context, employeeID string) ([]*transaction.Transaction, error)
}

// Source は 3 つの取得関数をまとめて提供する実装向けのインターフェースです。
type Source interface {
	EmployeeFetcher
	PageFetcher
	EmployeeTransactionsFetcher
}
