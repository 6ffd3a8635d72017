package transaction

import "context"

// Repository は取引参照の抽象です。
type Repository interface {
	List(ctx context.Context, filter ListTransactionsFilter) ([]*Transaction, string, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Transaction, error)
}

// ListTransactionsFilter は一覧取得用フィルタです。
type ListTransactionsFilter struct {
	Limit  int
	Offset int
}
