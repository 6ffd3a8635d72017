package transaction

import (
	"time"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/shopspring/decimal"
)

// Transaction は取引エンティティです。この層では読み取り専用として扱います。
type Transaction struct {
	ID         string
	Employee   employee.Employee
	Amount     decimal.Decimal
	Merchant   string
	OccurredOn time.Time
	Approved   bool
}

// Page はカーソル付きの取引一覧の 1 ページです。
// NextPageToken が空文字列の場合、後続ページは存在しません。
type Page struct {
	Transactions  []*Transaction
	NextPageToken string
}

// HasNext は後続ページが存在するかを返します。
func (p *Page) HasNext() bool {
	return p != nil && p.NextPageToken != ""
}
