package browse

import (
	"context"
	"slices"
	"sync"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/rs/zerolog"
)

// FilteredState は社員別取引キャッシュの状態です。Data が nil の場合は未取得です。
// EmployeeID は Data に対応する社員 ID です。
type FilteredState struct {
	EmployeeID string
	Data       []*transaction.Transaction
	Loading    bool
}

// FilteredCache は直近に要求された 1 社員分の取引一覧を保持します。
type FilteredCache struct {
	fetcher EmployeeTransactionsFetcher
	logger  zerolog.Logger

	mu         sync.Mutex
	employeeID string
	data       []*transaction.Transaction
	loading    bool
	generation uint64
	cancel     context.CancelFunc
}

// NewFilteredCache は FilteredCache を生成します。
func NewFilteredCache(fetcher EmployeeTransactionsFetcher, logger zerolog.Logger) *FilteredCache {
	return &FilteredCache{
		fetcher: fetcher,
		logger:  logger.With().Str("cache", SourceEmployeeTransactions).Logger(),
	}
}

// State は現在の状態のスナップショットを返します。
func (c *FilteredCache) State() FilteredState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilteredState{EmployeeID: c.employeeID, Data: slices.Clone(c.data), Loading: c.loading}
}

// FetchByID は指定社員の取引を取得して保持内容を置き換えます。
// 新しい呼び出しが先行するリクエストを置き換え、古い応答は ErrStale として破棄されます。
func (c *FilteredCache) FetchByID(ctx context.Context, employeeID string) error {
	return c.fetchByID(ctx, employeeID, nil)
}

// Invalidate は保持している取引を破棄します。
func (c *FilteredCache) Invalidate() {
	c.invalidateIf(nil)
}

// invalidateIf は guard が true を返した場合のみ無効化し、無効化したかを返します。
// guard はキャッシュのロック下で評価されます。
func (c *FilteredCache) invalidateIf(guard func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if guard != nil && !guard() {
		return false
	}

	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.employeeID = ""
	c.data = nil
	c.loading = false
	c.logger.Debug().Uint64("generation", c.generation).Msg("invalidated")
	return true
}

func (c *FilteredCache) fetchByID(ctx context.Context, employeeID string, guard func() bool) error {
	c.mu.Lock()
	if guard != nil && !guard() {
		c.mu.Unlock()
		return ErrStale
	}

	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	c.mu.Unlock()
	defer cancel()

	c.logger.Debug().Str("employee_id", employeeID).Uint64("generation", gen).Msg("fetch issued")
	fetched, err := c.fetcher.FetchTransactionsByEmployee(fetchCtx, employeeID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug().Str("employee_id", employeeID).Uint64("generation", gen).Msg("stale response discarded")
		return ErrStale
	}

	c.loading = false
	c.cancel = nil

	if err != nil {
		return &FetchError{Source: SourceEmployeeTransactions, Err: err}
	}

	transactions := make([]*transaction.Transaction, 0, len(fetched))
	for _, tx := range fetched {
		if tx != nil {
			transactions = append(transactions, tx)
		}
	}
	c.employeeID = employeeID
	c.data = transactions
	c.logger.Debug().Str("employee_id", employeeID).Int("count", len(transactions)).Msg("fetch applied")

	return nil
}
