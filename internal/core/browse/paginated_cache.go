package browse

import (
	"context"
	"slices"
	"sync"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/rs/zerolog"
)

// PaginatedState は全取引キャッシュの状態です。Data が nil の場合は未取得です。
type PaginatedState struct {
	Data    *transaction.Page
	Loading bool
}

// HasNext は後続ページが存在するかを返します。
func (s PaginatedState) HasNext() bool {
	return s.Data.HasNext()
}

// PaginatedCache はカーソルでページを順に取得し、取得済みページを連結して保持します。
type PaginatedCache struct {
	fetcher PageFetcher
	logger  zerolog.Logger

	mu         sync.Mutex
	data       *transaction.Page
	seen       map[string]struct{}
	loading    bool
	generation uint64
	cancel     context.CancelFunc
}

// NewPaginatedCache は PaginatedCache を生成します。
func NewPaginatedCache(fetcher PageFetcher, logger zerolog.Logger) *PaginatedCache {
	return &PaginatedCache{
		fetcher: fetcher,
		logger:  logger.With().Str("cache", SourceTransactions).Logger(),
	}
}

// State は現在の状態のスナップショットを返します。
func (c *PaginatedCache) State() PaginatedState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := PaginatedState{Loading: c.loading}
	if c.data != nil {
		state.Data = &transaction.Page{
			Transactions:  slices.Clone(c.data.Transactions),
			NextPageToken: c.data.NextPageToken,
		}
	}
	return state
}

// FetchAll は未取得なら先頭ページを、取得済みなら次のページを取得して末尾に連結します。
// 後続ページがなければ何もしません。取得中の呼び出しは ErrFetchInProgress を返します。
func (c *PaginatedCache) FetchAll(ctx context.Context) error {
	return c.fetch(ctx, nil, false)
}

// Invalidate は保持しているページを破棄します。取得中のリクエストはキャンセルされ、応答は破棄されます。
// 取得中フラグもその場で下ろすため、直後の FetchAll は新しいリクエストを発行できます。
// フェッチャーがキャンセルを無視する場合、破棄されたリクエストが戻るまでの間は
// 1 つのキャッシュに対して 2 つのリクエストが同時に存在し得ます。
// 古い応答は世代の不一致で必ず破棄されるため、保持内容に影響することはありません。
func (c *PaginatedCache) Invalidate() {
	c.invalidateIf(nil)
}

// invalidateIf は guard が true を返した場合のみ無効化し、無効化したかを返します。
// guard はキャッシュのロック下で評価されます。
func (c *PaginatedCache) invalidateIf(guard func() bool) bool {
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
	c.data = nil
	c.seen = nil
	c.loading = false
	c.logger.Debug().Uint64("generation", c.generation).Msg("invalidated")
	return true
}

// fetch は guard が false を返した場合、リクエストを発行せずに ErrStale を返します。
// guard はキャッシュのロック下で評価されます。continueOnly の場合、未取得なら何もしません。
func (c *PaginatedCache) fetch(ctx context.Context, guard func() bool, continueOnly bool) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrFetchInProgress
	}
	if c.data == nil && continueOnly {
		c.mu.Unlock()
		return nil
	}
	if c.data != nil && !c.data.HasNext() {
		c.mu.Unlock()
		return nil
	}
	if guard != nil && !guard() {
		c.mu.Unlock()
		return ErrStale
	}

	cursor := ""
	if c.data != nil {
		cursor = c.data.NextPageToken
	}
	gen := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	c.mu.Unlock()
	defer cancel()

	c.logger.Debug().Str("cursor", cursor).Uint64("generation", gen).Msg("fetch issued")
	page, err := c.fetcher.FetchTransactionPage(fetchCtx, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug().Uint64("generation", gen).Msg("stale response discarded")
		return ErrStale
	}

	c.loading = false
	c.cancel = nil

	if err != nil {
		return &FetchError{Source: SourceTransactions, Err: err}
	}
	if page == nil {
		return &FetchError{Source: SourceTransactions, Err: errNilPage}
	}

	added := c.apply(page)
	c.logger.Debug().Int("added", added).Bool("has_next", c.data.HasNext()).Msg("fetch applied")
	return nil
}

// apply はロック下で呼び出します。既に保持している ID の取引は追加しません。
func (c *PaginatedCache) apply(page *transaction.Page) int {
	if c.data == nil {
		c.data = &transaction.Page{Transactions: make([]*transaction.Transaction, 0, len(page.Transactions))}
		c.seen = make(map[string]struct{}, len(page.Transactions))
	}

	added := 0
	for _, tx := range page.Transactions {
		if tx == nil {
			continue
		}
		if _, dup := c.seen[tx.ID]; dup {
			continue
		}
		c.seen[tx.ID] = struct{}{}
		c.data.Transactions = append(c.data.Transactions, tx)
		added++
	}
	c.data.NextPageToken = page.NextPageToken

	return added
}
