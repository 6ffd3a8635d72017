package browse

import (
	"context"
	"strings"
	"sync"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
	"github.com/rs/zerolog"
)

// View は表示状態を表します。
type View int

const (
	ViewInitial View = iota
	ViewLoadingEmployees
	ViewAllTransactions
	ViewFilteredTransactions
)

func (v View) String() string {
	switch v {
	case ViewInitial:
		return "initial"
	case ViewLoadingEmployees:
		return "loading_employees"
	case ViewAllTransactions:
		return "all_transactions"
	case ViewFilteredTransactions:
		return "filtered_transactions"
	default:
		return "unknown"
	}
}

// Snapshot は表示層へ公開する状態です。
type Snapshot struct {
	View               View
	Employees          []*employee.Employee
	EmployeesLoading   bool
	HasLoadedEmployees bool
	SelectedEmployeeID string

	// Transactions は表示対象の取引です。nil の場合は表示するものがありません。
	Transactions        []*transaction.Transaction
	LoadingTransactions bool
	PaginatedLoading    bool
	FilteredLoading     bool
	ViewMoreVisible     bool
	CanLoadMore         bool
	Err                 error
}

// Coordinator は 3 つのキャッシュを束ね、全取引表示と社員別表示を排他的に切り替えます。
// キャッシュの内容を直接変更することはなく、取得と無効化の命令のみを発行します。
type Coordinator struct {
	employees *EmployeeCache
	paginated *PaginatedCache
	filtered  *FilteredCache
	logger    zerolog.Logger

	mu                  sync.Mutex
	view                View
	selectedID          string
	transition          uint64
	loadingTransactions bool
	hasLoadedEmployees  bool
	lastErr             error
}

// NewCoordinator は Coordinator を生成します。
func NewCoordinator(employees *EmployeeCache, paginated *PaginatedCache, filtered *FilteredCache, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		employees: employees,
		paginated: paginated,
		filtered:  filtered,
		logger:    logger.With().Str("component", "coordinator").Logger(),
		view:      ViewInitial,
	}
}

// NewCoordinatorFromSource は 1 つの Source から 3 つのキャッシュを組み立てます。
func NewCoordinatorFromSource(src Source, logger zerolog.Logger) *Coordinator {
	return NewCoordinator(
		NewEmployeeCache(src, logger),
		NewPaginatedCache(src, logger),
		NewFilteredCache(src, logger),
		logger,
	)
}

// Start は社員一覧が未取得かつ取得中でなければ全取引の読み込みを開始します。
// 社員一覧の取得に失敗した後の再試行にも利用します。
func (c *Coordinator) Start(ctx context.Context) error {
	state := c.employees.State()
	if state.Loaded() {
		c.mu.Lock()
		c.hasLoadedEmployees = true
		c.mu.Unlock()
		return nil
	}
	if state.Loading {
		return nil
	}
	return c.SelectAll(ctx)
}

// LoadEmployees は社員一覧のみを取得します。取引の取得や表示の切り替えは行いません。
func (c *Coordinator) LoadEmployees(ctx context.Context) error {
	if _, err := c.employees.FetchAll(ctx); err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.hasLoadedEmployees = true
	c.mu.Unlock()
	return nil
}

// Select は選択された社員に応じて表示を切り替えます。番兵値は全取引を意味します。
func (c *Coordinator) Select(ctx context.Context, emp employee.Employee) error {
	if emp.IsEmpty() {
		return c.SelectAll(ctx)
	}
	return c.SelectEmployee(ctx, emp.ID)
}

// SelectAll は全取引表示へ切り替えます。社員別キャッシュを無効化し、社員一覧が未取得なら
// 取得を待ってから全取引の取得 (先頭ページまたは続きのページ) を行います。
func (c *Coordinator) SelectAll(ctx context.Context) error {
	view := ViewAllTransactions
	if !c.employees.State().Loaded() {
		view = ViewLoadingEmployees
	}
	seq := c.begin(view, "")
	if !c.filtered.invalidateIf(c.isCurrent(seq)) {
		c.logger.Debug().Uint64("transition", seq).Msg("transition superseded before invalidation")
		return nil
	}

	if !c.employees.State().Loaded() {
		if _, err := c.employees.FetchAll(ctx); err != nil {
			c.finish(seq, err)
			return err
		}
	}

	c.mu.Lock()
	c.hasLoadedEmployees = true
	current := seq == c.transition
	if current {
		c.view = ViewAllTransactions
	}
	c.mu.Unlock()

	if !current {
		c.logger.Debug().Uint64("transition", seq).Msg("transition superseded before transaction fetch")
		return nil
	}

	err := c.paginated.fetch(ctx, c.isCurrent(seq), false)
	if ignorable(err) {
		err = nil
	}
	c.finish(seq, err)
	return err
}

// SelectEmployee は指定社員の取引表示へ切り替えます。全取引キャッシュを無効化してから取得します。
// 空の ID は SelectAll と同じです。
func (c *Coordinator) SelectEmployee(ctx context.Context, employeeID string) error {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == employee.EmptyEmployee.ID {
		return c.SelectAll(ctx)
	}

	seq := c.begin(ViewFilteredTransactions, employeeID)
	if !c.paginated.invalidateIf(c.isCurrent(seq)) {
		c.logger.Debug().Uint64("transition", seq).Msg("transition superseded before invalidation")
		return nil
	}

	err := c.filtered.fetchByID(ctx, employeeID, c.isCurrent(seq))
	if ignorable(err) {
		err = nil
	}
	c.finish(seq, err)
	return err
}

// LoadNextPage は「さらに表示」の操作です。CanLoadMore が false の場合は何もしません。
func (c *Coordinator) LoadNextPage(ctx context.Context) error {
	if !c.Snapshot().CanLoadMore {
		return nil
	}

	c.mu.Lock()
	seq := c.transition
	c.mu.Unlock()

	err := c.paginated.fetch(ctx, c.isCurrent(seq), true)
	if ignorable(err) {
		return nil
	}
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.logger.Warn().Err(err).Msg("load next page failed")
	}
	return err
}

// CanLoadMore は「さらに表示」が有効かを返します。
func (c *Coordinator) CanLoadMore() bool {
	return c.Snapshot().CanLoadMore
}

// SelectorItems は社員選択の候補を返します。先頭は番兵値です。社員一覧が未取得なら nil です。
func (c *Coordinator) SelectorItems() []employee.Employee {
	employees := c.employees.State().Data
	if employees == nil {
		return nil
	}

	items := make([]employee.Employee, 0, len(employees)+1)
	items = append(items, employee.EmptyEmployee)
	for _, emp := range employees {
		items = append(items, *emp)
	}
	return items
}

// Snapshot は現在の状態を返します。
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	snap := Snapshot{
		View:                c.view,
		HasLoadedEmployees:  c.hasLoadedEmployees,
		SelectedEmployeeID:  c.selectedID,
		LoadingTransactions: c.loadingTransactions,
		Err:                 c.lastErr,
	}
	c.mu.Unlock()

	employees := c.employees.State()
	paginated := c.paginated.State()
	filtered := c.filtered.State()

	snap.Employees = employees.Data
	snap.EmployeesLoading = employees.Loading
	snap.PaginatedLoading = paginated.Loading
	snap.FilteredLoading = filtered.Loading
	snap.Transactions = VisibleTransactions(paginated, filtered)
	snap.ViewMoreVisible = ViewMoreVisible(paginated, filtered)
	snap.CanLoadMore = snap.ViewMoreVisible &&
		!paginated.Loading &&
		!filtered.Loading &&
		!snap.LoadingTransactions

	return snap
}

// VisibleTransactions は表示対象の取引を返します。社員別の取引があればそれを優先します。
func VisibleTransactions(paginated PaginatedState, filtered FilteredState) []*transaction.Transaction {
	if filtered.Data != nil {
		return filtered.Data
	}
	if paginated.Data != nil {
		return paginated.Data.Transactions
	}
	return nil
}

// ViewMoreVisible は「さらに表示」を表示すべきかを返します。
func ViewMoreVisible(paginated PaginatedState, filtered FilteredState) bool {
	return filtered.Data == nil &&
		VisibleTransactions(paginated, filtered) != nil &&
		paginated.HasNext()
}

func (c *Coordinator) begin(view View, employeeID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transition++
	c.view = view
	c.selectedID = employeeID
	c.loadingTransactions = true
	c.lastErr = nil

	c.logger.Debug().
		Uint64("transition", c.transition).
		Str("view", view.String()).
		Str("employee_id", employeeID).
		Msg("transition started")

	return c.transition
}

// finish は seq が最新の遷移である場合のみ読み込み中フラグを下ろします。
func (c *Coordinator) finish(seq uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.transition {
		return
	}
	c.loadingTransactions = false
	if err != nil {
		c.lastErr = err
		c.logger.Warn().Err(err).Uint64("transition", seq).Msg("transition failed")
		return
	}
	c.logger.Debug().Uint64("transition", seq).Str("view", c.view.String()).Msg("transition finished")
}

func (c *Coordinator) isCurrent(seq uint64) func() bool {
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return seq == c.transition
	}
}
