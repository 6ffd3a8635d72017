package browse

import (
	"context"
	"slices"
	"sync"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const employeesFlightKey = "employees"

// EmployeeState は社員キャッシュの状態です。Data が nil の場合は未取得です。
type EmployeeState struct {
	Data    []*employee.Employee
	Loading bool
}

// Loaded は社員一覧を取得済みかを返します。
func (s EmployeeState) Loaded() bool {
	return s.Data != nil
}

// EmployeeCache は社員一覧を一度だけ取得し、セッション中は保持し続けます。
// 取得済みの一覧が無効化されることはありません。
type EmployeeCache struct {
	fetcher EmployeeFetcher
	logger  zerolog.Logger
	group   singleflight.Group

	mu      sync.Mutex
	data    []*employee.Employee
	loading bool
}

// NewEmployeeCache は EmployeeCache を生成します。
func NewEmployeeCache(fetcher EmployeeFetcher, logger zerolog.Logger) *EmployeeCache {
	return &EmployeeCache{
		fetcher: fetcher,
		logger:  logger.With().Str("cache", SourceEmployees).Logger(),
	}
}

// State は現在の状態のスナップショットを返します。
func (c *EmployeeCache) State() EmployeeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EmployeeState{Data: slices.Clone(c.data), Loading: c.loading}
}

// FetchAll は社員一覧を返します。未取得なら取得し、取得中の呼び出しは同じリクエストの結果を待ちます。
func (c *EmployeeCache) FetchAll(ctx context.Context) ([]*employee.Employee, error) {
	c.mu.Lock()
	if c.data != nil {
		data := slices.Clone(c.data)
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	v, err, shared := c.group.Do(employeesFlightKey, func() (any, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		c.logger.Warn().Err(err).Bool("shared", shared).Msg("employee fetch failed")
		return nil, err
	}

	return slices.Clone(v.([]*employee.Employee)), nil
}

func (c *EmployeeCache) fetch(ctx context.Context) ([]*employee.Employee, error) {
	c.mu.Lock()
	if c.data != nil {
		data := c.data
		c.mu.Unlock()
		return data, nil
	}
	c.loading = true
	c.mu.Unlock()

	c.logger.Debug().Msg("fetch issued")
	fetched, err := c.fetcher.FetchEmployees(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		return nil, &FetchError{Source: SourceEmployees, Err: err}
	}

	employees := make([]*employee.Employee, 0, len(fetched))
	for _, emp := range fetched {
		// 番兵値はキャッシュに保存しない
		if emp == nil || emp.IsEmpty() {
			continue
		}
		employees = append(employees, emp)
	}
	c.data = employees
	c.logger.Debug().Int("count", len(employees)).Msg("fetch applied")

	return employees, nil
}
