package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/browse"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-transaction-browser/internal/core/transaction"
)

var (
	ana  = &employee.Employee{ID: "emp-1", FirstName: "Ana", LastName: "Lima"}
	taro = &employee.Employee{ID: "emp-2", FirstName: "Taro", LastName: "Yamada"}
)

func newTx(id string, emp *employee.Employee, merchant string, approved bool) *transaction.Transaction {
	return &transaction.Transaction{
		ID:         id,
		Employee:   *emp,
		Amount:     decimal.RequireFromString("12.5"),
		Merchant:   merchant,
		OccurredOn: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Approved:   approved,
	}
}

type stubSource struct {
	mu           sync.Mutex
	employeesErr error
	pageCalls    []string
}

func (s *stubSource) FetchEmployees(ctx context.Context) ([]*employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.employeesErr != nil {
		return nil, s.employeesErr
	}
	return []*employee.Employee{ana, taro}, nil
}

func (s *stubSource) FetchTransactionPage(ctx context.Context, cursor string) (*transaction.Page, error) {
	s.mu.Lock()
	s.pageCalls = append(s.pageCalls, cursor)
	s.mu.Unlock()

	if cursor == "" {
		return &transaction.Page{
			Transactions:  []*transaction.Transaction{newTx("tx-1", ana, "Cafe", true), newTx("tx-2", taro, "Taxi", false)},
			NextPageToken: "2",
		}, nil
	}
	return &transaction.Page{Transactions: []*transaction.Transaction{newTx("tx-3", ana, "Books", true)}}, nil
}

func (s *stubSource) FetchTransactionsByEmployee(ctx context.Context, employeeID string) ([]*transaction.Transaction, error) {
	if employeeID == taro.ID {
		return []*transaction.Transaction{newTx("tx-2", taro, "Taxi", false)}, nil
	}
	return []*transaction.Transaction{}, nil
}

func newTestModel(t *testing.T, src *stubSource) *Model {
	t.Helper()
	coord := browse.NewCoordinatorFromSource(src, zerolog.Nop())
	return New(context.Background(), coord)
}

// apply は Update を呼び、返されたコマンドが操作であれば同期的に実行して結果も反映します。
func apply(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return
	}
	if done, ok := cmd().(operationDoneMsg); ok {
		m.Update(done)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case keyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case keyDown:
		return tea.KeyMsg{Type: tea.KeyDown}
	case keyUp:
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	assert.Contains(t, m.View(), loadingLabel)
	assert.NotContains(t, m.View(), viewMoreLabel)
	assert.NotNil(t, m.Init())
}

func TestModel_StartShowsFirstPage(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	m.Update(m.startCmd()())

	view := m.View()
	assert.Equal(t, browse.ViewAllTransactions, m.snapshot.View)
	assert.Contains(t, view, "All Employees")
	assert.Contains(t, view, "Ana Lima")
	assert.Contains(t, view, "Taro Yamada")
	assert.Contains(t, view, "Cafe")
	assert.Contains(t, view, "Taxi")
	assert.Contains(t, view, viewMoreLabel)
	assert.NotContains(t, view, loadingLabel)
	assert.Equal(t, 0, m.pending)
}

func TestModel_PendingOperationShowsSpinner(t *testing.T) {
	m := newTestModel(t, &stubSource{})
	m.Update(m.startCmd()())
	require.NotContains(t, m.View(), "Loading transactions...")

	_, cmd := m.Update(key(keyMore))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.pending)
	assert.Contains(t, m.View(), "Loading transactions...")

	m.Update(cmd())
	assert.Equal(t, 0, m.pending)
	assert.NotContains(t, m.View(), "Loading transactions...")
	assert.Contains(t, m.View(), "Books")
}

func TestModel_LoadMoreAppendsNextPage(t *testing.T) {
	src := &stubSource{}
	m := newTestModel(t, src)
	m.Update(m.startCmd()())

	apply(t, m, key(keyMore))

	require.Len(t, m.snapshot.Transactions, 3)
	assert.Contains(t, m.View(), "Books")
	assert.NotContains(t, m.View(), viewMoreLabel)
	assert.Equal(t, []string{"", "2"}, src.pageCalls)

	_, cmd := m.Update(key(keyMore))
	assert.Nil(t, cmd, "no further pages")
}

func TestModel_SelectEmployeeFiltersList(t *testing.T) {
	m := newTestModel(t, &stubSource{})
	m.Update(m.startCmd()())

	// 0: All Employees, 1: Ana, 2: Taro
	m.Update(key(keyDown))
	m.Update(key(keyDown))
	m.Update(key(keyDown))
	assert.Equal(t, 2, m.cursor)

	apply(t, m, key(keyEnter))

	assert.Equal(t, browse.ViewFilteredTransactions, m.snapshot.View)
	assert.Equal(t, taro.ID, m.snapshot.SelectedEmployeeID)
	require.Len(t, m.snapshot.Transactions, 1)
	assert.NotContains(t, m.View(), viewMoreLabel)
	assert.NotContains(t, m.View(), "Cafe")

	_, cmd := m.Update(key(keyMore))
	assert.Nil(t, cmd, "view more is unavailable while filtered")

	m.Update(key(keyUp))
	m.Update(key(keyUp))
	apply(t, m, key(keyEnter))
	assert.Equal(t, browse.ViewAllTransactions, m.snapshot.View)
	assert.Contains(t, m.View(), "Cafe")
}

func TestModel_ErrorAndRetry(t *testing.T) {
	src := &stubSource{employeesErr: errors.New("unavailable")}
	m := newTestModel(t, src)

	m.Update(m.startCmd()())
	assert.Contains(t, m.View(), "press r to retry")
	assert.Contains(t, m.View(), loadingLabel)

	src.mu.Lock()
	src.employeesErr = nil
	src.mu.Unlock()

	apply(t, m, key(keyRetry))
	assert.NoError(t, m.snapshot.Err)
	assert.Contains(t, m.View(), "Ana Lima")
	assert.Contains(t, m.View(), "Cafe")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	_, cmd := m.Update(key(keyQuit))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]*transaction.Transaction{newTx("tx-1", ana, "Cafe", true), nil}, false)

	assert.Contains(t, out, "MERCHANT")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "Ana Lima")
	assert.Contains(t, out, approvedLabel)

	assert.Equal(t, emptyListLabel, RenderTable([]*transaction.Transaction{}, false))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
